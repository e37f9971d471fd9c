package render

import (
	"testing"

	coralcam "github.com/craicek/go-coralcam"
	"github.com/craicek/go-coralcam/postprocess"
	"gocv.io/x/gocv"
)

func TestDetectionBoxes(t *testing.T) {

	img := grayFrame(480, 640)
	defer img.Close()

	before := img.Clone()
	defer before.Close()

	labels := coralcam.LabelMap{0: "person"}

	results := []postprocess.DetectResult{
		{
			Class:       0,
			Box:         postprocess.BoxRect{Left: 100, Top: 120, Right: 300, Bottom: 400},
			Probability: 0.93,
		},
	}

	DetectionBoxes(&img, results, labels, DefaultFont(), 2)

	if !pixelsDiffer(t, img, before) {
		t.Error("detection box was not drawn on the frame")
	}
}

func TestDetectionBoxesUnknownClass(t *testing.T) {

	img := grayFrame(480, 640)
	defer img.Close()

	before := img.Clone()
	defer before.Close()

	// class id 57 is absent from the label map, the detection must still
	// be drawn with the fallback label rather than skipped
	labels := coralcam.LabelMap{0: "person"}

	results := []postprocess.DetectResult{
		{
			Class:       57,
			Box:         postprocess.BoxRect{Left: 50, Top: 60, Right: 200, Bottom: 220},
			Probability: 0.81,
		},
	}

	DetectionBoxes(&img, results, labels, DefaultFont(), 2)

	if !pixelsDiffer(t, img, before) {
		t.Error("unknown class detection was not drawn on the frame")
	}
}

func TestDetectionBoxesAtTopEdge(t *testing.T) {

	img := grayFrame(480, 640)
	defer img.Close()

	before := img.Clone()
	defer before.Close()

	labels := coralcam.LabelMap{0: "person"}

	// box touching the top of the frame forces the label tag inside the box
	results := []postprocess.DetectResult{
		{
			Class:       0,
			Box:         postprocess.BoxRect{Left: 10, Top: 0, Right: 150, Bottom: 200},
			Probability: 0.77,
		},
	}

	DetectionBoxes(&img, results, labels, DefaultFont(), 2)

	if !pixelsDiffer(t, img, before) {
		t.Error("top edge detection was not drawn on the frame")
	}
}

func TestDetectionBoxesEmptyResults(t *testing.T) {

	img := grayFrame(480, 640)
	defer img.Close()

	before := img.Clone()
	defer before.Close()

	DetectionBoxes(&img, nil, coralcam.LabelMap{0: "person"}, DefaultFont(), 2)

	// zero detections draw zero boxes, the frame is untouched
	if pixelsDiffer(t, img, before) {
		t.Error("frame was modified with no detections to draw")
	}
}
