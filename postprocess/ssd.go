package postprocess

import (
	"github.com/craicek/go-coralcam"
	"github.com/craicek/go-coralcam/postprocess/result"
)

// SSDParams defines the struct containing the SSD parameters to use for
// post processing operations
type SSDParams struct {
	// MaxObjectNumber is the maximum number of objects detected that can be
	// returned, matching the fixed size of the model's output tensors
	MaxObjectNumber int
}

// SSDCOCOParams returns an instance of SSDParams configured with default
// values for the MobileNet SSD v2 model trained on the COCO dataset with
// the TFLite detection postprocess operator:
//   - Maximum Object Number: 20
func SSDCOCOParams() SSDParams {
	return SSDParams{
		MaxObjectNumber: 20,
	}
}

// SSD defines the struct for SSD model inference post processing.  The
// detection postprocess operator baked into the model has already decoded
// box priors and applied NMS, so post processing here is confidence gating
// and mapping normalized box corners into model input space pixels.
type SSD struct {
	// Params are the Model configuration parameters
	Params SSDParams
	idGen  *result.IDGenerator
}

// NewSSD returns an instance of the SSD post processor
func NewSSD(p SSDParams) *SSD {
	return &SSD{
		Params: p,
		idGen:  result.NewIDGenerator(),
	}
}

// DetectObjects takes the raw outputs of an inference run and converts
// them into a list of detected objects with bounding boxes in model input
// space, ie: [0,300]x[0,300] pixels for a 300x300 model.
//
// Detections scoring below the given confidence threshold are discarded.
// The comparison is inclusive, a detection scoring exactly the threshold
// is kept.  Box corners are defensively clamped to the model input
// dimensions as quantized models can emit slightly out of range values.
//
// The model emits results in descending score order but nothing here or
// downstream relies on it, the sequence is treated as unordered.
func (s *SSD) DetectObjects(outputs *coralcam.Outputs,
	threshold float32) []DetectResult {

	width := float32(outputs.InputAttr.Width)
	height := float32(outputs.InputAttr.Height)

	count := outputs.Count

	if count > s.Params.MaxObjectNumber {
		count = s.Params.MaxObjectNumber
	}

	group := make([]DetectResult, 0, count)

	for i := 0; i < count; i++ {

		if outputs.Scores[i] < threshold {
			continue
		}

		// box corners are normalized ymin, xmin, ymax, xmax
		ymin := outputs.Boxes[i*4+0]
		xmin := outputs.Boxes[i*4+1]
		ymax := outputs.Boxes[i*4+2]
		xmax := outputs.Boxes[i*4+3]

		group = append(group, DetectResult{
			Class: int(outputs.ClassIDs[i]),
			Box: BoxRect{
				Left:   clamp(xmin*width, 0, width),
				Top:    clamp(ymin*height, 0, height),
				Right:  clamp(xmax*width, 0, width),
				Bottom: clamp(ymax*height, 0, height),
			},
			Probability: outputs.Scores[i],
			ID:          s.idGen.GetNext(),
		})
	}

	return group
}
