// Package pipeline runs the per-frame detection pipeline: squash the
// native frame to the model input size, infer, rectify the detections back
// to native coordinates and render the annotated frame.
package pipeline

import (
	"fmt"

	"github.com/craicek/go-coralcam"
	"github.com/craicek/go-coralcam/postprocess"
	"github.com/craicek/go-coralcam/preprocess"
	"github.com/craicek/go-coralcam/render"
	"gocv.io/x/gocv"
)

// Pipeline holds the per-session state of the detection pipeline.  All of
// it is constructed once after the capture resolution is fixed and
// immutable afterwards, each frame is a pure transformation of its inputs.
type Pipeline struct {
	// rt is the accelerator session the model runs on
	rt *coralcam.Runtime
	// squasher resizes native frames to the model input tensor size
	squasher *preprocess.Squasher
	// ssd decodes raw outputs into model space detections
	ssd *postprocess.SSD
	// rectifier maps detections back into native frame coordinates
	rectifier *postprocess.Rectifier
	// labels resolves class ids to human readable names
	labels coralcam.LabelMap
	// font used for box tags and the overlay
	font render.Font
	// squashed is the reused model input Mat
	squashed gocv.Mat
}

// New returns a pipeline for frames of the given native resolution running
// on the given accelerator session
func New(rt *coralcam.Runtime, labels coralcam.LabelMap,
	nativeWidth, nativeHeight int) *Pipeline {

	attr := rt.InputAttr()

	return &Pipeline{
		rt:        rt,
		squasher:  preprocess.NewSquasher(nativeWidth, nativeHeight, attr.Width, attr.Height),
		ssd:       postprocess.NewSSD(postprocess.SSDCOCOParams()),
		rectifier: postprocess.NewRectifier(nativeWidth, nativeHeight, attr.Width, attr.Height),
		labels:    labels,
		font:      render.DefaultFont(),
		squashed:  gocv.NewMat(),
	}
}

// Close frees the pipeline's internal Mats.  The runtime is owned by the
// caller and is not closed here.
func (p *Pipeline) Close() error {
	p.squasher.Close()
	return p.squashed.Close()
}

// Scale returns the per-axis rectification scale factors in use
func (p *Pipeline) Scale() postprocess.ScaleFactors {
	return p.rectifier.Scale()
}

// Process runs one frame through the pipeline and writes the annotated
// result to annotated.  The source frame is copied, not modified.  The
// returned count is the number of objects rendered.
//
// Errors wrapping preprocess.ErrInvalidFrame are recoverable, the caller
// skips the frame.  Anything else is a device fault and fatal to the
// session.
func (p *Pipeline) Process(frame gocv.Mat, annotated *gocv.Mat,
	threshold float32, fps float64, debug bool) (int, error) {

	if err := p.squasher.SquashResize(frame, &p.squashed); err != nil {
		return 0, err
	}

	outputs, err := p.rt.Inference(p.squashed)

	if err != nil {
		return 0, fmt.Errorf("inference failed: %w", err)
	}

	results := p.rectifier.Rectify(p.ssd.DetectObjects(outputs, threshold))

	// annotate a copy so the native frame stays untouched
	frame.CopyTo(annotated)

	render.DetectionBoxes(annotated, results, p.labels, p.font, 2)

	attr := p.rt.InputAttr()

	render.Overlay(annotated, render.Stats{
		NativeWidth:  p.squasher.SrcWidth(),
		NativeHeight: p.squasher.SrcHeight(),
		ModelWidth:   attr.Width,
		ModelHeight:  attr.Height,
		FPS:          fps,
		Objects:      len(results),
		Threshold:    threshold,
		Debug:        debug,
	}, p.font)

	return len(results), nil
}
