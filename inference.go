package coralcam

import (
	"fmt"

	"github.com/mattn/go-tflite"
	"gocv.io/x/gocv"
)

// Outputs holds the raw detection results of a single inference run.  The
// SSD postprocessing operator baked into the model emits four tensors:
// bounding box corners, class ids, confidence scores, and the number of
// detections.  Box corners are normalized [0,1] values in the order
// ymin, xmin, ymax, xmax relative to the model input tensor.
type Outputs struct {
	// Boxes is Count*4 normalized box corners
	Boxes []float32
	// ClassIDs is the class id of each detection, one per box
	ClassIDs []float32
	// Scores is the confidence score of each detection, one per box
	Scores []float32
	// Count is the number of detections emitted by the model
	Count int
	// InputAttr are the model input tensor attributes that produced these
	// results
	InputAttr InputAttribute
}

// index of each SSD postprocess output tensor
const (
	outBoxes = iota
	outClassIDs
	outScores
	outCount
)

// Inference runs the model on the given preprocessed Mat.  The Mat must
// already be resized to the model input tensor dimensions, see the
// preprocess package.  The call blocks until the accelerator returns.  A
// run with zero detections is a valid result, device faults wrap
// ErrInference and are fatal to the session.
func (r *Runtime) Inference(img gocv.Mat) (*Outputs, error) {

	// make mat continuous
	if !img.IsContinuous() {
		img = img.Clone()
		defer img.Close()
	}

	input := r.interp.GetInputTensor(0)

	if input.Type() != tflite.UInt8 {
		return nil, fmt.Errorf("%w: model input tensor type %v is not "+
			"uint8, only quantized models are supported",
			ErrInference, input.Type())
	}

	data, err := img.DataPtrUint8()

	if err != nil {
		return nil, fmt.Errorf("%w: error getting data pointer to Mat: %v",
			ErrInference, err)
	}

	if len(data) != len(input.UInt8s()) {
		return nil, fmt.Errorf("%w: frame size %d does not match input "+
			"tensor size %d", ErrInference, len(data), len(input.UInt8s()))
	}

	copy(input.UInt8s(), data)

	// run the model
	if status := r.interp.Invoke(); status != tflite.OK {
		return nil, fmt.Errorf("%w: interpreter invoke failed", ErrInference)
	}

	return r.getOutputs()
}

// getOutputs reads the four SSD postprocess output tensors into an
// Outputs value
func (r *Runtime) getOutputs() (*Outputs, error) {

	if r.interp.GetOutputTensorCount() < 4 {
		return nil, fmt.Errorf("%w: model has %d output tensors, SSD "+
			"postprocess models have 4", ErrInference,
			r.interp.GetOutputTensorCount())
	}

	out := &Outputs{
		InputAttr: r.inputAttr,
	}

	var err error

	if out.Boxes, err = tensorToFloat32(r.interp.GetOutputTensor(outBoxes)); err != nil {
		return nil, err
	}

	if out.ClassIDs, err = tensorToFloat32(r.interp.GetOutputTensor(outClassIDs)); err != nil {
		return nil, err
	}

	if out.Scores, err = tensorToFloat32(r.interp.GetOutputTensor(outScores)); err != nil {
		return nil, err
	}

	count, err := tensorToFloat32(r.interp.GetOutputTensor(outCount))

	if err != nil {
		return nil, err
	}

	if len(count) != 1 {
		return nil, fmt.Errorf("%w: unexpected detection count tensor size %d",
			ErrInference, len(count))
	}

	out.Count = int(count[0])

	// the count tensor can claim more detections than the fixed size box
	// tensors actually carry
	if out.Count > len(out.Scores) {
		out.Count = len(out.Scores)
	}

	if out.Count > len(out.ClassIDs) {
		out.Count = len(out.ClassIDs)
	}

	if out.Count*4 > len(out.Boxes) {
		out.Count = len(out.Boxes) / 4
	}

	return out, nil
}
