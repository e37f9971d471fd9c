package coralcam

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-tflite"
	"github.com/mattn/go-tflite/delegates/edgetpu"
)

// Accelerator selects the device the model is run on
type Accelerator int

const (
	// AcceleratorEdgeTPU runs the model on the first Coral EdgeTPU device
	// found.  The model file must be compiled for the EdgeTPU
	AcceleratorEdgeTPU Accelerator = iota
	// AcceleratorCPU runs the model on the CPU using the TFLite interpreter
	// only.  Used for development on hosts without a Coral device attached
	AcceleratorCPU
)

// ErrInference indicates a device level fault whilst running the model,
// such as the EdgeTPU being disconnected.  These faults do not self-heal
// within a session so the caller must shut down cleanly rather than retry
var ErrInference = errors.New("inference device fault")

// Runtime defines the TFLite interpreter instance the model runs on
type Runtime struct {
	// model is the loaded TFLite flatbuffer model
	model *tflite.Model
	// options holds interpreter settings and the EdgeTPU delegate
	options *tflite.InterpreterOptions
	// interp is the TFLite interpreter the model is bound to
	interp *tflite.Interpreter
	// inputAttr caches the Input tensor attributes of the Model
	inputAttr InputAttribute
}

// InputAttribute of trained model input tensor
type InputAttribute struct {
	Width   int
	Height  int
	Channel int
}

// NewRuntime returns a run time instance for the given model file.  Provide
// the full path and filename of the compiled TFLite model file to run and
// the Accelerator to run it on.
func NewRuntime(modelFile string, acc Accelerator) (*Runtime, error) {

	// check file exists in Go, before passing to C
	info, err := os.Stat(modelFile)

	if err != nil {
		return nil, fmt.Errorf("model file does not exist at %s, error: %w",
			modelFile, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("model file is a directory")
	}

	r := &Runtime{}

	r.model = tflite.NewModelFromFile(modelFile)

	if r.model == nil {
		return nil, fmt.Errorf("error loading model file %s", modelFile)
	}

	r.options = tflite.NewInterpreterOptions()
	r.options.SetNumThread(4)

	if acc == AcceleratorEdgeTPU {
		if err := r.attachEdgeTPU(); err != nil {
			r.Close()
			return nil, err
		}
	}

	r.interp = tflite.NewInterpreter(r.model, r.options)

	if r.interp == nil {
		r.Close()
		return nil, fmt.Errorf("error creating TFLite interpreter")
	}

	if status := r.interp.AllocateTensors(); status != tflite.OK {
		r.Close()
		return nil, fmt.Errorf("error allocating model tensors")
	}

	// cache Input tensor attributes, quantized detection models take a
	// single NHWC input
	input := r.interp.GetInputTensor(0)

	if input == nil || input.NumDims() != 4 {
		r.Close()
		return nil, fmt.Errorf("model input tensor is not NHWC")
	}

	r.inputAttr = InputAttribute{
		Height:  input.Dim(1),
		Width:   input.Dim(2),
		Channel: input.Dim(3),
	}

	return r, nil
}

// attachEdgeTPU finds the first EdgeTPU device on the host and adds its
// delegate to the interpreter options
func (r *Runtime) attachEdgeTPU() error {

	devices, err := edgetpu.DeviceList()

	if err != nil {
		return fmt.Errorf("error querying EdgeTPU devices: %w", err)
	}

	if len(devices) == 0 {
		return fmt.Errorf("no EdgeTPU device found, check the Coral " +
			"accelerator is connected and udev permissions are set")
	}

	delegate := edgetpu.New(devices[0])

	if delegate == nil {
		return fmt.Errorf("error creating EdgeTPU delegate for device %s",
			devices[0].Path)
	}

	r.options.AddDelegate(delegate)

	return nil
}

// InputAttr returns the loaded model's input tensor attributes
func (r *Runtime) InputAttr() InputAttribute {
	return r.inputAttr
}

// Close unloads the model and destroys the interpreter releasing all
// C resources
func (r *Runtime) Close() error {

	if r.interp != nil {
		r.interp.Delete()
	}

	if r.options != nil {
		r.options.Delete()
	}

	if r.model != nil {
		r.model.Delete()
	}

	return nil
}
