package coralcam

import (
	"fmt"

	"github.com/mattn/go-tflite"
	"github.com/x448/float16"
)

// tensorToFloat32 copies an output tensor's data out as float32.  The SSD
// postprocess operator emits float32 tensors, but quantized uint8 and fp16
// outputs are converted too so models without the float postprocess
// variant still decode.
func tensorToFloat32(t *tflite.Tensor) ([]float32, error) {

	if t == nil {
		return nil, fmt.Errorf("%w: missing output tensor", ErrInference)
	}

	switch t.Type() {
	case tflite.Float32:
		// copy out of the C tensor buffer so results outlive the next invoke
		buf := make([]float32, len(t.Float32s()))
		copy(buf, t.Float32s())
		return buf, nil

	case tflite.UInt8:
		qp := t.QuantizationParams()
		src := t.UInt8s()
		buf := make([]float32, len(src))

		for i, v := range src {
			buf[i] = deqntAffineToF32(v, qp.ZeroPoint, float32(qp.Scale))
		}

		return buf, nil

	case tflite.Float16:
		return float16TensorToFloat32(t)

	default:
		return nil, fmt.Errorf("%w: unsupported output tensor type %v",
			ErrInference, t.Type())
	}
}

// deqntAffineToF32 converts a quantized uint8 value back to a float32 using
// the tensor's zero point and scale
func deqntAffineToF32(qnt uint8, zp int, scale float32) float32 {
	return (float32(qnt) - float32(zp)) * scale
}

// float16TensorToFloat32 converts an fp16 output tensor to float32 as Go has
// no native support for FP16
func float16TensorToFloat32(t *tflite.Tensor) ([]float32, error) {

	raw := make([]uint16, int(t.ByteSize())/2)

	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: fp16 output tensor is empty", ErrInference)
	}

	if status := t.CopyToBuffer(&raw[0]); status != tflite.OK {
		return nil, fmt.Errorf("%w: error copying fp16 tensor buffer",
			ErrInference)
	}

	return float16BitsToFloat32(raw), nil
}

// float16BitsToFloat32 converts raw fp16 bit patterns to float32
func float16BitsToFloat32(raw []uint16) []float32 {

	buf := make([]float32, len(raw))

	for i, v := range raw {
		buf[i] = float16.Frombits(v).Float32()
	}

	return buf
}
