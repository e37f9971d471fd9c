// Package preprocess resizes camera frames to the dimensions required by
// the model input tensor.
package preprocess

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ErrInvalidFrame indicates the source frame is incompatible with the model
// input tensor layout.  The error is recoverable, the caller skips the
// frame and continues the session.
var ErrInvalidFrame = errors.New("invalid frame for model input")

// Squasher resizes frames from the camera's native resolution to the model
// input tensor size using an independent per-axis resize.  No cropping or
// letterbox padding is performed, the frame geometry is deliberately
// distorted ("squashed") and detection boxes are corrected back to native
// coordinates afterwards by postprocess.Rectifier.  This trades geometric
// fidelity inside the input tensor for the simplest and fastest correct
// strategy versus letterboxing.
type Squasher struct {
	// srcWidth is the width of the source frame
	srcWidth int
	// srcHeight is the height of the source frame
	srcHeight int
	// destWidth is the width of the model input tensor
	destWidth int
	// destHeight is the height of the model input tensor
	destHeight int
	// tempMat is a Mat used during the colorspace conversion
	tempMat gocv.Mat
}

// NewSquasher returns a squasher that resizes frames of the given source
// resolution to the model input tensor dimensions
func NewSquasher(srcWidth, srcHeight, destWidth, destHeight int) *Squasher {
	return &Squasher{
		srcWidth:   srcWidth,
		srcHeight:  srcHeight,
		destWidth:  destWidth,
		destHeight: destHeight,
		tempMat:    gocv.NewMat(),
	}
}

// Close frees memory allocated during the resize process
func (s *Squasher) Close() error {
	return s.tempMat.Close()
}

// SquashResize converts the source frame from OpenCV's BGR ordering to the
// RGB ordering the model was trained on and squashes it to the model input
// tensor size.  The source Mat is not modified.
func (s *Squasher) SquashResize(src gocv.Mat, dest *gocv.Mat) error {

	if src.Empty() {
		return fmt.Errorf("%w: frame is empty", ErrInvalidFrame)
	}

	if src.Channels() != 3 || src.Type() != gocv.MatTypeCV8UC3 {
		return fmt.Errorf("%w: frame must be 3 channel 8-bit, got type %v",
			ErrInvalidFrame, src.Type())
	}

	if src.Cols() != s.srcWidth || src.Rows() != s.srcHeight {
		return fmt.Errorf("%w: frame is %dx%d, squasher configured for %dx%d",
			ErrInvalidFrame, src.Cols(), src.Rows(), s.srcWidth, s.srcHeight)
	}

	gocv.CvtColor(src, &s.tempMat, gocv.ColorBGRToRGB)

	gocv.Resize(s.tempMat, dest, image.Pt(s.destWidth, s.destHeight),
		0, 0, gocv.InterpolationArea)

	return nil
}

// SrcWidth returns the width of the source frame
func (s *Squasher) SrcWidth() int {
	return s.srcWidth
}

// SrcHeight returns the height of the source frame
func (s *Squasher) SrcHeight() int {
	return s.srcHeight
}
