package preprocess

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func TestSquashResize(t *testing.T) {

	tests := []struct {
		srcWidth   int
		srcHeight  int
		destWidth  int
		destHeight int
	}{
		{640, 480, 300, 300},
		{1280, 720, 300, 300},
		{1920, 1080, 300, 300},
		// square source, squash is a plain resize
		{300, 300, 300, 300},
	}

	for _, tc := range tests {
		img := gocv.NewMatWithSize(tc.srcHeight, tc.srcWidth, gocv.MatTypeCV8UC3)
		squashed := gocv.NewMat()

		squasher := NewSquasher(tc.srcWidth, tc.srcHeight, tc.destWidth, tc.destHeight)

		if err := squasher.SquashResize(img, &squashed); err != nil {
			t.Errorf("Test failed for src (%d, %d): %v", tc.srcWidth, tc.srcHeight, err)
		}

		if squashed.Cols() != tc.destWidth || squashed.Rows() != tc.destHeight {
			t.Errorf("Test failed for src (%d, %d): expected %dx%d output, got %dx%d",
				tc.srcWidth, tc.srcHeight, tc.destWidth, tc.destHeight,
				squashed.Cols(), squashed.Rows())
		}

		if squashed.Channels() != 3 {
			t.Errorf("Test failed for src (%d, %d): expected 3 channels, got %d",
				tc.srcWidth, tc.srcHeight, squashed.Channels())
		}

		// source frame must not be mutated
		if img.Cols() != tc.srcWidth || img.Rows() != tc.srcHeight {
			t.Errorf("Test failed for src (%d, %d): source frame was modified",
				tc.srcWidth, tc.srcHeight)
		}

		img.Close()
		squashed.Close()
		squasher.Close()
	}
}

func TestSquashResizeInvalidFrame(t *testing.T) {

	squasher := NewSquasher(640, 480, 300, 300)
	defer squasher.Close()

	dest := gocv.NewMat()
	defer dest.Close()

	// empty frame
	empty := gocv.NewMat()
	defer empty.Close()

	if err := squasher.SquashResize(empty, &dest); !errors.Is(err, ErrInvalidFrame) {
		t.Errorf("expected ErrInvalidFrame for empty frame, got %v", err)
	}

	// single channel frame
	gray := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC1)
	defer gray.Close()

	if err := squasher.SquashResize(gray, &dest); !errors.Is(err, ErrInvalidFrame) {
		t.Errorf("expected ErrInvalidFrame for single channel frame, got %v", err)
	}

	// resolution mismatch against the configured source size
	small := gocv.NewMatWithSize(240, 320, gocv.MatTypeCV8UC3)
	defer small.Close()

	if err := squasher.SquashResize(small, &dest); !errors.Is(err, ErrInvalidFrame) {
		t.Errorf("expected ErrInvalidFrame for mismatched frame, got %v", err)
	}
}
