package render

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Stats are the session metrics drawn on the fixed position overlay each
// frame.  All values are supplied by the caller, the renderer keeps no
// state between frames.
type Stats struct {
	// NativeWidth and NativeHeight are the camera capture resolution
	NativeWidth  int
	NativeHeight int
	// ModelWidth and ModelHeight are the model input tensor dimensions the
	// frame was squashed to
	ModelWidth  int
	ModelHeight int
	// FPS is the instantaneous frames per second from inter-frame timing
	FPS float64
	// Objects is the number of objects rendered on this frame
	Objects int
	// Threshold is the active confidence threshold
	Threshold float32
	// Debug indicates the low threshold debug mode is active
	Debug bool
}

// overlay layout, pixels from the frame's top left corner
const (
	overlayWidth  = 450
	overlayHeight = 110
	overlayLineH  = 25
	overlayTextX  = 10
)

// Overlay draws the metrics panel in the top left corner of the frame.  A
// frame with zero detections still gets the overlay so the output is
// always a valid annotated frame.
func Overlay(img *gocv.Mat, stats Stats, font Font) {

	mode := "DEFAULT"

	if stats.Debug {
		mode = "DEBUG"
	}

	camText := fmt.Sprintf("Camera (Output): %dx%d",
		stats.NativeWidth, stats.NativeHeight)
	tpuText := fmt.Sprintf("TPU (Input): %dx%d (Squashed)",
		stats.ModelWidth, stats.ModelHeight)
	fpsText := fmt.Sprintf("FPS: %.1f", stats.FPS)
	objText := fmt.Sprintf("Objects: %d", stats.Objects)
	thresholdText := fmt.Sprintf("Threshold: %.0f%% (%s)",
		stats.Threshold*100, mode)

	// black background panel the text is drawn on
	gocv.Rectangle(img, image.Rect(0, 0, overlayWidth, overlayHeight), Black, -1)

	putLine := func(text string, x, line int, f Font) {
		gocv.PutTextWithParams(img, text, image.Pt(x, line*overlayLineH-5),
			f.Face, f.Scale, f.Color, f.Thickness, f.LineType, false)
	}

	green := font
	green.Color = Green

	yellow := font
	yellow.Color = Yellow

	putLine(camText, overlayTextX, 1, green)
	putLine(tpuText, overlayTextX, 2, green)
	putLine(fpsText, overlayTextX, 3, font)
	putLine(objText, overlayTextX+140, 3, font)
	putLine(thresholdText, overlayTextX, 4, yellow)
}
