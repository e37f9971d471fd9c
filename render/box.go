// Package render draws detection boxes, labels, and the metrics overlay
// onto video frames.
package render

import (
	"fmt"
	"image"

	"github.com/craicek/go-coralcam"
	"github.com/craicek/go-coralcam/postprocess"
	"gocv.io/x/gocv"
)

// DetectionBoxes renders the bounding boxes around the objects detected.
// Box coordinates must already be rectified into the frame's coordinate
// space.  Class ids missing from the label map are tagged with the
// fallback label rather than skipped.
func DetectionBoxes(img *gocv.Mat, detectResults []postprocess.DetectResult,
	labels coralcam.LabelMap, font Font, lineThickness int) {

	for _, detResult := range detectResults {

		useClr := ClassColor(detResult.Class)

		boxLeft := int(detResult.Box.Left)
		boxTop := int(detResult.Box.Top)
		boxRight := int(detResult.Box.Right)
		boxBottom := int(detResult.Box.Bottom)

		// draw rectangle around detected object
		rect := image.Rect(boxLeft, boxTop, boxRight, boxBottom)
		gocv.Rectangle(img, rect, useClr, lineThickness)

		// create text for label
		text := fmt.Sprintf("%s %.1f%%", labels.Lookup(detResult.Class),
			detResult.Probability*100)
		textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

		// place the label above the box, or inside it when the box touches
		// the top edge of the frame
		tagTop := boxTop - textSize.Y - font.TopPad - font.BottomPad

		if tagTop < 0 {
			tagTop = boxTop + lineThickness
		}

		tagRect := image.Rect(boxLeft, tagTop,
			boxLeft+textSize.X+font.LeftPad+font.RightPad,
			tagTop+textSize.Y+font.TopPad+font.BottomPad)

		textPos := image.Pt(boxLeft+font.LeftPad,
			tagTop+textSize.Y+font.TopPad)

		// draw box the text gets written on
		gocv.Rectangle(img, tagRect, useClr, -1)

		// Draw the label over box
		gocv.PutTextWithParams(img, text, textPos,
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)
	}
}
