package postprocess

// ScaleFactors holds the per-axis scale factors between the camera's
// native frame size and the model input tensor size.  Computed once when
// the capture resolution is fixed and invariant for the session.
type ScaleFactors struct {
	X float32
	Y float32
}

// Rectifier maps detection bounding boxes from model input space back to
// native frame coordinates.  Because the frame was squashed with an
// independent per-axis resize, each axis is corrected with its own scale
// factor.  A uniform scale would misplace boxes on every non-square
// resolution, eg: 640x480 to a 300x300 model needs X=2.133 and Y=1.6.
type Rectifier struct {
	scale        ScaleFactors
	nativeWidth  float32
	nativeHeight float32
}

// NewRectifier returns a rectifier mapping boxes from the given model
// input dimensions to the given native frame dimensions
func NewRectifier(nativeWidth, nativeHeight, modelWidth, modelHeight int) *Rectifier {
	return &Rectifier{
		scale: ScaleFactors{
			X: float32(nativeWidth) / float32(modelWidth),
			Y: float32(nativeHeight) / float32(modelHeight),
		},
		nativeWidth:  float32(nativeWidth),
		nativeHeight: float32(nativeHeight),
	}
}

// Scale returns the per-axis scale factors in use
func (r *Rectifier) Scale() ScaleFactors {
	return r.scale
}

// Rectify maps each detection's bounding box into native frame coordinates
// by multiplying all four corners with the per-axis scale factors and
// clamping the result to the frame bounds.  A new slice is returned, the
// input detections are not modified.
func (r *Rectifier) Rectify(results []DetectResult) []DetectResult {

	rectified := make([]DetectResult, len(results))

	for i, res := range results {
		res.Box = r.RectifyBox(res.Box)
		rectified[i] = res
	}

	return rectified
}

// RectifyBox maps a single model space box into native frame coordinates
func (r *Rectifier) RectifyBox(box BoxRect) BoxRect {
	return BoxRect{
		Left:   clamp(box.Left*r.scale.X, 0, r.nativeWidth),
		Top:    clamp(box.Top*r.scale.Y, 0, r.nativeHeight),
		Right:  clamp(box.Right*r.scale.X, 0, r.nativeWidth),
		Bottom: clamp(box.Bottom*r.scale.Y, 0, r.nativeHeight),
	}
}
