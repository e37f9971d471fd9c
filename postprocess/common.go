// Package postprocess decodes raw model outputs into detection results and
// rectifies their bounding boxes back into native frame coordinates.
package postprocess

// clamp restricts the value to be within the range min and max
func clamp(val, min, max float32) float32 {

	if val < min {
		return min
	}

	if val > max {
		return max
	}

	return val
}
