package postprocess

import (
	"testing"
)

func TestRectifyExactLinearScaling(t *testing.T) {

	// 640x480 against a 300x300 model gives different per-axis factors,
	// X=2.133.. and Y=1.6, so a uniform scale would misplace the box
	r := NewRectifier(640, 480, 300, 300)

	scaleX := float32(640) / float32(300)
	scaleY := float32(480) / float32(300)

	if r.Scale().X != scaleX || r.Scale().Y != scaleY {
		t.Fatalf("expected scale factors (%f, %f), got (%f, %f)",
			scaleX, scaleY, r.Scale().X, r.Scale().Y)
	}

	box := BoxRect{Left: 50, Top: 100, Right: 150, Bottom: 200}
	got := r.RectifyBox(box)

	expected := BoxRect{
		Left:   50 * scaleX,
		Top:    100 * scaleY,
		Right:  150 * scaleX,
		Bottom: 200 * scaleY,
	}

	if got != expected {
		t.Errorf("expected rectified box %+v, got %+v", expected, got)
	}
}

func TestRectifySquareResolutionIsIdentity(t *testing.T) {

	r := NewRectifier(300, 300, 300, 300)

	if r.Scale().X != 1.0 || r.Scale().Y != 1.0 {
		t.Fatalf("expected unit scale factors, got (%f, %f)",
			r.Scale().X, r.Scale().Y)
	}

	box := BoxRect{Left: 12.5, Top: 0, Right: 299, Bottom: 300}

	if got := r.RectifyBox(box); got != box {
		t.Errorf("expected identity rectification, got %+v", got)
	}
}

func TestRectifyClampsToFrameBounds(t *testing.T) {

	tests := []struct {
		nativeWidth  int
		nativeHeight int
		box          BoxRect
	}{
		// corners beyond the model input range
		{640, 480, BoxRect{Left: -10, Top: -5, Right: 310, Bottom: 305}},
		{1280, 720, BoxRect{Left: 0, Top: 0, Right: 300, Bottom: 300}},
		{1920, 1080, BoxRect{Left: 299.5, Top: 299.5, Right: 400, Bottom: 400}},
		{800, 600, BoxRect{Left: 150, Top: 75, Right: 225, Bottom: 280}},
	}

	for _, tc := range tests {
		r := NewRectifier(tc.nativeWidth, tc.nativeHeight, 300, 300)
		got := r.RectifyBox(tc.box)

		w := float32(tc.nativeWidth)
		h := float32(tc.nativeHeight)

		for _, x := range []float32{got.Left, got.Right} {
			if x < 0 || x > w {
				t.Errorf("native (%d, %d): x coordinate %f outside [0, %f]",
					tc.nativeWidth, tc.nativeHeight, x, w)
			}
		}

		for _, y := range []float32{got.Top, got.Bottom} {
			if y < 0 || y > h {
				t.Errorf("native (%d, %d): y coordinate %f outside [0, %f]",
					tc.nativeWidth, tc.nativeHeight, y, h)
			}
		}
	}
}

func TestRectifyIsDeterministic(t *testing.T) {

	r := NewRectifier(1280, 720, 300, 300)

	results := []DetectResult{
		{Class: 0, Box: BoxRect{Left: 20, Top: 10, Right: 120, Bottom: 180}, Probability: 0.9},
		{Class: 17, Box: BoxRect{Left: 5, Top: 250, Right: 60, Bottom: 299}, Probability: 0.6},
	}

	first := r.Rectify(results)
	second := r.Rectify(results)

	if len(first) != len(second) {
		t.Fatalf("expected both passes to rectify %d results", len(results))
	}

	for i := range first {
		if first[i].Box != second[i].Box {
			t.Errorf("result %d: box placement differs between passes, %+v vs %+v",
				i, first[i].Box, second[i].Box)
		}
	}

	// input detections must not be modified
	if results[0].Box.Left != 20 || results[1].Box.Bottom != 299 {
		t.Error("Rectify modified the input detections")
	}
}
