package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"time"

	"gocv.io/x/gocv"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// LoadFontFace loads a TTF font from disk and returns a face at the given
// point size, used for stamping text that the Hershey fonts render poorly
func LoadFontFace(fontPath string, size float64) (font.Face, error) {

	fontBytes, err := os.ReadFile(fontPath)

	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	f, err := opentype.Parse(fontBytes)

	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}

	return face, nil
}

// StampTime writes the capture timestamp in the bottom left corner of the
// frame using the given font face.  Used when saving screenshots.
func StampTime(img *gocv.Mat, face font.Face, ts time.Time) error {

	text := ts.Format("2006-01-02 15:04:05")
	x := 10
	y := img.Rows() - 10

	// draw the text on a transparent image the size of the frame
	rgba := image.NewRGBA(image.Rect(0, 0, img.Cols(), img.Rows()))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(color.RGBA{0, 0, 0, 0}),
		image.Point{}, draw.Src)

	dr := &font.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(White),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(y * 64),
		},
	}
	dr.DrawString(text)

	// convert image.RGBA to gocv.Mat and blend over the frame
	stamp, err := gocv.NewMatFromBytes(rgba.Bounds().Dy(), rgba.Bounds().Dx(),
		gocv.MatTypeCV8UC4, rgba.Pix)

	if err != nil || stamp.Empty() {
		return fmt.Errorf("error creating Mat from RGBA")
	}

	defer stamp.Close()

	gocv.CvtColor(stamp, &stamp, gocv.ColorRGBAToBGR)
	gocv.AddWeighted(*img, 1.0, stamp, 1.0, 0, img)

	return nil
}
