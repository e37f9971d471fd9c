package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/craicek/go-coralcam/render"
	"gocv.io/x/gocv"
	"golang.org/x/image/font"
)

// SaveScreenshot writes the annotated frame to dir as a JPEG named with
// the capture time.  When a font face is provided the timestamp is also
// stamped onto the image.  Returns the path written.
func SaveScreenshot(img gocv.Mat, dir string, face font.Face) (string, error) {

	now := time.Now()

	if face != nil {
		// stamp a copy so the display frame is left untouched
		stamped := gocv.NewMat()
		defer stamped.Close()

		img.CopyTo(&stamped)

		if err := render.StampTime(&stamped, face, now); err != nil {
			return "", fmt.Errorf("error stamping screenshot: %w", err)
		}

		img = stamped
	}

	file := filepath.Join(dir,
		fmt.Sprintf("screenshot_%s.jpg", now.Format("20060102_150405")))

	if ok := gocv.IMWrite(file, img); !ok {
		return "", fmt.Errorf("error writing screenshot to %s", file)
	}

	return file, nil
}
