// Package camera wraps the video capture device the detection pipeline
// reads frames from.
package camera

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// ErrCapture indicates the capture device failed mid-session, such as the
// camera being disconnected.  The fault is fatal to the session, a broken
// device handle cannot be recovered without reopening the device.
var ErrCapture = errors.New("camera capture failure")

// Resolution is a capture frame size in pixels
type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// standardResolutions are probed by SupportedResolutions to discover what
// the camera accepts
var standardResolutions = []Resolution{
	{640, 480},   // VGA
	{800, 600},   // SVGA
	{1024, 768},  // XGA
	{1280, 720},  // 720p HD
	{1920, 1080}, // 1080p Full HD
}

// Camera wraps an open capture device at a fixed resolution.  The
// resolution is set once at open and does not change for the session
// lifetime.
type Camera struct {
	cap    *gocv.VideoCapture
	device int
	width  int
	height int
}

// Open opens the given capture device and requests the given resolution.
// Pass zero width and height to keep the device default.  The device may
// adjust the requested resolution, Resolution() reports what was actually
// applied.
func Open(device, width, height int) (*Camera, error) {

	cap, err := gocv.OpenVideoCapture(device)

	if err != nil {
		return nil, fmt.Errorf("error opening capture device %d: %w", device, err)
	}

	c := &Camera{
		cap:    cap,
		device: device,
	}

	if width > 0 && height > 0 {
		cap.Set(gocv.VideoCaptureFrameWidth, float64(width))
		cap.Set(gocv.VideoCaptureFrameHeight, float64(height))
	}

	// read back the resolution the device actually applied
	c.width = int(cap.Get(gocv.VideoCaptureFrameWidth))
	c.height = int(cap.Get(gocv.VideoCaptureFrameHeight))

	if c.width == 0 || c.height == 0 {
		cap.Close()
		return nil, fmt.Errorf("capture device %d reports no resolution", device)
	}

	return c, nil
}

// Read reads the next frame from the camera into dest.  Frames are
// delivered strictly in capture order.  A read failure wraps ErrCapture
// and is fatal to the session.
func (c *Camera) Read(dest *gocv.Mat) error {

	if ok := c.cap.Read(dest); !ok {
		return fmt.Errorf("%w: error reading frame from device %d",
			ErrCapture, c.device)
	}

	if dest.Empty() {
		return fmt.Errorf("%w: device %d returned an empty frame",
			ErrCapture, c.device)
	}

	return nil
}

// Resolution returns the capture resolution the device applied at open
func (c *Camera) Resolution() Resolution {
	return Resolution{Width: c.width, Height: c.height}
}

// SupportedResolutions probes the standard resolution list against the
// device by setting each and reading back what the device accepted.  The
// device default is always first in the returned list.  The capture
// resolution is restored afterwards.
func (c *Camera) SupportedResolutions() []Resolution {

	current := c.Resolution()
	supported := []Resolution{current}

	for _, res := range standardResolutions {

		if res == current {
			continue
		}

		c.cap.Set(gocv.VideoCaptureFrameWidth, float64(res.Width))
		c.cap.Set(gocv.VideoCaptureFrameHeight, float64(res.Height))

		actualW := int(c.cap.Get(gocv.VideoCaptureFrameWidth))
		actualH := int(c.cap.Get(gocv.VideoCaptureFrameHeight))

		if actualW == res.Width && actualH == res.Height {
			supported = append(supported, res)
		}
	}

	// restore the session resolution
	c.cap.Set(gocv.VideoCaptureFrameWidth, float64(current.Width))
	c.cap.Set(gocv.VideoCaptureFrameHeight, float64(current.Height))

	return supported
}

// Close releases the capture device
func (c *Camera) Close() error {
	return c.cap.Close()
}
