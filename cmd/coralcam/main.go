package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/craicek/go-coralcam"
	"github.com/craicek/go-coralcam/camera"
	"github.com/craicek/go-coralcam/pipeline"
	"github.com/craicek/go-coralcam/preprocess"
	"github.com/craicek/go-coralcam/render"
	"gocv.io/x/gocv"
	"golang.org/x/image/font"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	modelFile := flag.String("m", "models/mobilenet_ssd_v2_coco_quant_postprocess_edgetpu.tflite",
		"EdgeTPU compiled TFLite detection model file")
	labelFile := flag.String("l", "models/coco_labels.txt",
		"Labels file the model was trained on")
	device := flag.Int("c", 0, "Camera device number")
	width := flag.Int("x", 640, "Requested capture width, 0 for camera default")
	height := flag.Int("y", 480, "Requested capture height, 0 for camera default")
	threshold := flag.Float64("t", 0.7, "Confidence threshold")
	debugThreshold := flag.Float64("dt", 0.1, "Confidence threshold whilst debug mode is toggled on")
	ttfFont := flag.String("f", "", "Optional TTF font used to timestamp screenshots")
	screenshotDir := flag.String("o", ".", "Directory screenshots are saved to")
	useCPU := flag.Bool("cpu", false, "Run on CPU instead of the EdgeTPU, for development")
	listRes := flag.Bool("list", false, "List the camera's supported resolutions and exit")

	flag.Parse()

	if err := run(*modelFile, *labelFile, *ttfFont, *screenshotDir,
		*device, *width, *height,
		float32(*threshold), float32(*debugThreshold),
		*useCPU, *listRes); err != nil {
		log.Fatal(err)
	}
}

// run owns the session resources so they are released in order on every
// exit path, fatal errors included
func run(modelFile, labelFile, ttfFont, screenshotDir string,
	device, width, height int, threshold, debugThreshold float32,
	useCPU, listRes bool) error {

	// load in Model class names
	labels, err := coralcam.LoadLabels(labelFile)

	if err != nil {
		return fmt.Errorf("error loading model labels: %w", err)
	}

	log.Printf("Loaded %d labels from %s", len(labels), labelFile)

	acc := coralcam.AcceleratorEdgeTPU

	if useCPU {
		acc = coralcam.AcceleratorCPU
	}

	rt, err := coralcam.NewRuntime(modelFile, acc)

	if err != nil {
		return fmt.Errorf("error initializing runtime: %w", err)
	}

	defer rt.Close()

	attr := rt.InputAttr()
	log.Printf("Model input tensor dimensions %dx%d", attr.Width, attr.Height)

	cam, err := camera.Open(device, width, height)

	if err != nil {
		return fmt.Errorf("error opening camera: %w", err)
	}

	defer cam.Close()

	if listRes {
		for _, res := range cam.SupportedResolutions() {
			log.Printf("  %s", res)
		}
		return nil
	}

	res := cam.Resolution()
	log.Printf("Camera started at resolution %s", res)

	pipe := pipeline.New(rt, labels, res.Width, res.Height)
	defer pipe.Close()

	scale := pipe.Scale()
	log.Printf("Scale factor: X=%.3f, Y=%.3f", scale.X, scale.Y)

	var face font.Face

	if ttfFont != "" {
		face, err = render.LoadFontFace(ttfFont, 16)

		if err != nil {
			return fmt.Errorf("error loading screenshot font: %w", err)
		}
	}

	log.Println("Keys: 'q' quit, 'd' toggle debug threshold, 's' screenshot")

	return captureLoop(cam, pipe, face, screenshotDir, threshold, debugThreshold)
}

// captureLoop runs the frame cycle: capture, process, display, poll input.
// Frames are processed strictly in capture order with a single frame in
// flight.
func captureLoop(cam *camera.Camera, pipe *pipeline.Pipeline,
	face font.Face, screenshotDir string,
	threshold, debugThreshold float32) error {

	window := gocv.NewWindow("CoralCam - Live Detection")
	defer window.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	annotated := gocv.NewMat()
	defer annotated.Close()

	meter := pipeline.NewFPSMeter(30)
	debug := false

	for {
		meter.Tick()

		if err := cam.Read(&frame); err != nil {
			// camera fault, unwind for ordered release
			return err
		}

		active := threshold

		if debug {
			active = debugThreshold
		}

		_, err := pipe.Process(frame, &annotated, active, meter.FPS(), debug)

		if err != nil {
			if errors.Is(err, preprocess.ErrInvalidFrame) {
				// recoverable, skip this frame only
				log.Printf("Warning: skipping frame: %v", err)
				continue
			}

			// device fault, fatal to the session
			return err
		}

		window.IMShow(annotated)

		switch pipeline.DecodeKey(window.WaitKey(1)) {
		case pipeline.CmdQuit:
			log.Printf("Quit requested, shutting down, session average %.1f FPS",
				meter.Average())
			return nil

		case pipeline.CmdToggleDebug:
			debug = !debug
			log.Printf("Debug mode %v", debug)

		case pipeline.CmdScreenshot:
			file, err := pipeline.SaveScreenshot(annotated, screenshotDir, face)

			if err != nil {
				log.Printf("Warning: %v", err)
			} else {
				log.Printf("Screenshot saved: %s", file)
			}
		}
	}
}
