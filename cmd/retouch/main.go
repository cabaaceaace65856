package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"gioui.org/app"
	"github.com/esimov/retouch"
	"github.com/esimov/retouch/detect"
	"github.com/esimov/retouch/utils"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

const helpBanner = `
┬─┐┌─┐┌┬┐┌─┐┬ ┬┌─┐┬ ┬
├┬┘├┤  │ │ ││ ││  ├─┤
┴└─└─┘ ┴ └─┘└─┘└─┘┴ ┴

Mask based image inpainting.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", pipeName, "Source image, directory, URL or - for stdin")
	destination = flag.String("out", pipeName, "Destination image, directory or - for stdout")
	configFile  = flag.String("config", "", "YAML editor configuration")
	maskFile    = flag.String("mask", "", "Mask image to import (opaque pixels of a transparent mask, white pixels of an opaque one)")
	strokes     = flag.String("strokes", "", "YAML stroke script painted over the image")
	faceDetect  = flag.Bool("face", false, "Mask the detected faces")
	faceAngle   = flag.Float64("angle", 0.0, "Plane rotated faces angle")
	cascade     = flag.String("cc", "", "Cascade classifier")
	textDetect  = flag.Bool("text", false, "Mask the detected text (requires the ocr build tag)")
	padding     = flag.Int("pad", 8, "Padding around the detected regions")
	backend     = flag.String("backend", "diffuse", "Inpainting backend")
	modelSize   = flag.Int("size", 0, "Model input size (defaults to the configured model size)")
	preview     = flag.Bool("preview", false, "Paint the mask in an interactive window")
	previewOut  = flag.String("preview-out", "", "Save the image with the mask overlay")
	maskOut     = flag.String("mask-out", "", "Save the binary mask")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
	debug       = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	setupLogger(*debug)

	r, err := newRunner()
	if err != nil {
		log.Fatal().Err(err).Msg(utils.DecorateText("invalid arguments", utils.ErrorMessage))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !*preview {
		os.Exit(r.execute(ctx, *source, *destination))
	}

	// The Gio event loop has to own the main goroutine.
	go func() {
		code := r.execute(ctx, *source, *destination)
		os.Exit(code)
	}()
	app.Main()
}

func setupLogger(debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	retouch.SetLogger(log.Logger.With().Str("pkg", "retouch").Logger())
}

// newRunner builds the processing setup from the command line flags.
func newRunner() (*runner, error) {
	opts := retouch.DefaultOptions()
	if *configFile != "" {
		var err error
		if opts, err = retouch.LoadOptions(*configFile); err != nil {
			return nil, err
		}
	}
	if *modelSize > 0 {
		opts.ModelSize = *modelSize
	}

	newInpainter, ok := backends[*backend]
	if !ok {
		return nil, fmt.Errorf("unknown inpainting backend %q", *backend)
	}

	r := &runner{
		opts:       opts.Normalize(),
		newPainter: newInpainter,
		maskPath:   *maskFile,
		preview:    *preview,
		previewOut: *previewOut,
		maskOut:    *maskOut,
		pad:        *padding,
		workers:    *workers,
	}

	if *strokes != "" {
		s, err := retouch.LoadScript(*strokes)
		if err != nil {
			return nil, err
		}
		r.script = s
	}

	if *faceDetect {
		if len(*cascade) == 0 {
			return nil, errors.New("please specify a face classifier in case you are using the -face flag")
		}
		fd, err := detect.LoadFaceDetector(*cascade)
		if err != nil {
			return nil, err
		}
		fd.Angle = *faceAngle
		r.detectors = append(r.detectors, fd)
	}
	if *textDetect {
		td, err := newTextDetector()
		if err != nil {
			return nil, err
		}
		r.detectors = append(r.detectors, td)
	}

	if r.maskPath == "" && r.script == nil && len(r.detectors) == 0 && !r.preview {
		return nil, errors.New("nothing to mask: use -mask, -strokes, -face, -text or -preview")
	}
	return r, nil
}
