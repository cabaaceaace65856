package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/esimov/retouch"
	"github.com/esimov/retouch/detect"
	"github.com/esimov/retouch/gui"
	"github.com/esimov/retouch/utils"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// validExtensions lists the supported image file extensions.
var validExtensions = []string{".jpg", ".jpeg", ".png", ".bmp"}

// result holds the outcome of processing a single file.
type result struct {
	path string
	err  error
}

// runner paints the mask of every input image and inpaints it.
type runner struct {
	opts       retouch.Options
	newPainter func() retouch.Inpainter
	detectors  []detect.Detector
	script     *retouch.Script
	maskPath   string
	preview    bool
	previewOut string
	maskOut    string
	pad        int
	workers    int

	// detectMu serializes the detectors, the OCR client is not safe for concurrent use.
	detectMu sync.Mutex
	spinner  *utils.Spinner
}

// execute processes a single file, a pipe or a whole directory and returns the exit code.
func (r *runner) execute(ctx context.Context, src, dst string) int {
	r.spinner = utils.NewSpinner(statusLine("⇢ inpainting the masked region..."), time.Millisecond*80, true)
	defer r.spinner.RestoreCursor()

	now := time.Now()

	if utils.IsValidUrl(src) {
		tmp, err := utils.DownloadImage(ctx, src)
		if tmp != nil {
			defer os.Remove(tmp.Name())
			tmp.Close()
		}
		if err != nil {
			log.Error().Err(err).Msg(utils.DecorateText("failed to load the source image", utils.ErrorMessage))
			return 1
		}
		src = tmp.Name()
	}

	var (
		fs  os.FileInfo
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if src == pipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(src)
	}
	if err != nil {
		log.Error().Err(err).Msg(utils.DecorateText("failed to load the source image", utils.ErrorMessage))
		return 1
	}

	failed := 0
	switch mode := fs.Mode(); {
	case mode.IsDir():
		if err := os.MkdirAll(dst, 0755); err != nil {
			log.Error().Err(err).Msg(utils.DecorateText("unable to create the destination directory", utils.ErrorMessage))
			return 1
		}
		if r.preview {
			log.Warn().Msg("the interactive editor is not available in directory mode")
			r.preview = false
		}
		// Limit the concurrently running workers to maxWorkers.
		if r.workers <= 0 || r.workers > maxWorkers {
			r.workers = maxWorkers
		}

		done := make(chan struct{})
		defer close(done)

		paths, errc := walkDir(done, src, validExtensions)
		ch := make(chan result)

		var wg sync.WaitGroup
		wg.Add(r.workers)
		for i := 0; i < r.workers; i++ {
			go func() {
				defer wg.Done()
				r.consumer(ctx, dst, paths, done, ch)
			}()
		}

		// Close the channel after the values are consumed.
		go func() {
			defer close(ch)
			wg.Wait()
		}()

		for res := range ch {
			if res.err != nil {
				failed++
			}
			printStatus(res.path, res.err)
		}
		if err := <-errc; err != nil {
			log.Error().Err(err).Msg(utils.DecorateText("directory walk failed", utils.ErrorMessage))
			failed++
		}

	case mode.IsRegular() || mode&os.ModeNamedPipe != 0:
		ext := strings.ToLower(filepath.Ext(dst))
		if !isValidExtension(ext, validExtensions) && dst != pipeName {
			log.Error().Msgf(utils.DecorateText("%v file type not supported", utils.ErrorMessage), ext)
			return 1
		}
		r.spinner.Start()
		err := r.process(ctx, src, dst)
		r.stopSpinner(err)
		if err != nil {
			failed++
		}
		printStatus(dst, err)

	default:
		log.Error().Str("src", src).Msg(utils.DecorateText("unsupported source", utils.ErrorMessage))
		return 1
	}

	if failed > 0 {
		return 1
	}
	log.Info().
		Int64("duration(ms)", time.Since(now).Milliseconds()).
		Msg("execution time: " + utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))

	return 0
}

// consumer reads the path names from the paths channel and processes the
// images, then sends the results on the res channel.
func (r *runner) consumer(
	ctx context.Context,
	dest string,
	paths <-chan string,
	done <-chan struct{},
	res chan<- result,
) {
	for src := range paths {
		dst := filepath.Join(dest, filepath.Base(src))
		err := r.process(ctx, src, dst)

		select {
		case <-done:
			return
		case res <- result{path: src, err: err}:
		}
	}
}

// process runs the whole editing pipeline over one image.
func (r *runner) process(ctx context.Context, in, out string) error {
	img, err := decode(in)
	if err != nil {
		return err
	}

	ed := retouch.New(r.opts)
	defer ed.Dispose()

	if err := r.paintMask(ctx, ed, img); err != nil {
		return err
	}
	if !ed.HasMask() {
		return retouch.ErrEmptyMask
	}

	if r.previewOut != "" {
		flat, err := ed.Flatten()
		if err != nil {
			return err
		}
		if err := saveImage(outputName(r.previewOut, in), flat); err != nil {
			return err
		}
	}
	if r.maskOut != "" {
		mask, err := ed.ExtractBinaryMask()
		if err != nil {
			return err
		}
		if err := saveImage(outputName(r.maskOut, in), mask); err != nil {
			return err
		}
	}

	p := &retouch.Pipeline{
		Inpainter: r.newPainter(),
		Progress: func(stage retouch.Stage, percent int) {
			r.spinner.SetMessage(statusLine(fmt.Sprintf("⇢ %s %d%%", stage, percent)))
		},
	}
	res, err := p.Process(ctx, ed)
	if err != nil {
		return err
	}
	return write(out, res)
}

// paintMask initializes ed on img and paints the mask from every configured source.
func (r *runner) paintMask(ctx context.Context, ed *retouch.Editor, img image.Image) error {
	b := img.Bounds()
	h := retouch.NewHeadless(float64(b.Dx()), float64(b.Dy()))
	if err := ed.Initialize(img, h); err != nil {
		return err
	}

	if r.maskPath != "" {
		m, err := retouch.DecodeImage(r.maskPath)
		if err != nil {
			return err
		}
		if err := ed.ImportMask(m); err != nil {
			return err
		}
	}
	if r.script != nil {
		if err := r.script.Replay(ed, h); err != nil {
			return err
		}
	}
	if len(r.detectors) > 0 {
		r.detectMu.Lock()
		n, err := detect.Run(ctx, ed, r.pad, r.detectors...)
		r.detectMu.Unlock()
		if err != nil {
			return err
		}
		log.Debug().Int("regions", n).Msg("detected regions masked")
	}

	if r.preview {
		var seed image.Image
		if ed.HasMask() {
			m, err := ed.ExtractBinaryMask()
			if err != nil {
				return err
			}
			seed = m
		}

		r.spinner.Stop()
		w := gui.NewWindow(ed, "retouch")
		if err := w.Run(img, seed); err != nil {
			return err
		}
		r.spinner.Start()
	}
	return nil
}

func (r *runner) stopSpinner(err error) {
	if err != nil {
		r.spinner.StopMsg = statusLine(utils.DecorateText("inpainting failed ✘", utils.ErrorMessage))
	} else {
		r.spinner.StopMsg = statusLine(utils.DecorateText("the image has been inpainted successfully ✔", utils.SuccessMessage))
	}
	r.spinner.Stop()
}

// decode reads the source image from a file or the standard input.
func decode(in string) (image.Image, error) {
	if in != pipeName {
		return retouch.DecodeImage(in)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("`-` should be used with a pipe for stdin")
	}
	img, _, err := image.Decode(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("could not decode the piped image: %w", err)
	}
	return img, nil
}

// write encodes the result into a file or the standard output.
func write(out string, img image.Image) error {
	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		return retouch.EncodeFormat(os.Stdout, img, ".png")
	}
	return saveImage(out, img)
}

func saveImage(path string, img image.Image) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	return retouch.EncodeImage(f, img)
}

// outputName returns path unchanged when it names a file, or the base name of
// src joined to it when path is a directory.
func outputName(path, src string) string {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		name := "stdin.png"
		if src != pipeName {
			name = filepath.Base(src)
		}
		return filepath.Join(path, name)
	}
	return path
}

func statusLine(msg string) string {
	return fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ RETOUCH", utils.StatusMessage),
		utils.DecorateText(msg, utils.DefaultMessage),
	)
}

// printStatus displays the relevant information about the processed file.
func printStatus(fname string, err error) {
	if err != nil {
		log.Error().Err(err).Str("file", fname).Msg(utils.DecorateText("error inpainting the image", utils.ErrorMessage))
		return
	}
	if fname != pipeName {
		log.Info().Str("dst", fname).Msg("the image has been saved as: " + utils.DecorateText(filepath.Base(fname), utils.SuccessMessage))
	}
}

// walkDir starts a goroutine to walk the specified directory tree in recursive manner
// and send the path of each supported image file on the string channel.
// It sends the result of the walk on the error channel.
// It terminates in case done channel is closed.
func walkDir(
	done <-chan struct{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.Mode().IsRegular() {
				return nil
			}
			if !isValidExtension(strings.ToLower(filepath.Ext(info.Name())), srcExts) {
				return nil
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}
