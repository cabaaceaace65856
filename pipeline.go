package retouch

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
)

// Inpainter fills the masked region of an image. img and mask have the same
// size; selected mask pixels are white. Implementations may return a result of
// a different size, it is rescaled when composed.
type Inpainter interface {
	Inpaint(ctx context.Context, img, mask *image.NRGBA) (*image.NRGBA, error)
}

// Loader is implemented by inpainters that need a lazy setup step, like loading
// model weights. progress receives values in the [0, 1] range.
type Loader interface {
	Load(ctx context.Context, progress func(float64)) error
}

// Stage identifies a step of the processing pipeline.
type Stage string

const (
	StagePrepareMask Stage = "prepare mask"
	StageLoadModel   Stage = "load model"
	StagePreprocess  Stage = "preprocess"
	StageInference   Stage = "inference"
	StagePostprocess Stage = "postprocess"
	StageComplete    Stage = "complete"
)

var stagePercent = map[Stage]int{
	StagePrepareMask: 10,
	StageLoadModel:   20,
	StagePreprocess:  50,
	StageInference:   70,
	StagePostprocess: 90,
	StageComplete:    100,
}

// Pipeline feeds the image and mask of an editor to an Inpainter and composes
// the result back at the native resolution. It only reads from the editor, so
// a failed run leaves the mask intact for another attempt.
type Pipeline struct {
	Inpainter Inpainter
	// ModelSize overrides the editor's model input size when positive.
	ModelSize int
	// Progress, when set, is called at the start of every stage.
	Progress func(stage Stage, percent int)
}

func (p *Pipeline) report(stage Stage, percent int) {
	logger.Debug().Str("stage", string(stage)).Int("percent", percent).Msg("processing")
	if p.Progress != nil {
		p.Progress(stage, percent)
	}
}

// Process runs the inpainting pipeline on the current editor session.
func (p *Pipeline) Process(ctx context.Context, e *Editor) (*image.NRGBA, error) {
	if p.Inpainter == nil {
		return nil, fmt.Errorf("no inpainter configured")
	}
	if !e.Initialized() {
		return nil, ErrNotInitialized
	}
	if !e.HasMask() {
		return nil, ErrEmptyMask
	}
	start := time.Now()

	size := p.ModelSize
	if size <= 0 {
		size = e.Options().ModelSize
	}

	p.report(StagePrepareMask, stagePercent[StagePrepareMask])
	mask, err := e.MaskForModel(size)
	if err != nil {
		return nil, fmt.Errorf("could not prepare mask: %w", err)
	}

	if l, ok := p.Inpainter.(Loader); ok {
		p.report(StageLoadModel, stagePercent[StageLoadModel])
		lo, hi := stagePercent[StageLoadModel], stagePercent[StagePreprocess]
		err := l.Load(ctx, func(v float64) {
			if p.Progress != nil {
				p.Progress(StageLoadModel, lo+int(v*float64(hi-lo)))
			}
		})
		if err != nil {
			return nil, fmt.Errorf("could not load the inpainting model: %w", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.report(StagePreprocess, stagePercent[StagePreprocess])
	src := e.Image()
	input := imaging.Resize(src, size, size, imaging.Linear)

	p.report(StageInference, stagePercent[StageInference])
	out, err := p.Inpainter.Inpaint(ctx, input, mask)
	if err != nil {
		return nil, fmt.Errorf("inpainting failed: %w", err)
	}
	if out == nil || out.Bounds().Empty() {
		return nil, fmt.Errorf("inpainting failed: empty result")
	}

	p.report(StagePostprocess, stagePercent[StagePostprocess])
	native, err := e.ExtractBinaryMask()
	if err != nil {
		return nil, err
	}
	result := ComposeWithMask(src, out, native)

	p.report(StageComplete, stagePercent[StageComplete])
	logger.Info().
		Dur("elapsed", time.Since(start)).
		Int("width", result.Bounds().Dx()).
		Int("height", result.Bounds().Dy()).
		Msg("image processed")

	return result, nil
}
