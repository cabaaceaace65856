package retouch

import (
	"context"
	"image"

	"github.com/disintegration/imaging"
)

// Diffuser is a dependency free Inpainter. It fills the masked region from
// the outside in: each pass blurs the known pixels with a normalized stack blur
// and adopts the result for hole pixels that received enough support.
type Diffuser struct {
	// Radius is the initial blur radius. It doubles whenever a pass makes no progress.
	Radius int
	// MaxPasses bounds the number of blur passes.
	MaxPasses int
}

const (
	defaultDiffuseRadius = 4
	defaultDiffusePasses = 64
	maxDiffuseRadius     = 254
	// minSupport is the blurred alpha a hole pixel needs before it is filled.
	minSupport = 48
)

// Inpaint fills the pixels selected by mask (white) in img.
func (d Diffuser) Inpaint(ctx context.Context, img, mask *image.NRGBA) (*image.NRGBA, error) {
	radius, passes := d.Radius, d.MaxPasses
	if radius <= 0 {
		radius = defaultDiffuseRadius
	}
	if passes <= 0 {
		passes = defaultDiffusePasses
	}

	work := imaging.Clone(img)
	w, h := work.Bounds().Dx(), work.Bounds().Dy()
	if mask.Bounds().Dx() != w || mask.Bounds().Dy() != h {
		mask = imaging.Resize(mask, w, h, imaging.NearestNeighbor)
	}
	mb := mask.Bounds()

	// Known pixels are opaque, holes are fully transparent black.
	var holes []int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := work.PixOffset(x, y)
			if mask.NRGBAAt(mb.Min.X+x, mb.Min.Y+y).R > 127 {
				work.Pix[i+0], work.Pix[i+1], work.Pix[i+2], work.Pix[i+3] = 0, 0, 0, 0
				holes = append(holes, i)
				continue
			}
			work.Pix[i+3] = 0xff
		}
	}
	// Without any known pixel there is nothing to diffuse from.
	if len(holes) == w*h {
		holes = nil
	}

	for pass := 0; len(holes) > 0 && pass < passes; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		blurred := Stackblur(imaging.Clone(work), radius)

		remaining := holes[:0]
		for _, i := range holes {
			a := uint32(blurred.Pix[i+3])
			if a < minSupport {
				remaining = append(remaining, i)
				continue
			}
			for c := 0; c < 3; c++ {
				work.Pix[i+c] = uint8(min(255, (uint32(blurred.Pix[i+c])*255+a/2)/a))
			}
			work.Pix[i+3] = 0xff
		}
		if len(remaining) == len(holes) {
			radius = min(radius*2, maxDiffuseRadius)
		}
		holes = remaining
	}

	logger.Debug().Int("unfilled", len(holes)).Msg("diffusion finished")
	for i := 3; i < len(work.Pix); i += 4 {
		work.Pix[i] = 0xff
	}
	return work, nil
}
