// Package detect finds image regions worth masking, like faces or text
// watermarks, and seeds the editor mask with them.
package detect

import (
	"context"
	"image"
	"math"

	"github.com/esimov/retouch"
)

// Region is a detected area in image coordinates.
type Region struct {
	Bounds image.Rectangle
	Score  float32
	Label  string
}

// Detector finds regions in an image.
type Detector interface {
	Detect(ctx context.Context, img image.Image) ([]Region, error)
}

// Seed paints every region into the editor mask with the brush tool. Each
// region becomes a capsule along its longer side, wide enough to cover the
// corners of the bounding box plus pad pixels.
func Seed(ed *retouch.Editor, regions []Region, pad int) error {
	for _, r := range regions {
		b := r.Bounds.Canon()
		if b.Empty() {
			continue
		}
		w, h := float64(b.Dx()), float64(b.Dy())
		short := math.Min(w, h)
		diameter := short*math.Sqrt2 + 2*float64(pad)

		cx := float64(b.Min.X) + w/2
		cy := float64(b.Min.Y) + h/2
		from, to := retouch.Point{X: cx, Y: cy}, retouch.Point{X: cx, Y: cy}
		if w >= h {
			from.X, to.X = float64(b.Min.X)+short/2, float64(b.Max.X)-short/2
		} else {
			from.Y, to.Y = float64(b.Min.Y)+short/2, float64(b.Max.Y)-short/2
		}

		if err := ed.Stroke(retouch.Brush, diameter, from, to); err != nil {
			return err
		}
		retouch.Logger().Debug().
			Str("label", r.Label).
			Str("bounds", b.String()).
			Float32("score", r.Score).
			Msg("region masked")
	}
	return nil
}

// Run detects regions with every detector and seeds the editor mask with them.
// It returns the number of masked regions.
func Run(ctx context.Context, ed *retouch.Editor, pad int, detectors ...Detector) (int, error) {
	n := 0
	for _, d := range detectors {
		regions, err := d.Detect(ctx, ed.Image())
		if err != nil {
			return n, err
		}
		if err := Seed(ed, regions, pad); err != nil {
			return n, err
		}
		n += len(regions)
	}
	return n, nil
}
