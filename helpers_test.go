package retouch

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

// newTestEditor returns an editor initialized with a gray image of the given
// size inside a headless container of the given size.
func newTestEditor(t *testing.T, w, h int, cw, ch float64) (*Editor, *Headless) {
	t.Helper()

	ed := New(DefaultOptions())
	hl := NewHeadless(cw, ch)
	require.NoError(t, ed.Initialize(solidImage(w, h, color.NRGBA{R: 90, G: 90, B: 90, A: 255}), hl))
	t.Cleanup(ed.Dispose)

	return ed, hl
}

type eventRecorder struct {
	masks int
	zooms []float64
}

func (r *eventRecorder) Notify(ev Event) {
	switch ev := ev.(type) {
	case MaskChanged:
		r.masks++
	case ZoomChanged:
		r.zooms = append(r.zooms, ev.Zoom)
	}
}

func isBinary(img *image.NRGBA) bool {
	for i := 0; i < len(img.Pix); i += 4 {
		p := img.Pix[i : i+4]
		white := p[0] == 0xff && p[1] == 0xff && p[2] == 0xff
		black := p[0] == 0 && p[1] == 0 && p[2] == 0
		if p[3] != 0xff || (!white && !black) {
			return false
		}
	}
	return true
}

func countWhite(img *image.NRGBA) int {
	n := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 127 {
			n++
		}
	}
	return n
}
