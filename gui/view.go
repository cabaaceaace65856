package gui

import (
	"image"
	"image/color"
	"math"

	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"github.com/esimov/retouch"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

const (
	maxScreenX = 1366
	maxScreenY = 768
)

var backgroundColor = color.RGBA{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff}

// windowSize returns the initial window size for an image, keeping the aspect
// ratio when the image does not fit the screen.
func windowSize(w, h int) (int, int) {
	if w <= maxScreenX && h <= maxScreenY {
		return w, h
	}
	ratio := math.Min(float64(maxScreenX)/float64(w), float64(maxScreenY)/float64(h))
	return int(float64(w) * ratio), int(float64(h) * ratio)
}

// renderView projects the flattened layers into a frame of the container size,
// applying the editor's scale and scroll offsets.
func renderView(dst *image.RGBA, src *image.RGBA, view retouch.View) {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{backgroundColor}, image.Point{}, draw.Src)

	scale := view.EffectiveScale()
	if scale <= 0 || src == nil {
		return
	}
	s2d := f64.Aff3{
		scale, 0, -view.ScrollX,
		0, scale, -view.ScrollY,
	}
	interp := draw.Interpolator(draw.ApproxBiLinear)
	if scale >= 1 {
		interp = draw.NearestNeighbor
	}
	interp.Transform(dst, s2d, src, src.Bounds(), draw.Over, nil)
}

// buttonOf maps the pressed gio buttons to an editor button. Touch input
// always paints.
func buttonOf(src pointer.Source, b pointer.Buttons) retouch.Button {
	if src == pointer.Touch {
		return retouch.ButtonPrimary
	}
	switch {
	case b.Contain(pointer.ButtonTertiary):
		return retouch.ButtonAuxiliary
	case b.Contain(pointer.ButtonSecondary) && !b.Contain(pointer.ButtonPrimary):
		return retouch.ButtonSecondary
	}
	return retouch.ButtonPrimary
}

// action is an editor command bound to a key.
type action func(ed *retouch.Editor) error

var keyActions = map[string]action{
	"B":               func(ed *retouch.Editor) error { return ed.SetTool(retouch.Brush) },
	"E":               func(ed *retouch.Editor) error { return ed.SetTool(retouch.Eraser) },
	"H":               func(ed *retouch.Editor) error { return ed.SetTool(retouch.Hand) },
	"+":               func(ed *retouch.Editor) error { return ed.ZoomIn() },
	"-":               func(ed *retouch.Editor) error { return ed.ZoomOut() },
	"0":               func(ed *retouch.Editor) error { return ed.ResetZoom() },
	"C":               func(ed *retouch.Editor) error { return ed.ClearMask() },
	key.NameDownArrow: func(ed *retouch.Editor) error { ed.SetBrushSize(ed.BrushSize() - 10); return nil },
	key.NameUpArrow:   func(ed *retouch.Editor) error { ed.SetBrushSize(ed.BrushSize() + 10); return nil },
}
