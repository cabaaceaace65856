// Package gui hosts the mask editor in a Gio window.
package gui

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/esimov/retouch"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// ErrClosed is returned by Run when the window is closed without submitting the mask.
var ErrClosed = errors.New("window closed")

// Window is a Gio backed platform for the editor. It keeps the layers in
// memory through a retouch.Headless and forwards the window input to it.
type Window struct {
	*retouch.Headless

	ed    *retouch.Editor
	title string
	frame *image.RGBA
	size  image.Point
	dirty bool
}

var _ retouch.Platform = (*Window)(nil)

// NewWindow creates a window platform for ed.
func NewWindow(ed *retouch.Editor, title string) *Window {
	return &Window{
		Headless: retouch.NewHeadless(0, 0),
		ed:       ed,
		title:    title,
	}
}

// Run opens the window and starts an editing session on img, with the mask
// pre-filled from seed when it is not nil. It blocks until the mask is
// submitted with the Return key, in which case it returns nil, or the window is
// closed. The session outlives the window so the caller can read the mask, and
// is released with the editor's Dispose. Like every Gio program, app.Main has
// to run on the main goroutine while Run is in progress.
func (w *Window) Run(img, seed image.Image) error {
	iw, ih := windowSize(img.Bounds().Dx(), img.Bounds().Dy())
	w.SetViewport(retouch.Viewport{Width: float64(iw), Height: float64(ih)})

	if err := w.ed.Initialize(img, w); err != nil {
		return err
	}
	if seed != nil {
		if err := w.ed.ImportMask(seed); err != nil {
			return err
		}
	}

	win := app.NewWindow(
		app.Title(w.title),
		app.Size(unit.Dp(float32(iw)), unit.Dp(float32(ih))),
	)
	sub := w.ed.Subscribe(retouch.ObserverFunc(func(ev retouch.Event) {
		w.dirty = true
		if z, ok := ev.(retouch.ZoomChanged); ok {
			win.Option(app.Title(w.status(z.Zoom)))
		}
		win.Invalidate()
	}))
	defer sub.Remove()

	var (
		ops       op.Ops
		submitted bool
	)
	for e := range win.Events() {
		switch e := e.(type) {
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)
			if !submitted && w.handleInput(gtx, win) {
				submitted = true
				win.Perform(system.ActionClose)
			}
			w.layout(gtx)
			e.Frame(gtx.Ops)
		case system.DestroyEvent:
			switch {
			case e.Err != nil:
				return e.Err
			case submitted:
				return nil
			}
			return ErrClosed
		}
	}
	return ErrClosed
}

func (w *Window) status(zoom float64) string {
	return fmt.Sprintf("%s | %s %dpx | %d%%", w.title,
		strings.ToLower(w.ed.Tool().String()), w.ed.BrushSize(), int(zoom*100+0.5))
}

// handleInput forwards the queued events to the editor. It reports whether
// the mask has been submitted.
func (w *Window) handleInput(gtx C, win *app.Window) bool {
	for _, ev := range gtx.Events(w) {
		switch e := ev.(type) {
		case pointer.Event:
			x, y := position(e.Position)
			switch e.Type {
			case pointer.Press:
				w.PointerDown(x, y, buttonOf(e.Source, e.Buttons))
			case pointer.Move, pointer.Drag:
				w.PointerMove(x, y)
			case pointer.Release, pointer.Cancel:
				w.PointerUp(x, y)
			case pointer.Leave:
				w.PointerLeave(x, y)
			case pointer.Scroll:
				w.Wheel(x, y, float64(e.Scroll.Y))
			}
			w.dirty = true
		case key.Event:
			if e.State != key.Press {
				continue
			}
			switch e.Name {
			case key.NameReturn, key.NameEnter:
				if w.ed.HasMask() {
					return true
				}
				continue
			case key.NameEscape:
				win.Perform(system.ActionClose)
				continue
			}
			if fn, ok := keyActions[e.Name]; ok {
				if err := fn(w.ed); err != nil {
					retouch.Logger().Warn().Err(err).Str("key", e.Name).Msg("shortcut ignored")
				}
				win.Option(app.Title(w.status(w.ed.Zoom())))
				w.dirty = true
			}
		}
	}
	return false
}

func (w *Window) layout(gtx C) D {
	size := gtx.Constraints.Max
	if size != w.size {
		w.size = size
		w.SetViewport(retouch.Viewport{Width: float64(size.X), Height: float64(size.Y)})
		if err := w.ed.ResetZoom(); err != nil {
			retouch.Logger().Error().Err(err).Msg("failed to fit the image")
		}
		w.frame = image.NewRGBA(image.Rectangle{Max: size})
		w.dirty = true
	}

	if w.dirty {
		flat, err := w.ed.Flatten()
		if err != nil {
			retouch.Logger().Error().Err(err).Msg("failed to render the layers")
		}
		renderView(w.frame, flat, w.ed.View())
		w.dirty = false
	}

	area := clip.Rect{Max: size}.Push(gtx.Ops)
	paint.NewImageOp(w.frame).Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)

	pointer.InputOp{
		Tag: w,
		Types: pointer.Press | pointer.Drag | pointer.Release | pointer.Move |
			pointer.Leave | pointer.Cancel | pointer.Scroll,
		ScrollBounds: image.Rect(0, -100, 0, 100),
	}.Add(gtx.Ops)
	cursor := pointer.CursorNone
	if w.ed.Tool() == retouch.Hand {
		cursor = pointer.CursorGrab
	}
	cursor.Add(gtx.Ops)

	key.InputOp{
		Tag: w,
		Keys: key.Set("B|E|H|C|+|-|0|" + strings.Join([]string{
			key.NameUpArrow, key.NameDownArrow, key.NameReturn, key.NameEnter, key.NameEscape,
		}, "|")),
	}.Add(gtx.Ops)
	key.FocusOp{Tag: w}.Add(gtx.Ops)
	area.Pop()

	return D{Size: size}
}

// position converts a gio point to client coordinates.
func position(p f32.Point) (float64, float64) {
	return float64(p.X), float64(p.Y)
}
