package retouch

import (
	"errors"
	"image"
	"image/color"

	"github.com/esimov/retouch/utils"
)

// Editor is an interactive mask editor. It owns three native sized layers
// (image, mask and cursor overlay), converts pointer input into brush and
// eraser strokes and exposes the painted region as a binary mask.
//
// An Editor is not safe for concurrent use. Hosts deliver input and call its
// methods from a single goroutine.
type Editor struct {
	opts     Options
	tint     color.NRGBA
	platform Platform
	image    *image.NRGBA
	canvas   *canvas
	renderer *strokeRenderer
	view     View
	session  session
	events   emitter
	subs     subscriptions
}

// New creates an editor with the given options. Invalid values are repaired, see Options.Normalize.
func New(opts Options) *Editor {
	opts = opts.Normalize()
	tint, _ := ParseColor(opts.MaskColor)

	return &Editor{
		opts: opts,
		tint: tint,
		session: session{
			tool:      Brush,
			brushSize: opts.BrushSize,
		},
	}
}

// Initialize starts an editing session on img. The image is copied, so the
// caller may reuse it. Calling Initialize on a running session resets it.
func (e *Editor) Initialize(img image.Image, p Platform) error {
	if p == nil {
		return errors.New("retouch: nil platform")
	}
	if img == nil || img.Bounds().Empty() {
		return errors.New("retouch: empty image")
	}
	if e.canvas != nil {
		e.Dispose()
	}

	src := imgToNRGBA(img)
	c, err := newCanvas(p, src)
	if err != nil {
		return err
	}

	e.platform = p
	e.image = src
	e.canvas = c
	e.renderer = newStrokeRenderer(c.layer(LayerMask), e.tint)
	e.session.state = Idle

	e.subs.add(p.Listen(inputHandler{e}))
	e.resetToFit()

	logger.Debug().
		Int("width", c.width).
		Int("height", c.height).
		Float64("scale", e.view.BaseScale).
		Msg("editor initialized")

	return nil
}

// Dispose releases the layers and every platform subscription. A stroke in
// progress is dropped without a change notification. Dispose is idempotent.
func (e *Editor) Dispose() {
	e.subs.release()
	if e.canvas != nil {
		e.canvas.dispose()
		logger.Debug().Msg("editor disposed")
	}
	e.canvas = nil
	e.renderer = nil
	e.image = nil
	e.platform = nil
	e.view = View{}
	e.session.state = Idle
}

// Initialized reports whether a session is running.
func (e *Editor) Initialized() bool {
	return e.canvas != nil
}

// Options returns the normalized options in use.
func (e *Editor) Options() Options {
	return e.opts
}

// Image returns the source image of the session.
// The returned image must not be modified.
func (e *Editor) Image() *image.NRGBA {
	return e.image
}

// Layer returns the surface of the given layer, or nil outside a session.
func (e *Editor) Layer(l Layer) Surface {
	if e.canvas == nil || l < LayerImage || l >= layerCount {
		return nil
	}
	return e.canvas.layer(l)
}

// Flatten composites all layers into a native sized preview.
func (e *Editor) Flatten() (*image.RGBA, error) {
	if e.canvas == nil {
		return nil, ErrNotInitialized
	}
	return e.canvas.flatten(), nil
}

// Tool returns the active tool.
func (e *Editor) Tool() Tool {
	return e.session.tool
}

// SetTool switches the active tool. Switching is only possible while no stroke
// or pan is in progress, and never alters the mask.
func (e *Editor) SetTool(t Tool) error {
	if t < Brush || t > Hand {
		return ErrUnknownTool
	}
	if e.session.state != Idle {
		return ErrBusy
	}
	e.session.tool = t
	if t == Hand {
		e.clearCursor()
	}
	return nil
}

// BrushSize returns the brush diameter in image pixels.
func (e *Editor) BrushSize() int {
	return e.session.brushSize
}

// SetBrushSize sets the brush diameter, clamped to the configured bounds,
// and returns the size applied.
func (e *Editor) SetBrushSize(size int) int {
	e.session.brushSize = utils.Clamp(size, e.opts.MinBrushSize, e.opts.MaxBrushSize)
	return e.session.brushSize
}

// State returns the state of the pointer session.
func (e *Editor) State() State {
	return e.session.state
}

// ClearMask erases the whole mask.
func (e *Editor) ClearMask() error {
	if e.canvas == nil {
		return ErrNotInitialized
	}
	e.canvas.layer(LayerMask).Clear()
	e.events.emit(MaskChanged{})
	return nil
}

// Subscribe registers an observer for editor events.
func (e *Editor) Subscribe(o Observer) Subscription {
	return e.events.subscribe(o)
}

// OnMaskChange registers fn to be called after every mask change.
func (e *Editor) OnMaskChange(fn func()) Subscription {
	return e.Subscribe(ObserverFunc(func(ev Event) {
		if _, ok := ev.(MaskChanged); ok {
			fn()
		}
	}))
}

// OnZoomChange registers fn to be called with the new zoom factor on every zoom change.
func (e *Editor) OnZoomChange(fn func(zoom float64)) Subscription {
	return e.Subscribe(ObserverFunc(func(ev Event) {
		if z, ok := ev.(ZoomChanged); ok {
			fn(z.Zoom)
		}
	}))
}
