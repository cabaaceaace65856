package retouch

import "fmt"

// State is the state of the pointer session.
type State int

const (
	Idle State = iota
	Drawing
	Panning
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case Panning:
		return "panning"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// session tracks the active tool and the pointer gesture in progress.
// lastX and lastY hold image coordinates while drawing and client coordinates while panning.
type session struct {
	tool      Tool
	brushSize int
	state     State
	lastX     float64
	lastY     float64
}

// inputHandler routes platform input into the editor without exposing the
// handler methods on the Editor API.
type inputHandler struct {
	e *Editor
}

func (h inputHandler) PointerDown(ev PointerEvent)  { h.e.pointerDown(ev) }
func (h inputHandler) PointerMove(ev PointerEvent)  { h.e.pointerMove(ev) }
func (h inputHandler) PointerUp(ev PointerEvent)    { h.e.endSession() }
func (h inputHandler) PointerLeave(ev PointerEvent) { h.e.clearCursor(); h.e.endSession() }
func (h inputHandler) Wheel(ev WheelEvent)          { h.e.wheel(ev) }

func (e *Editor) pointerDown(ev PointerEvent) {
	if e.canvas == nil || e.session.state != Idle {
		return
	}
	s := &e.session

	if s.tool == Hand || ev.Button == ButtonAuxiliary {
		e.clearCursor()
		s.state = Panning
		s.lastX, s.lastY = ev.X, ev.Y
		return
	}
	if ev.Button != ButtonPrimary {
		return
	}

	x, y := e.view.ClientToImage(e.viewport(), ev.X, ev.Y)
	s.state = Drawing
	s.lastX, s.lastY = x, y
	e.renderer.paintDot(x, y, float64(s.brushSize), s.tool)
}

func (e *Editor) pointerMove(ev PointerEvent) {
	if e.canvas == nil {
		return
	}
	e.updateCursor(ev.X, ev.Y)

	s := &e.session
	switch s.state {
	case Drawing:
		x, y := e.view.ClientToImage(e.viewport(), ev.X, ev.Y)
		e.renderer.paintSegment(s.lastX, s.lastY, x, y, float64(s.brushSize), s.tool)
		s.lastX, s.lastY = x, y
	case Panning:
		dx, dy := ev.X-s.lastX, ev.Y-s.lastY
		s.lastX, s.lastY = ev.X, ev.Y
		_ = e.PanBy(dx, dy)
	}
}

// endSession returns to Idle. A finished stroke raises a single mask change.
func (e *Editor) endSession() {
	prev := e.session.state
	e.session.state = Idle

	if prev == Drawing && e.canvas != nil {
		e.events.emit(MaskChanged{})
	}
}

func (e *Editor) wheel(ev WheelEvent) {
	if e.canvas == nil || ev.DeltaY == 0 {
		return
	}
	delta := e.opts.ZoomStep
	if ev.DeltaY > 0 {
		delta = -delta
	}
	_ = e.ZoomAt(delta, ev.X, ev.Y)
	e.updateCursor(ev.X, ev.Y)
}

// updateCursor redraws the brush outline under the client position.
func (e *Editor) updateCursor(clientX, clientY float64) {
	e.clearCursor()
	if e.canvas == nil || e.session.tool == Hand {
		return
	}
	x, y := e.view.ClientToImage(e.viewport(), clientX, clientY)

	sprite, at, err := renderCursor(x, y, float64(e.session.brushSize), e.view.EffectiveScale(), e.session.tool)
	if err != nil {
		logger.Debug().Err(err).Msg("cursor rendering failed")
		return
	}
	if sprite != nil {
		e.canvas.layer(LayerCursor).DrawImage(sprite, at)
	}
}

func (e *Editor) clearCursor() {
	if e.canvas != nil {
		e.canvas.layer(LayerCursor).Clear()
	}
}
