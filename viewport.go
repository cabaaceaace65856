package retouch

import (
	"math"

	"github.com/esimov/retouch/utils"
)

// View returns the current view transform.
func (e *Editor) View() View {
	return e.view
}

// Zoom returns the current zoom factor.
func (e *Editor) Zoom() float64 {
	return e.view.Zoom
}

// ClientToImage maps a client point to image coordinates using the current transform.
func (e *Editor) ClientToImage(clientX, clientY float64) (float64, float64, error) {
	if e.canvas == nil {
		return 0, 0, ErrNotInitialized
	}
	x, y := e.view.ClientToImage(e.viewport(), clientX, clientY)
	return x, y, nil
}

// ImageToClient maps an image point to client coordinates using the current transform.
func (e *Editor) ImageToClient(x, y float64) (float64, float64, error) {
	if e.canvas == nil {
		return 0, 0, ErrNotInitialized
	}
	cx, cy := e.view.ImageToClient(e.viewport(), x, y)
	return cx, cy, nil
}

// ZoomIn increases the zoom factor by one step.
func (e *Editor) ZoomIn() error {
	return e.ZoomBy(e.opts.ZoomStep)
}

// ZoomOut decreases the zoom factor by one step.
func (e *Editor) ZoomOut() error {
	return e.ZoomBy(-e.opts.ZoomStep)
}

// ZoomBy changes the zoom factor by delta. The result is clamped to the zoom bounds.
func (e *Editor) ZoomBy(delta float64) error {
	return e.SetZoom(e.view.Zoom + delta)
}

// SetZoom sets the zoom factor, clamped to the zoom bounds.
func (e *Editor) SetZoom(zoom float64) error {
	if e.canvas == nil {
		return ErrNotInitialized
	}
	e.setZoom(zoom)
	return nil
}

// ZoomAt changes the zoom factor by delta while keeping the image point under
// the client position (clientX, clientY) in place.
func (e *Editor) ZoomAt(delta, clientX, clientY float64) error {
	if e.canvas == nil {
		return ErrNotInitialized
	}
	vp := e.viewport()
	x, y := e.view.ClientToImage(vp, clientX, clientY)

	if !e.setZoom(e.view.Zoom + delta) {
		return nil
	}
	s := e.view.EffectiveScale()
	e.view.ScrollX = vp.X + x*s - clientX
	e.view.ScrollY = vp.Y + y*s - clientY
	e.clampScroll()

	return nil
}

// ResetZoom fits the image into the container.
func (e *Editor) ResetZoom() error {
	if e.canvas == nil {
		return ErrNotInitialized
	}
	e.resetToFit()
	return nil
}

// PanBy moves the image content by (dx, dy) client pixels.
func (e *Editor) PanBy(dx, dy float64) error {
	if e.canvas == nil {
		return ErrNotInitialized
	}
	e.view.ScrollX -= dx
	e.view.ScrollY -= dy
	e.clampScroll()
	return nil
}

// setZoom clamps and applies the zoom factor. It reports whether the factor changed.
func (e *Editor) setZoom(zoom float64) bool {
	if math.IsNaN(zoom) {
		return false
	}
	zoom = utils.Clamp(zoom, e.opts.MinZoom, e.opts.MaxZoom)
	if zoom == e.view.Zoom {
		return false
	}
	e.view.Zoom = zoom
	e.applyTransform()
	e.events.emit(ZoomChanged{Zoom: zoom})

	return true
}

// resetToFit scales the image down to fit the container, never up, and resets zoom and scroll.
func (e *Editor) resetToFit() {
	vp := e.viewport()
	w, h := float64(e.canvas.width), float64(e.canvas.height)

	e.view = View{
		BaseScale: math.Min(math.Min(vp.Width/w, vp.Height/h), 1),
		Zoom:      utils.Clamp(1, e.opts.MinZoom, e.opts.MaxZoom),
	}
	e.applyTransform()
	e.events.emit(ZoomChanged{Zoom: e.view.Zoom})

	logger.Debug().Float64("base_scale", e.view.BaseScale).Msg("fit to container")
}

func (e *Editor) applyTransform() {
	e.canvas.transform(e.view.EffectiveScale())
	e.clampScroll()
}

// clampScroll keeps the scroll offsets inside the scrollable range of the container.
func (e *Editor) clampScroll() {
	vp := e.viewport()
	s := e.view.EffectiveScale()
	maxX := math.Max(0, float64(e.canvas.width)*s-vp.Width)
	maxY := math.Max(0, float64(e.canvas.height)*s-vp.Height)

	e.view.ScrollX = utils.Clamp(e.view.ScrollX, 0, maxX)
	e.view.ScrollY = utils.Clamp(e.view.ScrollY, 0, maxY)
}

// viewport returns the platform container, falling back to the configured
// container size when the platform reports none.
func (e *Editor) viewport() Viewport {
	vp := e.platform.Viewport()
	if vp.Width <= 0 {
		vp.Width = float64(e.opts.ContainerWidth)
	}
	if vp.Height <= 0 {
		vp.Height = float64(e.opts.ContainerHeight)
	}
	return vp
}
