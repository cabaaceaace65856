package retouch

import (
	"image"

	"github.com/disintegration/imaging"
)

// Headless is an in-memory Platform. Pointer input is injected through its
// dispatch methods, which makes it usable for tests, scripted masks and as the
// raster backend of windowed hosts.
type Headless struct {
	viewport  Viewport
	displayW  float64
	displayH  float64
	listeners map[int]InputHandler
	order     []int
	nextID    int
}

// NewHeadless creates a platform with a container of the given size at the client origin.
func NewHeadless(width, height float64) *Headless {
	return &Headless{
		viewport:  Viewport{Width: width, Height: height},
		listeners: make(map[int]InputHandler),
	}
}

// Allocate returns a new transparent Raster.
func (h *Headless) Allocate(width, height int) (Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, errInvalidSize(width, height)
	}
	return NewRaster(width, height), nil
}

// Resample scales src with linear interpolation.
func (h *Headless) Resample(src image.Image, width, height int) *image.NRGBA {
	return imaging.Resize(src, width, height, imaging.Linear)
}

// Listen registers an input handler.
func (h *Headless) Listen(ih InputHandler) Subscription {
	h.nextID++
	id := h.nextID
	h.listeners[id] = ih
	h.order = append(h.order, id)

	return SubscriptionFunc(func() {
		if _, ok := h.listeners[id]; !ok {
			return
		}
		delete(h.listeners, id)
		for i, v := range h.order {
			if v == id {
				h.order = append(h.order[:i:i], h.order[i+1:]...)
				break
			}
		}
	})
}

// Listeners returns the number of registered input handlers.
func (h *Headless) Listeners() int {
	return len(h.listeners)
}

// Viewport returns the container geometry.
func (h *Headless) Viewport() Viewport {
	return h.viewport
}

// SetViewport changes the container geometry, e.g. after a window resize.
func (h *Headless) SetViewport(vp Viewport) {
	h.viewport = vp
}

// Display records the on-screen size of the layers.
func (h *Headless) Display(width, height float64) {
	h.displayW, h.displayH = width, height
}

// DisplaySize returns the last size set through Display.
func (h *Headless) DisplaySize() (float64, float64) {
	return h.displayW, h.displayH
}

func (h *Headless) each(fn func(InputHandler)) {
	for _, id := range append([]int(nil), h.order...) {
		if ih, ok := h.listeners[id]; ok {
			fn(ih)
		}
	}
}

// PointerDown dispatches a pointer press at client coordinates.
func (h *Headless) PointerDown(x, y float64, b Button) {
	h.each(func(ih InputHandler) { ih.PointerDown(PointerEvent{X: x, Y: y, Button: b}) })
}

// PointerMove dispatches a pointer move.
func (h *Headless) PointerMove(x, y float64) {
	h.each(func(ih InputHandler) { ih.PointerMove(PointerEvent{X: x, Y: y}) })
}

// PointerUp dispatches a pointer release.
func (h *Headless) PointerUp(x, y float64) {
	h.each(func(ih InputHandler) { ih.PointerUp(PointerEvent{X: x, Y: y}) })
}

// PointerLeave dispatches the pointer leaving the container.
func (h *Headless) PointerLeave(x, y float64) {
	h.each(func(ih InputHandler) { ih.PointerLeave(PointerEvent{X: x, Y: y}) })
}

// Wheel dispatches a scroll wheel event.
func (h *Headless) Wheel(x, y, deltaY float64) {
	h.each(func(ih InputHandler) { ih.Wheel(WheelEvent{X: x, Y: y, DeltaY: deltaY}) })
}
