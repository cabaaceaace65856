package retouch

import (
	"image"
	"image/color"

	"github.com/esimov/retouch/imop"
)

// Surface is a native resolution raster owned by the editor.
type Surface interface {
	Bounds() image.Rectangle
	// DrawImage copies img onto the surface with its top-left corner at pt.
	DrawImage(img image.Image, pt image.Point)
	FillCircle(cx, cy, r float64, c color.RGBA, op imop.Op)
	// StrokeLine draws a round capped segment of the given width.
	StrokeLine(x1, y1, x2, y2, width float64, c color.RGBA, op imop.Op)
	Clear()
	// ReadPixels returns a copy of the surface content.
	ReadPixels() *image.RGBA
	WritePixels(img *image.RGBA)
	Release()
}

// Button identifies the pointer button of an event.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonAuxiliary
	ButtonSecondary
)

// PointerEvent is a pointer event in client coordinates.
type PointerEvent struct {
	X, Y   float64
	Button Button
}

// WheelEvent is a scroll wheel event in client coordinates.
// A positive DeltaY scrolls down and zooms out.
type WheelEvent struct {
	X, Y   float64
	DeltaY float64
}

// InputHandler receives the pointer stream of a platform.
type InputHandler interface {
	PointerDown(e PointerEvent)
	PointerMove(e PointerEvent)
	PointerUp(e PointerEvent)
	PointerLeave(e PointerEvent)
	Wheel(e WheelEvent)
}

// Platform abstracts the rendering target hosting the editor.
type Platform interface {
	// Allocate returns a transparent surface of the given native size.
	Allocate(width, height int) (Surface, error)
	// Resample scales src to the requested size.
	Resample(src image.Image, width, height int) *image.NRGBA
	// Listen subscribes h to the pointer stream until the subscription is removed.
	Listen(h InputHandler) Subscription
	// Viewport reports the container geometry.
	Viewport() Viewport
	// Display sets the on-screen size of the layers.
	Display(width, height float64)
}
