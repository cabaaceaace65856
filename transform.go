package retouch

// Viewport is the host container geometry in client coordinates.
type Viewport struct {
	X, Y          float64
	Width, Height float64
}

// View is the transform between the client space and the native image space.
type View struct {
	BaseScale float64
	Zoom      float64
	ScrollX   float64
	ScrollY   float64
}

// EffectiveScale returns the combined fit and zoom scale factor.
func (v View) EffectiveScale() float64 {
	return v.BaseScale * v.Zoom
}

// ClientToImage maps a client point to native image coordinates.
// Points outside of the image are valid and map outside of the image bounds.
func (v View) ClientToImage(vp Viewport, clientX, clientY float64) (float64, float64) {
	s := v.EffectiveScale()
	originX, originY := vp.X-v.ScrollX, vp.Y-v.ScrollY
	return (clientX - originX) / s, (clientY - originY) / s
}

// ImageToClient maps a native image point to client coordinates.
func (v View) ImageToClient(vp Viewport, x, y float64) (float64, float64) {
	s := v.EffectiveScale()
	return vp.X - v.ScrollX + x*s, vp.Y - v.ScrollY + y*s
}
