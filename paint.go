package retouch

import "fmt"

// Point is a position in image coordinates.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PaintDot paints a filled circle of the given diameter centered at (x, y) in image coordinates.
// The hand tool paints nothing. No change notification is raised, see Stroke.
func (e *Editor) PaintDot(x, y, diameter float64, tool Tool) error {
	if e.canvas == nil {
		return ErrNotInitialized
	}
	e.renderer.paintDot(x, y, diameter, tool)
	return nil
}

// PaintSegment paints a round capped line of the given width between two image points.
// No change notification is raised, see Stroke.
func (e *Editor) PaintSegment(x1, y1, x2, y2, diameter float64, tool Tool) error {
	if e.canvas == nil {
		return ErrNotInitialized
	}
	e.renderer.paintSegment(x1, y1, x2, y2, diameter, tool)
	return nil
}

// Stroke paints a complete stroke through pts, a dot at the first point followed
// by connected segments, and raises a single mask change.
func (e *Editor) Stroke(tool Tool, diameter float64, pts ...Point) error {
	if e.canvas == nil {
		return ErrNotInitialized
	}
	if e.session.state != Idle {
		return ErrBusy
	}
	if tool < Brush || tool > Hand {
		return fmt.Errorf("%w: %v", ErrUnknownTool, tool)
	}
	if tool == Hand {
		return ErrNotPaintTool
	}
	if len(pts) == 0 {
		return nil
	}

	e.renderer.paintDot(pts[0].X, pts[0].Y, diameter, tool)
	for i := 1; i < len(pts); i++ {
		p, q := pts[i-1], pts[i]
		e.renderer.paintSegment(p.X, p.Y, q.X, q.Y, diameter, tool)
	}
	e.events.emit(MaskChanged{})

	return nil
}
