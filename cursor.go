package retouch

import (
	"image"
	"math"

	"github.com/gogpu/gg"
)

// cursorStyle returns the ring color of a tool. The hand tool has no ring.
func cursorStyle(tool Tool) (r, g, b float64, ok bool) {
	switch tool {
	case Brush:
		return 1, 0, 0, true
	case Eraser:
		return 1, 1, 1, true
	}
	return 0, 0, 0, false
}

// renderCursor rasterizes the brush outline centered at (x, y) in image space.
// The line width is divided by the effective scale so the ring keeps a constant
// on-screen thickness. It returns the sprite and the position of its top-left corner.
func renderCursor(x, y, diameter, scale float64, tool Tool) (image.Image, image.Point, error) {
	r, g, b, ok := cursorStyle(tool)
	if !ok || scale <= 0 {
		return nil, image.Point{}, nil
	}

	lineWidth := 2 / scale
	half := diameter/2 + lineWidth + 2
	size := int(math.Ceil(2 * half))
	origin := image.Pt(int(math.Floor(x-half)), int(math.Floor(y-half)))
	cx, cy := x-float64(origin.X), y-float64(origin.Y)

	dc := gg.NewContext(size, size)
	defer dc.Close()

	dc.SetRGBA(r, g, b, 1)
	dc.SetLineWidth(lineWidth)
	dc.DrawCircle(cx, cy, diameter/2)
	if err := dc.Stroke(); err != nil {
		return nil, image.Point{}, err
	}

	dc.DrawCircle(cx, cy, 2/scale)
	if err := dc.Fill(); err != nil {
		return nil, image.Point{}, err
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, image.Point{}, err
	}

	return dc.Image(), origin, nil
}
