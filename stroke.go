package retouch

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/esimov/retouch/imop"
)

// Tool is the active editing tool.
type Tool int

const (
	Brush Tool = iota
	Eraser
	Hand
)

func (t Tool) String() string {
	switch t {
	case Brush:
		return "brush"
	case Eraser:
		return "eraser"
	case Hand:
		return "hand"
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

// ParseTool returns the tool with the given name.
func ParseTool(name string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "brush":
		return Brush, nil
	case "eraser":
		return Eraser, nil
	case "hand":
		return Hand, nil
	}
	return Brush, fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tool) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tool) UnmarshalText(b []byte) error {
	v, err := ParseTool(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// eraseColor only needs full alpha: destination-out ignores the source color channels.
var eraseColor = color.RGBA{A: 0xff}

// strokeRenderer paints brush and eraser marks into the mask surface.
type strokeRenderer struct {
	surface Surface
	tint    color.RGBA
}

func newStrokeRenderer(s Surface, tint color.NRGBA) *strokeRenderer {
	return &strokeRenderer{
		surface: s,
		tint:    color.RGBAModel.Convert(tint).(color.RGBA),
	}
}

// style returns the paint and compositing operator of a tool.
// The hand tool never paints.
func (r *strokeRenderer) style(tool Tool) (color.RGBA, imop.Op, bool) {
	switch tool {
	case Brush:
		return r.tint, imop.SrcOver, true
	case Eraser:
		return eraseColor, imop.DstOut, true
	}
	return color.RGBA{}, "", false
}

func (r *strokeRenderer) paintDot(x, y, diameter float64, tool Tool) {
	c, op, ok := r.style(tool)
	if !ok {
		return
	}
	r.surface.FillCircle(x, y, diameter/2, c, op)
}

func (r *strokeRenderer) paintSegment(x1, y1, x2, y2, diameter float64, tool Tool) {
	c, op, ok := r.style(tool)
	if !ok {
		return
	}
	r.surface.StrokeLine(x1, y1, x2, y2, diameter, c, op)
}
