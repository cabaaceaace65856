// Package imop implements the Porter-Duff compositing operators on premultiplied RGBA rasters.
package imop

import (
	"errors"
	"image"
	"image/color"
)

// Op names a compositing operator.
type Op string

const (
	Clear   Op = "clear"
	Copy    Op = "copy"
	Dst     Op = "dst"
	SrcOver Op = "src_over"
	DstOver Op = "dst_over"
	SrcIn   Op = "src_in"
	DstIn   Op = "dst_in"
	SrcOut  Op = "src_out"
	DstOut  Op = "dst_out"
	SrcAtop Op = "src_atop"
	DstAtop Op = "dst_atop"
	Xor     Op = "xor"
)

// ErrUnsupportedOp is returned when an unknown operator is selected.
var ErrUnsupportedOp = errors.New("unsupported composite operation")

// factors returns the source and destination weights (0..255) of an operator
// for the given source and destination alpha values.
type factors func(as, ad uint32) (fa, fb uint32)

var ops = map[Op]factors{
	Clear:   func(as, ad uint32) (uint32, uint32) { return 0, 0 },
	Copy:    func(as, ad uint32) (uint32, uint32) { return 255, 0 },
	Dst:     func(as, ad uint32) (uint32, uint32) { return 0, 255 },
	SrcOver: func(as, ad uint32) (uint32, uint32) { return 255, 255 - as },
	DstOver: func(as, ad uint32) (uint32, uint32) { return 255 - ad, 255 },
	SrcIn:   func(as, ad uint32) (uint32, uint32) { return ad, 0 },
	DstIn:   func(as, ad uint32) (uint32, uint32) { return 0, as },
	SrcOut:  func(as, ad uint32) (uint32, uint32) { return 255 - ad, 0 },
	DstOut:  func(as, ad uint32) (uint32, uint32) { return 0, 255 - as },
	SrcAtop: func(as, ad uint32) (uint32, uint32) { return ad, 255 - as },
	DstAtop: func(as, ad uint32) (uint32, uint32) { return 255 - ad, as },
	Xor:     func(as, ad uint32) (uint32, uint32) { return 255 - ad, 255 - as },
}

// Composite holds the currently selected compositing operator.
type Composite struct {
	current Op
}

// InitOp returns a Composite using source-over, the default drawing operator.
func InitOp() *Composite {
	return &Composite{current: SrcOver}
}

// Set selects the compositing operator.
func (c *Composite) Set(op Op) error {
	if _, ok := ops[op]; !ok {
		return ErrUnsupportedOp
	}
	c.current = op
	return nil
}

// Get returns the active compositing operator.
func (c *Composite) Get() Op {
	return c.current
}

// Pixel composites the premultiplied source color onto the destination color.
func (c *Composite) Pixel(dst, src color.RGBA) color.RGBA {
	fa, fb := ops[c.current](uint32(src.A), uint32(dst.A))

	mix := func(s, d uint8) uint8 {
		v := (uint32(s)*fa + uint32(d)*fb + 127) / 255
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return color.RGBA{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: mix(src.A, dst.A),
	}
}

// Fill composites a solid color onto every pixel of r for which inside reports true.
// Pixels outside the destination bounds are skipped.
func (c *Composite) Fill(dst *image.RGBA, r image.Rectangle, inside func(x, y int) bool, src color.RGBA) {
	r = r.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if inside != nil && !inside(x, y) {
				continue
			}
			i := dst.PixOffset(x, y)
			px := dst.Pix[i : i+4 : i+4]
			out := c.Pixel(color.RGBA{R: px[0], G: px[1], B: px[2], A: px[3]}, src)
			px[0], px[1], px[2], px[3] = out.R, out.G, out.B, out.A
		}
	}
}

// Draw composites src onto dst, aligning src.Bounds().Min with dp.
func (c *Composite) Draw(dst *image.RGBA, src image.Image, dp image.Point) {
	sb := src.Bounds()
	r := sb.Sub(sb.Min).Add(dp).Intersect(dst.Bounds())

	at := func(x, y int) color.RGBA {
		return color.RGBAModel.Convert(src.At(x, y)).(color.RGBA)
	}
	if rgba, ok := src.(*image.RGBA); ok {
		at = rgba.RGBAAt
	}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s := at(x-dp.X+sb.Min.X, y-dp.Y+sb.Min.Y)
			i := dst.PixOffset(x, y)
			px := dst.Pix[i : i+4 : i+4]
			out := c.Pixel(color.RGBA{R: px[0], G: px[1], B: px[2], A: px[3]}, s)
			px[0], px[1], px[2], px[3] = out.R, out.G, out.B, out.A
		}
	}
}
