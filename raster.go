package retouch

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/esimov/retouch/imop"
)

// Raster is an in-memory Surface backed by a premultiplied RGBA image.
// Shapes are rasterized without anti-aliasing: a pixel is covered when its
// center lies inside the shape, so painting and erasing the same geometry
// touch exactly the same pixels.
type Raster struct {
	img  *image.RGBA
	comp *imop.Composite
}

// NewRaster allocates a transparent raster.
func NewRaster(width, height int) *Raster {
	return &Raster{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		comp: imop.InitOp(),
	}
}

// Image exposes the backing image without copying.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

func (r *Raster) Bounds() image.Rectangle {
	if r.img == nil {
		return image.Rectangle{}
	}
	return r.img.Bounds()
}

func (r *Raster) DrawImage(img image.Image, pt image.Point) {
	if r.img == nil {
		return
	}
	b := img.Bounds()
	draw.Draw(r.img, b.Sub(b.Min).Add(pt), img, b.Min, draw.Over)
}

func (r *Raster) FillCircle(cx, cy, radius float64, c color.RGBA, op imop.Op) {
	rr := radius * radius
	r.fill(circleBounds(cx, cy, radius), func(x, y int) bool {
		dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
		return dx*dx+dy*dy <= rr
	}, c, op)
}

func (r *Raster) StrokeLine(x1, y1, x2, y2, width float64, c color.RGBA, op imop.Op) {
	radius := width / 2
	rr := radius * radius
	bounds := circleBounds(x1, y1, radius).Union(circleBounds(x2, y2, radius))

	r.fill(bounds, func(x, y int) bool {
		return segmentDistSq(float64(x)+0.5, float64(y)+0.5, x1, y1, x2, y2) <= rr
	}, c, op)
}

func (r *Raster) Clear() {
	if r.img == nil {
		return
	}
	clear(r.img.Pix)
}

func (r *Raster) ReadPixels() *image.RGBA {
	if r.img == nil {
		return nil
	}
	dst := image.NewRGBA(r.img.Bounds())
	copy(dst.Pix, r.img.Pix)
	return dst
}

func (r *Raster) WritePixels(img *image.RGBA) {
	if r.img == nil || img == nil {
		return
	}
	draw.Draw(r.img, r.img.Bounds(), img, img.Bounds().Min, draw.Src)
}

func (r *Raster) Release() {
	r.img = nil
}

func (r *Raster) fill(bounds image.Rectangle, inside func(x, y int) bool, c color.RGBA, op imop.Op) {
	if r.img == nil {
		return
	}
	if err := r.comp.Set(op); err != nil {
		logger.Warn().Err(err).Str("op", string(op)).Msg("raster fill skipped")
		return
	}
	r.comp.Fill(r.img, bounds, inside, c)
}

func circleBounds(cx, cy, r float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(cx-r)), int(math.Floor(cy-r)),
		int(math.Ceil(cx+r))+1, int(math.Ceil(cy+r))+1,
	)
}

// segmentDistSq returns the squared distance between (px, py) and the segment (x1, y1)-(x2, y2).
func segmentDistSq(px, py, x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	l2 := dx*dx + dy*dy

	t := 0.0
	if l2 > 0 {
		t = ((px-x1)*dx + (py-y1)*dy) / l2
		t = math.Max(0, math.Min(1, t))
	}
	ex, ey := px-(x1+t*dx), py-(y1+t*dy)
	return ex*ex + ey*ey
}
