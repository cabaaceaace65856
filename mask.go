package retouch

import (
	"fmt"
	"image"
	"image/color"
)

var (
	maskSelected   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	maskUnselected = color.NRGBA{A: 0xff}
)

// hasContent reports whether any pixel of the mask has a non-zero alpha.
func hasContent(m *image.RGBA) bool {
	for i := 3; i < len(m.Pix); i += 4 {
		if m.Pix[i] > 0 {
			return true
		}
	}
	return false
}

// binarize turns every pixel with a non-zero alpha into opaque white and every
// other pixel into opaque black.
func binarize(m *image.RGBA) *image.NRGBA {
	b := m.Bounds()
	dst := image.NewNRGBA(b)

	for i := 0; i < len(m.Pix); i += 4 {
		c := maskUnselected
		if m.Pix[i+3] > 0 {
			c = maskSelected
		}
		dst.Pix[i+0], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return dst
}

// HasMask reports whether any part of the image is selected.
// It returns false outside a session.
func (e *Editor) HasMask() bool {
	if e.canvas == nil {
		return false
	}
	return hasContent(e.canvas.layer(LayerMask).ReadPixels())
}

// ExtractBinaryMask returns a native resolution mask where selected pixels are
// opaque white and every other pixel is opaque black.
func (e *Editor) ExtractBinaryMask() (*image.NRGBA, error) {
	if e.canvas == nil {
		return nil, ErrNotInitialized
	}
	return binarize(e.canvas.layer(LayerMask).ReadPixels()), nil
}

// ResampleForModel binarizes the mask and resamples it into a size×size raster.
// Edge pixels may come out gray because of the interpolation.
func (e *Editor) ResampleForModel(size int) (*image.NRGBA, error) {
	if e.canvas == nil {
		return nil, ErrNotInitialized
	}
	if size <= 0 {
		return nil, fmt.Errorf("invalid model size %d", size)
	}
	bin, err := e.ExtractBinaryMask()
	if err != nil {
		return nil, err
	}
	return e.platform.Resample(bin, size, size), nil
}

// MaskForModel returns the mask prepared for an inpainting model of the given input size.
// A non-positive size selects Options.ModelSize.
func (e *Editor) MaskForModel(size int) (*image.NRGBA, error) {
	if size <= 0 {
		size = e.opts.ModelSize
	}
	return e.ResampleForModel(size)
}

// ImportMask replaces the mask with an external one. When the mask has any
// transparency its mostly opaque pixels are selected, whatever their color, so
// strokes on a transparent background and the editor's own mask layer import
// as painted. A fully opaque mask selects its bright pixels. The mask is
// resampled to the image size when needed.
func (e *Editor) ImportMask(m image.Image) error {
	if e.canvas == nil {
		return ErrNotInitialized
	}
	w, h := e.canvas.width, e.canvas.height

	src := image.Image(m)
	if b := m.Bounds(); b.Dx() != w || b.Dy() != h {
		src = e.platform.Resample(m, w, h)
	}
	sb := src.Bounds()
	selected := maskRule(src)

	tint := color.RGBAModel.Convert(e.tint).(color.RGBA)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if selected(src.At(sb.Min.X+x, sb.Min.Y+y)) {
				dst.SetRGBA(x, y, tint)
			}
		}
	}
	e.canvas.layer(LayerMask).WritePixels(dst)
	e.events.emit(MaskChanged{})

	return nil
}
