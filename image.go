package retouch

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/esimov/retouch/utils"
	"golang.org/x/image/bmp"
)

// DecodeImage opens and decodes a raster image file.
func DecodeImage(src string) (image.Image, error) {
	if !utils.IsImage(src) {
		return nil, fmt.Errorf("%s is not an image file", src)
	}

	file, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("could not open the image file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", src, err)
	}
	return img, nil
}

// EncodeImage encodes img into w. The format is taken from the file extension of
// w when it is a file, jpeg otherwise.
func EncodeImage(w io.Writer, img image.Image) error {
	ext := ""
	if f, ok := w.(*os.File); ok {
		ext = strings.ToLower(filepath.Ext(f.Name()))
	}
	return EncodeFormat(w, img, ext)
}

// EncodeFormat encodes img into w using the format matching ext.
func EncodeFormat(w io.Writer, img image.Image, ext string) error {
	switch ext {
	case "", ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("unsupported image format: %q", ext)
}

// imgToNRGBA copies any image type into a new *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	dst := image.NewNRGBA(srcBounds.Sub(srcBounds.Min))
	dstW, dstH := dst.Bounds().Dx(), dst.Bounds().Dy()

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := dstW * 4
		for y := 0; y < dstH; y++ {
			si := src.PixOffset(srcBounds.Min.X, srcBounds.Min.Y+y)
			copy(dst.Pix[dst.PixOffset(0, y):], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for y := 0; y < dstH; y++ {
			di := dst.PixOffset(0, y)
			for x := 0; x < dstW; x++ {
				sx, sy := srcBounds.Min.X+x, srcBounds.Min.Y+y
				r, g, b := color.YCbCrToRGB(src.Y[src.YOffset(sx, sy)], src.Cb[src.COffset(sx, sy)], src.Cr[src.COffset(sx, sy)])
				dst.Pix[di+0], dst.Pix[di+1], dst.Pix[di+2], dst.Pix[di+3] = r, g, b, 0xff
				di += 4
			}
		}
	default:
		for y := 0; y < dstH; y++ {
			di := dst.PixOffset(0, y)
			for x := 0; x < dstW; x++ {
				c := color.NRGBAModel.Convert(img.At(srcBounds.Min.X+x, srcBounds.Min.Y+y)).(color.NRGBA)
				dst.Pix[di+0], dst.Pix[di+1], dst.Pix[di+2], dst.Pix[di+3] = c.R, c.G, c.B, c.A
				di += 4
			}
		}
	}

	return dst
}

// isOpaque reports whether every pixel of img is fully opaque.
func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

// maskRule returns the selection rule of an imported mask. Masks with
// transparency select their mostly opaque pixels, whatever the color.
// Fully opaque masks select their bright pixels.
func maskRule(img image.Image) func(color.Color) bool {
	if isOpaque(img) {
		return threshold
	}
	return alphaThreshold
}

// alphaThreshold reports whether a pixel is mostly opaque.
func alphaThreshold(c color.Color) bool {
	return color.NRGBAModel.Convert(c).(color.NRGBA).A > 127
}

// threshold reports whether a mask pixel counts as selected: bright and mostly opaque.
func threshold(c color.Color) bool {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A <= 127 {
		return false
	}
	return color.GrayModel.Convert(color.NRGBA{R: n.R, G: n.G, B: n.B, A: 0xff}).(color.Gray).Y > 127
}
