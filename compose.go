package retouch

import (
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// ComposeWithMask upsamples the inpainted result to the size of the original
// and copies it over the original only where the native binary mask is selected.
// Unmasked pixels keep their original value.
func ComposeWithMask(original *image.NRGBA, inpainted image.Image, mask *image.NRGBA) *image.NRGBA {
	b := original.Bounds()
	dst := imaging.Clone(original)

	var patch image.Image = inpainted
	if ib := inpainted.Bounds(); ib.Dx() != b.Dx() || ib.Dy() != b.Dy() {
		patch = imaging.Resize(inpainted, b.Dx(), b.Dy(), imaging.Linear)
	}
	if mask.Bounds().Size() != b.Size() {
		mask = imaging.Resize(mask, b.Dx(), b.Dy(), imaging.NearestNeighbor)
	}

	alpha := image.NewAlpha(dst.Bounds())
	mb := mask.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if mask.NRGBAAt(mb.Min.X+x, mb.Min.Y+y).R > 127 {
				alpha.Pix[alpha.PixOffset(x, y)] = 0xff
			}
		}
	}
	draw.DrawMask(dst, dst.Bounds(), patch, patch.Bounds().Min, alpha, image.Point{}, draw.Src)

	return dst
}
