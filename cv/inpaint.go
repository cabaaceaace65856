//go:build cv

// Package cv provides an OpenCV backed inpainter.
package cv

import (
	"context"
	"fmt"
	"image"
	"image/draw"

	"github.com/esimov/retouch"
	"gocv.io/x/gocv"
)

// Method selects the OpenCV inpainting algorithm.
type Method string

const (
	Telea Method = "telea"
	NS    Method = "ns"
)

// Inpainter fills the masked region with cv::inpaint.
type Inpainter struct {
	Method Method
	// Radius is the neighborhood considered around every inpainted pixel.
	Radius float32
}

var _ retouch.Inpainter = (*Inpainter)(nil)

// NewInpainter returns an inpainter using the Telea algorithm.
func NewInpainter() *Inpainter {
	return &Inpainter{Method: Telea, Radius: 3}
}

// Inpaint implements retouch.Inpainter.
func (in *Inpainter) Inpaint(ctx context.Context, img, mask *image.NRGBA) (*image.NRGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b := img.Bounds()
	if mask.Bounds().Size() != b.Size() {
		return nil, fmt.Errorf("mask size %v does not match image size %v", mask.Bounds().Size(), b.Size())
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	src, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC4, rgba.Pix)
	if err != nil {
		return nil, fmt.Errorf("failed to create source matrix: %w", err)
	}
	defer src.Close()

	bgr := gocv.NewMat()
	defer bgr.Close()
	gocv.CvtColor(src, &bgr, gocv.ColorRGBAToBGR)

	m := gocv.NewMatWithSize(b.Dy(), b.Dx(), gocv.MatTypeCV8UC1)
	defer m.Close()
	mb := mask.Bounds()
	for y := 0; y < mb.Dy(); y++ {
		for x := 0; x < mb.Dx(); x++ {
			if mask.NRGBAAt(mb.Min.X+x, mb.Min.Y+y).R > 127 {
				m.SetUCharAt(y, x, 255)
			}
		}
	}

	algo := gocv.Telea
	if in.Method == NS {
		algo = gocv.NS
	}
	radius := in.Radius
	if radius <= 0 {
		radius = 3
	}

	out := gocv.NewMat()
	defer out.Close()
	gocv.Inpaint(bgr, m, &out, radius, algo)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := out.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert the result: %w", err)
	}
	dst := image.NewNRGBA(res.Bounds())
	draw.Draw(dst, dst.Bounds(), res, res.Bounds().Min, draw.Src)

	return dst, nil
}
