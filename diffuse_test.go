package retouch

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackblur_ConstantImage(t *testing.T) {
	c := color.NRGBA{R: 17, G: 130, B: 250, A: 255}
	img := solidImage(23, 17, c)

	out := Stackblur(img, 5)
	for y := 0; y < 17; y++ {
		for x := 0; x < 23; x++ {
			assert.Equal(t, c, out.NRGBAAt(x, y))
		}
	}
}

func TestStackblur_SpreadsSymmetrically(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 21, 21))
	img.SetNRGBA(10, 10, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	Stackblur(img, 3)
	center := img.NRGBAAt(10, 10).R

	assert.NotZero(t, center)
	assert.Less(t, center, uint8(255))
	assert.Equal(t, img.NRGBAAt(8, 10), img.NRGBAAt(12, 10))
	assert.Equal(t, img.NRGBAAt(10, 8), img.NRGBAAt(10, 12))
	assert.Greater(t, center, img.NRGBAAt(12, 10).R)
	assert.Zero(t, img.NRGBAAt(0, 0).A)

	assert.Same(t, img, Stackblur(img, 0))
}

func TestDiffuser_FillsHole(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			c := color.NRGBA{R: 200, A: 255}
			if x >= 20 {
				c = color.NRGBA{B: 200, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	mask := solidImage(40, 20, maskUnselected)
	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			mask.SetNRGBA(x, y, maskSelected)
		}
	}

	out, err := Diffuser{}.Inpaint(context.Background(), img, mask)
	require.NoError(t, err)

	// The hole sits in the red half and is filled with a mostly red color.
	c := out.NRGBAAt(8, 10)
	assert.Greater(t, c.R, c.B)
	assert.Equal(t, uint8(255), c.A)

	// Known pixels are untouched.
	assert.Equal(t, color.NRGBA{B: 200, A: 255}, out.NRGBAAt(30, 10))
	assert.Equal(t, color.NRGBA{R: 200, A: 255}, img.NRGBAAt(8, 10))
}

func TestDiffuser_Cancelled(t *testing.T) {
	img := solidImage(10, 10, color.White)
	mask := solidImage(10, 10, maskUnselected)
	mask.SetNRGBA(5, 5, maskSelected)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Diffuser{}.Inpaint(ctx, img, mask)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiffuser_FullMask(t *testing.T) {
	img := solidImage(8, 8, color.White)
	mask := solidImage(8, 8, maskSelected)

	out, err := Diffuser{}.Inpaint(context.Background(), img, mask)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), out.NRGBAAt(3, 3).A)
}
