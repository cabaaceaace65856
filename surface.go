package retouch

import (
	"fmt"
	"image"

	"github.com/esimov/retouch/imop"
)

// Layer identifies one of the editor surfaces. The numeric order is the z-order.
type Layer int

const (
	LayerImage Layer = iota
	LayerMask
	LayerCursor
	layerCount
)

func (l Layer) String() string {
	switch l {
	case LayerImage:
		return "image"
	case LayerMask:
		return "mask"
	case LayerCursor:
		return "cursor"
	}
	return fmt.Sprintf("layer(%d)", int(l))
}

// canvas owns the three native sized layers of an editing session.
type canvas struct {
	platform Platform
	layers   [layerCount]Surface
	width    int
	height   int
}

// newCanvas allocates every layer at the native image size and draws the image
// into the base layer. Already allocated layers are released on failure.
func newCanvas(p Platform, img image.Image) (*canvas, error) {
	b := img.Bounds()
	c := &canvas{platform: p, width: b.Dx(), height: b.Dy()}

	for l := LayerImage; l < layerCount; l++ {
		s, err := p.Allocate(c.width, c.height)
		if err != nil {
			c.dispose()
			return nil, fmt.Errorf("could not allocate %s layer: %w", l, err)
		}
		if s.Bounds().Dx() != c.width || s.Bounds().Dy() != c.height {
			s.Release()
			c.dispose()
			return nil, fmt.Errorf("%s layer: %w", l, errInvalidSize(s.Bounds().Dx(), s.Bounds().Dy()))
		}
		c.layers[l] = s
	}
	c.layers[LayerImage].DrawImage(img, image.Point{})

	return c, nil
}

func (c *canvas) layer(l Layer) Surface {
	return c.layers[l]
}

// transform updates the display size of the layers. Native buffers are never reallocated.
func (c *canvas) transform(scale float64) {
	c.platform.Display(float64(c.width)*scale, float64(c.height)*scale)
}

// flatten composites the layers in z-order into a single native sized raster.
func (c *canvas) flatten() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	comp := imop.InitOp()

	for l := LayerImage; l < layerCount; l++ {
		if s := c.layers[l]; s != nil {
			comp.Draw(dst, s.ReadPixels(), image.Point{})
		}
	}
	return dst
}

func (c *canvas) dispose() {
	for l := layerCount - 1; l >= LayerImage; l-- {
		if c.layers[l] != nil {
			c.layers[l].Release()
			c.layers[l] = nil
		}
	}
}
