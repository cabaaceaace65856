package retouch

import "image"

// Stackblur blurs img in place with a triangular (stack) kernel of the given
// radius, first along rows, then along columns, and returns img.
// Edges are extended by repeating the border pixels.
func Stackblur(img *image.NRGBA, radius int) *image.NRGBA {
	if radius < 1 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return img
	}
	line := make([]uint32, max(w, h)*4)

	for y := 0; y < h; y++ {
		blurLine(img.Pix, img.PixOffset(b.Min.X, b.Min.Y+y), 4, w, radius, line)
	}
	for x := 0; x < w; x++ {
		blurLine(img.Pix, img.PixOffset(b.Min.X+x, b.Min.Y), img.Stride, h, radius, line)
	}
	return img
}

// blurLine convolves n pixels starting at offset start, spaced step bytes apart.
// The kernel weights are r+1-|d| for d in [-r, r]. The running sum is updated
// by removing the left half (including the center) and adding the next r+1 pixels.
func blurLine(pix []uint8, start, step, n, r int, buf []uint32) {
	for i := 0; i < n; i++ {
		o := start + i*step
		for c := 0; c < 4; c++ {
			buf[i*4+c] = uint32(pix[o+c])
		}
	}
	at := func(i, c int) uint32 {
		if i < 0 {
			i = 0
		} else if i >= n {
			i = n - 1
		}
		return buf[i*4+c]
	}
	div := uint32((r + 1) * (r + 1))

	for c := 0; c < 4; c++ {
		var sum, left, right uint32
		for d := -r; d <= r; d++ {
			w := r + 1 - d
			if d < 0 {
				w = r + 1 + d
			}
			sum += uint32(w) * at(d, c)
		}
		for k := -r; k <= 0; k++ {
			left += at(k, c)
		}
		for k := 1; k <= r+1; k++ {
			right += at(k, c)
		}

		for i := 0; i < n; i++ {
			pix[start+i*step+c] = uint8((sum + div/2) / div)

			sum = sum + right - left
			left = left + at(i+1, c) - at(i-r, c)
			right = right + at(i+r+2, c) - at(i+1, c)
		}
	}
}
