//go:build cv

package main

import (
	"github.com/esimov/retouch"
	"github.com/esimov/retouch/cv"
)

func init() {
	backends["telea"] = func() retouch.Inpainter { return cv.NewInpainter() }
	backends["ns"] = func() retouch.Inpainter {
		in := cv.NewInpainter()
		in.Method = cv.NS
		return in
	}
}
