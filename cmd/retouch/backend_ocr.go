//go:build ocr

package main

import "github.com/esimov/retouch/detect"

func init() {
	newTextDetector = func() (detect.Detector, error) {
		return detect.NewTextDetector()
	}
}
