package main

import (
	"errors"

	"github.com/esimov/retouch"
	"github.com/esimov/retouch/detect"
)

// backends lists the available inpainters by name. Optional backends
// register themselves from build tagged files.
var backends = map[string]func() retouch.Inpainter{
	"diffuse": func() retouch.Inpainter { return retouch.Diffuser{} },
}

// newTextDetector is replaced when the binary is built with the ocr tag.
var newTextDetector = func() (detect.Detector, error) {
	return nil, errors.New("text detection requires a build with the ocr tag")
}
