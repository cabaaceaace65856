package retouch

import "github.com/rs/zerolog"

// logger is silent until the host installs one.
var logger = zerolog.Nop()

// SetLogger sets the logger used by the editor and the processing pipeline.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// Logger returns the logger in use.
func Logger() *zerolog.Logger {
	return &logger
}
