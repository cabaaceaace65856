package retouch

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned when the editor is used before Initialize or after Dispose.
	ErrNotInitialized = errors.New("editor not initialized")
	// ErrBusy is returned when the tool is switched during a stroke or a pan.
	ErrBusy = errors.New("editor busy: a stroke or pan is in progress")
	// ErrUnknownTool is returned for unsupported tool names.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrNotPaintTool is returned when a stroke is requested with the hand tool.
	ErrNotPaintTool = errors.New("the hand tool cannot paint")
	// ErrEmptyMask is returned when processing is requested without a painted mask.
	ErrEmptyMask = errors.New("mask is empty")
)

func errInvalidSize(w, h int) error {
	return fmt.Errorf("invalid surface size %dx%d", w, h)
}
