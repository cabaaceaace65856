//go:build ocr

package detect

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TextDetector finds words, typically text watermarks, with Tesseract.
type TextDetector struct {
	client *gosseract.Client
	// MinConfidence drops words recognized with a lower confidence (0-100).
	MinConfidence float64
}

// NewTextDetector creates a Tesseract client for the given languages.
func NewTextDetector(langs ...string) (*TextDetector, error) {
	if len(langs) == 0 {
		langs = []string{"eng"}
	}
	client := gosseract.NewClient()
	if err := client.SetLanguage(langs...); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}
	return &TextDetector{client: client, MinConfidence: 40}, nil
}

// Close releases the Tesseract client.
func (td *TextDetector) Close() error {
	return td.client.Close()
}

// Detect returns the bounding boxes of the words found in img.
func (td *TextDetector) Detect(ctx context.Context, img image.Image) ([]Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	if err := td.client.SetPageSegMode(gosseract.PSM_SPARSE_TEXT); err != nil {
		return nil, fmt.Errorf("failed to set PSM: %w", err)
	}
	if err := td.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := td.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("failed to get boxes: %w", err)
	}

	var regions []Region
	for _, box := range boxes {
		if strings.TrimSpace(box.Word) == "" || box.Confidence < td.MinConfidence {
			continue
		}
		regions = append(regions, Region{
			Bounds: box.Box.Add(img.Bounds().Min),
			Score:  float32(box.Confidence),
			Label:  "text",
		})
	}
	return regions, nil
}
