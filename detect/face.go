package detect

import (
	"context"
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"
	"github.com/esimov/retouch/utils"
)

// FaceDetector finds faces with a pigo cascade classifier.
type FaceDetector struct {
	classifier *pigo.Pigo

	// MinSize is the smallest face size in pixels.
	MinSize     int
	ShiftFactor float64
	ScaleFactor float64
	// Angle is the in-plane rotation of the faces, in the [0, 1] range.
	Angle float64
	// IoU is the intersection over union threshold used to merge detections.
	IoU float64
	// MinScore drops detections with a lower quality score.
	MinScore float32
}

// NewFaceDetector unpacks a pigo cascade file.
func NewFaceDetector(cascade []byte) (*FaceDetector, error) {
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("error unpacking the cascade file: %w", err)
	}
	return &FaceDetector{
		classifier:  classifier,
		MinSize:     20,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		IoU:         0.2,
		MinScore:    5.0,
	}, nil
}

// LoadFaceDetector reads and unpacks a pigo cascade file from disk.
func LoadFaceDetector(path string) (*FaceDetector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read the cascade file: %w", err)
	}
	return NewFaceDetector(data)
}

// Detect returns the faces found in img.
func (fd *FaceDetector) Detect(ctx context.Context, img image.Image) ([]Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b := img.Bounds()
	cols, rows := b.Dx(), b.Dy()

	params := pigo.CascadeParams{
		MinSize:     fd.MinSize,
		MaxSize:     utils.Max(cols, rows),
		ShiftFactor: fd.ShiftFactor,
		ScaleFactor: fd.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(img),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	// The result contains quadruplets representing the row, column, scale and detection score.
	dets := fd.classifier.RunCascade(params, fd.Angle)
	dets = fd.classifier.ClusterDetections(dets, fd.IoU)

	return faceRegions(dets, fd.MinScore, b), nil
}

// faceRegions converts pigo detections into regions clipped to bounds.
func faceRegions(dets []pigo.Detection, minScore float32, bounds image.Rectangle) []Region {
	var regions []Region
	for _, d := range dets {
		if d.Q < minScore {
			continue
		}
		half := d.Scale / 2
		r := image.Rect(d.Col-half, d.Row-half, d.Col+half, d.Row+half).
			Add(bounds.Min).
			Intersect(bounds)
		if r.Empty() {
			continue
		}
		regions = append(regions, Region{Bounds: r, Score: d.Q, Label: "face"})
	}
	return regions
}
