package retouch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Script is a recorded list of strokes in image coordinates.
//
//	strokes:
//	  - tool: brush
//	    size: 40
//	    points: [{x: 10, y: 10}, {x: 120, y: 14}]
type Script struct {
	Strokes []ScriptStroke `yaml:"strokes"`
}

// ScriptStroke is a single stroke of a Script. A zero Size keeps the current brush size.
type ScriptStroke struct {
	Tool   string  `yaml:"tool"`
	Size   int     `yaml:"size"`
	Points []Point `yaml:"points"`
}

// ParseScript decodes a YAML stroke script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("could not parse stroke script: %w", err)
	}
	for i, st := range s.Strokes {
		if _, err := ParseTool(st.Tool); err != nil {
			return nil, fmt.Errorf("stroke %d: %w", i, err)
		}
	}
	return &s, nil
}

// LoadScript reads a YAML stroke script from a file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read stroke script: %w", err)
	}
	return ParseScript(data)
}

// Replay plays the script back as pointer input dispatched by h, which must be
// the platform e was initialized with. Image coordinates are projected through
// the current view, so the replay honours zoom and scroll. Hand tool strokes drag
// the view by the offsets of their points from the first one, in client pixels.
func (s *Script) Replay(e *Editor, h *Headless) error {
	if !e.Initialized() {
		return ErrNotInitialized
	}
	for i, st := range s.Strokes {
		if len(st.Points) == 0 {
			continue
		}
		tool, err := ParseTool(st.Tool)
		if err != nil {
			return fmt.Errorf("stroke %d: %w", i, err)
		}
		if err := e.SetTool(tool); err != nil {
			return fmt.Errorf("stroke %d: %w", i, err)
		}
		if st.Size > 0 {
			e.SetBrushSize(st.Size)
		}

		project := func(p Point) (float64, float64) {
			x, y, _ := e.ImageToClient(p.X, p.Y)
			return x, y
		}
		if tool == Hand {
			x0, y0 := project(st.Points[0])
			h.PointerDown(x0, y0, ButtonPrimary)
			for _, p := range st.Points[1:] {
				h.PointerMove(x0+(p.X-st.Points[0].X), y0+(p.Y-st.Points[0].Y))
			}
			h.PointerUp(x0, y0)
			continue
		}

		x, y := project(st.Points[0])
		h.PointerDown(x, y, ButtonPrimary)
		for _, p := range st.Points[1:] {
			x, y = project(p)
			h.PointerMove(x, y)
		}
		h.PointerUp(x, y)
	}
	e.clearCursor()

	return nil
}
