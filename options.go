package retouch

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/esimov/retouch/utils"
	"gopkg.in/yaml.v3"
)

// Default editor settings.
const (
	DefaultBrushSize       = 110
	DefaultMinBrushSize    = 5
	DefaultMaxBrushSize    = 200
	DefaultMaskColor       = "rgba(255, 0, 0, 0.5)"
	DefaultMinZoom         = 0.25
	DefaultMaxZoom         = 4.0
	DefaultZoomStep        = 0.25
	DefaultModelSize       = 512
	DefaultContainerWidth  = 800
	DefaultContainerHeight = 500
)

// Options holds the editor configuration.
type Options struct {
	// BrushSize is the initial brush diameter in image pixels.
	BrushSize    int `yaml:"brush_size"`
	MinBrushSize int `yaml:"min_brush_size"`
	MaxBrushSize int `yaml:"max_brush_size"`
	// MaskColor is the paint tint. Only its alpha affects the selection.
	MaskColor string  `yaml:"mask_color"`
	MinZoom   float64 `yaml:"min_zoom"`
	MaxZoom   float64 `yaml:"max_zoom"`
	ZoomStep  float64 `yaml:"zoom_step"`
	// ModelSize is the square edge of the mask handed to the inpainting model.
	ModelSize int `yaml:"model_size"`
	// ContainerWidth and ContainerHeight are used for fitting when the
	// platform reports an empty viewport.
	ContainerWidth  int `yaml:"container_width"`
	ContainerHeight int `yaml:"container_height"`
}

// DefaultOptions returns the default editor configuration.
func DefaultOptions() Options {
	return Options{
		BrushSize:       DefaultBrushSize,
		MinBrushSize:    DefaultMinBrushSize,
		MaxBrushSize:    DefaultMaxBrushSize,
		MaskColor:       DefaultMaskColor,
		MinZoom:         DefaultMinZoom,
		MaxZoom:         DefaultMaxZoom,
		ZoomStep:        DefaultZoomStep,
		ModelSize:       DefaultModelSize,
		ContainerWidth:  DefaultContainerWidth,
		ContainerHeight: DefaultContainerHeight,
	}
}

// LoadOptions reads a YAML configuration file on top of the defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("could not read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	return opts.Normalize(), nil
}

// Normalize repairs out of range values. Missing values take their defaults,
// inverted bounds are swapped and the initial brush size is clamped.
func (o Options) Normalize() Options {
	def := DefaultOptions()

	if o.MinBrushSize <= 0 {
		o.MinBrushSize = def.MinBrushSize
	}
	if o.MaxBrushSize <= 0 {
		o.MaxBrushSize = def.MaxBrushSize
	}
	if o.MinBrushSize > o.MaxBrushSize {
		o.MinBrushSize, o.MaxBrushSize = o.MaxBrushSize, o.MinBrushSize
	}
	if o.BrushSize == 0 {
		o.BrushSize = def.BrushSize
	}
	o.BrushSize = utils.Clamp(o.BrushSize, o.MinBrushSize, o.MaxBrushSize)

	if o.MinZoom <= 0 {
		o.MinZoom = def.MinZoom
	}
	if o.MaxZoom <= 0 {
		o.MaxZoom = def.MaxZoom
	}
	if o.MinZoom > o.MaxZoom {
		o.MinZoom, o.MaxZoom = o.MaxZoom, o.MinZoom
	}
	if o.ZoomStep <= 0 {
		o.ZoomStep = def.ZoomStep
	}

	if c, err := ParseColor(o.MaskColor); err != nil || c.A == 0 {
		o.MaskColor = def.MaskColor
	}
	if o.ModelSize <= 0 {
		o.ModelSize = def.ModelSize
	}
	if o.ContainerWidth <= 0 {
		o.ContainerWidth = def.ContainerWidth
	}
	if o.ContainerHeight <= 0 {
		o.ContainerHeight = def.ContainerHeight
	}
	return o
}

// ParseColor parses a CSS style color: #rgb, #rrggbb, #rrggbbaa, rgb(r, g, b) or rgba(r, g, b, a)
// where a is in the [0, 1] range.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch {
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) == 6 {
			hex += "ff"
		}
		if len(hex) != 8 {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
	case strings.HasPrefix(s, "rgb"):
		open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
		if open < 0 || end < open {
			return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
		}
		parts := strings.Split(s[open+1:end], ",")
		if len(parts) != 3 && len(parts) != 4 {
			return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
		}
		var ch [4]uint8
		ch[3] = 255
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("invalid color component %q: %w", p, err)
			}
			if i == 3 {
				v *= 255
			}
			ch[i] = uint8(utils.Clamp(v, 0, 255) + 0.5)
		}
		return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
	}
	return color.NRGBA{}, fmt.Errorf("unsupported color format %q", s)
}
