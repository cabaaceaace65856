package retouch

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Defaults(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, opts, opts.Normalize())
	assert.Equal(t, 110, opts.BrushSize)
	assert.Equal(t, 0.25, opts.MinZoom)
	assert.Equal(t, 4.0, opts.MaxZoom)
	assert.Equal(t, 512, opts.ModelSize)
}

func TestOptions_Normalize(t *testing.T) {
	assert := assert.New(t)

	opts := Options{
		BrushSize:    500,
		MinBrushSize: 50,
		MaxBrushSize: 10,
		MaskColor:    "rgba(255, 0, 0, 0)",
		MinZoom:      8,
		MaxZoom:      2,
		ZoomStep:     -1,
	}.Normalize()

	assert.Equal(10, opts.MinBrushSize)
	assert.Equal(50, opts.MaxBrushSize)
	assert.Equal(50, opts.BrushSize)
	assert.Equal(2.0, opts.MinZoom)
	assert.Equal(8.0, opts.MaxZoom)
	assert.Equal(DefaultZoomStep, opts.ZoomStep)
	assert.Equal(DefaultMaskColor, opts.MaskColor)
	assert.Equal(DefaultContainerWidth, opts.ContainerWidth)

	// A zero value gets the defaults.
	assert.Equal(DefaultOptions(), Options{}.Normalize())
}

func TestOptions_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "retouch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
brush_size: 40
max_zoom: 8
mask_color: "#00ff0080"
model_size: 256
`), 0o644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, 40, opts.BrushSize)
	assert.Equal(t, 8.0, opts.MaxZoom)
	assert.Equal(t, DefaultMinZoom, opts.MinZoom)
	assert.Equal(t, 256, opts.ModelSize)
	assert.Equal(t, "#00ff0080", opts.MaskColor)

	require.NoError(t, os.WriteFile(path, []byte("brush_size: [1, 2"), 0o644))
	_, err = LoadOptions(path)
	assert.Error(t, err)

	_, err = LoadOptions(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestOptions_ParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
		err  bool
	}{
		{in: "rgba(255, 0, 0, 0.5)", want: color.NRGBA{R: 255, A: 128}},
		{in: "rgb(10,20,30)", want: color.NRGBA{R: 10, G: 20, B: 30, A: 255}},
		{in: "#ff0000", want: color.NRGBA{R: 255, A: 255}},
		{in: "#0f08", err: true},
		{in: "#f00", want: color.NRGBA{R: 255, A: 255}},
		{in: "#11223344", want: color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
		{in: "rgba(1, 2)", err: true},
		{in: "red", err: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			if tc.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
