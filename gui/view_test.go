package gui

import (
	"image"
	"image/color"
	"testing"

	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"github.com/esimov/retouch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGui_WindowSize(t *testing.T) {
	cases := []struct {
		w, h         int
		wantW, wantH int
	}{
		{800, 600, 800, 600},
		{2732, 1536, 1366, 768},
		{1000, 2000, 384, 768},
	}
	for _, tc := range cases {
		w, h := windowSize(tc.w, tc.h)
		assert.Equal(t, tc.wantW, w)
		assert.Equal(t, tc.wantH, h)
	}
}

func TestGui_ButtonOf(t *testing.T) {
	assert.Equal(t, retouch.ButtonPrimary, buttonOf(pointer.Mouse, pointer.ButtonPrimary))
	assert.Equal(t, retouch.ButtonAuxiliary, buttonOf(pointer.Mouse, pointer.ButtonTertiary))
	assert.Equal(t, retouch.ButtonSecondary, buttonOf(pointer.Mouse, pointer.ButtonSecondary))
	assert.Equal(t, retouch.ButtonPrimary, buttonOf(pointer.Touch, 0))
}

func TestGui_RenderView(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:i+4], []uint8{red.R, red.G, red.B, red.A})
	}
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))

	renderView(dst, src, retouch.View{BaseScale: 1, Zoom: 2})
	assert.Equal(t, red, dst.RGBAAt(0, 0))
	assert.Equal(t, red, dst.RGBAAt(19, 19))
	assert.Equal(t, backgroundColor, dst.RGBAAt(25, 5))

	renderView(dst, src, retouch.View{BaseScale: 1, Zoom: 2, ScrollX: 10})
	assert.Equal(t, red, dst.RGBAAt(9, 0))
	assert.Equal(t, backgroundColor, dst.RGBAAt(11, 0))
}

func TestGui_KeyActions(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	ed := retouch.New(retouch.DefaultOptions())
	require.NoError(t, ed.Initialize(img, retouch.NewHeadless(100, 100)))
	defer ed.Dispose()

	require.NoError(t, keyActions["E"](ed))
	assert.Equal(t, retouch.Eraser, ed.Tool())
	require.NoError(t, keyActions["H"](ed))
	assert.Equal(t, retouch.Hand, ed.Tool())

	require.NoError(t, keyActions["+"](ed))
	assert.InDelta(t, 1.25, ed.Zoom(), 1e-9)
	require.NoError(t, keyActions["0"](ed))
	assert.InDelta(t, 1.0, ed.Zoom(), 1e-9)

	size := ed.BrushSize()
	require.NoError(t, keyActions[key.NameUpArrow](ed))
	assert.Equal(t, size+10, ed.BrushSize())
}
