package retouch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewport_ResetToFit(t *testing.T) {
	cases := []struct {
		name      string
		cw, ch    float64
		wantScale float64
	}{
		{"smaller container", 400, 300, 0.5},
		{"narrow container", 200, 600, 0.25},
		{"larger container", 1600, 1200, 1},
		{"exact fit", 800, 600, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ed, hl := newTestEditor(t, 800, 600, tc.cw, tc.ch)
			require.NoError(t, ed.SetZoom(3))
			require.NoError(t, ed.PanBy(-50, -50))

			require.NoError(t, ed.ResetZoom())
			v := ed.View()
			assert.Equal(t, tc.wantScale, v.BaseScale)
			assert.Equal(t, 1.0, v.Zoom)
			assert.Zero(t, v.ScrollX)
			assert.Zero(t, v.ScrollY)

			w, h := hl.DisplaySize()
			assert.Equal(t, 800*tc.wantScale, w)
			assert.Equal(t, 600*tc.wantScale, h)
		})
	}
}

func TestViewport_FallbackContainer(t *testing.T) {
	ed, _ := newTestEditor(t, 1600, 1000, 0, 0)
	assert.Equal(t, 0.5, ed.View().BaseScale)
}

func TestViewport_ZoomClamp(t *testing.T) {
	ed, _ := newTestEditor(t, 100, 100, 200, 200)
	opts := ed.Options()

	for _, z := range []float64{-10, 0, 0.1, 0.25, 1, 3.99, 4, 100} {
		require.NoError(t, ed.SetZoom(z))
		assert.GreaterOrEqual(t, ed.Zoom(), opts.MinZoom)
		assert.LessOrEqual(t, ed.Zoom(), opts.MaxZoom)
	}

	for i := 0; i < 50; i++ {
		assert.NoError(t, ed.ZoomIn())
	}
	assert.Equal(t, opts.MaxZoom, ed.Zoom())

	for i := 0; i < 50; i++ {
		assert.NoError(t, ed.ZoomOut())
	}
	assert.Equal(t, opts.MinZoom, ed.Zoom())
}

func TestViewport_ZoomNotifications(t *testing.T) {
	ed, hl := newTestEditor(t, 100, 100, 200, 200)

	var got []float64
	sub := ed.OnZoomChange(func(z float64) { got = append(got, z) })

	require.NoError(t, ed.ZoomIn())
	require.NoError(t, ed.ZoomOut())
	hl.Wheel(50, 50, -1)
	require.NoError(t, ed.SetZoom(4))
	require.NoError(t, ed.ZoomIn())
	require.NoError(t, ed.ResetZoom())

	assert.Equal(t, []float64{1.25, 1, 1.25, 4, 1}, got)

	sub.Remove()
	require.NoError(t, ed.ZoomIn())
	assert.Len(t, got, 5)
}

func TestViewport_WheelAnchor(t *testing.T) {
	ed, hl := newTestEditor(t, 800, 600, 400, 300)

	anchor := func(cx, cy, dy float64) {
		x, y, err := ed.ClientToImage(cx, cy)
		require.NoError(t, err)

		hl.Wheel(cx, cy, dy)

		gx, gy, err := ed.ImageToClient(x, y)
		require.NoError(t, err)
		assert.InDelta(t, cx, gx, 1e-9)
		assert.InDelta(t, cy, gy, 1e-9)
	}

	anchor(100, 80, -1)
	assert.Equal(t, 1.25, ed.Zoom())
	assert.InDelta(t, 25, ed.View().ScrollX, 1e-9)
	assert.InDelta(t, 20, ed.View().ScrollY, 1e-9)

	anchor(100, 80, -1)
	anchor(300, 200, -1)
	assert.Equal(t, 1.75, ed.Zoom())
	anchor(250, 150, 1)
	assert.Equal(t, 1.5, ed.Zoom())
}

func TestViewport_WheelAnchorClamped(t *testing.T) {
	// The image is wider than the container but shorter: only the horizontal
	// axis can scroll, the vertical offset is pinned to zero.
	ed, hl := newTestEditor(t, 800, 600, 400, 400)

	x, y, err := ed.ClientToImage(200, 250)
	require.NoError(t, err)
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 500.0, y)

	hl.Wheel(200, 250, -1)
	assert.Equal(t, 1.25, ed.Zoom())
	assert.InDelta(t, 50, ed.View().ScrollX, 1e-9)
	assert.Zero(t, ed.View().ScrollY)

	gx, gy, err := ed.ImageToClient(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 200, gx, 1e-9)
	assert.InDelta(t, 312.5, gy, 1e-9)
}

func TestViewport_PanClamp(t *testing.T) {
	ed, _ := newTestEditor(t, 400, 400, 200, 200)

	// Nothing to scroll while the image fits.
	require.NoError(t, ed.PanBy(-100, -100))
	assert.Zero(t, ed.View().ScrollX)

	require.NoError(t, ed.SetZoom(2))
	require.NoError(t, ed.PanBy(-1000, -50))
	assert.Equal(t, 200.0, ed.View().ScrollX)
	assert.Equal(t, 50.0, ed.View().ScrollY)

	require.NoError(t, ed.PanBy(1000, 1000))
	assert.Zero(t, ed.View().ScrollX)
	assert.Zero(t, ed.View().ScrollY)
}

func TestTransform_ClientToImage(t *testing.T) {
	v := View{BaseScale: 0.5, Zoom: 2, ScrollX: 30, ScrollY: 10}
	vp := Viewport{X: 100, Y: 50, Width: 300, Height: 200}

	x, y := v.ClientToImage(vp, 100, 50)
	assert.Equal(t, 30.0, x)
	assert.Equal(t, 10.0, y)

	v.Zoom = 4
	x, y = v.ClientToImage(vp, 120, 70)
	assert.Equal(t, 25.0, x)
	assert.Equal(t, 15.0, y)

	cx, cy := v.ImageToClient(vp, x, y)
	assert.Equal(t, 120.0, cx)
	assert.Equal(t, 70.0, cy)

	// Points outside the image are still mapped.
	x, _ = v.ClientToImage(vp, 0, 0)
	assert.Less(t, x, 0.0)
}
