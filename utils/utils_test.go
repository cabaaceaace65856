package utils

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtils_Math(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(2, Min(2, 5))
	assert.Equal(2, Min(5, 2))
	assert.Equal(5, Max(2, 5))

	assert.Equal(0.25, Clamp(0.1, 0.25, 4.0))
	assert.Equal(4.0, Clamp(10.0, 0.25, 4.0))
	assert.Equal(1.5, Clamp(1.5, 0.25, 4.0))
}

func TestUtils_DecorateText(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(ErrorColor+"failed"+DefaultColor, DecorateText("failed", ErrorMessage))
	assert.Equal(SuccessColor+"done"+DefaultColor, DecorateText("done", SuccessMessage))
	assert.Equal("plain", DecorateText("plain", MessageType(42)))
}

func TestUtils_FormatTime(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal("2m 5.00s", FormatTime(2*time.Minute+5*time.Second))
	assert.Equal("1h 1m 1.00s", FormatTime(time.Hour+time.Minute+time.Second))
	assert.Equal("1d 2h 0m 0.00s", FormatTime(26*time.Hour))
	assert.Equal("50%", Percent(0.5))
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	assert.True(t, IsValidUrl("https://github.com/esimov/retouch/"))
	assert.False(t, IsValidUrl("sample.jpg"))
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "sample.png")

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 4, 4))))
	require.NoError(t, os.WriteFile(fname, buf.Bytes(), 0o644))

	ctype, err := DetectContentType(fname)
	require.NoError(t, err)
	assert.True(t, strings.Contains(ctype, "image"))
	assert.True(t, IsImage(fname))

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("not an image"), 0o644))
	assert.False(t, IsImage(txt))
}

func TestUtils_Spinner(t *testing.T) {
	var buf bytes.Buffer

	s := NewSpinner("working", 5*time.Millisecond, false)
	s.SetWriter(&buf)
	s.StopMsg = "finished\n"
	s.Start()
	s.SetMessage("still working")
	time.Sleep(20 * time.Millisecond)
	s.Stop()
	s.Stop()

	assert.Contains(t, buf.String(), "working")
	assert.True(t, strings.HasSuffix(buf.String(), "finished\n"))
}
