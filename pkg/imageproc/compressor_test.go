package imageproc

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestCompress_ScalesToTargetWidth(t *testing.T) {
	c := NewCompressor()

	uri, err := c.Compress(pngBytes(t, 900, 600))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))

	data, err := DecodeDataURI(uri)
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 300, cfg.Width)
	// 600 * (300/900) = 200, aspect ratio preserved within rounding.
	assert.InDelta(t, 200, cfg.Height, 1)
}

func TestCompress_PreservesAspectRatio(t *testing.T) {
	c := NewCompressor()

	uri, err := c.Compress(pngBytes(t, 640, 480))
	require.NoError(t, err)

	data, err := DecodeDataURI(uri)
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)
	assert.InDelta(t, 225, cfg.Height, 1)
}

func TestCompress_MalformedInput(t *testing.T) {
	c := NewCompressor()

	_, err := c.Compress([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestCompress_OversizedInput(t *testing.T) {
	c := NewCompressor()
	c.MaxBytes = 16

	_, err := c.Compress(pngBytes(t, 64, 64))
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestCompressDataURI_RoundTrip(t *testing.T) {
	c := NewCompressor()

	src, err := c.Compress(pngBytes(t, 450, 300))
	require.NoError(t, err)

	// Re-compressing the produced URI must succeed; output stays 300 wide.
	again, err := c.CompressDataURI(src)
	require.NoError(t, err)

	data, err := DecodeDataURI(again)
	require.NoError(t, err)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)
}

func TestDecodeDataURI_Malformed(t *testing.T) {
	_, err := DecodeDataURI("not-a-data-uri")
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = DecodeDataURI("data:image/png;base64")
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = DecodeDataURI("data:image/png;base64,!!!")
	assert.ErrorIs(t, err, ErrInvalidImage)
}
