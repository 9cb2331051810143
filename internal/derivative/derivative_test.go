package derivative

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func encodeTransparentPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: 255, G: 0, B: 0, A: uint8(x % 256)})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeDims(t *testing.T, data []byte) (int, int, string) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg.Width, cfg.Height, format
}

func TestGenerate_FitsBoundingBox(t *testing.T) {
	src := encodeJPEG(t, 600, 400)

	out, err := Generate(src, Thumbnail)
	require.NoError(t, err)

	w, h, format := decodeDims(t, out)
	assert.Equal(t, "jpeg", format)
	assert.LessOrEqual(t, w, Thumbnail.MaxWidth)
	assert.LessOrEqual(t, h, Thumbnail.MaxHeight)

	// 600x400 into 150x150 keeps the 3:2 ratio
	assert.Equal(t, 150, w)
	assert.Equal(t, 100, h)
}

func TestGenerate_PreviewBox(t *testing.T) {
	src := encodeJPEG(t, 1600, 1200)

	out, err := Generate(src, Preview)
	require.NoError(t, err)

	w, h, _ := decodeDims(t, out)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestGenerate_NeverUpscales(t *testing.T) {
	src := encodeJPEG(t, 100, 80)

	out, err := Generate(src, Thumbnail)
	require.NoError(t, err)

	w, h, _ := decodeDims(t, out)
	assert.Equal(t, 100, w)
	assert.Equal(t, 80, h)
}

func TestGenerate_PortraitAspect(t *testing.T) {
	src := encodeJPEG(t, 400, 600)

	out, err := Generate(src, Thumbnail)
	require.NoError(t, err)

	w, h, _ := decodeDims(t, out)
	assert.Equal(t, 100, w)
	assert.Equal(t, 150, h)
}

func TestGenerate_FlattensTransparency(t *testing.T) {
	src := encodeTransparentPNG(t, 300, 300)

	out, err := Generate(src, Thumbnail)
	require.NoError(t, err)

	w, h, format := decodeDims(t, out)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 150, w)
	assert.Equal(t, 150, h)
}

func TestGenerate_UnreadableSource(t *testing.T) {
	_, err := Generate([]byte("not an image"), Thumbnail)
	assert.Error(t, err)
}
