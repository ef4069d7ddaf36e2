package imageprep

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noisyImage produces an image that compresses poorly, so the quality
// stepping loop actually has to work.
func noisyImage(width, height int) image.Image {
	rng := rand.New(rand.NewSource(1))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCompressShrinksOversizeImage(t *testing.T) {
	raw := encodePNG(t, noisyImage(1600, 1200))
	require.Greater(t, len(raw), DefaultMaxBytes)

	result := Compress(raw, "image/png", DefaultMaxBytes)

	assert.True(t, result.Compressed)
	assert.Equal(t, "image/jpeg", result.ContentType)

	decoded, _, err := image.Decode(bytes.NewReader(result.Data))
	require.NoError(t, err)

	// Aspect ratio preserved and dimensions capped.
	bounds := decoded.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), MaxWidth)
	assert.LessOrEqual(t, bounds.Dy(), MaxHeight)
	assert.Equal(t, MaxWidth, bounds.Dx())
	assert.Equal(t, 900, bounds.Dy())
}

func TestCompressStopsAtQualityFloor(t *testing.T) {
	raw := encodePNG(t, noisyImage(1200, 1200))

	// An absurdly small ceiling cannot be met; the pipeline must stop at the
	// floor and accept the oversize result rather than loop or fail.
	result := Compress(raw, "image/png", 1024)

	assert.True(t, result.Compressed)
	assert.Greater(t, len(result.Data), 1024)

	// The accepted result is what the floor quality produces.
	decoded, _, err := image.Decode(bytes.NewReader(result.Data))
	require.NoError(t, err)
	floor, err := encodeJPEG(decoded, minQuality)
	require.NoError(t, err)
	assert.InDelta(t, len(floor), len(result.Data), float64(len(floor)))
}

func TestCompressNeverFailsOnGarbage(t *testing.T) {
	garbage := []byte("definitely not an image")

	result := Compress(garbage, "application/octet-stream", DefaultMaxBytes)

	assert.False(t, result.Compressed)
	assert.Equal(t, garbage, result.Data)
	assert.Equal(t, "application/octet-stream", result.ContentType)
}

func TestCompressDoesNotUpscaleSmallImages(t *testing.T) {
	raw := encodePNG(t, noisyImage(300, 200))

	result := Compress(raw, "image/png", DefaultMaxBytes)
	require.True(t, result.Compressed)

	decoded, _, err := image.Decode(bytes.NewReader(result.Data))
	require.NoError(t, err)
	assert.Equal(t, 300, decoded.Bounds().Dx())
	assert.Equal(t, 200, decoded.Bounds().Dy())
}

func TestCompressHandlesJPEGInput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, noisyImage(1400, 700), &jpeg.Options{Quality: 95}))

	result := Compress(buf.Bytes(), "image/jpeg", DefaultMaxBytes)
	assert.True(t, result.Compressed)

	decoded, _, err := image.Decode(bytes.NewReader(result.Data))
	require.NoError(t, err)
	assert.Equal(t, MaxWidth, decoded.Bounds().Dx())
	assert.Equal(t, 600, decoded.Bounds().Dy())
}
