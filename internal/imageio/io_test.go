package imageio

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImage returns an opaque image so lossless formats round-trip exactly.
func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 13), G: uint8(y * 29), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

func assertSamePixels(t *testing.T, want, got image.Image) {
	t.Helper()
	require.Equal(t, want.Bounds().Size(), got.Bounds().Size())
	wb, gb := want.Bounds(), got.Bounds()
	for y := 0; y < wb.Dy(); y++ {
		for x := 0; x < wb.Dx(); x++ {
			w := color.NRGBAModel.Convert(want.At(wb.Min.X+x, wb.Min.Y+y))
			g := color.NRGBAModel.Convert(got.At(gb.Min.X+x, gb.Min.Y+y))
			if w != g {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, g, w)
			}
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"photo.png":       FormatPNG,
		"photo.JPG":       FormatJPEG,
		"dir/photo.jpeg":  FormatJPEG,
		"anim.gif":        FormatGIF,
		"legacy.bmp":      FormatBMP,
		"scan.tif":        FormatTIFF,
		"scan.TIFF":       FormatTIFF,
		"/tmp/phone.webp": FormatWebP,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	for _, path := range []string{"notes.txt", "noext", ""} {
		_, err := FormatFromPath(path)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat), "FormatFromPath(%q) error = %v", path, err)
	}
}

func TestEncodeDecodeLossless(t *testing.T) {
	src := testImage(23, 17)
	for _, format := range []string{FormatPNG, FormatBMP, FormatTIFF} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, src, format, 0))

			got, detected, err := Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, format, detected)
			assertSamePixels(t, src, got)
		})
	}
}

func TestEncodeDecodeLossy(t *testing.T) {
	src := testImage(40, 30)
	for _, format := range []string{FormatJPEG, FormatGIF} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, src, format, 75))

			got, detected, err := Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, format, detected)
			assert.Equal(t, src.Bounds().Size(), got.Bounds().Size())
		})
	}
}

func TestJPEGQuality(t *testing.T) {
	src := testImage(64, 64)
	var low, high, def bytes.Buffer
	require.NoError(t, Encode(&low, src, FormatJPEG, 5))
	require.NoError(t, Encode(&high, src, FormatJPEG, 100))
	require.NoError(t, Encode(&def, src, FormatJPEG, -1))

	assert.Less(t, low.Len(), high.Len())
	var explicit bytes.Buffer
	require.NoError(t, Encode(&explicit, src, FormatJPEG, DefaultJPEGQuality))
	assert.Equal(t, explicit.Bytes(), def.Bytes(), "out-of-range quality falls back to the default")
}

func TestEncodeUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, testImage(2, 2), FormatWebP, 0)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.Zero(t, buf.Len())
}

func TestDecodeErrors(t *testing.T) {
	_, _, err := Decode(bytes.NewReader(nil))
	assert.True(t, errors.Is(err, ErrEmptyData), "empty input error = %v", err)

	_, _, err = Decode(strings.NewReader("definitely not an image"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrEmptyData))
	assert.Contains(t, err.Error(), "imageio: decode")
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	src := testImage(9, 11)

	path := filepath.Join(dir, "out.png")
	require.NoError(t, Save(path, src, 0))

	got, format, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, format)
	assertSamePixels(t, src, got)

	err = Save(filepath.Join(dir, "out.xyz"), src, 0)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, _, err = Load(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestFit(t *testing.T) {
	img := testImage(200, 100)

	out := Fit(img, 50, 50)
	assert.Equal(t, image.Pt(50, 25), out.Bounds().Size())

	assert.True(t, Fit(img, 400, 400) == image.Image(img), "images that fit are returned as-is")
	assert.True(t, Fit(img, 0, 50) == image.Image(img), "non-positive limits disable fitting")

	tall := Fit(testImage(30, 300), 100, 60)
	assert.Equal(t, image.Pt(6, 60), tall.Bounds().Size())
}
