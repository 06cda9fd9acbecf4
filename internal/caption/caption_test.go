package caption

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestStampDrawsAlongBottom(t *testing.T) {
	bg := color.NRGBA{R: 200, G: 40, B: 40, A: 255}
	src := uniform(160, 120, bg)

	out, err := Stamp(src, "Sepia", Options{Size: 16})
	require.NoError(t, err)
	require.Equal(t, src.Bounds(), out.Bounds())

	assert.Equal(t, bg, out.NRGBAAt(80, 5), "top rows are untouched")
	assert.NotEqual(t, bg, out.NRGBAAt(159, 119), "the backdrop covers the bottom edge")
	assert.Equal(t, bg, src.NRGBAAt(159, 119), "the source is not modified")

	// Some pixel in the strip carries the white label.
	found := false
	for y := 90; y < 120 && !found; y++ {
		for x := 0; x < 80; x++ {
			if c := out.NRGBAAt(x, y); c.R > 200 && c.G > 200 && c.B > 200 {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "no label pixels found in the caption strip")
}

func TestStampEmptyLabelCopies(t *testing.T) {
	src := uniform(8, 8, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	sub := src.SubImage(image.Rect(2, 2, 6, 6))

	out, err := Stamp(sub, "", Options{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), out.Bounds())
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 255}, out.NRGBAAt(0, 0))
}

func TestStampCustomColors(t *testing.T) {
	src := uniform(100, 60, color.NRGBA{A: 255})
	backdrop := color.NRGBA{B: 255, A: 255}

	out, err := Stamp(src, "x", Options{Size: 12, Text: color.NRGBA{G: 255, A: 255}, Backdrop: backdrop})
	require.NoError(t, err)
	assert.Equal(t, backdrop, out.NRGBAAt(99, 59))
}

func TestMeasure(t *testing.T) {
	empty, err := Measure("", 20)
	require.NoError(t, err)
	assert.Zero(t, empty)

	short, err := Measure("Cool", 20)
	require.NoError(t, err)
	long, err := Measure("Cool Cool Cool", 20)
	require.NoError(t, err)
	big, err := Measure("Cool", 40)
	require.NoError(t, err)

	assert.Positive(t, short)
	assert.Greater(t, long, short)
	assert.Greater(t, big, short)
}
