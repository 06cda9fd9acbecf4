// Package caption stamps a one-line text label onto an image.
package caption

import (
	"image"
	"image/color"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Options controls caption placement and appearance.
type Options struct {
	// Size is the font size in pixels. Zero picks a size relative to the image height.
	Size float64
	// Text is the label color. Nil means opaque white.
	Text color.Color
	// Backdrop is the strip drawn behind the label. Nil means 60% black.
	Backdrop color.Color
}

var (
	parseOnce sync.Once
	parsed    *opentype.Font
	parseErr  error
)

func regularFont() (*opentype.Font, error) {
	parseOnce.Do(func() {
		parsed, parseErr = opentype.Parse(goregular.TTF)
	})
	return parsed, parseErr
}

// Stamp returns a copy of img with label drawn on a strip along the bottom edge.
// img itself is not modified. An empty label returns a plain copy.
func Stamp(img image.Image, label string, opts Options) (*image.NRGBA, error) {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	if label == "" || dst.Rect.Empty() {
		return dst, nil
	}

	size := opts.Size
	if size <= 0 {
		size = float64(b.Dy()) / 16
		if size < 10 {
			size = 10
		}
	}
	textColor := opts.Text
	if textColor == nil {
		textColor = color.White
	}
	backdrop := opts.Backdrop
	if backdrop == nil {
		backdrop = color.NRGBA{A: 153}
	}

	f, err := regularFont()
	if err != nil {
		return nil, errors.Wrap(err, "caption: parse font")
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(err, "caption: create face")
	}
	defer func() { _ = face.Close() }()

	m := face.Metrics()
	lineHeight := (m.Ascent + m.Descent).Ceil()
	pad := lineHeight / 4
	strip := image.Rect(0, dst.Rect.Dy()-lineHeight-2*pad, dst.Rect.Dx(), dst.Rect.Dy()).Intersect(dst.Rect)
	draw.Draw(dst, strip, image.NewUniform(backdrop), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(textColor),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(pad),
			Y: fixed.I(strip.Min.Y+pad) + m.Ascent,
		},
	}
	d.DrawString(label)
	return dst, nil
}

// Measure returns the advance width of label in pixels at the given size.
func Measure(label string, size float64) (int, error) {
	f, err := regularFont()
	if err != nil {
		return 0, errors.Wrap(err, "caption: parse font")
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72})
	if err != nil {
		return 0, errors.Wrap(err, "caption: create face")
	}
	defer func() { _ = face.Close() }()

	return font.MeasureString(face, label).Ceil(), nil
}
