package ggfilter

import "image/color"

// Pixel is a single 8-bit-per-channel ARGB pixel with straight (non-premultiplied) alpha.
type Pixel struct {
	A, R, G, B uint8
}

// ARGB constructs a Pixel from its four channels.
func ARGB(a, r, g, b uint8) Pixel {
	return Pixel{A: a, R: r, G: g, B: b}
}

// PixelFromARGB unpacks a 0xAARRGGBB integer, the layout used by
// Android bitmaps and most host toolkits.
func PixelFromARGB(v uint32) Pixel {
	return Pixel{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// ARGB packs the pixel into a 0xAARRGGBB integer.
func (p Pixel) ARGB() uint32 {
	return uint32(p.A)<<24 | uint32(p.R)<<16 | uint32(p.G)<<8 | uint32(p.B)
}

// NRGBA converts the pixel to the standard library's straight-alpha color.
func (p Pixel) NRGBA() color.NRGBA {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}
}

// PixelFromColor converts any color.Color into a straight-alpha Pixel.
func PixelFromColor(c color.Color) Pixel {
	n, _ := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{A: n.A, R: n.R, G: n.G, B: n.B}
}

// Common pixels.
var (
	Transparent = Pixel{}
	Black       = Pixel{A: 255}
	White       = Pixel{A: 255, R: 255, G: 255, B: 255}
)
