package ggfilter

import (
	"bytes"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Raster is an immutable rectangular grid of ARGB pixels.
//
// Pixels are stored row-major as straight-alpha NRGBA bytes, 4 bytes per
// pixel. A Raster is never modified after construction, so it is safe for
// concurrent read access without synchronization. Every constructor copies
// its input.
type Raster struct {
	width  int
	height int
	data   []uint8 // NRGBA format, 4 bytes per pixel
}

// newRaster allocates a zeroed raster. The caller owns data until the raster is published.
func newRaster(width, height int) *Raster {
	return &Raster{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

func checkDims(width, height int) error {
	if width < 0 || height < 0 {
		return invalidf("negative dimensions %dx%d", width, height)
	}
	return nil
}

// NewUniformRaster creates a raster filled with a single pixel value.
func NewUniformRaster(width, height int, p Pixel) (*Raster, error) {
	if err := checkDims(width, height); err != nil {
		return nil, err
	}
	r := newRaster(width, height)
	for i := 0; i < len(r.data); i += 4 {
		r.data[i+0] = p.R
		r.data[i+1] = p.G
		r.data[i+2] = p.B
		r.data[i+3] = p.A
	}
	return r, nil
}

// RasterFromPixels creates a raster from row-major pixels.
// len(pixels) must equal width*height.
func RasterFromPixels(width, height int, pixels []Pixel) (*Raster, error) {
	if err := checkDims(width, height); err != nil {
		return nil, err
	}
	if len(pixels) != width*height {
		return nil, invalidf("got %d pixels for %dx%d raster", len(pixels), width, height)
	}
	r := newRaster(width, height)
	for i, p := range pixels {
		r.set(i, p)
	}
	return r, nil
}

// RasterFromARGB creates a raster from packed 0xAARRGGBB integers, the
// layout returned by Android's Bitmap.getPixels.
func RasterFromARGB(width, height int, argb []uint32) (*Raster, error) {
	if err := checkDims(width, height); err != nil {
		return nil, err
	}
	if len(argb) != width*height {
		return nil, invalidf("got %d pixels for %dx%d raster", len(argb), width, height)
	}
	r := newRaster(width, height)
	for i, v := range argb {
		r.set(i, PixelFromARGB(v))
	}
	return r, nil
}

// RasterFromImage creates a raster from any image. The image bounds are
// translated so that the raster origin is (0, 0).
func RasterFromImage(img image.Image) (*Raster, error) {
	if img == nil {
		return nil, invalidf("nil image")
	}
	b := img.Bounds()
	r := newRaster(b.Dx(), b.Dy())

	// Fast path: already straight-alpha NRGBA.
	if src, ok := img.(*image.NRGBA); ok {
		rowBytes := b.Dx() * 4
		for y := 0; y < b.Dy(); y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(r.data[y*rowBytes:(y+1)*rowBytes], src.Pix[off:off+rowBytes])
		}
		return r, nil
	}

	dst := &image.NRGBA{Pix: r.data, Stride: b.Dx() * 4, Rect: image.Rect(0, 0, b.Dx(), b.Dy())}
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return r, nil
}

// Width returns the width of the raster.
func (r *Raster) Width() int {
	return r.width
}

// Height returns the height of the raster.
func (r *Raster) Height() int {
	return r.height
}

// Empty reports whether the raster has zero area.
func (r *Raster) Empty() bool {
	return r.width == 0 || r.height == 0
}

// Pixel returns the pixel at (x, y). Out-of-bounds coordinates return Transparent.
func (r *Raster) Pixel(x, y int) Pixel {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return Transparent
	}
	return r.get(y*r.width + x)
}

// Pixels returns a row-major copy of all pixels.
func (r *Raster) Pixels() []Pixel {
	out := make([]Pixel, r.width*r.height)
	for i := range out {
		out[i] = r.get(i)
	}
	return out
}

// ARGB returns a row-major copy of all pixels packed as 0xAARRGGBB.
func (r *Raster) ARGB() []uint32 {
	out := make([]uint32, r.width*r.height)
	for i := range out {
		out[i] = r.get(i).ARGB()
	}
	return out
}

// Clone returns a copy of the raster with its own backing store.
func (r *Raster) Clone() *Raster {
	c := newRaster(r.width, r.height)
	copy(c.data, r.data)
	return c
}

// Equal reports whether both rasters have the same dimensions and pixels.
func (r *Raster) Equal(other *Raster) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.width == other.width && r.height == other.height && bytes.Equal(r.data, other.data)
}

// ToImage converts the raster to an image.NRGBA. The returned image owns a copy of the pixels.
func (r *Raster) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.width, r.height))
	copy(img.Pix, r.data)
	return img
}

// At implements the image.Image interface.
func (r *Raster) At(x, y int) color.Color {
	return r.Pixel(x, y).NRGBA()
}

// Bounds implements the image.Image interface.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// ColorModel implements the image.Image interface.
func (r *Raster) ColorModel() color.Model {
	return color.NRGBAModel
}

// get reads pixel index i (not byte offset).
func (r *Raster) get(i int) Pixel {
	o := i * 4
	return Pixel{R: r.data[o+0], G: r.data[o+1], B: r.data[o+2], A: r.data[o+3]}
}

// set writes pixel index i. Only valid before the raster is published.
func (r *Raster) set(i int, p Pixel) {
	o := i * 4
	r.data[o+0] = p.R
	r.data[o+1] = p.G
	r.data[o+2] = p.B
	r.data[o+3] = p.A
}
