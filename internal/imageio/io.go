// Package imageio loads, saves and downscales images for the filter tools.
//
// Decoding supports PNG, JPEG, GIF, BMP, TIFF and WebP. Encoding supports
// every format except WebP, which golang.org/x/image can only decode.
package imageio

import (
	"bufio"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Format names as reported by image.Decode.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
	FormatWebP = "webp"
)

// DefaultJPEGQuality is used when Save is given a quality outside 1..100.
const DefaultJPEGQuality = 90

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when a file format cannot be read or written.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")
)

var extFormats = map[string]string{
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".gif":  FormatGIF,
	".bmp":  FormatBMP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".webp": FormatWebP,
}

// FormatFromPath returns the format implied by a file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extFormats[ext]; ok {
		return f, nil
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "extension %q", ext)
}

// Load reads an image file, detecting the format from its content.
func Load(path string) (image.Image, string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, "", errors.Wrap(err, "imageio: open file")
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode decodes an image from r, detecting the format from its content.
func Decode(r io.Reader) (image.Image, string, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, "", ErrEmptyData
		}
		return nil, "", errors.Wrap(err, "imageio: read")
	}

	img, format, err := image.Decode(br)
	if err != nil {
		return nil, "", errors.Wrap(err, "imageio: decode")
	}
	return img, format, nil
}

// Save writes img to path in the format implied by the extension.
// quality applies to JPEG only.
func Save(path string, img image.Image, quality int) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return errors.Wrap(err, "imageio: create file")
	}
	if err := Encode(f, img, format, quality); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		if quality < 1 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case FormatGIF:
		err = gif.Encode(w, img, nil)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "encode %q", format)
	}
	if err != nil {
		return errors.Wrapf(err, "imageio: encode %s", format)
	}
	return nil
}
