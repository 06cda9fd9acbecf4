package imageio

import (
	"image"

	"github.com/nfnt/resize"
)

// Fit downscales img so it fits within maxWidth x maxHeight, preserving the
// aspect ratio. Images that already fit, and non-positive limits, return
// img unchanged. Images are never upscaled.
func Fit(img image.Image, maxWidth, maxHeight int) image.Image {
	if maxWidth <= 0 || maxHeight <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxWidth && b.Dy() <= maxHeight {
		return img
	}
	return resize.Thumbnail(uint(maxWidth), uint(maxHeight), img, resize.Lanczos3)
}
