package codec

import (
	"image"

	"github.com/nfnt/resize"
)

// Fit scales img down with Lanczos resampling so neither side exceeds
// maxDim, keeping the aspect ratio. Images that already fit, and maxDim < 1,
// return img unchanged.
func Fit(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	if maxDim < 1 || (b.Dx() <= maxDim && b.Dy() <= maxDim) {
		return img
	}
	return resize.Thumbnail(uint(maxDim), uint(maxDim), img, resize.Lanczos3)
}
