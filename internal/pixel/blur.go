package pixel

import (
	"image"

	"github.com/disintegration/imaging"
)

// SoftBlur applies a Gaussian blur with standard deviation sigma pixels.
// sigma <= 0 returns an unmodified copy.
//
// The kernel is imaging's separable Gaussian, truncated at ceil(3*sigma) with
// edge pixels replicated, and it weights colour by alpha so transparent pixels
// do not bleed.
func SoftBlur(src image.Image, sigma float64) *image.NRGBA {
	in := view(src)
	if sigma <= 0 || IsDegenerate(in) {
		return Clone(in)
	}
	return imaging.Blur(in, sigma)
}

// boxKernel3 is the unnormalised 3x3 box; ConvolveOptions.Normalize divides
// by its sum.
var boxKernel3 = [9]float64{
	1, 1, 1,
	1, 1, 1,
	1, 1, 1,
}

// BoxBlur3 averages every pixel with its 3x3 neighbourhood using a box kernel
// of radius 1 (weights 1/9) with edges clamped. Channel sums are rounded half
// up, so a flat region blurs to itself. Alpha is copied from the source
// pixel. It is the reference blur for UnsharpMask.
func BoxBlur3(src image.Image) *image.NRGBA {
	in := view(src)
	if IsDegenerate(in) {
		return Clone(in)
	}
	return imaging.Convolve3x3(in, boxKernel3, &imaging.ConvolveOptions{Normalize: true})
}
