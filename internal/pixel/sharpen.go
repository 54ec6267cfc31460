package pixel

import (
	"image"

	"github.com/anthonynsimon/bild/parallel"
)

// UnsharpMask sharpens src by adding back the detail removed by BoxBlur3:
//
//	out = src + (src - blur(src)) * amount
//
// Alpha is preserved. amount <= 0 returns an unmodified copy.
func UnsharpMask(src image.Image, amount float64) *image.NRGBA {
	in := view(src)
	if amount <= 0 || IsDegenerate(in) {
		return Clone(in)
	}
	blurred := BoxBlur3(in)
	w, h := in.Rect.Dx(), in.Rect.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				i := y*in.Stride + x*4
				j := y*blurred.Stride + x*4
				for c := 0; c < 3; c++ {
					s := float64(in.Pix[i+c])
					b := float64(blurred.Pix[j+c])
					out.Pix[i+c] = ClampByte(s + (s-b)*amount)
				}
				out.Pix[i+3] = in.Pix[i+3]
			}
		}
	})
	return out
}
