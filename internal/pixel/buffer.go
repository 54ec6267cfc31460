package pixel

import (
	"image"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
)

// Clone returns a copy of img as a normalised *image.NRGBA buffer.
//
// The copy always has bounds starting at (0,0) and a stride of 4*width, which
// is the layout every operation in this package expects. A nil image yields an
// empty 0x0 buffer.
func Clone(img image.Image) *image.NRGBA {
	if img == nil {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	return imaging.Clone(img)
}

// view returns img itself when it is already a normalised NRGBA buffer and a
// normalised copy otherwise. The result must be treated as read-only.
func view(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == 4*n.Rect.Dx() {
		return n
	}
	return Clone(img)
}

// IsDegenerate reports whether img has no pixels to operate on.
func IsDegenerate(img image.Image) bool {
	if img == nil {
		return true
	}
	b := img.Bounds()
	return b.Dx() <= 0 || b.Dy() <= 0
}

// Solid creates a w x h buffer filled with a single colour.
func Solid(w, h int, r, g, b, a uint8) *image.NRGBA {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// ClampByte rounds v half up and clamps it to [0,255]. NaN maps to 0.
func ClampByte(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// pixelFunc maps one pixel's channels to new (unclamped) channel values.
type pixelFunc func(r, g, b, a float64) (float64, float64, float64, float64)

// mapPixels applies fn to every pixel of src and writes the clamped result
// into a new buffer. Rows are processed in parallel.
func mapPixels(src image.Image, fn pixelFunc) *image.NRGBA {
	in := view(src)
	w, h := in.Rect.Dx(), in.Rect.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			row := y * in.Stride
			for x := 0; x < w; x++ {
				i := row + x*4
				r, g, b, a := fn(
					float64(in.Pix[i+0]),
					float64(in.Pix[i+1]),
					float64(in.Pix[i+2]),
					float64(in.Pix[i+3]),
				)
				out.Pix[i+0] = ClampByte(r)
				out.Pix[i+1] = ClampByte(g)
				out.Pix[i+2] = ClampByte(b)
				out.Pix[i+3] = ClampByte(a)
			}
		}
	})
	return out
}

// mapRGB is mapPixels for operations that leave alpha unchanged.
func mapRGB(src image.Image, fn func(r, g, b float64) (float64, float64, float64)) *image.NRGBA {
	return mapPixels(src, func(r, g, b, a float64) (float64, float64, float64, float64) {
		r, g, b = fn(r, g, b)
		return r, g, b, a
	})
}
