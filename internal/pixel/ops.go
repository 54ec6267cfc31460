package pixel

import (
	"image"
	"math"
	"math/rand"
)

// Brightness multiplies R, G and B by f.
func Brightness(src image.Image, f float64) *image.NRGBA {
	return ApplyMatrix(src, BrightnessMatrix(f))
}

// Contrast stretches (f > 1) or flattens (f < 1) channels around 127.5.
func Contrast(src image.Image, f float64) *image.NRGBA {
	return ApplyMatrix(src, ContrastMatrix(f))
}

// ContrastAround stretches or flattens channels around an arbitrary pivot.
func ContrastAround(src image.Image, f, pivot float64) *image.NRGBA {
	return ApplyMatrix(src, ContrastAroundMatrix(f, pivot))
}

// Saturate applies the CSS saturate(s) transform. Grey pixels are unchanged.
func Saturate(src image.Image, s float64) *image.NRGBA {
	return ApplyMatrix(src, SaturateMatrix(s))
}

// Desaturate blends every pixel toward its own luminance by 1-s, s in [0,1].
func Desaturate(src image.Image, s float64) *image.NRGBA {
	return ApplyMatrix(src, LumaSaturationMatrix(clampFloat(s, 0, 1)))
}

// HueRotate rotates hue by deg degrees.
func HueRotate(src image.Image, deg float64) *image.NRGBA {
	return ApplyMatrix(src, HueRotateMatrix(deg))
}

// Sepia blends toward a sepia tone; amount 0 is a no-op and 1 is full sepia.
func Sepia(src image.Image, amount float64) *image.NRGBA {
	return ApplyMatrix(src, SepiaMatrix(amount))
}

// Grayscale replaces R, G and B with the pixel luminance.
func Grayscale(src image.Image) *image.NRGBA {
	return ApplyMatrix(src, GrayscaleMatrix())
}

// Tint multiplies each colour channel by its own factor.
func Tint(src image.Image, r, g, b float64) *image.NRGBA {
	return ApplyMatrix(src, ScaleMatrix(r, g, b))
}

// PushChroma scales every channel's deviation from the pixel luminance by k.
func PushChroma(src image.Image, k float64) *image.NRGBA {
	return ApplyMatrix(src, LumaSaturationMatrix(k))
}

// Pastel halves each channel's distance from the pixel luminance and lifts
// the result by lift levels: c' = L + 0.5*(c-L) + lift.
func Pastel(src image.Image, lift float64) *image.NRGBA {
	m := LumaSaturationMatrix(0.5)
	m[4], m[9], m[14] = lift, lift, lift
	return ApplyMatrix(src, m)
}

// Vignette darkens pixels radially: each colour channel is multiplied by
// 1 - strength*(d/dmax)^2, where d is the distance from the pixel centre to the
// image centre and dmax the centre-to-corner distance. strength is clamped to
// [0,1].
func Vignette(src image.Image, strength float64) *image.NRGBA {
	in := view(src)
	w, h := in.Rect.Dx(), in.Rect.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	strength = clampFloat(strength, 0, 1)
	cx, cy := float64(w)/2, float64(h)/2
	dmax2 := cx*cx + cy*cy
	if dmax2 == 0 {
		return out
	}
	for y := 0; y < h; y++ {
		dy := float64(y) + 0.5 - cy
		for x := 0; x < w; x++ {
			dx := float64(x) + 0.5 - cx
			factor := 1 - strength*(dx*dx+dy*dy)/dmax2
			i := y*in.Stride + x*4
			out.Pix[i+0] = ClampByte(float64(in.Pix[i+0]) * factor)
			out.Pix[i+1] = ClampByte(float64(in.Pix[i+1]) * factor)
			out.Pix[i+2] = ClampByte(float64(in.Pix[i+2]) * factor)
			out.Pix[i+3] = in.Pix[i+3]
		}
	}
	return out
}

// Grain adds monochrome film grain. Each pixel receives one uniform offset in
// [-amount*128, amount*128] applied to R, G and B alike. Offsets are drawn in
// scan order from a generator seeded with seed, so equal inputs always give
// equal output. amount is clamped to [0,1].
func Grain(src image.Image, amount float64, seed int64) *image.NRGBA {
	in := view(src)
	amount = clampFloat(amount, 0, 1)
	if amount == 0 {
		return Clone(in)
	}
	rng := rand.New(rand.NewSource(seed))
	out := image.NewNRGBA(in.Rect)
	spread := amount * 128
	for i := 0; i+3 < len(in.Pix); i += 4 {
		delta := (rng.Float64()*2 - 1) * spread
		out.Pix[i+0] = ClampByte(float64(in.Pix[i+0]) + delta)
		out.Pix[i+1] = ClampByte(float64(in.Pix[i+1]) + delta)
		out.Pix[i+2] = ClampByte(float64(in.Pix[i+2]) + delta)
		out.Pix[i+3] = in.Pix[i+3]
	}
	return out
}

// Equal reports whether two buffers have the same size and identical pixels.
func Equal(a, b image.Image) bool {
	x, y := view(a), view(b)
	if x.Rect.Size() != y.Rect.Size() || len(x.Pix) != len(y.Pix) {
		return false
	}
	for i := range x.Pix {
		if x.Pix[i] != y.Pix[i] {
			return false
		}
	}
	return true
}

// MaxDiff returns the largest absolute per-channel difference between two
// equally sized buffers, or math.MaxInt if their sizes differ.
func MaxDiff(a, b image.Image) int {
	x, y := view(a), view(b)
	if x.Rect.Size() != y.Rect.Size() {
		return math.MaxInt
	}
	max := 0
	for i := range x.Pix {
		d := int(x.Pix[i]) - int(y.Pix[i])
		if d < 0 {
			d = -d
		}
		if d > max {
			max = d
		}
	}
	return max
}
