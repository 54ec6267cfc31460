package pixel

import (
	"image"
	"math"
)

// ColorMatrix is a 4x5 affine colour transform in row-major order.
//
//	[R']   [m0  m1  m2  m3  m4 ]   [R]
//	[G'] = [m5  m6  m7  m8  m9 ] * [G]
//	[B']   [m10 m11 m12 m13 m14]   [B]
//	[A']   [m15 m16 m17 m18 m19]   [A]
//	                               [1]
//
// Channels are in 0..255 and the fifth column is a bias in the same units.
type ColorMatrix [20]float64

// IdentityMatrix leaves every channel unchanged.
func IdentityMatrix() ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// rgbMatrix builds a matrix from a 3x3 RGB block, leaving alpha untouched.
func rgbMatrix(m [9]float64) ColorMatrix {
	return ColorMatrix{
		m[0], m[1], m[2], 0, 0,
		m[3], m[4], m[5], 0, 0,
		m[6], m[7], m[8], 0, 0,
		0, 0, 0, 1, 0,
	}
}

// BrightnessMatrix multiplies R, G and B by f.
func BrightnessMatrix(f float64) ColorMatrix {
	return ScaleMatrix(f, f, f)
}

// ScaleMatrix multiplies each colour channel by its own factor.
func ScaleMatrix(r, g, b float64) ColorMatrix {
	return rgbMatrix([9]float64{
		r, 0, 0,
		0, g, 0,
		0, 0, b,
	})
}

// ContrastMatrix stretches channels around the mid level 127.5 by f.
func ContrastMatrix(f float64) ColorMatrix {
	return ContrastAroundMatrix(f, 127.5)
}

// ContrastAroundMatrix stretches channels around pivot by f.
func ContrastAroundMatrix(f, pivot float64) ColorMatrix {
	m := ScaleMatrix(f, f, f)
	bias := pivot * (1 - f)
	m[4], m[9], m[14] = bias, bias, bias
	return m
}

// SaturateMatrix is the CSS saturate(s) matrix.
func SaturateMatrix(s float64) ColorMatrix {
	return rgbMatrix([9]float64{
		0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s,
		0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s,
		0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s,
	})
}

// LumaSaturationMatrix pushes each channel away from (s > 1) or toward
// (s < 1) the pixel's BT.601 luminance: c' = L + s*(c - L).
func LumaSaturationMatrix(s float64) ColorMatrix {
	k := 1 - s
	return rgbMatrix([9]float64{
		k*LumaR + s, k * LumaG, k * LumaB,
		k * LumaR, k*LumaG + s, k * LumaB,
		k * LumaR, k * LumaG, k*LumaB + s,
	})
}

// HueRotateMatrix is the CSS hue-rotate(deg) matrix.
func HueRotateMatrix(deg float64) ColorMatrix {
	rad := deg * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return rgbMatrix([9]float64{
		0.213 + c*0.787 - s*0.213, 0.715 - c*0.715 - s*0.715, 0.072 - c*0.072 + s*0.928,
		0.213 - c*0.213 + s*0.143, 0.715 + c*0.285 + s*0.140, 0.072 - c*0.072 - s*0.283,
		0.213 - c*0.213 - s*0.787, 0.715 - c*0.715 + s*0.715, 0.072 + c*0.928 + s*0.072,
	})
}

// SepiaMatrix is the CSS sepia(amount) matrix; amount is clamped to [0,1].
func SepiaMatrix(amount float64) ColorMatrix {
	a := 1 - clampFloat(amount, 0, 1)
	return rgbMatrix([9]float64{
		0.393 + 0.607*a, 0.769 - 0.769*a, 0.189 - 0.189*a,
		0.349 - 0.349*a, 0.686 + 0.314*a, 0.168 - 0.168*a,
		0.272 - 0.272*a, 0.534 - 0.534*a, 0.131 + 0.869*a,
	})
}

// GrayscaleMatrix replicates BT.601 luminance into R, G and B.
func GrayscaleMatrix() ColorMatrix {
	return rgbMatrix([9]float64{
		LumaR, LumaG, LumaB,
		LumaR, LumaG, LumaB,
		LumaR, LumaG, LumaB,
	})
}

// Then returns the matrix equivalent to applying m first and next second.
func (m ColorMatrix) Then(next ColorMatrix) ColorMatrix {
	var out ColorMatrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 5; j++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += next[i*5+k] * m[k*5+j]
			}
			if j == 4 {
				sum += next[i*5+4]
			}
			out[i*5+j] = sum
		}
	}
	return out
}

// Chain composes matrices in application order.
func Chain(ms ...ColorMatrix) ColorMatrix {
	out := IdentityMatrix()
	for _, m := range ms {
		out = out.Then(m)
	}
	return out
}

// IsIdentity reports whether m leaves every pixel unchanged.
func (m ColorMatrix) IsIdentity() bool {
	return m == IdentityMatrix()
}

// Transform applies m to a single pixel without clamping.
func (m ColorMatrix) Transform(r, g, b, a float64) (float64, float64, float64, float64) {
	return m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4],
		m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9],
		m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14],
		m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]
}

// ApplyMatrix applies m to every pixel of src in a single pass.
func ApplyMatrix(src image.Image, m ColorMatrix) *image.NRGBA {
	return mapPixels(src, m.Transform)
}
