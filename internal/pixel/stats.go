package pixel

import (
	"image"
	"math"
)

// BT.601 luminance weights.
const (
	LumaR = 0.299
	LumaG = 0.587
	LumaB = 0.114
)

// Luminance returns the perceptual brightness of an 8-bit RGB triple.
func Luminance(r, g, b float64) float64 {
	return LumaR*r + LumaG*g + LumaB*b
}

// ChannelMeans holds the mean value of each colour channel over a buffer.
type ChannelMeans struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Grand returns the mean of the three channel means.
func (m ChannelMeans) Grand() float64 {
	return (m.R + m.G + m.B) / 3
}

// MaxDeviation returns the largest relative distance between a channel mean
// and the grand mean. It is 0 when the grand mean is 0.
func (m ChannelMeans) MaxDeviation() float64 {
	grand := m.Grand()
	if grand == 0 {
		return 0
	}
	dev := 0.0
	for _, c := range [3]float64{m.R, m.G, m.B} {
		if d := math.Abs(c-grand) / grand; d > dev {
			dev = d
		}
	}
	return dev
}

// MeanChannels computes the per-channel means of img.
func MeanChannels(img image.Image) ChannelMeans {
	in := view(img)
	n := in.Rect.Dx() * in.Rect.Dy()
	if n == 0 {
		return ChannelMeans{}
	}
	var sr, sg, sb float64
	for i := 0; i+3 < len(in.Pix); i += 4 {
		sr += float64(in.Pix[i+0])
		sg += float64(in.Pix[i+1])
		sb += float64(in.Pix[i+2])
	}
	fn := float64(n)
	return ChannelMeans{R: sr / fn, G: sg / fn, B: sb / fn}
}

// MeanLuminance returns the average luminance of img, or 0 for an empty image.
func MeanLuminance(img image.Image) float64 {
	m := MeanChannels(img)
	return Luminance(m.R, m.G, m.B)
}

// LumaPlane returns the luminance of every pixel in row-major order.
func LumaPlane(img image.Image) []float64 {
	in := view(img)
	w, h := in.Rect.Dx(), in.Rect.Dy()
	plane := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := y * in.Stride
		for x := 0; x < w; x++ {
			i := row + x*4
			plane[y*w+x] = Luminance(float64(in.Pix[i]), float64(in.Pix[i+1]), float64(in.Pix[i+2]))
		}
	}
	return plane
}
