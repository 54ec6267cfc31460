// Package metrics measures the exposure, contrast, sharpness and colour
// balance of a photo and derives the corrections it needs.
//
// Analyze is a pure O(W*H) function; it never modifies its input. The
// thresholds below are empirical values kept as-is for parity with the
// existing capture flow.
package metrics

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/photo-fx-mcp/internal/pixel"
)

// Correction thresholds.
const (
	UnderexposedBelow     = 80.0
	OverexposedAbove      = 200.0
	SharpnessFloor        = 0.3
	ContrastFloor         = 0.15
	WhiteBalanceTolerance = 0.15
)

// Cast describes the colour cast of an image's mean colour in CIE HCL.
type Cast struct {
	// Hue of the mean colour in degrees (0-360). Meaningless when Chroma is ~0.
	Hue float64 `json:"hue"`

	// Chroma of the mean colour; 0 for a perfectly neutral average.
	Chroma float64 `json:"chroma"`
}

// Metrics summarises an image and the corrections it calls for.
type Metrics struct {
	// Brightness is the mean BT.601 luminance (0-255).
	Brightness float64 `json:"brightness"`

	// Contrast is the population standard deviation of luminance / 255 (0-1).
	Contrast float64 `json:"contrast"`

	// Sharpness is the mean local luminance gradient / 255 (0-1). It is 0 for
	// images narrower or shorter than 3 pixels.
	Sharpness float64 `json:"sharpness"`

	// Means holds the per-channel averages used for the white balance check.
	Means pixel.ChannelMeans `json:"channel_means"`

	// Cast is informational and does not influence any flag.
	Cast Cast `json:"cast"`

	IsUnderexposed     bool `json:"is_underexposed"`
	IsOverexposed      bool `json:"is_overexposed"`
	NeedsSharpening    bool `json:"needs_sharpening"`
	NeedsContrastBoost bool `json:"needs_contrast_boost"`
	NeedsWhiteBalance  bool `json:"needs_white_balance"`
}

// Analyze measures img.
//
// Parameters:
//   - img: Any image. It is read once and never modified.
//
// Returns:
//   - Metrics: Mean exposure (0-255), normalised contrast and sharpness
//     (0-1), the colour cast and the derived correction flags.
//
// An image with no pixels yields zero Metrics with every flag false.
//
// # Example Usage
//
//	m := metrics.Analyze(img)
//	if m.IsUnderexposed || m.IsOverexposed {
//	    // mean luminance below 80 or above 200
//	}
func Analyze(img image.Image) Metrics {
	if pixel.IsDegenerate(img) {
		return Metrics{}
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	luma := pixel.LumaPlane(img)

	var sum float64
	for _, l := range luma {
		sum += l
	}
	n := float64(len(luma))
	mean := sum / n

	var sq float64
	for _, l := range luma {
		d := l - mean
		sq += d * d
	}
	stddev := math.Sqrt(sq / n)

	m := Metrics{
		Brightness: mean,
		Contrast:   clampUnit(stddev / 255),
		Sharpness:  sharpness(luma, w, h),
		Means:      pixel.MeanChannels(img),
	}
	m.Cast = castOf(m.Means)

	m.IsUnderexposed = m.Brightness < UnderexposedBelow
	m.IsOverexposed = m.Brightness > OverexposedAbove
	m.NeedsSharpening = m.Sharpness < SharpnessFloor
	m.NeedsContrastBoost = m.Contrast < ContrastFloor
	m.NeedsWhiteBalance = m.Means.MaxDeviation() > WhiteBalanceTolerance
	return m
}

// sharpness averages |c-right| + |c-below| over interior pixels.
func sharpness(luma []float64, w, h int) float64 {
	if w < 3 || h < 3 {
		return 0
	}
	var sum float64
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			c := luma[y*w+x]
			sum += math.Abs(c-luma[y*w+x+1]) + math.Abs(c-luma[(y+1)*w+x])
		}
	}
	interior := float64((w - 2) * (h - 2))
	return clampUnit(sum / interior / 255)
}

func castOf(m pixel.ChannelMeans) Cast {
	c := colorful.Color{R: m.R / 255, G: m.G / 255, B: m.B / 255}
	hue, chroma, _ := c.Hcl()
	if math.IsNaN(hue) {
		hue = 0
	}
	return Cast{Hue: hue, Chroma: chroma}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
