package enhance

import "github.com/ironsheep/photo-fx-mcp/internal/metrics"

// Aggressiveness multipliers.
const (
	NormalAggressiveness     = 1.0
	AggressiveAggressiveness = 1.5
)

// Correction magnitudes before the aggressiveness multiplier is applied.
const (
	// MidExposure is the luminance exposure corrections aim for.
	MidExposure = 128.0

	// ExposureCorrection is the largest relative brightness change (0.4 normal,
	// 0.6 aggressive).
	ExposureCorrection = 0.4

	// ContrastCorrection is the largest relative contrast boost.
	ContrastCorrection = 0.4

	// HintContrastDeficit is the minimum deficit assumed when only a hint asks
	// for more contrast.
	HintContrastDeficit = 0.25

	// SaturationBoost is the relative saturation increase asked for by hints.
	SaturationBoost = 0.2

	// DenoiseIntensity is the median blend factor (0.3 normal, 0.4 aggressive).
	DenoiseIntensity = 0.3

	// DenoiseAggressiveIntensity replaces DenoiseIntensity in aggressive mode.
	DenoiseAggressiveIntensity = 0.4

	// SharpenAmount is the unsharp mask amount (0.6 normal, 0.8 aggressive).
	SharpenAmount = 0.6

	// SharpenAggressiveAmount replaces SharpenAmount in aggressive mode.
	SharpenAggressiveAmount = 0.8
)

// Params are the corrections derived for one enhancement run.
type Params struct {
	Brightness     float64 `json:"brightness"`
	Contrast       float64 `json:"contrast"`
	Saturation     float64 `json:"saturation"`
	Aggressiveness float64 `json:"aggressiveness"`

	// ContrastPivot is the luminance the contrast correction stretches around:
	// the corrected mean exposure, so contrast never undoes the exposure fix.
	ContrastPivot float64 `json:"contrast_pivot"`

	FixExposure   bool `json:"fix_exposure"`
	BoostContrast bool `json:"boost_contrast"`
	BalanceWhite  bool `json:"balance_white"`
	Denoise       bool `json:"denoise"`
	Sharpen       bool `json:"sharpen"`

	DenoiseIntensity float64 `json:"denoise_intensity"`
	SharpenAmount    float64 `json:"sharpen_amount"`
}

// Derive combines measured metrics and hint flags into correction parameters.
func Derive(m metrics.Metrics, hints HintFlags, aggressive bool) Params {
	p := Params{
		Brightness:       1,
		Contrast:         1,
		Saturation:       1,
		Aggressiveness:   NormalAggressiveness,
		DenoiseIntensity: DenoiseIntensity,
		SharpenAmount:    SharpenAmount,
	}
	if aggressive {
		p.Aggressiveness = AggressiveAggressiveness
		p.DenoiseIntensity = DenoiseAggressiveIntensity
		p.SharpenAmount = SharpenAggressiveAmount
	}
	a := p.Aggressiveness

	p.FixExposure = m.IsUnderexposed || m.IsOverexposed || hints.Brightness
	if p.FixExposure {
		deviation := clamp((MidExposure-m.Brightness)/MidExposure, -1, 1)
		p.Brightness = 1 + deviation*ExposureCorrection*a
	}

	p.BoostContrast = m.NeedsContrastBoost || hints.Contrast
	if p.BoostContrast {
		deficit := clamp((metrics.ContrastFloor-m.Contrast)/metrics.ContrastFloor, 0, 1)
		if hints.Contrast && deficit < HintContrastDeficit {
			deficit = HintContrastDeficit
		}
		p.Contrast = 1 + deficit*ContrastCorrection*a
	}

	if hints.Saturation {
		p.Saturation = 1 + SaturationBoost*a
	}

	p.ContrastPivot = clamp(m.Brightness*p.Brightness, 0, 255)
	p.BalanceWhite = m.NeedsWhiteBalance || hints.WhiteBalance
	p.Denoise = m.NeedsSharpening || hints.Noise
	p.Sharpen = m.NeedsSharpening || hints.Sharpness
	return p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
