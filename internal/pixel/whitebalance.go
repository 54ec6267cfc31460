package pixel

import "image"

// Gain limits applied by WhiteBalance.
const (
	MaxWhiteBalanceGain = 1.5
	MinWhiteBalanceGain = 1 / MaxWhiteBalanceGain
)

// WhiteBalance scales each colour channel by grand/channel mean so that the
// three channel means converge, limiting every gain to
// [MinWhiteBalanceGain, MaxWhiteBalanceGain]. A channel whose mean is 0 keeps a
// gain of 1. When every mean is 0 an unmodified copy is returned together with
// ErrNothingToBalance.
func WhiteBalance(src image.Image) (*image.NRGBA, error) {
	in := view(src)
	if IsDegenerate(in) {
		return Clone(in), ErrDegenerate
	}
	means := MeanChannels(in)
	grand := means.Grand()
	if grand == 0 {
		return Clone(in), ErrNothingToBalance
	}
	gain := func(mean float64) float64 {
		if mean == 0 {
			return 1
		}
		return clampFloat(grand/mean, MinWhiteBalanceGain, MaxWhiteBalanceGain)
	}
	return Tint(in, gain(means.R), gain(means.G), gain(means.B)), nil
}
