package filters

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/photo-fx-mcp/internal/pixel"
)

// DefaultGrainSeed is used when CustomParams.Seed is 0.
const DefaultGrainSeed = 1

// ErrMatrixLength is returned when a JSON colour matrix does not hold exactly
// 20 values.
var ErrMatrixLength = errors.New("colour matrix must have 20 values")

// CustomParams configures a custom filter. The zero value is NOT the identity
// filter; start from DefaultCustomParams. JSON decoding starts from the
// defaults, so omitted fields are identities.
type CustomParams struct {
	// Brightness multiplies R, G and B. Identity 1.
	Brightness float64 `json:"brightness"`

	// Contrast stretches (>1) around mid-grey or flattens (<1) toward the
	// image's mean luminance. Identity 1.
	Contrast float64 `json:"contrast"`

	// Saturation boosts (>1) with the CSS saturate matrix or fades (<1) toward
	// each pixel's luminance. Identity 1.
	Saturation float64 `json:"saturation"`

	// Hue rotation in degrees. Identity 0.
	Hue float64 `json:"hue"`

	// Vignette strength in [0,1]. Identity 0.
	Vignette float64 `json:"vignette"`

	// Grain strength in [0,1]. Identity 0.
	Grain float64 `json:"grain"`

	// Blur standard deviation in pixels. Identity 0.
	Blur float64 `json:"blur"`

	// Matrix is an optional 4x5 affine colour matrix applied after blur.
	Matrix *pixel.ColorMatrix `json:"matrix,omitempty"`

	// Tint is an optional "#RRGGBB" colour multiply-blended at TintStrength.
	Tint         string  `json:"tint,omitempty"`
	TintStrength float64 `json:"tint_strength,omitempty"`

	// Seed for the grain generator; 0 means DefaultGrainSeed.
	Seed int64 `json:"seed,omitempty"`
}

// DefaultCustomParams returns the identity parameters.
func DefaultCustomParams() CustomParams {
	return CustomParams{Brightness: 1, Contrast: 1, Saturation: 1}
}

// UnmarshalJSON decodes parameters on top of DefaultCustomParams.
// A "matrix" member must hold exactly 20 numbers; null or absent means none.
func (p *CustomParams) UnmarshalJSON(data []byte) error {
	type plain CustomParams
	v := struct {
		plain
		Matrix []float64 `json:"matrix,omitempty"`
	}{plain: plain(DefaultCustomParams())}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	out := CustomParams(v.plain)
	out.Matrix = nil
	if v.Matrix != nil {
		var m pixel.ColorMatrix
		if len(v.Matrix) != len(m) {
			return fmt.Errorf("invalid matrix with %d values: %w", len(v.Matrix), ErrMatrixLength)
		}
		copy(m[:], v.Matrix)
		out.Matrix = &m
	}
	*p = out
	return nil
}

// Normalized returns p with every field clamped to its valid range.
func (p CustomParams) Normalized() CustomParams {
	p.Brightness = atLeast(p.Brightness, 0)
	p.Contrast = atLeast(p.Contrast, 0)
	p.Saturation = atLeast(p.Saturation, 0)
	p.Vignette = between(p.Vignette, 0, 1)
	p.Grain = between(p.Grain, 0, 1)
	p.Blur = atLeast(p.Blur, 0)
	p.TintStrength = between(p.TintStrength, 0, 1)
	if p.Seed == 0 {
		p.Seed = DefaultGrainSeed
	}
	if p.Matrix != nil && p.Matrix.IsIdentity() {
		p.Matrix = nil
	}
	if p.Tint == "" || p.TintStrength == 0 {
		p.Tint, p.TintStrength = "", 0
	}
	return p
}

// Key returns the canonical serialisation of the normalised parameters.
func (p CustomParams) Key() string {
	n := p.Normalized()
	b, err := json.Marshal(n)
	if err == nil {
		return string(b)
	}
	// Only NaN or Inf values can fail to marshal. Print the matrix by value so
	// equal parameters give equal keys.
	var m []float64
	if n.Matrix != nil {
		m = n.Matrix[:]
	}
	n.Matrix = nil
	return fmt.Sprintf("%+v matrix:%v", n, m)
}

// ApplyCustom applies a custom filter in fixed order: brightness, contrast,
// saturation, hue, vignette, grain, blur, colour matrix, tint.
//
// Parameters:
//   - src: Source image; it is not modified.
//   - params: Filter settings. Out-of-range values are clamped by Normalized.
//
// Returns:
//   - *image.NRGBA: A new buffer of the same size as src.
//   - error: Non-nil only if Tint is not a valid "#RRGGBB" colour.
//
// Steps whose parameter equals its identity value are skipped; skipping never
// changes the output.
//
// # Example Usage
//
//	p := filters.DefaultCustomParams()
//	p.Contrast, p.Vignette = 1.2, 0.3
//	out, err := filters.ApplyCustom(img, p)
//	if err != nil {
//	    return err
//	}
func ApplyCustom(src image.Image, params CustomParams) (*image.NRGBA, error) {
	p := params.Normalized()

	var tintColor colorful.Color
	if p.Tint != "" {
		c, err := colorful.Hex(p.Tint)
		if err != nil {
			return nil, fmt.Errorf("failed to parse tint colour: %w", err)
		}
		tintColor = c
	}

	work := pixel.Clone(src)
	if p.Brightness != 1 {
		work = pixel.Brightness(work, p.Brightness)
	}
	if p.Contrast > 1 {
		work = pixel.Contrast(work, p.Contrast)
	} else if p.Contrast < 1 {
		work = pixel.ContrastAround(work, p.Contrast, pixel.MeanLuminance(work))
	}
	if p.Saturation > 1 {
		work = pixel.Saturate(work, p.Saturation)
	} else if p.Saturation < 1 {
		work = pixel.Desaturate(work, p.Saturation)
	}
	if p.Hue != 0 {
		work = pixel.HueRotate(work, p.Hue)
	}
	if p.Vignette > 0 {
		work = pixel.Vignette(work, p.Vignette)
	}
	if p.Grain > 0 {
		work = pixel.Grain(work, p.Grain, p.Seed)
	}
	if p.Blur > 0 {
		work = pixel.SoftBlur(work, p.Blur)
	}
	if p.Matrix != nil {
		work = pixel.ApplyMatrix(work, *p.Matrix)
	}
	if p.Tint != "" {
		s := p.TintStrength
		work = pixel.Tint(work,
			1-s+s*tintColor.R,
			1-s+s*tintColor.G,
			1-s+s*tintColor.B,
		)
	}
	return work, nil
}

func atLeast(v, lo float64) float64 {
	if v < lo {
		return lo
	}
	return v
}

func between(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
