package filters

import (
	"fmt"
	"image"

	"github.com/ironsheep/photo-fx-mcp/internal/pixel"
)

// BasicKind names a legacy preset.
type BasicKind string

// Basic presets.
const (
	None       BasicKind = "none"
	Vintage    BasicKind = "vintage"
	BlackWhite BasicKind = "blackwhite"
	Warm       BasicKind = "warm"
	Cool       BasicKind = "cool"
)

// Each preset is the fused matrix of its original CSS filter string.
var basicMatrices = map[BasicKind]pixel.ColorMatrix{
	// sepia(0.5) contrast(1.2) brightness(0.95)
	Vintage: pixel.Chain(pixel.SepiaMatrix(0.5), pixel.ContrastMatrix(1.2), pixel.BrightnessMatrix(0.95)),
	// grayscale(1)
	BlackWhite: pixel.GrayscaleMatrix(),
	// sepia(0.3) saturate(1.2) brightness(1.05)
	Warm: pixel.Chain(pixel.SepiaMatrix(0.3), pixel.SaturateMatrix(1.2), pixel.BrightnessMatrix(1.05)),
	// hue-rotate(180deg) saturate(0.8) brightness(1.1)
	Cool: pixel.Chain(pixel.HueRotateMatrix(180), pixel.SaturateMatrix(0.8), pixel.BrightnessMatrix(1.1)),
}

var basicDescriptions = map[BasicKind]string{
	None:       "No filter; returns the photo unchanged",
	Vintage:    "Half sepia with a little extra contrast, slightly darkened",
	BlackWhite: "Luminance-based black and white",
	Warm:       "Light sepia warmth with boosted saturation",
	Cool:       "Hue inverted, softened saturation, slightly brightened",
}

// Valid reports whether k names a basic preset.
func (k BasicKind) Valid() bool {
	_, ok := basicDescriptions[k]
	return ok
}

// ApplyBasic applies a basic preset in a single pass.
func ApplyBasic(src image.Image, kind BasicKind) (*image.NRGBA, error) {
	if kind == None {
		return pixel.Clone(src), nil
	}
	m, ok := basicMatrices[kind]
	if !ok {
		return nil, fmt.Errorf("%w: basic %q", ErrUnknownFilter, kind)
	}
	return pixel.ApplyMatrix(src, m), nil
}
