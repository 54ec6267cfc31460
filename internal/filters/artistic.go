package filters

import (
	"fmt"
	"image"

	"github.com/ironsheep/photo-fx-mcp/internal/pixel"
)

// ArtisticKind names an artistic style.
type ArtisticKind string

// Artistic styles.
const (
	Impressionist ArtisticKind = "impressionist"
	PopArt        ArtisticKind = "popart"
	Cinematic     ArtisticKind = "cinematic"
	Vibrant       ArtisticKind = "vibrant"
	Dreamy        ArtisticKind = "dreamy"
	Dramatic      ArtisticKind = "dramatic"
	Retro         ArtisticKind = "retro"
	Neon          ArtisticKind = "neon"
)

// RetroGrainSeed seeds the grain of the retro style.
const RetroGrainSeed = 1

// step is one stage of an artistic composition.
type step func(*image.NRGBA) *image.NRGBA

var neonMix = pixel.ColorMatrix{
	1.2, 0.1, 0.1, 0, 0,
	0.1, 0.8, 0.3, 0, 0,
	0.1, 0.3, 1.2, 0, 0,
	0, 0, 0, 1, 0,
}

var artisticSteps = map[ArtisticKind][]step{
	Impressionist: {softBlur(1.5), contrast(0.7), pastel(30)},
	PopArt:        {saturate(1.5), contrast(1.4), pushChroma(1.5)},
	Cinematic:     {brightness(0.85), contrast(1.3), tint(0.9, 0.95, 1.0)},
	Vibrant:       {saturate(1.4), normalizeExposure(128, 0.8, 1.2)},
	Dreamy:        {softBlur(0.8), brightness(1.15), contrast(0.85)},
	Dramatic:      {contrast(1.5), brightness(0.9), vignette(0.3)},
	Retro:         {sepia(0.4), grain(0.15, RetroGrainSeed), contrast(1.1)},
	Neon:          {saturate(1.6), contrast(1.4), matrix(neonMix)},
}

var artisticDescriptions = map[ArtisticKind]string{
	Impressionist: "Soft focus, flattened contrast and pastel colours",
	PopArt:        "Punchy saturation and contrast with vivid colour separation",
	Cinematic:     "Darker, contrasty grade with a cool teal lean",
	Vibrant:       "Rich saturation with exposure pulled toward mid-grey",
	Dreamy:        "Light glow: slight blur, brighter, lower contrast",
	Dramatic:      "High contrast, darker tones and a vignette",
	Retro:         "Faded sepia with film grain",
	Neon:          "Saturated cross-channel mix for glowing colours",
}

// Valid reports whether k names an artistic style.
func (k ArtisticKind) Valid() bool {
	_, ok := artisticSteps[k]
	return ok
}

// ApplyArtistic runs the steps of an artistic style in order.
func ApplyArtistic(src image.Image, kind ArtisticKind) (*image.NRGBA, error) {
	steps, ok := artisticSteps[kind]
	if !ok {
		return nil, fmt.Errorf("%w: artistic %q", ErrUnknownFilter, kind)
	}
	work := pixel.Clone(src)
	for _, s := range steps {
		work = s(work)
	}
	return work, nil
}

func softBlur(sigma float64) step {
	return func(img *image.NRGBA) *image.NRGBA { return pixel.SoftBlur(img, sigma) }
}

func contrast(f float64) step {
	return func(img *image.NRGBA) *image.NRGBA { return pixel.Contrast(img, f) }
}

func brightness(f float64) step {
	return func(img *image.NRGBA) *image.NRGBA { return pixel.Brightness(img, f) }
}

func saturate(s float64) step {
	return func(img *image.NRGBA) *image.NRGBA { return pixel.Saturate(img, s) }
}

func pushChroma(k float64) step {
	return func(img *image.NRGBA) *image.NRGBA { return pixel.PushChroma(img, k) }
}

func pastel(lift float64) step {
	return func(img *image.NRGBA) *image.NRGBA { return pixel.Pastel(img, lift) }
}

func tint(r, g, b float64) step {
	return func(img *image.NRGBA) *image.NRGBA { return pixel.Tint(img, r, g, b) }
}

func vignette(strength float64) step {
	return func(img *image.NRGBA) *image.NRGBA { return pixel.Vignette(img, strength) }
}

func sepia(amount float64) step {
	return func(img *image.NRGBA) *image.NRGBA { return pixel.Sepia(img, amount) }
}

func grain(amount float64, seed int64) step {
	return func(img *image.NRGBA) *image.NRGBA { return pixel.Grain(img, amount, seed) }
}

func matrix(m pixel.ColorMatrix) step {
	return func(img *image.NRGBA) *image.NRGBA { return pixel.ApplyMatrix(img, m) }
}

// normalizeExposure rescales brightness so mean luminance becomes target, but
// only when the current mean lies outside [low*target, high*target]. Black
// images are left alone.
func normalizeExposure(target, low, high float64) step {
	return func(img *image.NRGBA) *image.NRGBA {
		mean := pixel.MeanLuminance(img)
		if mean <= 0 || (mean >= low*target && mean <= high*target) {
			return img
		}
		return pixel.Brightness(img, target/mean)
	}
}
