package metrics

import (
	"image"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/photo-fx-mcp/internal/pixel"
)

// PaletteStep is the quantization step for palette extraction: every channel
// is rounded down to a multiple of it, so colours within one step share a
// swatch.
const PaletteStep = 16

// Swatch is one quantized colour and its share of the image.
type Swatch struct {
	Hex        string  `json:"hex"`
	R          uint8   `json:"r"`
	G          uint8   `json:"g"`
	B          uint8   `json:"b"`
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`

	// Percentage of pixels with this colour, 0-100.
	Percentage float64 `json:"percentage"`
}

// Palette returns up to count of the most common colours in img, most common
// first. Ties are broken by hex value so the result is deterministic.
func Palette(img image.Image, count int) []Swatch {
	src, ok := img.(*image.NRGBA)
	if !ok {
		src = pixel.Clone(img)
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if count < 1 || w == 0 || h == 0 {
		return nil
	}

	counts := make(map[uint32]int)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for i := 0; i < len(row); i += 4 {
			r := uint32(row[i] / PaletteStep * PaletteStep)
			g := uint32(row[i+1] / PaletteStep * PaletteStep)
			b := uint32(row[i+2] / PaletteStep * PaletteStep)
			counts[r<<16|g<<8|b]++
		}
	}

	keys := make([]uint32, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > count {
		keys = keys[:count]
	}

	total := float64(w * h)
	swatches := make([]Swatch, len(keys))
	for i, k := range keys {
		r, g, b := uint8(k>>16), uint8(k>>8), uint8(k)
		c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
		hue, sat, light := c.Hsl()
		swatches[i] = Swatch{
			Hex:        c.Hex(),
			R:          r,
			G:          g,
			B:          b,
			Hue:        hue,
			Saturation: sat,
			Lightness:  light,
			Percentage: float64(counts[k]) / total * 100,
		}
	}
	return swatches
}
