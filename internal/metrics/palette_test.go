package metrics

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/ironsheep/photo-fx-mcp/internal/pixel"
)

func TestPalette(t *testing.T) {
	// Three quarters red, one quarter near-white.
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := color.NRGBA{255, 0, 0, 255}
			if y == 3 {
				c = color.NRGBA{250, 245, 241, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	got := Palette(img, 5)
	if len(got) != 2 {
		t.Fatalf("got %d swatches, want 2", len(got))
	}
	if got[0].Hex != "#f00000" || math.Abs(got[0].Percentage-75) > 1e-9 {
		t.Errorf("first swatch: got %s %.1f%%, want #f00000 75%%", got[0].Hex, got[0].Percentage)
	}
	if got[1].R != 240 || got[1].G != 240 || got[1].B != 240 {
		t.Errorf("second swatch not quantized: %+v", got[1])
	}
	if math.Abs(got[0].Hue) > 1e-9 || math.Abs(got[0].Saturation-1) > 1e-9 {
		t.Errorf("red swatch HSL: got %.2f/%.2f", got[0].Hue, got[0].Saturation)
	}
}

func TestPalette_CountAndTies(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 200, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 200, 0, 255})
	img.SetNRGBA(2, 0, color.NRGBA{200, 0, 0, 255})

	got := Palette(img, 2)
	if len(got) != 2 {
		t.Fatalf("got %d swatches, want 2", len(got))
	}
	// Equal counts fall back to ascending hex.
	if got[0].Hex != "#0000c0" || got[1].Hex != "#00c000" {
		t.Errorf("tie order: got %s, %s", got[0].Hex, got[1].Hex)
	}

	if Palette(img, 0) != nil {
		t.Error("count 0 should return nil")
	}
	if Palette(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 3) != nil {
		t.Error("empty image should return nil")
	}
}

func TestPalette_SolidSumsToHundred(t *testing.T) {
	got := Palette(pixel.Solid(7, 5, 33, 66, 99, 255), 3)
	if len(got) != 1 || got[0].Percentage != 100 {
		t.Errorf("got %+v, want one swatch at 100%%", got)
	}
}
