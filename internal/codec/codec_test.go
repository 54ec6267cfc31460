package codec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ironsheep/photo-fx-mcp/internal/pixel"
)

// createPatternImage returns red, green, blue and white quadrants.
func createPatternImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.NRGBA
			switch {
			case x < width/2 && y < height/2:
				c = color.NRGBA{255, 0, 0, 255}
			case x >= width/2 && y < height/2:
				c = color.NRGBA{0, 255, 0, 255}
			case x < width/2 && y >= height/2:
				c = color.NRGBA{0, 0, 255, 255}
			default:
				c = color.NRGBA{255, 255, 255, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// writeTestPNG writes img to a temp directory and returns the path.
func writeTestPNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestDecode_PNGRoundTrip(t *testing.T) {
	src := createPatternImage(20, 10)
	var buf bytes.Buffer
	if err := (Encoder{Format: PNG}).Encode(&buf, src); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	size := int64(buf.Len())

	dec, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if dec.Format != "png" {
		t.Errorf("Format: got %q, want png", dec.Format)
	}
	if dec.Size != size {
		t.Errorf("Size: got %d, want %d", dec.Size, size)
	}
	if !pixel.Equal(dec.Image, src) {
		t.Error("PNG round trip changed pixels")
	}
}

func TestDecode_NormalisesToNRGBA(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 3))
	for i := range gray.Pix {
		gray.Pix[i] = 77
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}
	dec, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := dec.Image.NRGBAAt(1, 1); got != (color.NRGBA{77, 77, 77, 255}) {
		t.Errorf("got %v, want {77 77 77 255}", got)
	}
}

func TestDecode_JPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, pixel.Solid(16, 16, 120, 60, 30, 255), &jpeg.Options{Quality: 100}); err != nil {
		t.Fatalf("jpeg.Encode failed: %v", err)
	}
	dec, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if dec.Format != "jpeg" {
		t.Errorf("Format: got %q, want jpeg", dec.Format)
	}
	if pixel.MaxDiff(dec.Image, pixel.Solid(16, 16, 120, 60, 30, 255)) > 4 {
		t.Error("JPEG decode drifted too far from the source")
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"garbage", []byte("definitely not an image")},
		{"truncated png", []byte("\x89PNG\r\n\x1a\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tt.input))
			var derr *DecodeError
			if !errors.As(err, &derr) {
				t.Fatalf("got %v, want *DecodeError", err)
			}
			if derr.Source != "reader" {
				t.Errorf("Source: got %q, want reader", derr.Source)
			}
		})
	}
}

func TestDecodeBase64(t *testing.T) {
	src := createPatternImage(4, 4)
	enc, err := Encoder{Format: PNG}.EncodeBase64(src)
	if err != nil {
		t.Fatalf("EncodeBase64 failed: %v", err)
	}

	for name, input := range map[string]string{
		"plain":    enc,
		"data url": "data:image/png;base64," + enc,
		"padded":   "  " + enc + "\n",
	} {
		t.Run(name, func(t *testing.T) {
			dec, err := DecodeBase64(input)
			if err != nil {
				t.Fatalf("DecodeBase64 failed: %v", err)
			}
			if !pixel.Equal(dec.Image, src) {
				t.Error("pixels changed")
			}
		})
	}

	if _, err := DecodeBase64("!!!not base64"); err == nil {
		t.Error("invalid base64 should fail")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", PNG, false},
		{"PNG", PNG, false},
		{"jpg", JPEG, false},
		{"jpeg", JPEG, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error: got %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if tt.wantErr && !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("got %v, want ErrUnsupportedFormat", err)
			}
		})
	}
}

func TestEncoder_JPEG(t *testing.T) {
	src := pixel.Solid(16, 16, 200, 100, 50, 255)
	var buf bytes.Buffer
	if err := (Encoder{Format: JPEG}).Encode(&buf, src); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	img, format, err := image.Decode(&buf)
	if err != nil {
		t.Fatalf("image.Decode failed: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format: got %q, want jpeg", format)
	}
	if pixel.MaxDiff(img, src) > 4 {
		t.Error("quality-100 JPEG drifted too far from the source")
	}

	if err := (Encoder{Format: "gif"}).Encode(&buf, src); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("got %v, want ErrUnsupportedFormat", err)
	}
	if JPEG.MIMEType() != "image/jpeg" || PNG.MIMEType() != "image/png" {
		t.Error("wrong MIME types")
	}
}

func TestLoader(t *testing.T) {
	src := createPatternImage(10, 10)
	path := writeTestPNG(t, src)
	loader := NewLoader()

	first, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !pixel.Equal(first.Image, src) {
		t.Error("loaded pixels differ from the source")
	}

	second, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if first != second {
		t.Error("second Load should return the cached source")
	}

	loader.Evict(path)
	if loader.Len() != 0 {
		t.Error("Evict did not remove the entry")
	}
	loader.Load(path)
	loader.Clear()
	if loader.Len() != 0 {
		t.Error("Clear did not remove entries")
	}
}

func TestLoader_Errors(t *testing.T) {
	loader := NewLoader()
	if _, err := loader.Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	_, err := loader.Load(path)
	var derr *DecodeError
	if !errors.As(err, &derr) || derr.Source != path {
		t.Errorf("got %v, want *DecodeError for %s", err, path)
	}
}

func TestLoader_Concurrent(t *testing.T) {
	path := writeTestPNG(t, createPatternImage(8, 8))
	loader := NewLoader()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := loader.Load(path); err != nil {
				t.Errorf("Load failed: %v", err)
			}
		}()
	}
	wg.Wait()
	if loader.Len() != 1 {
		t.Errorf("Len: got %d, want 1", loader.Len())
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name          string
		w, h, max     int
		wantW, wantH  int
		wantUnchanged bool
	}{
		{"landscape", 128, 64, 32, 32, 16, false},
		{"portrait", 50, 200, 100, 25, 100, false},
		{"already fits", 20, 10, 32, 20, 10, true},
		{"disabled", 200, 200, 0, 200, 200, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := pixel.Solid(tt.w, tt.h, 90, 120, 150, 255)
			out := Fit(src, tt.max)
			if b := out.Bounds(); b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("size: got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
			if tt.wantUnchanged && out != image.Image(src) {
				t.Error("image that fits should be returned as is")
			}
			if pixel.MaxDiff(pixel.Clone(out), pixel.Solid(tt.wantW, tt.wantH, 90, 120, 150, 255)) > 2 {
				t.Error("scaling a solid colour changed it")
			}
		})
	}
}
