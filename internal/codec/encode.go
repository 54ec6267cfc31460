package codec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
)

// Format is an output encoding.
type Format string

// Output formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
)

// DefaultJPEGQuality is the maximum JPEG quality.
const DefaultJPEGQuality = 100

// ErrUnsupportedFormat is returned for output formats other than PNG and JPEG.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ParseFormat maps "png", "jpeg" or "jpg" (any case) to a Format. An empty
// string selects PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// MIMEType returns the media type of f.
func (f Format) MIMEType() string {
	if f == JPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// Encoder writes buffers in one format.
type Encoder struct {
	Format Format

	// Quality is the JPEG quality in [1,100]; values outside the range use
	// DefaultJPEGQuality. Ignored for PNG.
	Quality int
}

// Encode writes img to w.
func (e Encoder) Encode(w io.Writer, img image.Image) error {
	var format imaging.Format
	switch e.Format {
	case PNG, "":
		format = imaging.PNG
	case JPEG:
		format = imaging.JPEG
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, e.Format)
	}

	quality := e.Quality
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	if err := imaging.Encode(w, img, format, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to encode %s: %w", e.Format, err)
	}
	return nil
}

// EncodeBase64 encodes img and returns it as standard base64.
func (e Encoder) EncodeBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := e.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
