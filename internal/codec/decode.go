package codec

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/photo-fx-mcp/internal/pixel"
)

// DecodeError reports input that could not be decoded into a buffer.
type DecodeError struct {
	// Source names the input, e.g. a file path or "base64".
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode image from %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decoded is a decoded photo.
type Decoded struct {
	// Image is the upright pixel buffer.
	Image *image.NRGBA

	// Format is the registered decoder name: "png", "jpeg", "gif", "webp",
	// "tiff" or "bmp".
	Format string

	// Size is the length of the encoded input in bytes.
	Size int64
}

// Decode reads an encoded image from r.
func Decode(r io.Reader) (*Decoded, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Source: "reader", Err: err}
	}
	return decodeBytes("reader", data)
}

// DecodeBase64 decodes a base64 encoded image. A leading data URL header such
// as "data:image/png;base64," is accepted and ignored.
func DecodeBase64(s string) (*Decoded, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &DecodeError{Source: "base64", Err: err}
	}
	return decodeBytes("base64", data)
}

func decodeBytes(source string, data []byte) (*Decoded, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Source: source, Err: io.ErrUnexpectedEOF}
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}
	return &Decoded{
		Image:  pixel.Clone(img),
		Format: format,
		Size:   int64(len(data)),
	}, nil
}
