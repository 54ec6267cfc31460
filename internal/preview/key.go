package preview

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"image"
	"strings"

	"github.com/ironsheep/photo-fx-mcp/internal/filters"
	"github.com/ironsheep/photo-fx-mcp/internal/pixel"
)

// Fingerprint returns the hex SHA-256 of the image dimensions followed by its
// NRGBA pixel rows. Equal pixels give equal fingerprints regardless of the
// image's concrete type or bounds origin.
func Fingerprint(img image.Image) string {
	src, ok := img.(*image.NRGBA)
	if !ok {
		src = pixel.Clone(img)
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()

	hash := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(w))
	binary.LittleEndian.PutUint32(buf[4:], uint32(h))
	hash.Write(buf[:])
	for y := 0; y < h; y++ {
		off := y * src.Stride
		hash.Write(src.Pix[off : off+w*4])
	}
	return hex.EncodeToString(hash.Sum(nil))
}

// Key joins a source fingerprint, a filter name and serialized parameters.
func Key(fingerprint, filter, params string) string {
	return strings.Join([]string{fingerprint, filter, params}, "|")
}

// FilterKey is Key for applying spec to src.
func FilterKey(src image.Image, spec filters.Spec) string {
	return Key(Fingerprint(src), spec.Name(), spec.Params())
}
