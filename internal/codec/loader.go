package codec

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// Loader provides thread-safe caching of decoded files to avoid redundant
// disk reads and decodes.
//
// Cached sources remain in memory until removed with Evict or Clear. Buffers
// are shared between callers and must be treated as read-only.
type Loader struct {
	mu      sync.RWMutex
	sources map[string]*Decoded
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{
		sources: make(map[string]*Decoded),
	}
}

// Load returns the decoded file at path, reading it from disk on first use.
//
// Parameters:
//   - path: File path of the photo. Any format registered with the image
//     package decodes, including PNG, JPEG, GIF, WebP, TIFF and BMP.
//
// Returns:
//   - *Decoded: The image normalised to *image.NRGBA with EXIF orientation
//     applied, plus its source format and byte size. The same value is
//     returned to every caller and must not be modified.
//   - error: Non-nil if the file cannot be opened or decoded.
//
// Entries are keyed by the exact path string, so relative and absolute paths
// to one file are cached separately.
//
// # Errors
//
//   - Returns a wrapped os error if the file does not exist or cannot be read
//   - Returns a *DecodeError whose Source is path if the bytes are not an image
//
// # Example Usage
//
//	loader := codec.NewLoader()
//	src, err := loader.Load("/photos/beach.jpg")
//	if err != nil {
//	    return err
//	}
//	m := metrics.Analyze(src.Image)
func (l *Loader) Load(path string) (*Decoded, error) {
	l.mu.RLock()
	if src, ok := l.sources[path]; ok {
		l.mu.RUnlock()
		return src, nil
	}
	l.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	src, err := Decode(f)
	if err != nil {
		var derr *DecodeError
		if errors.As(err, &derr) {
			derr.Source = path
		}
		return nil, err
	}

	l.mu.Lock()
	l.sources[path] = src
	l.mu.Unlock()

	return src, nil
}

// Evict removes one path. Unknown paths are ignored.
func (l *Loader) Evict(path string) {
	l.mu.Lock()
	delete(l.sources, path)
	l.mu.Unlock()
}

// Clear removes every cached source.
func (l *Loader) Clear() {
	l.mu.Lock()
	l.sources = make(map[string]*Decoded)
	l.mu.Unlock()
}

// Len returns the number of cached sources.
func (l *Loader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sources)
}
