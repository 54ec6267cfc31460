// Package codec converts between encoded photos and the NRGBA buffers the
// filter engine works on.
//
// Decoding accepts PNG, JPEG and GIF (standard library) plus WebP, TIFF and
// BMP (golang.org/x/image). EXIF orientation is applied on decode so buffers
// are always upright. Every decoded image is normalised to a *image.NRGBA
// with bounds starting at (0,0).
//
// Encoding writes PNG or JPEG. JPEG output defaults to quality 100 so results
// are not recompressed beyond the codec's baseline.
//
// # Loader
//
// [Loader] caches decoded files by path, in the same way the tools server
// reuses sources across requests. Different spellings of the same path are
// separate entries.
package codec
