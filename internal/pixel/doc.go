// Package pixel provides the primitive raster operations used by the
// enhancement and artistic filter pipelines.
//
// # Buffers
//
// Every operation works on 8-bit, non-premultiplied RGBA buffers represented as
// *image.NRGBA whose bounds start at (0,0) and whose stride is exactly 4*width.
// Inputs are accepted as image.Image and normalised with Clone when they do not
// already have that shape. Inputs are never mutated: each operation returns a
// freshly allocated buffer, and operations that read neighbouring pixels (blur,
// denoise, sharpen) always read from the unmodified source.
//
// # Clamping
//
// Every channel write rounds half up and clamps to [0,255]. Alpha is carried
// through untouched by all operations except ApplyMatrix, whose fourth row
// addresses the alpha channel explicitly.
//
// # Colour Math
//
// Luminance uses ITU-R BT.601 weights (0.299*R + 0.587*G + 0.114*B).
// Saturation, hue rotation and sepia use the matrices defined by the CSS
// Filter Effects module (W3C) so that results match the browser filters the
// basic presets were designed against:
//
//	saturate(s):   0.213+0.787s  0.715-0.715s  0.072-0.072s
//	               0.213-0.213s  0.715+0.285s  0.072-0.072s
//	               0.213-0.213s  0.715-0.715s  0.072+0.928s
//
// # Concurrency
//
// Per-pixel operations split rows across goroutines with bild's parallel.Line.
// Grain is the exception: it draws from a seeded generator in scan order so
// that output is reproducible.
package pixel
