package pixel

import (
	"image"
	"sort"

	"github.com/anthonynsimon/bild/parallel"
)

// DenoiseVarianceScale converts a denoise intensity into the 3x3 luminance
// variance (8-bit units) a pixel must exceed to be treated as noisy:
// threshold = DenoiseVarianceScale * (1 - intensity).
const DenoiseVarianceScale = 100.0

// Denoise performs variance-triggered median smoothing.
//
// For every interior pixel the variance of luminance over its 3x3
// neighbourhood is computed from the unmodified source. When it exceeds the
// intensity-scaled threshold, each colour channel is blended toward the
// per-channel median of the neighbourhood by intensity. Border pixels are
// copied. intensity is clamped to [0,1].
//
// Images narrower or shorter than 3 pixels have no interior; an unmodified copy
// is returned together with ErrDegenerate.
func Denoise(src image.Image, intensity float64) (*image.NRGBA, error) {
	in := view(src)
	out := Clone(in)
	w, h := in.Rect.Dx(), in.Rect.Dy()
	if w < 3 || h < 3 {
		return out, ErrDegenerate
	}
	intensity = clampFloat(intensity, 0, 1)
	if intensity == 0 {
		return out, nil
	}
	threshold := DenoiseVarianceScale * (1 - intensity)
	luma := LumaPlane(in)

	parallel.Line(h-2, func(start, end int) {
		var window [3][9]int
		for y := start + 1; y < end+1; y++ {
			for x := 1; x < w-1; x++ {
				var sum, sumSq float64
				n := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						l := luma[(y+dy)*w+x+dx]
						sum += l
						sumSq += l * l
						k := (y+dy)*in.Stride + (x+dx)*4
						window[0][n] = int(in.Pix[k+0])
						window[1][n] = int(in.Pix[k+1])
						window[2][n] = int(in.Pix[k+2])
						n++
					}
				}
				mean := sum / 9
				variance := sumSq/9 - mean*mean
				if variance <= threshold {
					continue
				}
				i := y*in.Stride + x*4
				for c := 0; c < 3; c++ {
					vals := window[c][:]
					sort.Ints(vals)
					median := float64(vals[4])
					v := float64(in.Pix[i+c])
					out.Pix[i+c] = ClampByte(v + (median-v)*intensity)
				}
			}
		}
	})
	return out, nil
}
