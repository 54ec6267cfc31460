// Package enhance runs the automatic photo correction pipeline.
//
// The pipeline is a fixed, order-sensitive sequence; each step consumes the
// previous step's output:
//
//  1. linear: brightness, contrast and saturation fused into one colour matrix
//  2. white balance (when flagged)
//  3. denoise (when flagged by low sharpness or a noise hint)
//  4. sharpen (when flagged)
//
// A step that cannot be computed on the current buffer is skipped and
// recorded in the Report; the run itself never fails for a non-empty image.
package enhance

import (
	"errors"
	"image"

	"github.com/rs/zerolog"

	"github.com/ironsheep/photo-fx-mcp/internal/metrics"
	"github.com/ironsheep/photo-fx-mcp/internal/pixel"
)

// Step names used in reports and logs.
const (
	StepLinear       = "linear"
	StepWhiteBalance = "white_balance"
	StepDenoise      = "denoise"
	StepSharpen      = "sharpen"
)

// Report describes what one enhancement run did.
type Report struct {
	Params  Params                `json:"params"`
	Hints   HintFlags             `json:"hints"`
	Applied []string              `json:"applied"`
	Skipped []*pixel.ComputeError `json:"-"`
}

// SkippedSteps returns the names of skipped steps.
func (r Report) SkippedSteps() []string {
	names := make([]string, len(r.Skipped))
	for i, s := range r.Skipped {
		names[i] = s.Step
	}
	return names
}

// Enhancer runs the correction pipeline. The zero value is not usable; create
// one with New.
type Enhancer struct {
	hints HintMapper
	log   zerolog.Logger
}

// Option configures an Enhancer.
type Option func(*Enhancer)

// WithHintMapper replaces the keyword-based hint mapping.
func WithHintMapper(m HintMapper) Option {
	return func(e *Enhancer) {
		if m != nil {
			e.hints = m
		}
	}
}

// WithLogger sets the logger used for per-run debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Enhancer) {
		e.log = l
	}
}

// New creates an Enhancer using DefaultKeywords and a silent logger unless
// overridden.
func New(opts ...Option) *Enhancer {
	e := &Enhancer{
		hints: KeywordMapper(DefaultKeywords),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enhance returns a corrected copy of src. See Run.
func (e *Enhancer) Enhance(src image.Image, m metrics.Metrics, hints []string, aggressive bool) *image.NRGBA {
	out, _ := e.Run(src, m, hints, aggressive)
	return out
}

// Run applies the pipeline to a copy of src and reports what was done.
//
// m should be the result of metrics.Analyze(src). A new buffer is always
// returned, including when no correction is flagged.
func (e *Enhancer) Run(src image.Image, m metrics.Metrics, hints []string, aggressive bool) (*image.NRGBA, Report) {
	flags := e.hints(hints)
	rep := Report{
		Params: Derive(m, flags, aggressive),
		Hints:  flags,
	}
	p := rep.Params
	work := pixel.Clone(src)

	if pixel.IsDegenerate(work) {
		rep.skip(StepLinear, pixel.ErrDegenerate)
		e.logRun(rep)
		return work, rep
	}

	if p.Brightness != 1 || p.Contrast != 1 || p.Saturation != 1 {
		work = pixel.ApplyMatrix(work, LinearMatrix(p))
		rep.Applied = append(rep.Applied, StepLinear)
	}

	if p.BalanceWhite {
		if out, err := pixel.WhiteBalance(work); err != nil {
			rep.skip(StepWhiteBalance, err)
		} else {
			work = out
			rep.Applied = append(rep.Applied, StepWhiteBalance)
		}
	}

	if p.Denoise {
		if out, err := pixel.Denoise(work, p.DenoiseIntensity); err != nil {
			rep.skip(StepDenoise, err)
		} else {
			work = out
			rep.Applied = append(rep.Applied, StepDenoise)
		}
	}

	if p.Sharpen {
		work = pixel.UnsharpMask(work, p.SharpenAmount)
		rep.Applied = append(rep.Applied, StepSharpen)
	}

	e.logRun(rep)
	return work, rep
}

// LinearMatrix fuses the brightness, contrast and saturation corrections of p
// into one colour matrix, applied in that order.
func LinearMatrix(p Params) pixel.ColorMatrix {
	return pixel.Chain(
		pixel.BrightnessMatrix(p.Brightness),
		pixel.ContrastAroundMatrix(p.Contrast, p.ContrastPivot),
		pixel.LumaSaturationMatrix(p.Saturation),
	)
}

func (r *Report) skip(step string, err error) {
	r.Skipped = append(r.Skipped, &pixel.ComputeError{Step: step, Err: err})
}

func (e *Enhancer) logRun(rep Report) {
	ev := e.log.Debug().
		Strs("applied", rep.Applied).
		Float64("brightness", rep.Params.Brightness).
		Float64("contrast", rep.Params.Contrast).
		Float64("saturation", rep.Params.Saturation).
		Float64("aggressiveness", rep.Params.Aggressiveness)
	if len(rep.Skipped) > 0 {
		ev = ev.Strs("skipped", rep.SkippedSteps()).Err(errors.Join(skippedErrs(rep.Skipped)...))
	}
	ev.Msg("enhancement complete")
}

func skippedErrs(skipped []*pixel.ComputeError) []error {
	errs := make([]error, len(skipped))
	for i, s := range skipped {
		errs[i] = s
	}
	return errs
}

var defaultEnhancer = New()

// Enhance runs the pipeline with the default keyword hints and no logging.
func Enhance(src image.Image, m metrics.Metrics, hints []string, aggressive bool) *image.NRGBA {
	return defaultEnhancer.Enhance(src, m, hints, aggressive)
}
