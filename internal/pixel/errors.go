package pixel

import (
	"errors"
	"fmt"
)

// ErrDegenerate is returned when a buffer is too small for an operation.
var ErrDegenerate = errors.New("degenerate buffer")

// ErrNothingToBalance is returned by WhiteBalance when every channel mean is 0.
var ErrNothingToBalance = errors.New("all channel means are zero")

// ComputeError records a pipeline step that was skipped because it could not
// be computed on the current buffer. It is never fatal: callers keep the
// buffer produced by the previous step.
type ComputeError struct {
	Step string
	Err  error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("%s skipped: %v", e.Step, e.Err)
}

func (e *ComputeError) Unwrap() error {
	return e.Err
}
