package preview

import (
	"errors"
	"fmt"
)

// ErrNilResult is the cause recorded when a factory returns neither a buffer
// nor an error.
var ErrNilResult = errors.New("factory returned no image")

// ComputeError reports a failed or panicking factory for Key.
type ComputeError struct {
	Key string
	Err error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("failed to compute preview %q: %v", e.Key, e.Err)
}

func (e *ComputeError) Unwrap() error {
	return e.Err
}
