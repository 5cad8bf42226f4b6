package render

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned when neither width nor height is given,
// or when a resolved dimension is not positive.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// DecodeError wraps a failure of the image decoder. The underlying error is
// returned unchanged by Unwrap.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode image: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// WriteError wraps a failure of the output sink. Op is "write" or "flush".
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s output: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
