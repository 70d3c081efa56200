package checkout

import (
	"errors"
	"strings"
)

var (
	ErrValidationFailed = errors.New("order validation failed")
	ErrInvalidInput     = errors.New("invalid order input")
)

// ValidationError lists every check that failed, in evaluation order.
type ValidationError struct {
	Failed []Check
	// Keys of lines outside the active window.
	Incompatible []string
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Failed))
	for i, c := range e.Failed {
		names[i] = string(c)
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(names, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// Has reports whether check c failed.
func (e *ValidationError) Has(c Check) bool {
	for _, f := range e.Failed {
		if f == c {
			return true
		}
	}
	return false
}
