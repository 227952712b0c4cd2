package calculation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when an amount is negative or otherwise unusable
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrLookup is returned when no table entry covers the requested value
	ErrLookup = errors.New("lookup failed")
)

// CalculationError describes a failed calculator operation
type CalculationError struct {
	Op      string
	Message string
	Err     error
}

func (e *CalculationError) Error() string {
	if e.Err != nil {
		return e.Op + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Message
}

func (e *CalculationError) Unwrap() error {
	return e.Err
}

func invalidArgument(op, format string, args ...any) error {
	return &CalculationError{Op: op, Message: fmt.Sprintf(format, args...), Err: ErrInvalidArgument}
}

func lookupError(op, format string, args ...any) error {
	return &CalculationError{Op: op, Message: fmt.Sprintf(format, args...), Err: ErrLookup}
}
