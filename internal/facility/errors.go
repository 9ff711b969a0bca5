package facility

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter indicates an out-of-domain value at construction.
// No errors are produced during steady-state Advance or query calls.
var ErrInvalidParameter = errors.New("facility: invalid parameter")

// ParameterError carries the offending parameter for configuration errors.
type ParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("facility: invalid parameter %s=%g: %s", e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

func invalidParam(name string, value float64, reason string) error {
	return &ParameterError{Name: name, Value: value, Reason: reason}
}
