// Package engine holds what the rendering packages share: the
// invalid-parameter error taxonomy.
package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is returned (wrapped in a *ParamError) when an input
// would make a mesh or camera undefined. Nothing is constructed in that case.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamError describes which input was rejected and why.
type ParamError struct {
	Op     string // operation, e.g. "mesh.BuildSphere"
	Param  string // parameter name
	Value  any    // offending value
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %v: %s=%v: %s", e.Op, ErrInvalidParameter, e.Param, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidParameter.
func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}

// Invalid builds a *ParamError.
func Invalid(op, param string, value any, reason string) error {
	return &ParamError{Op: op, Param: param, Value: value, Reason: reason}
}
