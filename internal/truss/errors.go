package truss

import (
	"errors"
	"fmt"
)

// ErrEmptyStructure is returned when no nodes can be resolved from the
// input. Preview-style callers may treat it as "nothing to do"; an explicit
// compute request must surface it to the user.
var ErrEmptyStructure = errors.New("no structure: node set is empty")

// InvalidGeometryError marks a bar whose endpoints coincide. It is fatal
// and aborts the computation before any solve attempt.
type InvalidGeometryError struct {
	Bar string
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("bar %s has near-zero length", e.Bar)
}

// UnknownNodeError is returned in strict mode when a bar references a node
// that was never defined. The default (non-strict) builder silently creates
// such nodes at the origin instead.
type UnknownNodeError struct {
	Key string
	Bar string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("bar %s references undefined node %s", e.Bar, e.Key)
}

// UnsolvableError wraps a numerical failure of the least-squares routine.
// No partial result accompanies it.
type UnsolvableError struct {
	Err error
}

func (e *UnsolvableError) Error() string {
	return fmt.Sprintf("cannot solve equilibrium system: %v", e.Err)
}

func (e *UnsolvableError) Unwrap() error { return e.Err }
