// Package calcerr defines the failure taxonomy shared by every
// calculator. Each concrete error unwraps to a package sentinel so
// callers can classify with errors.Is without string matching.
package calcerr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a spec record that violates an invariant.
	ErrInvalidInput = errors.New("invalid input")
	// ErrLookup marks a property-table key with no entry.
	ErrLookup = errors.New("table lookup miss")
	// ErrUnsupportedConfig marks an input combination with no defined
	// formula.
	ErrUnsupportedConfig = errors.New("unsupported configuration")
	// ErrNonConvergence marks an iterative solve that exhausted its
	// iteration budget.
	ErrNonConvergence = errors.New("iteration did not converge")
)

// InvalidInputError reports which field broke which invariant. No
// computation has been performed when it is returned.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// Invalid builds an InvalidInputError for a named field.
func Invalid(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// Invalidf builds an InvalidInputError with a formatted reason.
func Invalidf(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// LookupError reports the table and key that had no entry.
type LookupError struct {
	Table string
	Key   string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s table: no entry for %q", e.Table, e.Key)
}

func (e *LookupError) Unwrap() error { return ErrLookup }

// Miss builds a LookupError.
func Miss(table, key string) error {
	return &LookupError{Table: table, Key: key}
}

// UnsupportedConfigError reports an (equipment class, code edition)
// pair, or any other combination, that maps to no formula.
type UnsupportedConfigError struct {
	Class   string
	Edition string
}

func (e *UnsupportedConfigError) Error() string {
	return fmt.Sprintf("no formula for %s under %s", e.Class, e.Edition)
}

func (e *UnsupportedConfigError) Unwrap() error { return ErrUnsupportedConfig }

// NonConvergenceError carries the last estimate and the iteration count
// for diagnostics.
type NonConvergenceError struct {
	LastEstimate float64
	Iterations   int
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("no convergence after %d iterations (last estimate %g)", e.Iterations, e.LastEstimate)
}

func (e *NonConvergenceError) Unwrap() error { return ErrNonConvergence }
