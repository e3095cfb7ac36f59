package algebra

import (
	"errors"
	"fmt"
)

// UnknownOperationError is returned when an invocation names an operation
// that is not registered.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Name)
}

// DuplicateOperationError is returned when a second operation is registered
// under an already-taken name.
type DuplicateOperationError struct {
	Name string
}

func (e *DuplicateOperationError) Error() string {
	return fmt.Sprintf("operation %q is already registered", e.Name)
}

// TypeMismatchError is returned when an evaluated argument does not conform
// to the shape declared for its parameter.
type TypeMismatchError struct {
	Op       string
	Param    string
	Expected string
	Err      error
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("operation %q, argument %q: %v", e.Op, e.Param, e.Err)
}

func (e *TypeMismatchError) Unwrap() error { return e.Err }

// MissingBindingError is returned when a variable reference resolves
// neither in the variable stack nor in the current row.
type MissingBindingError struct {
	Name  string
	Scope string // "stack" or "row"
}

func (e *MissingBindingError) Error() string {
	switch {
	case e.Scope == "row" && e.Name == "":
		return "no current row"
	case e.Scope == "row":
		return fmt.Sprintf("no column %q in the current row", e.Name)
	default:
		return fmt.Sprintf("no binding for variable %q", e.Name)
	}
}

// IsUnknownOperation reports whether err wraps an UnknownOperationError.
func IsUnknownOperation(err error) bool {
	var target *UnknownOperationError
	return errors.As(err, &target)
}

// IsTypeMismatch reports whether err wraps a TypeMismatchError.
func IsTypeMismatch(err error) bool {
	var target *TypeMismatchError
	return errors.As(err, &target)
}

// IsMissingBinding reports whether err wraps a MissingBindingError.
func IsMissingBinding(err error) bool {
	var target *MissingBindingError
	return errors.As(err, &target)
}
