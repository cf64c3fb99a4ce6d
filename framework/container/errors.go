package container

import (
	"errors"
	"strconv"
)

var (
	// ErrUnresolvedBinding matches every UnresolvedBindingError via errors.Is.
	ErrUnresolvedBinding = errors.New("container: unresolved binding")

	// ErrMissingInjection matches every MissingInjectionError via errors.Is.
	ErrMissingInjection = errors.New("container: missing injection registration")
)

// UnresolvedBindingError is returned by Get when no binding exists for a
// required token anywhere in the vault chain.
type UnresolvedBindingError struct{ Token string }

// Error implements the error interface.
func (e *UnresolvedBindingError) Error() string {
	return "No matching bindings found for '" + e.Token + "' token."
}

// Is reports whether target is ErrUnresolvedBinding.
func (e *UnresolvedBindingError) Is(target error) bool { return target == ErrUnresolvedBinding }

// MissingInjectionError is returned when a target declares parameters but was
// never registered with Injected.
type MissingInjectionError struct{ Target string }

// Error implements the error interface.
func (e *MissingInjectionError) Error() string {
	return "Missing required 'injected' registration of '" + e.Target + "'"
}

// Is reports whether target is ErrMissingInjection.
func (e *MissingInjectionError) Is(target error) bool { return target == ErrMissingInjection }

// ArgumentError is returned when a resolved dependency cannot be passed to
// the parameter it was injected into.
type ArgumentError struct {
	Target string
	Index  int
	Want   string
	Got    string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	// Example: container: argument 0 of "Doubler" wants int, got string
	return "container: argument " + strconv.Itoa(e.Index) + " of " + strconv.Quote(e.Target) +
		" wants " + e.Want + ", got " + e.Got
}

// TypeMismatchError is returned by Resolve when the resolved value does not
// have the token's type.
type TypeMismatchError struct {
	Token string
	Want  string
	Got   string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return "container: " + strconv.Quote(e.Token) + " resolved to " + e.Got + ", want " + e.Want
}
