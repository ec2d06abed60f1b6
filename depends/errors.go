package depends

import (
	"errors"
	"strconv"
)

var (
	// ErrNotAFunction is returned when a resolution or injection target is not
	// a function.
	ErrNotAFunction = errors.New("depends: target is not a function")

	// ErrNotAProvider is the panic value raised by Depends when the given
	// provider is not a zero-argument function. Creating a marker from a
	// non-callable is a programming error, not a runtime condition.
	ErrNotAProvider = errors.New("depends: provider must be a zero-argument function")

	// ErrVariadicFunction is returned for variadic targets. Dependencies bind
	// to fixed trailing parameters, which a variadic tail would make ambiguous.
	ErrVariadicFunction = errors.New("depends: variadic functions are not supported")

	// ErrTooManyDependencies is returned when more dependencies than declared
	// parameters are attached to a target.
	ErrTooManyDependencies = errors.New("depends: more dependencies than parameters")

	// ErrTooManyArguments is returned when a caller supplies more explicit
	// arguments than the target declares parameters.
	ErrTooManyArguments = errors.New("depends: more arguments than parameters")
)

// MissingArgumentError is returned when a parameter has neither a
// caller-supplied argument nor a dependency marker.
type MissingArgumentError struct{ Index int }

// Error implements the error interface.
func (e MissingArgumentError) Error() string {
	// Example: depends: parameter 1 has neither an argument nor a dependency
	return "depends: parameter " + strconv.Itoa(e.Index) + " has neither an argument nor a dependency"
}

// ArgumentTypeError is returned when a supplied or resolved value is not
// assignable to the parameter it should fill.
type ArgumentTypeError struct {
	// Index is the position of the parameter that could not be filled.
	Index int

	// Want is the declared parameter type.
	Want string

	// Got is the type of the value that was supplied or resolved.
	Got string
}

// Error implements the error interface.
func (e ArgumentTypeError) Error() string {
	// Example: depends: parameter 0 wants training.Session, got int
	return "depends: parameter " + strconv.Itoa(e.Index) + " wants " + e.Want + ", got " + e.Got
}

// UnsupportedProviderError is returned when the effective provider callable
// (after overrides) has a signature outside the supported shapes.
type UnsupportedProviderError struct {
	// Type is the reflected type of the rejected callable.
	Type string
}

// Error implements the error interface.
func (e UnsupportedProviderError) Error() string {
	// Example: depends: unsupported provider shape func(int) int
	return "depends: unsupported provider shape " + e.Type
}

// ResultShapeError is returned by Inject when the target's results are not
// one of: no results, a single value, a single error, or (value, error).
type ResultShapeError struct {
	// Type is the reflected type of the rejected target.
	Type string
}

// Error implements the error interface.
func (e ResultShapeError) Error() string {
	// Example: depends: unsupported result shape func() (int, int)
	return "depends: unsupported result shape " + e.Type
}
