package events

import "errors"

var (
	// ErrNilAnnotation is returned by Register when no annotation is given.
	ErrNilAnnotation = errors.New("events: nil annotation")

	// ErrNilHandler is returned when a nil handler is registered.
	ErrNilHandler = errors.New("events: nil handler")
)

// HandlerShapeError is returned when a handler is not a function taking the
// message as its first parameter ahead of any dependency-backed parameters.
type HandlerShapeError struct {
	// Type is the reflected type of the rejected handler.
	Type string
}

// Error implements the error interface.
func (e HandlerShapeError) Error() string {
	// Example: events: handler func() must take the message as its first parameter
	return "events: handler " + e.Type + " must take the message as its first parameter"
}
