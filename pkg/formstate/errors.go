package formstate

import "errors"

var (
	// ErrClosed is returned by mutating calls after Close.
	ErrClosed = errors.New("formstate: controller closed")
	// ErrUnknownField is returned when an edit targets an id outside the
	// descriptor list.
	ErrUnknownField = errors.New("formstate: unknown field")
)
