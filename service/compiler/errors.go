package compiler

import "errors"

var (
	// ErrUnknownStep is returned when a transition names an undeclared task step
	ErrUnknownStep = errors.New("unknown step reference")
	// ErrMissingNext is returned when a required transition (choice rule, catch) has no target
	ErrMissingNext = errors.New("missing required transition")
	// ErrMissingStart is returned when a flow has no start reference
	ErrMissingStart = errors.New("missing start reference")
)
