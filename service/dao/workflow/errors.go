package workflow

import "errors"

var (
	// ErrUnknownStateType is returned for an inline state with an unsupported type
	ErrUnknownStateType = errors.New("unknown state type")
	// ErrInvalidNode is returned when a YAML node has an unexpected shape
	ErrInvalidNode = errors.New("invalid node")
)
