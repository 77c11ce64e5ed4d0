package expression

import "errors"

var (
	ErrUnmappedContextField = errors.New("unmapped context field")
	ErrUnsupportedContext   = errors.New("unsupported parameter context")
)
