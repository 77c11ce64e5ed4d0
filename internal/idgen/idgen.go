package idgen

import (
	"strings"

	"github.com/google/uuid"
)

// NewFunc generates identifiers; tests may replace it.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier as string.
func New() string { return NewFunc() }

// Name returns prefix followed by the first segment of a new identifier, e.g. workflow-1b9d6bcd
func Name(prefix string) string {
	id := New()
	if index := strings.IndexByte(id, '-'); index > 0 {
		id = id[:index]
	}
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}
