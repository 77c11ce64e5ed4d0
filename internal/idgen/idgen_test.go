package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	defer func(fn func() string) { NewFunc = fn }(NewFunc)
	NewFunc = func() string { return "1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed" }
	assert.Equal(t, "workflow-1b9d6bcd", Name("workflow"))
	assert.Equal(t, "1b9d6bcd", Name(""))
}

func TestNew(t *testing.T) {
	assert.NotEqual(t, New(), New())
	assert.Len(t, New(), 36)
}
