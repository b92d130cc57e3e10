package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilPanic(t *testing.T) {
	var nilMap map[string]int
	var nilPtr *FacilitatorError

	assert.PanicsWithValue(t, "store is required", func() { NilPanic[any](nil, "store is required") })
	assert.PanicsWithValue(t, "map", func() { NilPanic(nilMap, "map") })
	assert.PanicsWithValue(t, "ptr", func() { NilPanic(nilPtr, "ptr") })
	assert.PanicsWithValue(t, "typed nil in interface", func() { NilPanic[error](nilPtr, "typed nil in interface") })

	e := NewBadParameterError("x", nil)
	assert.NotPanics(t, func() { assert.Same(t, e, NilPanic(e, "unexpected")) })
	assert.Equal(t, 0, NilPanic(0, "zero int is not nil"))
}
