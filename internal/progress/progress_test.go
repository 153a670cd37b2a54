package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuncReporter(t *testing.T) {
	var completed, remaining int
	rep := Func(func(c, r int) {
		completed, remaining = c, r
	})

	rep.Checkpoint(3, 7)
	assert.Equal(t, 3, completed)
	assert.Equal(t, 7, remaining)
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard.Checkpoint(0, -1)
		Discard.Checkpoint(100, 0)
	})
}

func TestNewBarDisabled(t *testing.T) {
	rep := NewBar(&bytes.Buffer{}, 10, "packing", false)
	assert.Equal(t, Discard, rep)
}

func TestNewBarCheckpoints(t *testing.T) {
	var out bytes.Buffer
	rep := NewBar(&out, 3, "packing", true)

	assert.NotPanics(t, func() {
		rep.Checkpoint(0, 3)
		rep.Checkpoint(1, 2)
		rep.Checkpoint(2, 1)
		rep.Checkpoint(3, 0)
	})
}
