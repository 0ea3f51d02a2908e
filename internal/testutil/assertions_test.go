package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reglet-dev/vecbridge/bridge"
	"github.com/reglet-dev/vecbridge/domain/entities"
)

func TestNewHost_CapturesConsole(t *testing.T) {
	h := NewHost(t)
	h.Print("out")
	h.PrintError("err")
	assert.Equal(t, "out", h.Stdout.String())
	assert.Equal(t, "err", h.Stderr.String())
}

func TestRequireFailure(t *testing.T) {
	h := NewHost(t)
	out := bridge.Run(h, func() (entities.Handle, error) {
		panic("boom")
	})
	assert.Contains(t, RequireFailure(t, h.Runtime, out), "panic: boom")
}

func TestRequireSuccess(t *testing.T) {
	h := NewHost(t)
	RequireSuccess(t, h.Runtime, h.NewIntegers(1), entities.TypeInteger)
}

func TestAssertJSONEqual(t *testing.T) {
	AssertJSONEqual(t, `{"a": 1, "b": [1, 2]}`, `{"b":[1,2],"a":1}`)
}
