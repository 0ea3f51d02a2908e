package host

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/domain/errors"
	"github.com/reglet-dev/vecbridge/host/memhost"
)

// testGuest imports vec_host.length and exports three (i64) -> i64
// functions: identity returns its argument, fail returns the bare failure
// bit, trap executes unreachable.
var testGuest = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, // magic, version
	0x01, 0x06, 0x01, 0x60, 0x01, 0x7e, 0x01, 0x7e, // type: (i64) -> i64
	0x02, 0x13, 0x01, // import
	0x08, 0x76, 0x65, 0x63, 0x5f, 0x68, 0x6f, 0x73, 0x74, // "vec_host"
	0x06, 0x6c, 0x65, 0x6e, 0x67, 0x74, 0x68, // "length"
	0x00, 0x00,
	0x03, 0x04, 0x03, 0x00, 0x00, 0x00, // functions
	0x07, 0x1a, 0x03, // exports
	0x08, 0x69, 0x64, 0x65, 0x6e, 0x74, 0x69, 0x74, 0x79, 0x00, 0x01, // "identity"
	0x04, 0x66, 0x61, 0x69, 0x6c, 0x00, 0x02, // "fail"
	0x04, 0x74, 0x72, 0x61, 0x70, 0x00, 0x03, // "trap"
	0x0a, 0x0f, 0x03, // code
	0x04, 0x00, 0x20, 0x00, 0x0b, // local.get 0
	0x04, 0x00, 0x42, 0x01, 0x0b, // i64.const 1
	0x03, 0x00, 0x00, 0x0b, // unreachable
}

func newTestExecutor(t *testing.T) (*Executor, *memhost.Runtime) {
	t.Helper()
	ctx := context.Background()
	rt := memhost.New()
	e, err := NewExecutor(ctx, WithRuntime(rt), WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, e.Close(ctx)) })
	return e, rt
}

func TestNewExecutor(t *testing.T) {
	ctx := context.Background()
	e, err := NewExecutor(ctx)
	require.NoError(t, err)
	assert.NotNil(t, e.Host())
	assert.NoError(t, e.Close(ctx))
}

func TestLoadModule_Invalid(t *testing.T) {
	e, _ := newTestExecutor(t)
	_, err := e.LoadModule(context.Background(), []byte("not wasm"))
	assert.ErrorContains(t, err, "failed to instantiate module")
}

func TestInstance_Call(t *testing.T) {
	e, rt := newTestExecutor(t)
	ctx := context.Background()

	inst, err := e.LoadModule(ctx, testGuest)
	require.NoError(t, err)
	assert.True(t, inst.Has("identity"))
	assert.False(t, inst.Has("to_upper"))

	t.Run("success", func(t *testing.T) {
		in := rt.NewIntegers(1, 2)
		out, err := inst.Call(ctx, "identity", in)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("tagged failure", func(t *testing.T) {
		_, err := inst.Call(ctx, "fail", rt.NewIntegers(1))
		var hostErr *errors.HostCallError
		require.ErrorAs(t, err, &hostErr)
		assert.Equal(t, "fail", hostErr.EntryPoint)
	})

	t.Run("trap", func(t *testing.T) {
		_, err := inst.Call(ctx, "trap", rt.NewIntegers(1))
		assert.ErrorContains(t, err, "unreachable")
	})

	t.Run("missing export", func(t *testing.T) {
		_, err := inst.Call(ctx, "to_upper", rt.NewStrings("a"))
		assert.ErrorContains(t, err, `export "to_upper" not found`)
	})

	assert.Zero(t, rt.ProtectDepth())
}

func TestLoadModule_Twice(t *testing.T) {
	e, _ := newTestExecutor(t)
	ctx := context.Background()

	_, err := e.LoadModule(ctx, testGuest)
	require.NoError(t, err)
	_, err = e.LoadModule(ctx, testGuest)
	require.NoError(t, err, "instances get unique names")
}

func TestInstance_CallReturnsHandle(t *testing.T) {
	e, rt := newTestExecutor(t)
	ctx := context.Background()
	inst, err := e.LoadModule(ctx, testGuest)
	require.NoError(t, err)

	out, err := inst.Call(ctx, "identity", rt.Null())
	require.NoError(t, err)
	assert.Equal(t, entities.TypeNull, rt.TypeOf(out))
}
