package vecbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/domain/ports"
	"github.com/reglet-dev/vecbridge/exports"
	"github.com/reglet-dev/vecbridge/internal/testutil"
)

func TestNew(t *testing.T) {
	h := testutil.NewHost(t)
	catalog, err := New(h)
	require.NoError(t, err)

	m := catalog.Manifest()
	assert.Equal(t, Version, m.Version)
	assert.Len(t, m.EntryPoints, 3)

	out, err := h.Call(exports.NameTimesTwoReal, catalog.Bind(t.Context(), exports.NameTimesTwoReal), h.NewReals(0.5))
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, h.Reals(out))
	h.Release(out)
}

func TestNew_FailureIsTagged(t *testing.T) {
	h := testutil.NewHost(t)
	catalog, err := New(h)
	require.NoError(t, err)

	out := catalog.Invoke(t.Context(), exports.NameToUpper, h.NewIntegers(1))
	msg := testutil.RequireFailure(t, h.Runtime, out)
	assert.Equal(t, "type mismatch: expected character vector, got integer vector", msg)
}

func TestNew_ExtraEntryPoint(t *testing.T) {
	h := testutil.NewHost(t)
	catalog, err := New(h, exports.WithEntryPoint(EntryPoint{
		Name:   "identity",
		Input:  entities.TypeInteger,
		Output: entities.TypeInteger,
		Func:   func(_ ports.Host, x Handle) (Handle, error) { return x, nil },
	}))
	require.NoError(t, err)
	assert.True(t, catalog.Has("identity"))
}
