// Package testutil provides common test helpers for hosts and tagged handles.
package testutil

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/host/memhost"
)

// Host is a memhost.Runtime whose console output is captured.
type Host struct {
	*memhost.Runtime
	Stdout bytes.Buffer
	Stderr bytes.Buffer
}

// NewHost creates a captured runtime and fails the test if it ends with a
// non-empty protect stack.
func NewHost(t *testing.T, opts ...memhost.Option) *Host {
	t.Helper()
	h := &Host{}
	opts = append(opts, memhost.WithStdout(&h.Stdout), memhost.WithStderr(&h.Stderr))
	h.Runtime = memhost.New(opts...)
	t.Cleanup(func() {
		assert.Zero(t, h.ProtectDepth(), "protect stack not balanced at end of test")
	})
	return h
}

// RequireFailure asserts that out is a tagged failure handle and returns the
// message held by its text object.
func RequireFailure(t *testing.T, rt *memhost.Runtime, out entities.Handle) string {
	t.Helper()
	require.True(t, entities.IsFailure(out), "expected a tagged failure handle, got %s", out)
	msg := entities.Untag(out)
	require.Equal(t, entities.TypeChar, rt.TypeOf(msg), "failure handle must point at a char object")
	return rt.CharString(msg)
}

// RequireSuccess asserts that out is an untagged handle of type want.
func RequireSuccess(t *testing.T, rt *memhost.Runtime, out entities.Handle, want entities.ElementType) {
	t.Helper()
	require.False(t, entities.IsFailure(out), "unexpected failure: %s", describeFailure(rt, out))
	require.Equal(t, want, rt.TypeOf(out))
}

func describeFailure(rt *memhost.Runtime, out entities.Handle) string {
	if !entities.IsFailure(out) {
		return ""
	}
	return rt.CharString(entities.Untag(out))
}

// AssertJSONEqual compares two JSON strings for equality, ignoring formatting
func AssertJSONEqual(t *testing.T, expected, actual string, msgAndArgs ...interface{}) {
	t.Helper()

	var expectedJSON, actualJSON interface{}
	require.NoError(t, json.Unmarshal([]byte(expected), &expectedJSON), "expected JSON is invalid")
	require.NoError(t, json.Unmarshal([]byte(actual), &actualJSON), "actual JSON is invalid")

	assert.Equal(t, expectedJSON, actualJSON, msgAndArgs...)
}
