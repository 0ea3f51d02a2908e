package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/vecbridge"
	"github.com/reglet-dev/vecbridge/domain/entities"
	domainerrors "github.com/reglet-dev/vecbridge/domain/errors"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "vecbridge", cmd.Use)

	for _, name := range []string{"call", "list", "schema"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "list", "--format", "xml")
	assert.ErrorContains(t, err, `invalid format "xml"`)
}

func TestCall(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"upper", []string{"call", "to_upper", "abc", "Déf"}, "ABC\nDÉF\n"},
		{"integer", []string{"call", "times_two_integer", "--", "1", "-3", "2147483647"}, "2\n-6\n-2\n"},
		{"real", []string{"call", "times_two_real", "--", "1.5", "-0.25"}, "3\n-0.5\n"},
		{"empty input", []string{"call", "times_two_real"}, ""},
		{"gc torture", []string{"call", "to_upper", "a", "b", "c", "--gc-torture"}, "A\nB\nC\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestCall_TypeMismatch(t *testing.T) {
	_, _, err := execute(t, "call", "times_two_integer", "1.5", "--as", "double")

	var hostErr *domainerrors.HostCallError
	require.ErrorAs(t, err, &hostErr)
	assert.Equal(t, "times_two_integer", hostErr.EntryPoint)
	assert.Contains(t, hostErr.Message, "expected integer vector, got double vector")
}

func TestCall_NullInput(t *testing.T) {
	_, _, err := execute(t, "call", "to_upper", "--as", "NULL")
	assert.ErrorContains(t, err, "got NULL")
}

func TestCall_UnknownEntry(t *testing.T) {
	_, _, err := execute(t, "call", "reverse", "abc")
	assert.ErrorContains(t, err, `unknown entry point "reverse"`)
}

func TestCall_BadValue(t *testing.T) {
	_, _, err := execute(t, "call", "times_two_integer", "one")
	assert.ErrorContains(t, err, "value 0")
}

func TestCall_MissingEntry(t *testing.T) {
	_, _, err := execute(t, "call")
	assert.ErrorContains(t, err, "requires at least 1 arg")
}

func TestCall_JSON(t *testing.T) {
	stdout, _, err := execute(t, "call", "times_two_integer", "4", "--format", "json")
	require.NoError(t, err)

	var res CallResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, CallResult{Entry: "times_two_integer", Type: "integer", Values: []string{"8"}}, res)
}

func TestCall_ConfigAndVerboseLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vecbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: info\n"), 0o600))

	_, stderr, err := execute(t, "call", "times_two_real", "x", "--as", "text", "--config", path)
	require.Error(t, err)
	assert.Contains(t, stderr, "INFO catalog: entry point failed entry=times_two_real")

	_, stderr, err = execute(t, "call", "times_two_real", "2", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "DEBUG catalog: invoking entry point entry=times_two_real")
}

func TestCall_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vecbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_message_bytes: 1\n"), 0o600))

	_, _, err := execute(t, "call", "to_upper", "a", "--config", path)
	assert.ErrorContains(t, err, "max_message_bytes")
}

func TestCall_MissingWasm(t *testing.T) {
	_, _, err := execute(t, "call", "to_upper", "a", "--wasm", filepath.Join(t.TempDir(), "none.wasm"))
	assert.ErrorContains(t, err, "failed to read module")
}

func TestList(t *testing.T) {
	stdout, _, err := execute(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.True(t, strings.HasPrefix(lines[1], "times_two_integer"))
	assert.True(t, strings.HasPrefix(lines[3], "to_upper"))
}

func TestList_JSON(t *testing.T) {
	stdout, _, err := execute(t, "list", "--format", "json")
	require.NoError(t, err)

	var m entities.Manifest
	require.NoError(t, json.Unmarshal([]byte(stdout), &m))
	assert.Equal(t, "vecbridge", m.Name)
	assert.Equal(t, vecbridge.Version, m.Version)
	assert.NotEmpty(t, m.ConfigSchema)

	ep, ok := m.Lookup("to_upper")
	require.True(t, ok)
	assert.Equal(t, "character", ep.InputName)
}

func TestSchema(t *testing.T) {
	stdout, _, err := execute(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, stdout, "max_message_bytes")

	stdout, _, err = execute(t, "schema", "--manifest")
	require.NoError(t, err)
	assert.Contains(t, stdout, "entry_points")
	assert.Contains(t, stdout, "vecbridge manifest")
}
