package config

import (
	"encoding/json"
	stdErrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/reglet-dev/vecbridge/bridge"
	"github.com/reglet-dev/vecbridge/domain/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, bridge.DefaultMaxMessageBytes, cfg.MaxMessageBytes)
	assert.False(t, cfg.GCTorture)
	assert.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Config
		wantErr string
	}{
		{
			name:  "empty keeps defaults",
			input: "",
			want:  Default(),
		},
		{
			name:  "partial override",
			input: "log_level: debug\ngc_torture: true\n",
			want:  Config{LogLevel: "debug", MaxMessageBytes: 8192, GCTorture: true},
		},
		{
			name:  "all fields",
			input: "log_level: error\ninclude_stack: true\nmax_message_bytes: 64\ngc_torture: false\ngc_interval: 10\n",
			want:  Config{LogLevel: "error", IncludeStack: true, MaxMessageBytes: 64, GCInterval: 10},
		},
		{
			name:    "unknown key",
			input:   "verbose: true\n",
			wantErr: "field verbose not found",
		},
		{
			name:    "bad level",
			input:   "log_level: loud\n",
			wantErr: "field 'log_level': failed on 'oneof=debug info warn error' with value loud",
		},
		{
			name:    "message bound too small",
			input:   "max_message_bytes: 10\n",
			wantErr: "field 'max_message_bytes': failed on 'min=64' with value 10",
		},
		{
			name:    "malformed yaml",
			input:   "log_level: [\n",
			wantErr: "config validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_ReportsEveryViolation(t *testing.T) {
	_, err := Parse([]byte("log_level: loud\nmax_message_bytes: 2000000\ngc_interval: -1\n"))
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 3)

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		var ce *errors.ConfigError
		require.True(t, stdErrors.As(e, &ce))
		fields = append(fields, ce.Field)
	}
	assert.ElementsMatch(t, []string{"log_level", "max_message_bytes", "gc_interval"}, fields)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vecbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, cfg.Level())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, Config{LogLevel: in}.Level(), in)
	}
}

func TestOptions(t *testing.T) {
	cfg := Config{LogLevel: "info", IncludeStack: true, MaxMessageBytes: 128, GCTorture: true}
	assert.Len(t, cfg.BridgeOptions(), 2)
	assert.Len(t, cfg.RuntimeOptions(), 2)
}

func TestSchema(t *testing.T) {
	raw, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "log_level")
	assert.Contains(t, props, "max_message_bytes")
	assert.Contains(t, props, "gc_torture")

	level := props["log_level"].(map[string]any)
	assert.ElementsMatch(t, []any{"debug", "info", "warn", "error"}, level["enum"])
}
