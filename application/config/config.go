// Package config loads and validates bridge configuration.
//
// Configuration is YAML:
//
//	log_level: debug
//	include_stack: true
//	max_message_bytes: 4096
//	gc_torture: false
//	gc_interval: 0
//
// Missing keys keep their defaults. Unknown keys are rejected.
package config

import (
	"bytes"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/reglet-dev/vecbridge/application/schema"
	"github.com/reglet-dev/vecbridge/bridge"
	"github.com/reglet-dev/vecbridge/domain/errors"
	"github.com/reglet-dev/vecbridge/host/memhost"
)

// Config holds the bridge settings.
type Config struct {
	LogLevel        string `yaml:"log_level" json:"log_level" validate:"oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info"`
	IncludeStack    bool   `yaml:"include_stack" json:"include_stack" jsonschema:"default=false"`
	MaxMessageBytes int    `yaml:"max_message_bytes" json:"max_message_bytes" validate:"min=64,max=1048576" jsonschema:"minimum=64,maximum=1048576,default=8192"`
	GCTorture       bool   `yaml:"gc_torture" json:"gc_torture" jsonschema:"default=false"`
	GCInterval      int    `yaml:"gc_interval" json:"gc_interval" validate:"min=0" jsonschema:"minimum=0,default=0"`
}

// validate is a package-level singleton; validator caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel:        "info",
		MaxMessageBytes: bridge.DefaultMaxMessageBytes,
	}
}

// Load reads and parses the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Empty input yields Default().
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !stdErrors.Is(err, io.EOF) {
		return Config{}, &errors.ConfigError{Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field and reports all violations together.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stdErrors.As(err, &fieldErrs) {
		return &errors.ConfigError{Err: err}
	}

	var combined error
	for _, fe := range fieldErrs {
		combined = multierr.Append(combined, &errors.ConfigError{
			Field: fe.Field(),
			Err:   fmt.Errorf("failed on '%s' with value %v", constraint(fe), fe.Value()),
		})
	}
	return combined
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// Level returns the configured slog level.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// BridgeOptions returns the wrapper options the configuration implies.
func (c Config) BridgeOptions() []bridge.Option {
	return []bridge.Option{
		bridge.WithIncludeStack(c.IncludeStack),
		bridge.WithMaxMessageBytes(c.MaxMessageBytes),
	}
}

// RuntimeOptions returns the memhost options the configuration implies.
func (c Config) RuntimeOptions() []memhost.Option {
	return []memhost.Option{
		memhost.WithGCTorture(c.GCTorture),
		memhost.WithGCInterval(c.GCInterval),
	}
}

// Schema returns the JSON schema of Config.
func Schema() ([]byte, error) {
	return schema.GenerateSchema(&Config{})
}
