package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/reglet-dev/vecbridge"
	"github.com/reglet-dev/vecbridge/application/config"
	"github.com/reglet-dev/vecbridge/exports"
	"github.com/reglet-dev/vecbridge/host/memhost"
	"github.com/reglet-dev/vecbridge/log"
)

// session is one configured host plus the catalog bound to it.
type session struct {
	cfg     config.Config
	runtime *memhost.Runtime
	catalog *exports.Catalog
	logger  *slog.Logger
}

func loadConfig(opts *RootOptions) (config.Config, error) {
	if opts.ConfigPath == "" {
		return config.Default(), nil
	}
	return config.Load(opts.ConfigPath)
}

// newSession builds a runtime whose console writes to console, and a catalog
// with the built-in entry points over it.
func newSession(opts *RootOptions, console io.Writer, extra ...memhost.Option) (*session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	rtOpts := append(cfg.RuntimeOptions(), memhost.WithStdout(console), memhost.WithStderr(console))
	rtOpts = append(rtOpts, extra...)
	rt := memhost.New(rtOpts...)

	level := cfg.Level()
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := log.NewLogger(rt, log.WithLevel(level))

	cfgSchema, err := config.Schema()
	if err != nil {
		return nil, fmt.Errorf("failed to generate config schema: %w", err)
	}

	catalog, err := vecbridge.New(rt,
		exports.WithLogger(logger),
		exports.WithMiddleware(exports.LoggingMiddleware(logger)),
		exports.WithWrapperOptions(cfg.BridgeOptions()...),
		exports.WithConfigSchema(json.RawMessage(cfgSchema)),
	)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, runtime: rt, catalog: catalog, logger: logger}, nil
}
