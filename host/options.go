package host

import (
	"log/slog"

	"github.com/reglet-dev/vecbridge/host/memhost"
)

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithRuntime sets the in-process host the guest's vec_host imports are
// served from.
func WithRuntime(rt *memhost.Runtime) Option {
	return func(e *Executor) {
		e.host = rt
	}
}

// WithLogger sets the logger for host function faults.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}
