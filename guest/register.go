// Package guest exposes the entry-point catalog as WASM exports.
//
// On wasip1 the package exports to_upper, times_two_integer and
// times_two_real with the one-handle-in, one-handle-out convention over the
// vec_host imports. Each export is the single place a tagged failure handle
// crosses the boundary.
package guest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reglet-dev/vecbridge/bridge"
	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/domain/ports"
	"github.com/reglet-dev/vecbridge/exports"
	"github.com/reglet-dev/vecbridge/internal/abi"
	"github.com/reglet-dev/vecbridge/log"
)

// Options configures the catalog served by the exports.
type Options struct {
	// Level is the minimum level written to the host console.
	Level slog.Leveler
	// Catalog options applied after the built-in entry points.
	Catalog []exports.CatalogOption
	// MaxGuestAllocations caps the bytes of boundary buffers the guest
	// tracks at once. Zero keeps abi.DefaultMaxTotalAllocations.
	MaxGuestAllocations int
}

func (o Options) memoryOptions() ([]abi.Option, error) {
	if o.MaxGuestAllocations < 0 {
		return nil, fmt.Errorf("guest: negative allocation limit %d", o.MaxGuestAllocations)
	}
	return []abi.Option{abi.WithMaxTotalAllocations(o.MaxGuestAllocations)}, nil
}

// newCatalog builds the catalog over host, logging to the host console.
func newCatalog(host ports.Host, opts Options) (*exports.Catalog, error) {
	level := opts.Level
	if level == nil {
		level = slog.LevelWarn
	}
	logger := log.NewLogger(host, log.WithLevel(level))

	catalogOpts := []exports.CatalogOption{
		exports.WithBuiltins(),
		exports.WithLogger(logger),
		exports.WithMiddleware(exports.LoggingMiddleware(logger)),
	}
	catalogOpts = append(catalogOpts, opts.Catalog...)
	return exports.NewCatalog(host, catalogOpts...)
}

// serve invokes name on the wire handle x through c. A handle the guest
// cannot represent is reported as a tagged failure like any other error.
func serve(c *exports.Catalog, alloc ports.Allocator, name string, x uint64) uint64 {
	h, err := abi.HandleFromWire(x)
	if err != nil {
		return abi.HandleToWire(bridge.Run(alloc, func() (entities.Handle, error) {
			return entities.NullHandle, err
		}))
	}
	return abi.HandleToWire(c.Invoke(context.Background(), name, h))
}
