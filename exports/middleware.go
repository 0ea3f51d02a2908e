package exports

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/domain/ports"
)

type callIDKey struct{}

// CallID returns the id LoggingMiddleware assigned to the current call.
func CallID(ctx context.Context) (string, bool) {
	cc, ok := ctx.(CallContext)
	if !ok {
		return "", false
	}
	v, ok := cc.GetValue(callIDKey{})
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// LoggingMiddleware returns a middleware that logs each entry point call
// under a fresh call id. Panics pass through untouched; the bridge wrapper
// reports them.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, host ports.Host, x entities.Handle) (entities.Handle, error) {
			entry := "unknown"
			callID := uuid.NewString()
			if cc, ok := ctx.(CallContext); ok {
				entry = cc.EntryName()
				cc.SetValue(callIDKey{}, callID)
			}

			log := logger.With("entry", entry, "call_id", callID)
			log.DebugContext(ctx, "catalog: invoking entry point", "input", x)

			start := time.Now()
			out, err := next(ctx, host, x)
			if err != nil {
				log.InfoContext(ctx, "catalog: entry point failed", "error", err, "elapsed", time.Since(start))
				return out, err
			}
			log.DebugContext(ctx, "catalog: entry point completed", "output", out, "elapsed", time.Since(start))
			return out, nil
		}
	}
}
