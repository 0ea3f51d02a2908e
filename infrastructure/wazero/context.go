package wazero

import (
	"context"

	"github.com/tetratelabs/wazero/api"
)

// contextKey is a private type for context keys.
type contextKey struct {
	name string
}

var entryNameKey = &contextKey{name: "entry_name"}

// WithEntryName adds the guest entry point being called to the context, so
// host function diagnostics can name it.
func WithEntryName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, entryNameKey, name)
}

// EntryNameFromContext retrieves the entry point name from the context.
func EntryNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(entryNameKey).(string)
	return name, ok
}

// GetCallerName extracts the entry point name from context, falling back
// to the calling module's name.
func GetCallerName(ctx context.Context, mod api.Module) string {
	if name, ok := EntryNameFromContext(ctx); ok {
		return name
	}
	if mod == nil {
		return "unknown"
	}
	return mod.Name()
}
