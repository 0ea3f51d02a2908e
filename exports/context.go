package exports

import (
	"context"
)

// CallContext wraps a context.Context with the name of the entry point
// being invoked and request-scoped values set by middleware.
type CallContext interface {
	context.Context

	// EntryName returns the name the entry point was invoked under.
	EntryName() string

	// SetValue stores a call-scoped value. Unlike context.WithValue,
	// this mutates the existing CallContext.
	SetValue(key, value any)

	// GetValue retrieves a value set by SetValue.
	GetValue(key any) (value any, ok bool)
}

type callContext struct {
	context.Context
	values    map[any]any
	entryName string
}

// NewCallContext creates a CallContext wrapping ctx.
func NewCallContext(ctx context.Context, entryName string) CallContext {
	return &callContext{
		Context:   ctx,
		entryName: entryName,
		values:    make(map[any]any),
	}
}

func (c *callContext) EntryName() string {
	return c.entryName
}

func (c *callContext) SetValue(key, value any) {
	c.values[key] = value
}

func (c *callContext) GetValue(key any) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// CallContextFrom returns ctx itself when it already is a CallContext for
// entryName, otherwise a new one for entryName wrapping ctx. Values set on
// a CallContext for another entry point are not carried over.
func CallContextFrom(ctx context.Context, entryName string) CallContext {
	if cc, ok := ctx.(CallContext); ok && cc.EntryName() == entryName {
		return cc
	}
	return NewCallContext(ctx, entryName)
}
