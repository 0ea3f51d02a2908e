package exports

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sort"

	"go.uber.org/multierr"

	"github.com/reglet-dev/vecbridge/bridge"
	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/domain/errors"
	"github.com/reglet-dev/vecbridge/domain/ports"
)

// Built-in entry point names.
const (
	NameToUpper         = "to_upper"
	NameTimesTwoInteger = "times_two_integer"
	NameTimesTwoReal    = "times_two_real"
)

// ErrUnknownEntryPoint is reported, as a tagged failure, for names the
// catalog does not hold.
var ErrUnknownEntryPoint = stderrors.New("unknown entry point")

// EntryPoint describes one operation exposed to the host.
type EntryPoint struct {
	Func        Func
	Name        string
	Description string
	Input       entities.ElementType
	Output      entities.ElementType
}

// Builtins returns the built-in entry points.
func Builtins() []EntryPoint {
	return []EntryPoint{
		{
			Name:        NameToUpper,
			Description: "Upper-case every element of a character vector.",
			Input:       entities.TypeText,
			Output:      entities.TypeText,
			Func:        ToUpper,
		},
		{
			Name:        NameTimesTwoInteger,
			Description: "Double every element of an integer vector, wrapping on overflow.",
			Input:       entities.TypeInteger,
			Output:      entities.TypeInteger,
			Func:        TimesTwoInteger,
		},
		{
			Name:        NameTimesTwoReal,
			Description: "Double every element of a double vector.",
			Input:       entities.TypeReal,
			Output:      entities.TypeReal,
			Func:        TimesTwoReal,
		},
	}
}

// Handler is an entry point bound into the middleware chain.
type Handler func(ctx context.Context, host ports.Host, x entities.Handle) (entities.Handle, error)

// Middleware wraps a Handler to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
type Middleware func(next Handler) Handler

// CatalogOption is a functional option for configuring a Catalog.
type CatalogOption func(*catalogBuilder)

// Catalog is an immutable collection of named entry points bound to one
// host. Every call runs inside the bridge wrapper, so Invoke always
// returns exactly one handle and never panics.
type Catalog struct {
	host         ports.Host
	wrapper      *bridge.Wrapper
	handlers     map[string]Handler
	entries      map[string]EntryPoint
	configSchema json.RawMessage
	name         string
	version      string
	names        []string // sorted for consistent iteration
}

type catalogBuilder struct {
	entries      map[string]EntryPoint
	logger       *slog.Logger
	configSchema json.RawMessage
	name         string
	version      string
	middleware   []Middleware
	wrapperOpts  []bridge.Option
	errors       []error
}

// NewCatalog creates a Catalog over host. All registration errors are
// reported together.
//
// Example usage:
//
//	catalog, err := NewCatalog(rt,
//	    WithBuiltins(),
//	    WithMiddleware(LoggingMiddleware(logger)),
//	)
func NewCatalog(host ports.Host, opts ...CatalogOption) (*Catalog, error) {
	b := &catalogBuilder{
		entries: make(map[string]EntryPoint),
		logger:  slog.Default(),
		name:    "vecbridge",
		version: "dev",
	}
	for _, opt := range opts {
		opt(b)
	}
	if host == nil {
		b.errors = append(b.errors, fmt.Errorf("catalog host cannot be nil"))
	}
	if err := multierr.Combine(b.errors...); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(b.entries))
	for name := range b.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	handlers := make(map[string]Handler, len(b.entries))
	for name, ep := range b.entries {
		fn := ep.Func
		h := Handler(func(_ context.Context, host ports.Host, x entities.Handle) (entities.Handle, error) {
			return fn(host, x)
		})
		// Apply middleware in reverse order so first middleware wraps outermost
		for i := len(b.middleware) - 1; i >= 0; i-- {
			h = b.middleware[i](h)
		}
		handlers[name] = h
	}

	wrapperOpts := append([]bridge.Option{bridge.WithLogger(b.logger)}, b.wrapperOpts...)
	return &Catalog{
		host:         host,
		wrapper:      bridge.New(host, wrapperOpts...),
		handlers:     handlers,
		entries:      b.entries,
		configSchema: b.configSchema,
		name:         b.name,
		version:      b.version,
		names:        names,
	}, nil
}

// Invoke runs the named entry point on x. Failures, panics and unknown
// names all come back as a tagged failure handle.
func (c *Catalog) Invoke(ctx context.Context, name string, x entities.Handle) entities.Handle {
	handler, ok := c.handlers[name]
	if !ok {
		return c.wrapper.Encode(bridge.Fail(unknownEntryError(name)))
	}

	cctx := CallContextFrom(ctx, name)
	return c.wrapper.Run(func() (entities.Handle, error) {
		return handler(cctx, c.host, x)
	})
}

func unknownEntryError(name string) error {
	return errors.Recoverable("catalog", fmt.Errorf("%w %q", ErrUnknownEntryPoint, name))
}

// Bind returns the named entry point in the one-handle-in, one-handle-out
// form expected by a host trampoline.
func (c *Catalog) Bind(ctx context.Context, name string) func(entities.Handle) entities.Handle {
	return func(x entities.Handle) entities.Handle {
		return c.Invoke(ctx, name, x)
	}
}

// Has returns true if an entry point with the given name is registered.
func (c *Catalog) Has(name string) bool {
	_, ok := c.handlers[name]
	return ok
}

// Names returns a sorted list of all registered entry point names.
func (c *Catalog) Names() []string {
	result := make([]string, len(c.names))
	copy(result, c.names)
	return result
}

// Lookup returns the registration of name.
func (c *Catalog) Lookup(name string) (EntryPoint, bool) {
	ep, ok := c.entries[name]
	return ep, ok
}

// Manifest describes the catalog, in name order.
func (c *Catalog) Manifest() entities.Manifest {
	m := entities.Manifest{
		Name:         c.name,
		Version:      c.version,
		ConfigSchema: c.configSchema,
		EntryPoints:  make([]entities.EntryPointManifest, 0, len(c.names)),
	}
	for _, name := range c.names {
		ep := c.entries[name]
		m.EntryPoints = append(m.EntryPoints, entities.EntryPointManifest{
			Name:        ep.Name,
			Description: ep.Description,
			Input:       ep.Input,
			Output:      ep.Output,
			InputName:   ep.Input.String(),
			OutputName:  ep.Output.String(),
		})
	}
	return m
}

func (b *catalogBuilder) addEntry(ep EntryPoint) error {
	if ep.Name == "" {
		return fmt.Errorf("entry point name cannot be empty")
	}
	if ep.Func == nil {
		return fmt.Errorf("entry point %q has no function", ep.Name)
	}
	if _, exists := b.entries[ep.Name]; exists {
		return fmt.Errorf("duplicate entry point name: %q", ep.Name)
	}
	b.entries[ep.Name] = ep
	return nil
}

// WithEntryPoint registers ep.
func WithEntryPoint(ep EntryPoint) CatalogOption {
	return func(b *catalogBuilder) {
		if err := b.addEntry(ep); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}

// WithBuiltins registers every built-in entry point.
func WithBuiltins() CatalogOption {
	return func(b *catalogBuilder) {
		for _, ep := range Builtins() {
			if err := b.addEntry(ep); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}

// WithMiddleware adds middleware to the catalog.
// Middleware executes in FIFO order (first added wraps first).
func WithMiddleware(mw ...Middleware) CatalogOption {
	return func(b *catalogBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}

// WithLogger sets the logger handed to the bridge wrapper.
func WithLogger(logger *slog.Logger) CatalogOption {
	return func(b *catalogBuilder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithWrapperOptions configures the bridge wrapper every call runs in.
func WithWrapperOptions(opts ...bridge.Option) CatalogOption {
	return func(b *catalogBuilder) {
		b.wrapperOpts = append(b.wrapperOpts, opts...)
	}
}

// WithIdentity sets the name and version reported by Manifest.
func WithIdentity(name, version string) CatalogOption {
	return func(b *catalogBuilder) {
		if name != "" {
			b.name = name
		}
		if version != "" {
			b.version = version
		}
	}
}

// WithConfigSchema attaches the JSON schema of the bridge configuration to
// the manifest.
func WithConfigSchema(schema json.RawMessage) CatalogOption {
	return func(b *catalogBuilder) {
		b.configSchema = schema
	}
}
