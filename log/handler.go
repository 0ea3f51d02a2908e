// Package log provides a log/slog handler that writes to the host console.
//
// Records below WARN go to the host's standard output, WARN and above to its
// error output, one line per record:
//
//	INFO catalog: call finished entry=to_upper call_id=3f1c... status=ok
package log

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/reglet-dev/vecbridge/domain/ports"
)

// ConsoleHandler implements slog.Handler over a host console.
type ConsoleHandler struct {
	console ports.Console
	mu      *sync.Mutex
	prefix  string // group prefix for attributes added later
	attrs   string // pre-rendered attributes from WithAttrs
	opts    handlerConfig
}

// HandlerOption configures the ConsoleHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level     slog.Leveler
	addSource bool
}

func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level: slog.LevelInfo,
	}
}

// WithLevel sets the minimum log level to report.
func WithLevel(level slog.Leveler) HandlerOption {
	return func(c *handlerConfig) {
		if level != nil {
			c.level = level
		}
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// NewConsoleHandler creates a ConsoleHandler writing to console.
func NewConsoleHandler(console ports.Console, opts ...HandlerOption) *ConsoleHandler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &ConsoleHandler{console: console, mu: &sync.Mutex{}, opts: cfg}
}

// NewLogger is a shorthand for slog.New(NewConsoleHandler(console, opts...)).
func NewLogger(console ports.Console, opts ...HandlerOption) *slog.Logger {
	return slog.New(NewConsoleHandler(console, opts...))
}

// Enabled reports whether the handler handles records at the given level.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level.Level()
}

// Handle renders the record as one line and sends it to the console.
func (h *ConsoleHandler) Handle(_ context.Context, record slog.Record) error {
	var b strings.Builder
	b.WriteString(record.Level.String())
	b.WriteByte(' ')
	b.WriteString(record.Message)

	if h.opts.addSource && record.PC != 0 {
		appendSource(&b, record.PC)
	}
	b.WriteString(h.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		appendAttr(&b, h.prefix, attr)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	if record.Level >= slog.LevelWarn {
		h.console.PrintError(b.String())
	} else {
		h.console.Print(b.String())
	}
	return nil
}

// WithAttrs returns a new ConsoleHandler that includes the given attributes.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, attr := range attrs {
		appendAttr(&b, h.prefix, attr)
	}
	next := *h
	next.attrs = b.String()
	return &next
}

// WithGroup returns a new ConsoleHandler that qualifies later attribute
// keys with name.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}
