package bridge

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/domain/errors"
	"github.com/reglet-dev/vecbridge/domain/ports"
)

// DefaultMaxMessageBytes bounds the size of a rendered failure message.
const DefaultMaxMessageBytes = 8192

// FailureSentinel is returned when even the failure message could not be
// materialized. It is the null handle with the failure bit set; the
// trampoline reports it with a generic message.
const FailureSentinel = entities.Handle(1)

const truncatedSuffix = "... [truncated]"

// Wrapper executes operations at the host boundary.
type Wrapper struct {
	alloc           ports.Allocator
	logger          *slog.Logger
	maxMessageBytes int
	includeStack    bool
}

// Option configures a Wrapper.
type Option func(*Wrapper)

// WithLogger sets the logger used for failure diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Wrapper) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithIncludeStack appends the goroutine stack to defect diagnostics.
func WithIncludeStack(enabled bool) Option {
	return func(w *Wrapper) {
		w.includeStack = enabled
	}
}

// WithMaxMessageBytes bounds the rendered failure message. Values below the
// truncation marker length are ignored.
func WithMaxMessageBytes(n int) Option {
	return func(w *Wrapper) {
		if n > len(truncatedSuffix) {
			w.maxMessageBytes = n
		}
	}
}

// New creates a Wrapper that materializes failure messages through alloc.
func New(alloc ports.Allocator, opts ...Option) *Wrapper {
	w := &Wrapper{
		alloc:           alloc,
		logger:          slog.Default(),
		maxMessageBytes: DefaultMaxMessageBytes,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run executes op and returns a handle for the host: the success handle
// unchanged, or a tagged char handle holding the failure message. No panic
// escapes Run.
func (w *Wrapper) Run(op Operation) entities.Handle {
	return w.Encode(w.Guard(op))
}

// Guard executes op, converting a panic into a *errors.DefectError result.
func (w *Wrapper) Guard(op Operation) (res Result) {
	defer func() {
		if v := recover(); v != nil {
			res = Fail(newDefect(v, w.includeStack))
		}
	}()

	h, err := op()
	if err != nil {
		return Fail(err)
	}
	return Ok(h)
}

// Encode applies the low-bit failure convention to a Result.
func (w *Wrapper) Encode(res Result) entities.Handle {
	if h, ok := res.Handle(); ok {
		return h
	}
	return w.encodeFailure(res.Err())
}

func (w *Wrapper) encodeFailure(err error) (out entities.Handle) {
	msg := w.render(err)

	defer func() {
		if v := recover(); v != nil {
			w.logger.Error("bridge: failed to materialize failure message",
				"error", errors.PanicMessage(v), "message", msg)
			out = FailureSentinel
		}
	}()

	return entities.TagFailure(w.alloc.MakeChar([]byte(msg), entities.EncodingUTF8))
}

func (w *Wrapper) render(err error) string {
	detail := errors.ToErrorDetail(err)
	msg := err.Error()

	if errors.IsDefect(err) {
		w.logger.Error("bridge: native call panicked", "error", msg, "location", detail.Location)
		if len(detail.Stack) > 0 {
			msg += "\n" + string(detail.Stack)
		}
	} else {
		w.logger.Debug("bridge: native call failed", "error", msg, "type", detail.Type)
	}

	if msg == "" {
		msg = "native call failed with an empty error message"
	}
	return truncate(msg, w.maxMessageBytes)
}

// truncate cuts s to at most limit bytes without splitting a UTF-8 sequence.
// Invalid UTF-8 in s is replaced so the host always receives valid text.
func truncate(s string, limit int) string {
	s = strings.ToValidUTF8(s, string(utf8.RuneError))
	if len(s) <= limit {
		return s
	}
	cut := limit - len(truncatedSuffix)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + truncatedSuffix
}
