package wazero

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/domain/errors"
	"github.com/reglet-dev/vecbridge/domain/ports"
	"github.com/reglet-dev/vecbridge/internal/abi"
)

// DefaultModuleName is the module guests import host primitives from.
const DefaultModuleName = "vec_host"

// DefaultMaxBufferSize limits a single buffer read from or written to guest
// memory.
const DefaultMaxBufferSize = 16 * 1024 * 1024

// AdapterConfig holds configuration for the wazero adapter.
type AdapterConfig struct {
	// Logger receives host fault diagnostics (default: slog.Default()).
	Logger *slog.Logger

	// ModuleName is the host module name (default: "vec_host").
	ModuleName string

	// MaxBufferSize limits buffers exchanged with guest memory.
	MaxBufferSize uint32
}

// AdapterOption configures the adapter.
type AdapterOption func(*AdapterConfig)

// WithModuleName sets the host module name (default: "vec_host").
func WithModuleName(name string) AdapterOption {
	return func(c *AdapterConfig) {
		c.ModuleName = name
	}
}

// WithMaxBufferSize sets the maximum buffer size exchanged with guest memory.
func WithMaxBufferSize(size uint32) AdapterOption {
	return func(c *AdapterConfig) {
		c.MaxBufferSize = size
	}
}

// WithLogger sets the logger for host fault diagnostics.
func WithLogger(logger *slog.Logger) AdapterOption {
	return func(c *AdapterConfig) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

func defaultAdapterConfig() AdapterConfig {
	return AdapterConfig{
		Logger:        slog.Default(),
		ModuleName:    DefaultModuleName,
		MaxBufferSize: DefaultMaxBufferSize,
	}
}

// RegisterWithRuntime registers host as the vec_host module of runtime.
//
// Example:
//
//	err := wazero.RegisterWithRuntime(ctx, runtime, memhost.New())
func RegisterWithRuntime(ctx context.Context, runtime wazero.Runtime, host ports.Host, opts ...AdapterOption) error {
	cfg := defaultAdapterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &hostModule{host: host, cfg: cfg}
	builder := runtime.NewHostModuleBuilder(cfg.ModuleName)

	export := func(name string, fn any) {
		builder.NewFunctionBuilder().WithFunc(fn).Export(name)
	}
	export("type_of", m.typeOf)
	export("length", m.length)
	export("integer_elt", m.integerElt)
	export("real_elt", m.realElt)
	export("string_elt", m.stringElt)
	export("char_len", m.charLen)
	export("char_encoding", m.charEncoding)
	export("char_copy", m.charCopy)
	export("alloc_vector", m.allocVector)
	export("make_char", m.makeChar)
	export("set_integer_elt", m.setIntegerElt)
	export("set_real_elt", m.setRealElt)
	export("set_string_elt", m.setStringElt)
	export("protect", m.protect)
	export("unprotect", m.unprotect)
	export("print", m.print)
	export("eprint", m.eprint)

	_, err := builder.Instantiate(ctx)
	return err
}

// hostModule adapts ports.Host to wasm-typed functions.
type hostModule struct {
	host ports.Host
	cfg  AdapterConfig
}

// hostFault is raised for malformed arguments from the guest.
type hostFault struct {
	err error
}

func (f hostFault) Error() string { return f.err.Error() }

func fault(err error) {
	panic(hostFault{err: err})
}

// run executes fn, logging any fault raised by the adapter or the host
// before letting it continue to unwind into wazero.
func (m *hostModule) run(ctx context.Context, mod api.Module, function string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.cfg.Logger.ErrorContext(ctx, "wazero: host function fault",
				"function", function, "caller", GetCallerName(ctx, mod), "error", errors.PanicMessage(r))
			panic(fmt.Sprintf("%s: %s", function, errors.PanicMessage(r)))
		}
	}()
	fn()
}

func handle(v uint64) entities.Handle {
	h, err := abi.HandleFromWire(v)
	if err != nil {
		fault(err)
	}
	return h
}

func index(v int64) int {
	i, err := abi.IndexFromWire(v)
	if err != nil {
		fault(err)
	}
	return i
}

func (m *hostModule) typeOf(ctx context.Context, h uint64) (t uint32) {
	m.run(ctx, nil, "type_of", func() {
		t = abi.TypeToWire(m.host.TypeOf(handle(h)))
	})
	return t
}

func (m *hostModule) length(ctx context.Context, h uint64) (n int64) {
	m.run(ctx, nil, "length", func() {
		n = abi.IndexToWire(m.host.Length(handle(h)))
	})
	return n
}

func (m *hostModule) integerElt(ctx context.Context, h uint64, i int64) (v int32) {
	m.run(ctx, nil, "integer_elt", func() {
		v = m.host.IntegerElt(handle(h), index(i))
	})
	return v
}

func (m *hostModule) realElt(ctx context.Context, h uint64, i int64) (v float64) {
	m.run(ctx, nil, "real_elt", func() {
		v = m.host.RealElt(handle(h), index(i))
	})
	return v
}

func (m *hostModule) stringElt(ctx context.Context, h uint64, i int64) (c uint64) {
	m.run(ctx, nil, "string_elt", func() {
		c = abi.HandleToWire(m.host.StringElt(handle(h), index(i)))
	})
	return c
}

func (m *hostModule) charLen(ctx context.Context, c uint64) (n uint32) {
	m.run(ctx, nil, "char_len", func() {
		raw, _ := m.host.CharBytes(handle(c))
		n = uint32(len(raw)) //nolint:gosec // G115: host chars are bounded by MaxBufferSize on creation
	})
	return n
}

func (m *hostModule) charEncoding(ctx context.Context, c uint64) (enc uint32) {
	m.run(ctx, nil, "char_encoding", func() {
		_, e := m.host.CharBytes(handle(c))
		enc = abi.EncodingToWire(e)
	})
	return enc
}

// charCopy writes the char's bytes into the guest buffer dst, which must be
// exactly as long as the char.
func (m *hostModule) charCopy(ctx context.Context, mod api.Module, c uint64, dst uint64) {
	m.run(ctx, mod, "char_copy", func() {
		raw, _ := m.host.CharBytes(handle(c))
		ptr, length := abi.UnpackPtrLen(dst)
		if int(length) != len(raw) {
			fault(fmt.Errorf("buffer of %d bytes for a char of %d bytes", length, len(raw)))
		}
		if length == 0 {
			return
		}
		if !mod.Memory().Write(ptr, raw) {
			fault(fmt.Errorf("failed to write %d bytes to guest memory at 0x%x", length, ptr))
		}
	})
}

func (m *hostModule) allocVector(ctx context.Context, t uint32, n int64) (h uint64) {
	m.run(ctx, nil, "alloc_vector", func() {
		typ, err := abi.TypeFromWire(t)
		if err != nil {
			fault(err)
		}
		h = abi.HandleToWire(m.host.AllocVector(typ, index(n)))
	})
	return h
}

func (m *hostModule) makeChar(ctx context.Context, mod api.Module, src uint64, enc uint32) (c uint64) {
	m.run(ctx, mod, "make_char", func() {
		e, err := abi.EncodingFromWire(enc)
		if err != nil {
			fault(err)
		}
		raw := m.read(mod, src)
		c = abi.HandleToWire(m.host.MakeChar(raw, e))
	})
	return c
}

func (m *hostModule) setIntegerElt(ctx context.Context, h uint64, i int64, v int32) {
	m.run(ctx, nil, "set_integer_elt", func() {
		m.host.SetIntegerElt(handle(h), index(i), v)
	})
}

func (m *hostModule) setRealElt(ctx context.Context, h uint64, i int64, v float64) {
	m.run(ctx, nil, "set_real_elt", func() {
		m.host.SetRealElt(handle(h), index(i), v)
	})
}

func (m *hostModule) setStringElt(ctx context.Context, h uint64, i int64, c uint64) {
	m.run(ctx, nil, "set_string_elt", func() {
		m.host.SetStringElt(handle(h), index(i), handle(c))
	})
}

func (m *hostModule) protect(ctx context.Context, h uint64) (out uint64) {
	m.run(ctx, nil, "protect", func() {
		out = abi.HandleToWire(m.host.Protect(handle(h)))
	})
	return out
}

func (m *hostModule) unprotect(ctx context.Context, n uint32) {
	m.run(ctx, nil, "unprotect", func() {
		m.host.Unprotect(int(n))
	})
}

func (m *hostModule) print(ctx context.Context, mod api.Module, msg uint64) {
	m.run(ctx, mod, "print", func() {
		m.host.Print(string(m.read(mod, msg)))
	})
}

func (m *hostModule) eprint(ctx context.Context, mod api.Module, msg uint64) {
	m.run(ctx, mod, "eprint", func() {
		m.host.PrintError(string(m.read(mod, msg)))
	})
}

// read copies a packed buffer out of guest memory.
func (m *hostModule) read(mod api.Module, packed uint64) []byte {
	ptr, length := abi.UnpackPtrLen(packed)
	if length == 0 {
		return []byte{}
	}
	if length > m.cfg.MaxBufferSize {
		fault(fmt.Errorf("buffer size %d exceeds maximum %d bytes", length, m.cfg.MaxBufferSize))
	}
	data, ok := mod.Memory().Read(ptr, length)
	if !ok {
		fault(fmt.Errorf("failed to read %d bytes from guest memory at 0x%x", length, ptr))
	}
	out := make([]byte, length)
	copy(out, data)
	return out
}
