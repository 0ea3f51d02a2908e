package wazero

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/host/memhost"
	"github.com/reglet-dev/vecbridge/internal/abi"
)

const (
	i32 = byte(0x7f)
	i64 = byte(0x7e)
	f64 = byte(0x7c)
)

// vecHostImports lists every vec_host function with its wasm signature.
var vecHostImports = []struct {
	name    string
	params  []byte
	results []byte
}{
	{"type_of", []byte{i64}, []byte{i32}},
	{"length", []byte{i64}, []byte{i64}},
	{"integer_elt", []byte{i64, i64}, []byte{i32}},
	{"real_elt", []byte{i64, i64}, []byte{f64}},
	{"string_elt", []byte{i64, i64}, []byte{i64}},
	{"char_len", []byte{i64}, []byte{i32}},
	{"char_encoding", []byte{i64}, []byte{i32}},
	{"char_copy", []byte{i64, i64}, nil},
	{"alloc_vector", []byte{i32, i64}, []byte{i64}},
	{"make_char", []byte{i64, i32}, []byte{i64}},
	{"set_integer_elt", []byte{i64, i64, i32}, nil},
	{"set_real_elt", []byte{i64, i64, f64}, nil},
	{"set_string_elt", []byte{i64, i64, i64}, nil},
	{"protect", []byte{i64}, []byte{i64}},
	{"unprotect", []byte{i32}, nil},
	{"print", []byte{i64}, nil},
	{"eprint", []byte{i64}, nil},
}

func uleb(n uint64) []byte {
	var out []byte
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n == 0 {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func wasmName(s string) []byte {
	return append(uleb(uint64(len(s))), s...)
}

func wasmVec(items [][]byte) []byte {
	out := uleb(uint64(len(items)))
	for _, it := range items {
		out = append(out, it...)
	}
	return out
}

func wasmSection(id byte, items [][]byte) []byte {
	body := wasmVec(items)
	out := append([]byte{id}, uleb(uint64(len(body)))...)
	return append(out, body...)
}

// buildCallerModule assembles a guest that imports every vec_host function
// and re-exports each as "call_<name>" (a body that forwards its params),
// plus one page of exported memory.
func buildCallerModule() []byte {
	n := len(vecHostImports)
	var types, imports, funcs, exports, code [][]byte

	for i, imp := range vecHostImports {
		ft := []byte{0x60}
		ft = append(ft, wasmVec(toItems(imp.params))...)
		ft = append(ft, wasmVec(toItems(imp.results))...)
		types = append(types, ft)

		entry := append(wasmName("vec_host"), wasmName(imp.name)...)
		imports = append(imports, append(entry, 0x00, byte(i)))

		funcs = append(funcs, uleb(uint64(i)))

		export := append(wasmName("call_"+imp.name), 0x00)
		exports = append(exports, append(export, uleb(uint64(n+i))...))

		body := []byte{0x00} // no locals
		for p := range imp.params {
			body = append(body, 0x20)
			body = append(body, uleb(uint64(p))...)
		}
		body = append(body, 0x10)
		body = append(body, uleb(uint64(i))...)
		body = append(body, 0x0b)
		code = append(code, append(uleb(uint64(len(body))), body...))
	}
	exports = append(exports, append(wasmName("memory"), 0x02, 0x00))

	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	out = append(out, wasmSection(1, types)...)
	out = append(out, wasmSection(2, imports)...)
	out = append(out, wasmSection(3, funcs)...)
	out = append(out, wasmSection(5, [][]byte{{0x00, 0x01}})...)
	out = append(out, wasmSection(7, exports)...)
	out = append(out, wasmSection(10, code)...)
	return out
}

func toItems(b []byte) [][]byte {
	items := make([][]byte, len(b))
	for i := range b {
		items[i] = []byte{b[i]}
	}
	return items
}

type registeredHost struct {
	rt     *memhost.Runtime
	guest  api.Module
	stdout bytes.Buffer
	stderr bytes.Buffer
	logs   bytes.Buffer
}

func newRegisteredHost(t *testing.T) *registeredHost {
	t.Helper()
	ctx := context.Background()
	h := &registeredHost{}
	h.rt = memhost.New(memhost.WithStdout(&h.stdout), memhost.WithStderr(&h.stderr))

	runtime := wazero.NewRuntime(ctx)
	t.Cleanup(func() { _ = runtime.Close(ctx) })

	logger := slog.New(slog.NewTextHandler(&h.logs, nil))
	require.NoError(t, RegisterWithRuntime(ctx, runtime, h.rt, WithLogger(logger)))

	guest, err := runtime.InstantiateWithConfig(ctx, buildCallerModule(), wazero.NewModuleConfig().WithName("caller"))
	require.NoError(t, err)
	h.guest = guest
	return h
}

func (h *registeredHost) call(t *testing.T, name string, params ...uint64) ([]uint64, error) {
	t.Helper()
	fn := h.guest.ExportedFunction("call_" + name)
	require.NotNil(t, fn, name)
	return fn.Call(context.Background(), params...)
}

func (h *registeredHost) mustCall(t *testing.T, name string, params ...uint64) []uint64 {
	t.Helper()
	res, err := h.call(t, name, params...)
	require.NoError(t, err, name)
	return res
}

func TestRegisterWithRuntime_Links(t *testing.T) {
	h := newRegisteredHost(t)
	for _, imp := range vecHostImports {
		assert.NotNil(t, h.guest.ExportedFunction("call_"+imp.name), imp.name)
	}
}

func TestRegisterWithRuntime_Inspect(t *testing.T) {
	h := newRegisteredHost(t)
	in := abi.HandleToWire(h.rt.NewReals(2.25, -1))

	res := h.mustCall(t, "type_of", in)
	assert.Equal(t, abi.TypeToWire(entities.TypeReal), uint32(res[0]))

	res = h.mustCall(t, "length", in)
	assert.Equal(t, uint64(2), res[0])

	res = h.mustCall(t, "real_elt", in, api.EncodeI64(1))
	assert.Equal(t, -1.0, api.DecodeF64(res[0]))
}

func TestRegisterWithRuntime_IntegerVector(t *testing.T) {
	h := newRegisteredHost(t)

	res := h.mustCall(t, "alloc_vector", uint64(abi.TypeToWire(entities.TypeInteger)), api.EncodeI64(3))
	v := res[0]

	h.mustCall(t, "set_integer_elt", v, api.EncodeI64(1), api.EncodeI32(-7))
	res = h.mustCall(t, "integer_elt", v, api.EncodeI64(1))
	assert.Equal(t, int32(-7), api.DecodeI32(res[0]))

	handle, err := abi.HandleFromWire(v)
	require.NoError(t, err)
	assert.Equal(t, []int32{0, -7, 0}, h.rt.Integers(handle))
}

func TestRegisterWithRuntime_RealVector(t *testing.T) {
	h := newRegisteredHost(t)

	res := h.mustCall(t, "alloc_vector", uint64(abi.TypeToWire(entities.TypeReal)), api.EncodeI64(1))
	v := res[0]

	h.mustCall(t, "set_real_elt", v, api.EncodeI64(0), api.EncodeF64(4.5))
	res = h.mustCall(t, "real_elt", v, api.EncodeI64(0))
	assert.Equal(t, 4.5, api.DecodeF64(res[0]))
}

func TestRegisterWithRuntime_Chars(t *testing.T) {
	h := newRegisteredHost(t)
	text := []byte("héllo")
	require.True(t, h.guest.Memory().Write(16, text))

	res := h.mustCall(t, "make_char", abi.PackPtrLen(16, uint32(len(text))), uint64(abi.EncodingToWire(entities.EncodingUTF8)))
	c := res[0]
	handle, err := abi.HandleFromWire(c)
	require.NoError(t, err)
	assert.Equal(t, "héllo", h.rt.CharString(handle))

	res = h.mustCall(t, "char_len", c)
	assert.Equal(t, uint32(len(text)), uint32(res[0]))

	res = h.mustCall(t, "char_encoding", c)
	assert.Equal(t, abi.EncodingToWire(entities.EncodingUTF8), uint32(res[0]))

	h.mustCall(t, "char_copy", c, abi.PackPtrLen(64, uint32(len(text))))
	copied, ok := h.guest.Memory().Read(64, uint32(len(text)))
	require.True(t, ok)
	assert.Equal(t, text, copied)

	res = h.mustCall(t, "alloc_vector", uint64(abi.TypeToWire(entities.TypeText)), api.EncodeI64(1))
	v := res[0]
	h.mustCall(t, "set_string_elt", v, api.EncodeI64(0), c)
	res = h.mustCall(t, "string_elt", v, api.EncodeI64(0))
	assert.Equal(t, c, res[0])
}

func TestRegisterWithRuntime_Protect(t *testing.T) {
	h := newRegisteredHost(t)
	in := abi.HandleToWire(h.rt.NewIntegers(1))

	res := h.mustCall(t, "protect", in)
	assert.Equal(t, in, res[0])
	assert.Equal(t, 1, h.rt.ProtectDepth())

	h.mustCall(t, "unprotect", api.EncodeI32(1))
	assert.Zero(t, h.rt.ProtectDepth())

	_, err := h.call(t, "unprotect", api.EncodeI32(1))
	assert.ErrorContains(t, err, "unprotect: memhost: unprotect(): only 0 protected items")
}

func TestRegisterWithRuntime_Console(t *testing.T) {
	h := newRegisteredHost(t)
	require.True(t, h.guest.Memory().Write(0, []byte("outerr")))

	h.mustCall(t, "print", abi.PackPtrLen(0, 3))
	h.mustCall(t, "eprint", abi.PackPtrLen(3, 3))
	assert.Equal(t, "out", h.stdout.String())
	assert.Equal(t, "err", h.stderr.String())
}

func TestRegisterWithRuntime_FaultAbortsCall(t *testing.T) {
	h := newRegisteredHost(t)
	in := abi.HandleToWire(h.rt.NewIntegers(1))

	_, err := h.call(t, "integer_elt", in, api.EncodeI64(5))
	assert.ErrorContains(t, err, "integer_elt: memhost: attempt to access index 5 of integer vector of length 1")

	logs := h.logs.String()
	assert.Contains(t, logs, "wazero: host function fault")
	assert.Contains(t, logs, "function=integer_elt")

	_, err = h.call(t, "type_of", 0x10)
	assert.ErrorContains(t, err, "invalid handle")

	_, err = h.call(t, "char_copy", in, abi.PackPtrLen(64, 1))
	assert.ErrorContains(t, err, "char_copy")
}
