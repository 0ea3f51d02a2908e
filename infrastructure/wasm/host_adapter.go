//go:build wasip1

package wasm

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/domain/ports"
	"github.com/reglet-dev/vecbridge/internal/abi"
)

// Compile-time interface compliance check
var _ ports.Host = (*HostAdapter)(nil)

// HostAdapter implements ports.Host over the vec_host imports. Host faults
// trap inside the host function and abort the guest call.
type HostAdapter struct{}

// NewHostAdapter creates a new HostAdapter.
func NewHostAdapter() *HostAdapter {
	return &HostAdapter{}
}

func (a *HostAdapter) TypeOf(h entities.Handle) entities.ElementType {
	return mustDecode(abi.TypeFromWire(host_type_of(abi.HandleToWire(h))))
}

func (a *HostAdapter) Length(h entities.Handle) int {
	return mustDecode(abi.IndexFromWire(host_length(abi.HandleToWire(h))))
}

func (a *HostAdapter) IntegerElt(h entities.Handle, i int) int32 {
	return host_integer_elt(abi.HandleToWire(h), abi.IndexToWire(i))
}

func (a *HostAdapter) RealElt(h entities.Handle, i int) float64 {
	return host_real_elt(abi.HandleToWire(h), abi.IndexToWire(i))
}

func (a *HostAdapter) StringElt(h entities.Handle, i int) entities.Handle {
	return mustDecode(abi.HandleFromWire(host_string_elt(abi.HandleToWire(h), abi.IndexToWire(i))))
}

// CharBytes copies the char's bytes into a guest buffer the host fills.
func (a *HostAdapter) CharBytes(c entities.Handle) ([]byte, entities.CharEncoding) {
	wire := abi.HandleToWire(c)
	enc := mustDecode(abi.EncodingFromWire(host_char_encoding(wire)))

	n := host_char_len(wire)
	if n == 0 {
		return []byte{}, enc
	}
	buf := abi.Alloc(n)
	defer abi.DeallocatePacked(buf)
	host_char_copy(wire, buf)
	return abi.BytesFromPtr(buf), enc
}

func (a *HostAdapter) SetIntegerElt(h entities.Handle, i int, v int32) {
	host_set_integer_elt(abi.HandleToWire(h), abi.IndexToWire(i), v)
}

func (a *HostAdapter) SetRealElt(h entities.Handle, i int, v float64) {
	host_set_real_elt(abi.HandleToWire(h), abi.IndexToWire(i), v)
}

func (a *HostAdapter) SetStringElt(h entities.Handle, i int, c entities.Handle) {
	host_set_string_elt(abi.HandleToWire(h), abi.IndexToWire(i), abi.HandleToWire(c))
}

func (a *HostAdapter) AllocVector(t entities.ElementType, n int) entities.Handle {
	return mustDecode(abi.HandleFromWire(host_alloc_vector(abi.TypeToWire(t), abi.IndexToWire(n))))
}

// MakeChar passes b to the host, which copies it before returning.
func (a *HostAdapter) MakeChar(b []byte, enc entities.CharEncoding) entities.Handle {
	src := abi.PtrFromBytes(b)
	defer abi.DeallocatePacked(src)
	return mustDecode(abi.HandleFromWire(host_make_char(src, abi.EncodingToWire(enc))))
}

func (a *HostAdapter) Protect(h entities.Handle) entities.Handle {
	return mustDecode(abi.HandleFromWire(host_protect(abi.HandleToWire(h))))
}

func (a *HostAdapter) Unprotect(n int) {
	count, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Sprintf("wasm: unprotect(%d): %v", n, err))
	}
	host_unprotect(count)
}

func (a *HostAdapter) Print(msg string) {
	buf := abi.PtrFromBytes([]byte(msg))
	defer abi.DeallocatePacked(buf)
	host_print(buf)
}

func (a *HostAdapter) PrintError(msg string) {
	buf := abi.PtrFromBytes([]byte(msg))
	defer abi.DeallocatePacked(buf)
	host_eprint(buf)
}

// mustDecode turns a malformed value from the host into a host fault.
func mustDecode[T any](v T, err error) T {
	if err != nil {
		panic("wasm: " + err.Error())
	}
	return v
}
