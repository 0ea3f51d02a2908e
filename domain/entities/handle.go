package entities

import "fmt"

// Handle is an address-sized opaque capability to a host-owned object.
// The host allocator guarantees handles are aligned, so the low bit of a
// valid handle is always zero. Handle 0 is the null handle.
type Handle uintptr

// NullHandle never denotes a live object.
const NullHandle Handle = 0

// failureBit marks a handle as carrying a failure message.
const failureBit Handle = 1

// IsNull reports whether h is the null handle.
func (h Handle) IsNull() bool {
	return h == NullHandle
}

// String formats the handle as a hex address.
func (h Handle) String() string {
	return fmt.Sprintf("0x%x", uintptr(h))
}

// TagFailure sets the failure bit on a host text handle.
// Panics if the handle is misaligned, since such a value could not be
// restored by the host-side trampoline.
func TagFailure(h Handle) Handle {
	if h&failureBit != 0 {
		panic(fmt.Sprintf("entities: cannot tag misaligned handle %s", h))
	}
	return h | failureBit
}

// IsFailure reports whether the failure bit is set.
func IsFailure(h Handle) bool {
	return h&failureBit != 0
}

// Untag clears the failure bit, returning the underlying text handle.
func Untag(h Handle) Handle {
	return h &^ failureBit
}
