// Package abi defines how values cross the WASM boundary between the guest
// and the vec_host module: handles, lengths and indices travel as i64,
// element types and encodings as i32, and byte buffers as a packed i64
// pointer/length pair in guest linear memory.
package abi

import (
	stdErrors "errors"
	"fmt"

	"fortio.org/safecast"

	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/domain/errors"
)

// ErrNegativeIndex is wrapped by the *errors.LengthError returned for
// negative lengths and indices.
var ErrNegativeIndex = stdErrors.New("abi: negative index")

// PtrHighBits is the shift of the pointer half of a packed buffer.
const PtrHighBits = 32

// PackPtrLen packs a pointer and length into a single uint64.
// Pointer is stored in the high 32 bits, length in the low 32 bits.
// Panics if ptr is 0 and length > 0, indicating an invalid state.
func PackPtrLen(ptr, length uint32) uint64 {
	if ptr == 0 && length > 0 {
		panic(fmt.Sprintf("abi: invalid pack - null pointer (0x0) with non-zero length (%d)", length))
	}
	return (uint64(ptr) << PtrHighBits) | uint64(length)
}

// UnpackPtrLen unpacks a uint64 into its original pointer and length.
// Panics if ptr is 0 and length > 0, indicating an invalid packed value.
func UnpackPtrLen(packed uint64) (ptr, length uint32) {
	ptr = uint32(packed >> PtrHighBits) //nolint:gosec // G115: Packed format stores 32-bit values
	length = uint32(packed)             //nolint:gosec // G115: Packed format stores 32-bit values
	if ptr == 0 && length > 0 {
		panic(fmt.Sprintf("abi: invalid unpack - null pointer (0x0) with non-zero length (%d)", length))
	}
	return ptr, length
}

// HandleToWire encodes a handle, failure bit included, as an i64.
func HandleToWire(h entities.Handle) uint64 {
	return uint64(h)
}

// HandleFromWire decodes a handle, rejecting values the local address width
// cannot hold.
func HandleFromWire(v uint64) (entities.Handle, error) {
	h, err := safecast.Conv[entities.Handle](v)
	if err != nil {
		return entities.NullHandle, fmt.Errorf("abi: handle 0x%x: %w", v, err)
	}
	return h, nil
}

// IndexToWire encodes a length or element index.
func IndexToWire(n int) int64 {
	return int64(n)
}

// IndexFromWire decodes a length or element index. Negative values and
// values the local int cannot hold are reported as *errors.LengthError.
func IndexFromWire(v int64) (int, error) {
	if v < 0 {
		return 0, &errors.LengthError{Length: v, Err: ErrNegativeIndex}
	}
	n, err := safecast.Conv[int](v)
	if err != nil {
		return 0, &errors.LengthError{Length: v, Err: err}
	}
	return n, nil
}

// TypeToWire encodes an element-type tag.
func TypeToWire(t entities.ElementType) uint32 {
	return uint32(t)
}

// TypeFromWire decodes an element-type tag.
func TypeFromWire(v uint32) (entities.ElementType, error) {
	t, err := safecast.Conv[entities.ElementType](v)
	if err != nil {
		return 0, fmt.Errorf("abi: element type %d: %w", v, err)
	}
	return t, nil
}

// EncodingToWire encodes a char encoding.
func EncodingToWire(e entities.CharEncoding) uint32 {
	return uint32(e)
}

// EncodingFromWire decodes a char encoding.
func EncodingFromWire(v uint32) (entities.CharEncoding, error) {
	e, err := safecast.Conv[entities.CharEncoding](v)
	if err != nil {
		return 0, fmt.Errorf("abi: encoding %d: %w", v, err)
	}
	return e, nil
}
