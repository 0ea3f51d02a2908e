package ports

import "github.com/reglet-dev/vecbridge/domain/entities"

// Host is the full set of host runtime primitives the bridge may call.
//
// Host primitives signal host-level faults (invalid handle, allocation
// failure, protect-stack underflow) by panicking, the way a host error would
// unwind. Only the bridge wrapper recovers them.
type Host interface {
	VectorInspector
	ElementReader
	ElementWriter
	Allocator
	Protector
	Console
}

// VectorInspector reports the tag and length of host objects.
type VectorInspector interface {
	// TypeOf returns the element-type tag of h.
	TypeOf(h entities.Handle) entities.ElementType

	// Length returns the number of elements of a vector handle.
	Length(h entities.Handle) int
}

// ElementReader reads single elements; no bulk copies.
type ElementReader interface {
	IntegerElt(h entities.Handle, i int) int32
	RealElt(h entities.Handle, i int) float64

	// StringElt returns the char handle stored at index i of a text vector.
	StringElt(h entities.Handle, i int) entities.Handle

	// CharBytes returns the raw bytes of a char object and their declared encoding.
	CharBytes(c entities.Handle) ([]byte, entities.CharEncoding)
}

// ElementWriter stores single elements into a vector the caller allocated.
type ElementWriter interface {
	SetIntegerElt(h entities.Handle, i int, v int32)
	SetRealElt(h entities.Handle, i int, v float64)
	SetStringElt(h entities.Handle, i int, c entities.Handle)
}

// Allocator creates host objects. Every call may trigger a collection of
// unprotected objects.
type Allocator interface {
	// AllocVector allocates a zero-filled vector of the given tag and length.
	AllocVector(t entities.ElementType, n int) entities.Handle

	// MakeChar creates a char object holding a copy of b.
	MakeChar(b []byte, enc entities.CharEncoding) entities.Handle
}

// Protector is the host's protect stack.
type Protector interface {
	// Protect pushes h onto the protect stack and returns it.
	Protect(h entities.Handle) entities.Handle

	// Unprotect pops n entries.
	Unprotect(n int)
}

// Console is the pair of host diagnostic sinks. Each call takes one
// pre-rendered UTF-8 string.
type Console interface {
	Print(msg string)
	PrintError(msg string)
}
