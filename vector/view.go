// Package vector provides typed, read-only views over opaque host vector
// handles.
//
// A view is constructed only after the handle's element-type tag has been
// checked against the expected one. Views are non-owning and valid only for
// the duration of the host call that supplied the handle; they must not be
// stored past it.
package vector

import (
	"fmt"

	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/domain/errors"
	"github.com/reglet-dev/vecbridge/domain/ports"
)

// Source is the subset of host primitives a view reads through.
type Source interface {
	ports.VectorInspector
	ports.ElementReader
}

// View is the capability shared by every typed view.
type View interface {
	// Handle returns the underlying host handle.
	Handle() entities.Handle

	// Type returns the element-type tag the view was validated against.
	Type() entities.ElementType

	// Len returns the host-reported length.
	Len() int
}

// base carries what every variant needs once validation has passed.
type base struct {
	src Source
	h   entities.Handle
	n   int
	typ entities.ElementType
}

func (b base) Handle() entities.Handle    { return b.h }
func (b base) Type() entities.ElementType { return b.typ }
func (b base) Len() int                   { return b.n }

// checkIndex panics on out-of-range access; element access beyond Len is a
// defect, not a recoverable error.
func (b base) checkIndex(i int) {
	if i < 0 || i >= b.n {
		panic(fmt.Sprintf("vector: index %d out of range for %s vector of length %d", i, b.typ, b.n))
	}
}

// validate checks the tag of h and, on success, reads its length.
// On mismatch nothing beyond the tag is read.
func validate(src Source, h entities.Handle, want entities.ElementType) (base, error) {
	if h.IsNull() {
		return base{}, &errors.TypeMismatchError{Expected: want, Actual: entities.TypeNull}
	}
	if got := src.TypeOf(h); got != want {
		return base{}, &errors.TypeMismatchError{Expected: want, Actual: got}
	}
	return base{src: src, h: h, n: src.Length(h), typ: want}, nil
}
