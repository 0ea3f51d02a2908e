package vector

import (
	"iter"

	"github.com/reglet-dev/vecbridge/domain/entities"
)

// Compile-time interface compliance check
var _ View = IntegerView{}

// IntegerView is a view over a host integer vector (32-bit elements).
type IntegerView struct {
	base
}

// NewIntegerView validates h as an integer vector.
func NewIntegerView(src Source, h entities.Handle) (IntegerView, error) {
	b, err := validate(src, h, entities.TypeInteger)
	if err != nil {
		return IntegerView{}, err
	}
	return IntegerView{base: b}, nil
}

// At returns element i. Panics if i is outside [0, Len()).
func (v IntegerView) At(i int) int32 {
	v.checkIndex(i)
	return v.src.IntegerElt(v.h, i)
}

// All yields (index, element) pairs in ascending order. Each call starts a
// fresh pass.
func (v IntegerView) All() iter.Seq2[int, int32] {
	return func(yield func(int, int32) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(i, v.src.IntegerElt(v.h, i)) {
				return
			}
		}
	}
}
