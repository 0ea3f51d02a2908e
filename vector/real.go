package vector

import (
	"iter"

	"github.com/reglet-dev/vecbridge/domain/entities"
)

// Compile-time interface compliance check
var _ View = RealView{}

// RealView is a view over a host double-precision vector.
type RealView struct {
	base
}

// NewRealView validates h as a real vector.
func NewRealView(src Source, h entities.Handle) (RealView, error) {
	b, err := validate(src, h, entities.TypeReal)
	if err != nil {
		return RealView{}, err
	}
	return RealView{base: b}, nil
}

// At returns element i. Panics if i is outside [0, Len()).
func (v RealView) At(i int) float64 {
	v.checkIndex(i)
	return v.src.RealElt(v.h, i)
}

// All yields (index, element) pairs in ascending order.
func (v RealView) All() iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(i, v.src.RealElt(v.h, i)) {
				return
			}
		}
	}
}
