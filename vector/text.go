package vector

import (
	"iter"

	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/domain/errors"
)

// Compile-time interface compliance check
var _ View = TextView{}

// TextView is a view over a host text vector. Elements are decoded from the
// host's declared encoding to UTF-8 at access time.
type TextView struct {
	base
}

// NewTextView validates h as a text vector.
func NewTextView(src Source, h entities.Handle) (TextView, error) {
	b, err := validate(src, h, entities.TypeText)
	if err != nil {
		return TextView{}, err
	}
	return TextView{base: b}, nil
}

// At returns element i as UTF-8. A decode failure is returned as a
// *errors.DecodeError and must fail the whole call. Panics if i is outside
// [0, Len()).
func (v TextView) At(i int) (string, error) {
	v.checkIndex(i)
	return v.decode(i)
}

func (v TextView) decode(i int) (string, error) {
	raw, enc := v.src.CharBytes(v.src.StringElt(v.h, i))
	s, err := DecodeChar(raw, enc)
	if err != nil {
		return "", &errors.DecodeError{Index: i, Encoding: enc, Err: err}
	}
	return s, nil
}

// All yields decoded elements in ascending order. The sequence stops after
// yielding the first decode error.
func (v TextView) All() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for i := 0; i < v.n; i++ {
			s, err := v.decode(i)
			if !yield(s, err) || err != nil {
				return
			}
		}
	}
}

// Strings decodes every element, failing on the first undecodable one.
func (v TextView) Strings() ([]string, error) {
	out := make([]string, 0, v.n)
	for s, err := range v.All() {
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
