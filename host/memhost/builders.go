package memhost

import (
	"unicode/utf8"

	"github.com/reglet-dev/vecbridge/domain/entities"
)

// The builders below create vectors the way host-level code would and
// preserve the result, so callers own one preserve reference and must
// Release it when done.

// NewIntegers creates a preserved integer vector.
func (r *Runtime) NewIntegers(values ...int32) entities.Handle {
	h := r.AllocVector(entities.TypeInteger, len(values))
	copy(r.objects[h].ints, values)
	return r.Preserve(h)
}

// NewLogicals creates a preserved logical vector.
func (r *Runtime) NewLogicals(values ...bool) entities.Handle {
	h := r.AllocVector(entities.TypeLogical, len(values))
	for i, v := range values {
		if v {
			r.objects[h].ints[i] = 1
		}
	}
	return r.Preserve(h)
}

// NewReals creates a preserved real vector.
func (r *Runtime) NewReals(values ...float64) entities.Handle {
	h := r.AllocVector(entities.TypeReal, len(values))
	copy(r.objects[h].reals, values)
	return r.Preserve(h)
}

// NewStrings creates a preserved text vector. Valid UTF-8 input is marked
// UTF-8, pure ASCII is marked native, anything else is stored as bytes.
func (r *Runtime) NewStrings(values ...string) entities.Handle {
	raws := make([][]byte, len(values))
	encs := make([]entities.CharEncoding, len(values))
	for i, v := range values {
		raws[i] = []byte(v)
		encs[i] = guessEncoding(raws[i])
	}
	return r.newText(raws, encs)
}

// NewStringsEncoded creates a preserved text vector whose elements all
// declare enc, without validating the bytes.
func (r *Runtime) NewStringsEncoded(enc entities.CharEncoding, raws ...[]byte) entities.Handle {
	encs := make([]entities.CharEncoding, len(raws))
	for i := range encs {
		encs[i] = enc
	}
	return r.newText(raws, encs)
}

func (r *Runtime) newText(raws [][]byte, encs []entities.CharEncoding) entities.Handle {
	h := r.Protect(r.AllocVector(entities.TypeText, len(raws)))
	defer r.Unprotect(1)
	for i, raw := range raws {
		r.SetStringElt(h, i, r.MakeChar(raw, encs[i]))
	}
	return r.Preserve(h)
}

func guessEncoding(b []byte) entities.CharEncoding {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			if utf8.Valid(b) {
				return entities.EncodingUTF8
			}
			return entities.EncodingBytes
		}
	}
	return entities.EncodingNative
}

// Integers copies out the elements of an integer vector.
func (r *Runtime) Integers(h entities.Handle) []int32 {
	obj := r.lookupTyped(h, entities.TypeInteger, "INTEGER")
	out := make([]int32, len(obj.ints))
	copy(out, obj.ints)
	return out
}

// Reals copies out the elements of a real vector.
func (r *Runtime) Reals(h entities.Handle) []float64 {
	obj := r.lookupTyped(h, entities.TypeReal, "REAL")
	out := make([]float64, len(obj.reals))
	copy(out, obj.reals)
	return out
}

// Strings copies out the raw element bytes of a text vector as strings.
func (r *Runtime) Strings(h entities.Handle) []string {
	obj := r.lookupTyped(h, entities.TypeText, "STRING_PTR")
	out := make([]string, len(obj.refs))
	for i, c := range obj.refs {
		out[i] = r.CharString(c)
	}
	return out
}

// CharString returns the raw bytes of a char object as a string.
func (r *Runtime) CharString(c entities.Handle) string {
	return string(r.lookupTyped(c, entities.TypeChar, "CHAR").bytes)
}
