package memhost

import (
	"fmt"
	"io"

	"github.com/reglet-dev/vecbridge/domain/entities"
)

// TypeOf returns the element-type tag of h.
func (r *Runtime) TypeOf(h entities.Handle) entities.ElementType {
	return r.lookup(h).typ
}

// Length returns the element count of a vector, or the byte length of a char.
func (r *Runtime) Length(h entities.Handle) int {
	obj := r.lookup(h)
	switch obj.typ {
	case entities.TypeNull:
		return 0
	case entities.TypeLogical, entities.TypeInteger:
		return len(obj.ints)
	case entities.TypeReal:
		return len(obj.reals)
	case entities.TypeText, entities.TypeList:
		return len(obj.refs)
	case entities.TypeChar, entities.TypeRaw:
		return len(obj.bytes)
	}
	panic(fmt.Sprintf("memhost: length of unsupported type %s", obj.typ))
}

// IntegerElt reads element i of an integer vector.
func (r *Runtime) IntegerElt(h entities.Handle, i int) int32 {
	obj := r.lookupTyped(h, entities.TypeInteger, "INTEGER_ELT")
	checkIndex(obj, i, len(obj.ints))
	return obj.ints[i]
}

// RealElt reads element i of a real vector.
func (r *Runtime) RealElt(h entities.Handle, i int) float64 {
	obj := r.lookupTyped(h, entities.TypeReal, "REAL_ELT")
	checkIndex(obj, i, len(obj.reals))
	return obj.reals[i]
}

// StringElt returns the char handle at index i of a text vector.
func (r *Runtime) StringElt(h entities.Handle, i int) entities.Handle {
	obj := r.lookupTyped(h, entities.TypeText, "STRING_ELT")
	checkIndex(obj, i, len(obj.refs))
	return obj.refs[i]
}

// CharBytes returns a copy of the bytes of a char object and its encoding.
func (r *Runtime) CharBytes(c entities.Handle) ([]byte, entities.CharEncoding) {
	obj := r.lookupTyped(c, entities.TypeChar, "CHAR")
	out := make([]byte, len(obj.bytes))
	copy(out, obj.bytes)
	return out, obj.enc
}

// SetIntegerElt writes element i of an integer vector.
func (r *Runtime) SetIntegerElt(h entities.Handle, i int, v int32) {
	obj := r.lookupTyped(h, entities.TypeInteger, "SET_INTEGER_ELT")
	checkIndex(obj, i, len(obj.ints))
	obj.ints[i] = v
}

// SetRealElt writes element i of a real vector.
func (r *Runtime) SetRealElt(h entities.Handle, i int, v float64) {
	obj := r.lookupTyped(h, entities.TypeReal, "SET_REAL_ELT")
	checkIndex(obj, i, len(obj.reals))
	obj.reals[i] = v
}

// SetStringElt stores char handle c at index i of a text vector.
func (r *Runtime) SetStringElt(h entities.Handle, i int, c entities.Handle) {
	obj := r.lookupTyped(h, entities.TypeText, "SET_STRING_ELT")
	checkIndex(obj, i, len(obj.refs))
	r.lookupTyped(c, entities.TypeChar, "SET_STRING_ELT")
	obj.refs[i] = c
}

// AllocVector allocates a zero-filled vector. Text vectors are filled with
// the blank string. May collect before allocating.
func (r *Runtime) AllocVector(t entities.ElementType, n int) entities.Handle {
	if n < 0 {
		panic(fmt.Sprintf("memhost: negative length vectors are not allowed (%d)", n))
	}
	if t == entities.TypeNull {
		return r.nullObj
	}
	r.beforeAlloc()

	obj := &object{typ: t}
	switch t {
	case entities.TypeLogical, entities.TypeInteger:
		obj.ints = make([]int32, n)
	case entities.TypeReal:
		obj.reals = make([]float64, n)
	case entities.TypeText:
		obj.refs = make([]entities.Handle, n)
		for i := range obj.refs {
			obj.refs[i] = r.blankChar
		}
	case entities.TypeList:
		obj.refs = make([]entities.Handle, n)
		for i := range obj.refs {
			obj.refs[i] = r.nullObj
		}
	case entities.TypeRaw:
		obj.bytes = make([]byte, n)
	default:
		panic(fmt.Sprintf("memhost: cannot allocate vector of type %s", t))
	}
	return r.store(obj)
}

// MakeChar creates a new char object. Chars are never interned.
func (r *Runtime) MakeChar(b []byte, enc entities.CharEncoding) entities.Handle {
	r.beforeAlloc()
	payload := make([]byte, len(b))
	copy(payload, b)
	return r.store(&object{typ: entities.TypeChar, bytes: payload, enc: enc})
}

// Protect pushes h onto the protect stack.
func (r *Runtime) Protect(h entities.Handle) entities.Handle {
	r.lookup(h)
	r.protect = append(r.protect, h)
	return h
}

// Unprotect pops n entries from the protect stack.
func (r *Runtime) Unprotect(n int) {
	if n < 0 || n > len(r.protect) {
		panic(fmt.Sprintf("memhost: unprotect(): only %d protected items, cannot pop %d", len(r.protect), n))
	}
	r.protect = r.protect[:len(r.protect)-n]
}

// ProtectDepth returns the current protect-stack depth.
func (r *Runtime) ProtectDepth() int {
	return len(r.protect)
}

// Preserve roots h until a matching Release.
func (r *Runtime) Preserve(h entities.Handle) entities.Handle {
	r.lookup(h)
	r.roots[h]++
	return h
}

// Release drops one preserve reference on h.
func (r *Runtime) Release(h entities.Handle) {
	n, ok := r.roots[h]
	if !ok {
		return
	}
	if n <= 1 {
		delete(r.roots, h)
		return
	}
	r.roots[h] = n - 1
}

// Print writes msg to the standard-output sink.
func (r *Runtime) Print(msg string) {
	_, _ = io.WriteString(r.stdout, msg)
}

// PrintError writes msg to the error-output sink.
func (r *Runtime) PrintError(msg string) {
	_, _ = io.WriteString(r.stderr, msg)
}
