//go:build wasip1

// Package wasm provides the guest-side host adapter: ports.Host implemented
// over functions imported from the vec_host module.
package wasm

// Handles, lengths and indices are i64; element types and encodings are
// i32; byte buffers are packed i64 pointer/length pairs in guest memory.

//go:wasmimport vec_host type_of
func host_type_of(h uint64) uint32

//go:wasmimport vec_host length
func host_length(h uint64) int64

//go:wasmimport vec_host integer_elt
func host_integer_elt(h uint64, i int64) int32

//go:wasmimport vec_host real_elt
func host_real_elt(h uint64, i int64) float64

//go:wasmimport vec_host string_elt
func host_string_elt(h uint64, i int64) uint64

//go:wasmimport vec_host char_len
func host_char_len(c uint64) uint32

//go:wasmimport vec_host char_encoding
func host_char_encoding(c uint64) uint32

//go:wasmimport vec_host char_copy
func host_char_copy(c uint64, dstPacked uint64)

//go:wasmimport vec_host alloc_vector
func host_alloc_vector(t uint32, n int64) uint64

//go:wasmimport vec_host make_char
func host_make_char(srcPacked uint64, enc uint32) uint64

//go:wasmimport vec_host set_integer_elt
func host_set_integer_elt(h uint64, i int64, v int32)

//go:wasmimport vec_host set_real_elt
func host_set_real_elt(h uint64, i int64, v float64)

//go:wasmimport vec_host set_string_elt
func host_set_string_elt(h uint64, i int64, c uint64)

//go:wasmimport vec_host protect
func host_protect(h uint64) uint64

//go:wasmimport vec_host unprotect
func host_unprotect(n uint32)

//go:wasmimport vec_host print
func host_print(msgPacked uint64)

//go:wasmimport vec_host eprint
func host_eprint(msgPacked uint64)
