// Package memhost is an in-process host runtime: it owns garbage-collected
// vector objects behind aligned opaque handles, keeps a protect stack and
// preserve roots, and provides the host-side trampoline that decodes tagged
// failure handles.
//
// A Runtime is single-threaded, like the host it stands in for, and is not
// safe for concurrent use.
package memhost

import (
	"fmt"
	"io"
	"os"

	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/domain/ports"
)

// Compile-time interface compliance check
var _ ports.Host = (*Runtime)(nil)

const (
	// handleBase is the first address handed out.
	handleBase entities.Handle = 0x1000

	// handleStride keeps every handle 16-byte aligned.
	handleStride entities.Handle = 16
)

type object struct {
	ints   []int32
	reals  []float64
	refs   []entities.Handle // char handles of a text vector, elements of a list
	bytes  []byte            // char payload or raw vector
	enc    entities.CharEncoding
	typ    entities.ElementType
	marked bool
}

// Runtime is the in-memory host.
type Runtime struct {
	objects   map[entities.Handle]*object
	collected map[entities.Handle]struct{}
	roots     map[entities.Handle]int
	permanent map[entities.Handle]struct{}
	stdout    io.Writer
	stderr    io.Writer
	protect   []entities.Handle
	nullObj   entities.Handle
	blankChar entities.Handle
	next      entities.Handle
	gcTorture bool
	gcEvery   int
	sinceGC   int
	stats     Stats
}

// Stats reports runtime counters.
type Stats struct {
	Live         int
	Allocations  int
	Collections  int
	Reclaimed    int
	ProtectDepth int
	Roots        int
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithGCTorture collects unreachable objects before every allocation.
func WithGCTorture(enabled bool) Option {
	return func(r *Runtime) {
		r.gcTorture = enabled
	}
}

// WithGCInterval collects every n allocations. Zero disables periodic collection.
func WithGCInterval(n int) Option {
	return func(r *Runtime) {
		r.gcEvery = n
	}
}

// WithStdout sets the sink for Print.
func WithStdout(w io.Writer) Option {
	return func(r *Runtime) {
		r.stdout = w
	}
}

// WithStderr sets the sink for PrintError.
func WithStderr(w io.Writer) Option {
	return func(r *Runtime) {
		r.stderr = w
	}
}

// New creates a Runtime holding only the permanent NULL and blank-string objects.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		objects:   make(map[entities.Handle]*object),
		collected: make(map[entities.Handle]struct{}),
		roots:     make(map[entities.Handle]int),
		permanent: make(map[entities.Handle]struct{}),
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		next:      handleBase,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.nullObj = r.store(&object{typ: entities.TypeNull})
	r.permanent[r.nullObj] = struct{}{}
	r.blankChar = r.store(&object{typ: entities.TypeChar, bytes: []byte{}, enc: entities.EncodingNative})
	r.permanent[r.blankChar] = struct{}{}
	return r
}

// Null returns the permanent NULL object.
func (r *Runtime) Null() entities.Handle {
	return r.nullObj
}

// SetGCTorture toggles collection before every allocation.
func (r *Runtime) SetGCTorture(enabled bool) {
	r.gcTorture = enabled
}

// Stats returns a snapshot of the runtime counters.
func (r *Runtime) Stats() Stats {
	s := r.stats
	s.Live = len(r.objects)
	s.ProtectDepth = len(r.protect)
	s.Roots = len(r.roots)
	return s
}

// IsLive reports whether h names an object that has not been collected.
func (r *Runtime) IsLive(h entities.Handle) bool {
	_, ok := r.objects[h]
	return ok
}

func (r *Runtime) store(obj *object) entities.Handle {
	h := r.next
	r.next += handleStride
	r.objects[h] = obj
	return h
}

func (r *Runtime) lookup(h entities.Handle) *object {
	if entities.IsFailure(h) {
		panic(fmt.Sprintf("memhost: misaligned handle %s", h))
	}
	obj, ok := r.objects[h]
	if ok {
		return obj
	}
	if _, gone := r.collected[h]; gone {
		panic(fmt.Sprintf("memhost: use of collected object %s", h))
	}
	panic(fmt.Sprintf("memhost: invalid handle %s", h))
}

func (r *Runtime) lookupTyped(h entities.Handle, want entities.ElementType, accessor string) *object {
	obj := r.lookup(h)
	if obj.typ != want {
		panic(fmt.Sprintf("memhost: %s() can only be applied to a '%s', not a '%s'", accessor, want, obj.typ))
	}
	return obj
}

func checkIndex(obj *object, i int, n int) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("memhost: attempt to access index %d of %s vector of length %d", i, obj.typ, n))
	}
}

// beforeAlloc runs the collector when torture or the interval asks for it.
func (r *Runtime) beforeAlloc() {
	r.stats.Allocations++
	r.sinceGC++
	if r.gcTorture || (r.gcEvery > 0 && r.sinceGC >= r.gcEvery) {
		r.Collect()
	}
}
