// Package protect provides a scoped acquisition object over the host's
// protect stack. Every handle pushed through a Scope is popped by a single
// Release, which callers defer so it runs on normal return, on error
// returns and while a panic unwinds toward the bridge wrapper.
package protect

import (
	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/domain/ports"
)

// Scope counts the protections it pushed.
type Scope struct {
	p     ports.Protector
	depth int
}

// NewScope opens a scope over the host's protect stack.
func NewScope(p ports.Protector) *Scope {
	return &Scope{p: p}
}

// Protect pushes h and returns it, so allocation and protection read as one step:
//
//	out := scope.Protect(host.AllocVector(entities.TypeText, n))
func (s *Scope) Protect(h entities.Handle) entities.Handle {
	s.p.Protect(h)
	s.depth++
	return h
}

// Depth returns the number of outstanding protections.
func (s *Scope) Depth() int {
	return s.depth
}

// Release pops everything this scope pushed. Calling it again is a no-op.
func (s *Scope) Release() {
	if s.depth == 0 {
		return
	}
	n := s.depth
	s.depth = 0
	s.p.Unprotect(n)
}
