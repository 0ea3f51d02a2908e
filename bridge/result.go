package bridge

import (
	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/domain/errors"
)

// Operation is one unit of native logic executed at the boundary. It must
// leave no host-visible side effect half-applied if it panics.
type Operation func() (entities.Handle, error)

// Result is the in-process outcome of an Operation: either a success handle
// or an error, which is a *errors.DefectError when the operation panicked.
type Result struct {
	err    error
	handle entities.Handle
}

// Ok wraps a success handle.
func Ok(h entities.Handle) Result {
	return Result{handle: h}
}

// Fail wraps a failure.
func Fail(err error) Result {
	return Result{err: err}
}

// Handle returns the success handle and true, or NullHandle and false.
func (r Result) Handle() (entities.Handle, bool) {
	if r.err != nil {
		return entities.NullHandle, false
	}
	return r.handle, true
}

// Err returns the failure, or nil on success.
func (r Result) Err() error {
	return r.err
}

// IsDefect reports whether the operation panicked.
func (r Result) IsDefect() bool {
	return r.err != nil && errors.IsDefect(r.err)
}
