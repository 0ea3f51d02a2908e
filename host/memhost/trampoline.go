package memhost

import (
	"go.uber.org/multierr"

	"github.com/reglet-dev/vecbridge/domain/entities"
	domainerrors "github.com/reglet-dev/vecbridge/domain/errors"
)

// Entry is a native entry point using the one-handle-in, one-handle-out
// calling convention.
type Entry func(x entities.Handle) entities.Handle

// missingMessage is reported when a failure handle carries no text object.
const missingMessage = "native call failed without a message"

// Call is the host-side trampoline. It keeps arg alive for the duration of
// the call, invokes fn, and inspects the low bit of the result: a set bit
// means the handle (once cleared) is a char object holding the failure
// message, which is returned as a *errors.HostCallError.
//
// A call that leaves the protect stack at a different depth is reported as
// a *errors.ProtectImbalanceError and the stack is restored. Successful
// results are preserved; the caller releases them with Release.
func (r *Runtime) Call(name string, fn Entry, arg entities.Handle) (entities.Handle, error) {
	r.Preserve(arg)
	defer r.Release(arg)

	before := len(r.protect)
	out := fn(arg)

	var err error
	if after := len(r.protect); after != before {
		err = &domainerrors.ProtectImbalanceError{EntryPoint: name, Before: before, After: after}
		if after > before {
			r.protect = r.protect[:before]
		}
	}

	if entities.IsFailure(out) {
		return entities.NullHandle, multierr.Append(&domainerrors.HostCallError{
			EntryPoint: name,
			Message:    r.failureMessage(entities.Untag(out)),
		}, err)
	}
	if err != nil {
		return entities.NullHandle, err
	}
	return r.Preserve(out), nil
}

func (r *Runtime) failureMessage(h entities.Handle) string {
	if h.IsNull() {
		return missingMessage
	}
	obj, ok := r.objects[h]
	if !ok || obj.typ != entities.TypeChar {
		return missingMessage
	}
	return string(obj.bytes)
}
