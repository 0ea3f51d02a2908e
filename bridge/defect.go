package bridge

import (
	"fmt"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/reglet-dev/vecbridge/domain/errors"
)

// maxDefectFrames bounds the frames inspected for the panic site.
const maxDefectFrames = 64

// newDefect builds a DefectError for a recovered value. It must be called
// from the deferred function that recovered, while the panicking frames are
// still on the stack.
func newDefect(v any, includeStack bool) *errors.DefectError {
	d := &errors.DefectError{
		Value:    v,
		Location: panicSite(),
	}
	if includeStack {
		d.Stack = debug.Stack()
	}
	return d
}

// panicSite returns "file:line in func" for the first frame past
// runtime.gopanic that is not itself in the runtime.
func panicSite() string {
	pcs := make([]uintptr, maxDefectFrames)
	n := runtime.Callers(1, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	pastPanic := false
	for {
		f, more := frames.Next()
		if pastPanic && !strings.HasPrefix(f.Function, "runtime.") {
			return fmt.Sprintf("%s:%d in %s", filepath.Base(f.File), f.Line, f.Function)
		}
		if f.Function == "runtime.gopanic" {
			pastPanic = true
		}
		if !more {
			return ""
		}
	}
}
