package bridge

import (
	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/domain/ports"
)

// Run executes op with a default Wrapper over alloc.
func Run(alloc ports.Allocator, op Operation) entities.Handle {
	return New(alloc).Run(op)
}
