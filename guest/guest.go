//go:build wasip1

package guest

import (
	"sync"

	"github.com/reglet-dev/vecbridge/exports"
	"github.com/reglet-dev/vecbridge/infrastructure/wasm"
	"github.com/reglet-dev/vecbridge/internal/abi"
)

var (
	host = wasm.NewHostAdapter()

	mu      sync.Mutex
	catalog *exports.Catalog
)

// Register replaces the catalog served by the exports and applies the
// guest memory limit.
func Register(opts Options) error {
	memOpts, err := opts.memoryOptions()
	if err != nil {
		return err
	}
	c, err := newCatalog(host, opts)
	if err != nil {
		return err
	}
	abi.Configure(memOpts...)
	mu.Lock()
	catalog = c
	mu.Unlock()
	return nil
}

func current() *exports.Catalog {
	mu.Lock()
	defer mu.Unlock()
	if catalog == nil {
		c, err := newCatalog(host, Options{})
		if err != nil {
			panic(err)
		}
		catalog = c
	}
	return catalog
}

//go:wasmexport to_upper
func toUpper(x uint64) uint64 {
	return serve(current(), host, exports.NameToUpper, x)
}

//go:wasmexport times_two_integer
func timesTwoInteger(x uint64) uint64 {
	return serve(current(), host, exports.NameTimesTwoInteger, x)
}

//go:wasmexport times_two_real
func timesTwoReal(x uint64) uint64 {
	return serve(current(), host, exports.NameTimesTwoReal, x)
}
