//go:build !wasip1

package guest

import "github.com/reglet-dev/vecbridge/host/memhost"

// Register validates opts against an in-process host. The exports only
// exist on wasip1.
func Register(opts Options) error {
	if _, err := opts.memoryOptions(); err != nil {
		return err
	}
	_, err := newCatalog(memhost.New(), opts)
	return err
}
