package abi

// DefaultMaxTotalAllocations is the default cap on memory tracked by the
// guest for boundary buffers.
const DefaultMaxTotalAllocations = 100 * 1024 * 1024 // 100 MB

// Option configures the guest memory manager.
type Option func(*config)

type config struct {
	maxTotal int
}

func newConfig(maxTotal int, opts ...Option) config {
	cfg := config{maxTotal: maxTotal}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxTotalAllocations caps the bytes tracked at once. Non-positive
// values are ignored.
func WithMaxTotalAllocations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxTotal = n
		}
	}
}
