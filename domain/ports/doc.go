// Package ports defines the interfaces through which the bridge reaches the
// host runtime. The bridge depends only on these abstractions; the in-memory
// host, the WASM guest adapter and test doubles implement them.
package ports
