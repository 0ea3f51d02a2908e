// Package host runs WASM guests that export entry points over the vec_host
// boundary.
//
// It abstracts the underlying WASM engine (wazero), instantiates WASI and
// the vec_host module backed by an in-process memhost.Runtime, and calls
// guest exports through the runtime's trampoline, which decodes tagged
// failure handles into Go errors.
package host
