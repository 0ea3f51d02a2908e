// Package wazero registers the vec_host module with a wazero runtime,
// exposing a ports.Host (normally a memhost.Runtime) to WASM guests.
//
// Every host primitive becomes one exported function. Handles, lengths and
// indices are i64, element types and encodings i32, and byte buffers are
// packed i64 pointer/length pairs in guest memory (see internal/abi).
//
// # Basic Usage
//
//	rt := memhost.New()
//	runtime := wazero.NewRuntime(ctx)
//	wasi_snapshot_preview1.MustInstantiate(ctx, runtime)
//
//	err := vecwazero.RegisterWithRuntime(ctx, runtime, rt,
//	    vecwazero.WithModuleName("vec_host"),
//	)
//
// # Host faults
//
// A malformed argument or a fault raised by the host (use of a collected
// handle, index out of range, protect-stack underflow) is logged and
// re-raised as a panic. wazero turns it into an error from the guest export
// call, which aborts the whole call the way a host error would.
package wazero
