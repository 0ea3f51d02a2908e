// Package bridge is the call boundary between the host runtime and native
// logic.
//
// A host-facing entry point runs its whole body as an Operation inside
// Wrapper.Run. Run intercepts both failure classes:
//
//   - a returned error (recoverable: type mismatch, decode failure, ...)
//   - a panic (a defect: failed assertion, out-of-range index, host fault)
//
// and always returns exactly one handle. Failures are rendered to a message,
// materialized as a host char object and returned with the low bit set. The
// host-side trampoline tests that bit, clears it and raises the message.
//
// This package is the only place in the module that recovers panics.
//
// Inside the process a failure is carried as a Result, a tagged union of
// handle or error; the low-bit encoding is applied only by Encode, at the
// boundary crossing.
package bridge
