// Package exports is the entry point set: native operations over host
// vectors using the one-handle-in, one-handle-out calling convention.
//
// Each operation has an inner form returning (Handle, error) and a wrapped
// form that runs it through the bridge wrapper and returns a single,
// possibly tagged, handle. The Catalog collects operations by name and
// applies middleware to every call.
package exports
