//go:build !wasip1

// Package wasm provides the guest-side host adapter: ports.Host implemented
// over functions imported from the vec_host module.
package wasm

import (
	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/domain/ports"
)

// Compile-time interface compliance check
var _ ports.Host = (*HostAdapter)(nil)

// HostAdapter stub for native builds.
type HostAdapter struct{}

// NewHostAdapter creates a new HostAdapter stub.
func NewHostAdapter() *HostAdapter {
	return &HostAdapter{}
}

const unavailable = "WASM host adapter not available in native build. Use host/memhost for in-process calls."

func (a *HostAdapter) TypeOf(entities.Handle) entities.ElementType        { panic(unavailable) }
func (a *HostAdapter) Length(entities.Handle) int                         { panic(unavailable) }
func (a *HostAdapter) IntegerElt(entities.Handle, int) int32              { panic(unavailable) }
func (a *HostAdapter) RealElt(entities.Handle, int) float64               { panic(unavailable) }
func (a *HostAdapter) StringElt(entities.Handle, int) entities.Handle     { panic(unavailable) }
func (a *HostAdapter) SetIntegerElt(entities.Handle, int, int32)          { panic(unavailable) }
func (a *HostAdapter) SetRealElt(entities.Handle, int, float64)           { panic(unavailable) }
func (a *HostAdapter) SetStringElt(entities.Handle, int, entities.Handle) { panic(unavailable) }
func (a *HostAdapter) Protect(entities.Handle) entities.Handle            { panic(unavailable) }
func (a *HostAdapter) Unprotect(int)                                      { panic(unavailable) }
func (a *HostAdapter) Print(string)                                       { panic(unavailable) }
func (a *HostAdapter) PrintError(string)                                  { panic(unavailable) }

func (a *HostAdapter) CharBytes(entities.Handle) ([]byte, entities.CharEncoding) {
	panic(unavailable)
}

func (a *HostAdapter) AllocVector(entities.ElementType, int) entities.Handle {
	panic(unavailable)
}

func (a *HostAdapter) MakeChar([]byte, entities.CharEncoding) entities.Handle {
	panic(unavailable)
}
