// Package vecbridge exposes native vector transforms to a garbage-collected
// host through opaque handles.
//
// Every entry point takes one handle and returns one handle. Failures and
// panics never cross the boundary as control flow: they come back as a
// handle with its low bit set, pointing at a host text object that holds
// the message.
//
//	rt := memhost.New()
//	catalog, err := vecbridge.New(rt)
//	if err != nil {
//	    return err
//	}
//	out, err := rt.Call("to_upper", catalog.Bind(ctx, "to_upper"), rt.NewStrings("abc"))
package vecbridge

import (
	"github.com/reglet-dev/vecbridge/domain/entities"
	"github.com/reglet-dev/vecbridge/domain/ports"
	"github.com/reglet-dev/vecbridge/exports"
)

// Version is the bridge version reported in catalog manifests.
const Version = "0.1.0"

type (
	// Handle is an opaque reference to a host object.
	Handle = entities.Handle
	// ElementType is the host's runtime type tag.
	ElementType = entities.ElementType
	// Manifest describes a catalog.
	Manifest = entities.Manifest
	// Catalog is a registry of entry points bound to one host.
	Catalog = exports.Catalog
	// EntryPoint describes one exposed operation.
	EntryPoint = exports.EntryPoint
)

// New returns a catalog holding the built-in entry points over host, named
// after this module. Later options may add entry points or middleware.
func New(host ports.Host, opts ...exports.CatalogOption) (*Catalog, error) {
	base := []exports.CatalogOption{
		exports.WithBuiltins(),
		exports.WithIdentity("vecbridge", Version),
	}
	return exports.NewCatalog(host, append(base, opts...)...)
}
