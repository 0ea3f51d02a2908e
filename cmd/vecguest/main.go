//go:build wasip1

// Command vecguest is a WASM reactor exporting the built-in entry points
// over the vec_host imports.
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o vecguest.wasm ./cmd/vecguest
//
// Run with the host CLI:
//
//	vecbridge call to_upper abc --wasm vecguest.wasm
package main

import (
	"log/slog"

	"github.com/reglet-dev/vecbridge/guest"
)

func init() {
	if err := guest.Register(guest.Options{Level: slog.LevelWarn}); err != nil {
		panic(err)
	}
}

func main() {}
