// Command vecbridge calls vector entry points from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/reglet-dev/vecbridge/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
