// Command pegvault obfuscates files with a byte shift and keeps the originals
// in a private vault.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/pegvault/internal/commands"
	"github.com/idelchi/pegvault/internal/ui"
)

// version is set at build time.
var version = "unknown - unofficial & generated by unknown"

func main() {
	root := commands.NewRootCommand(version)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error.Sprint(err))
		os.Exit(1)
	}
}
