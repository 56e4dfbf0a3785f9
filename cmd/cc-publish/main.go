/*
PURPOSE:
  Entry point for cc-publish.
  Initializes the CLI root command and executes it.

ARCHITECTURE INTEGRATION:
  - Calls: internal/cli.Execute()

ERROR HANDLING:
  - Explicit error check on Execute(); exit code 1 on failure.

IMPLEMENTATION RULES:
  - Keep main() minimal. All logic belongs in internal/ packages.

USAGE:
  go build -o cc-publish ./cmd/cc-publish
  ./cc-publish [command] [flags]
*/

package main

import (
	"fmt"
	"os"

	"github.com/daryltucker/cc-publish/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
