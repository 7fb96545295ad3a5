package main

import (
	"fmt"
	"os"

	"github.com/rsink-io/rsink/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rsink: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
