package main

import (
	"fmt"
	"os"

	"github.com/soyeahso/jj-mcp-server/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "jj-mcp-server: %v\n", err)
		os.Exit(1)
	}
}
