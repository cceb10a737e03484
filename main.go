// ABOUTME: Entry point for the portfolio CLI
// ABOUTME: Command-line and terminal UI client for the portfolio backend

package main

import (
	"fmt"
	"os"

	"github.com/markalston/portfolio-admin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Command failures exit on their own; what reaches here is a usage error
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
}
