// ABOUTME: Entry point for fabric-sizer CLI
// ABOUTME: Command-line tool for fabric sizing and CI/CD budget checks

package main

import (
	"fmt"
	"os"

	"github.com/markalston/fabric-capacity-analyzer/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
