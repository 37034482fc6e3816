// ABOUTME: Defaults command for fabric-sizer CLI
// ABOUTME: Prints the default network configuration as a reusable YAML preset

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/fabric-capacity-analyzer/cli/internal/presets"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default network configuration",
	Long: `Print the network configuration the backend applies to omitted fields, as a YAML
preset suitable for --config. With --local the built-in defaults are printed instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runDefaults(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(defaultsCmd)
}

// runDefaults prints the defaults and returns exit code
func runDefaults(ctx context.Context, w io.Writer) int {
	cfg, err := baseConfig(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(cfg, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if err := presets.Encode(w, cfg); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	return 0
}
