// ABOUTME: Compare command for fabric-sizer CLI
// ABOUTME: Sizes Clos and full-mesh fabrics at equal capacity and renders the comparison

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

	"github.com/markalston/fabric-capacity-analyzer/backend/models"
	"github.com/markalston/fabric-capacity-analyzer/cli/internal/tui/comparison"
)

// viewWidth is the terminal width the comparison panels are laid out for
const viewWidth = 100

var compareNet networkFlags

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare Clos and full-mesh fabrics",
	Long: `Size a folded-Clos fabric for the requested user count, then size the smallest
full mesh that matches the capacity Clos achieved, and show both side by side.

Exit codes:
  0 - Comparison rendered (including infeasible designs)
  2 - Error (connectivity, invalid preset)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		base, err := baseConfig(ctx)
		if err != nil {
			fmt.Fprintf(os.Stdout, "Error: %v\n", err)
			os.Exit(2)
		}

		cfg, err := compareNet.resolve(cmd, base)
		if err != nil {
			fmt.Fprintf(os.Stdout, "Error: %v\n", err)
			os.Exit(2)
		}

		exitCode := runCompare(ctx, os.Stdout, cfg)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	addNetworkFlags(compareCmd, &compareNet)
}

// runCompare executes the comparison and returns exit code
func runCompare(ctx context.Context, w io.Writer, cfg models.NetworkConfig) int {
	cmp, err := newBackend().Compare(ctx, cfg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, err := json.MarshalIndent(cmp, "", "  ")
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprint(w, comparison.New(cmp, viewWidth).View())
	return 0
}
