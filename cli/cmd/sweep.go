// ABOUTME: Sweep command for fabric-sizer CLI
// ABOUTME: Tabulates both fabric designs across a range of user counts

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/markalston/fabric-capacity-analyzer/backend/models"
	"github.com/markalston/fabric-capacity-analyzer/cli/internal/tui/styles"
	"github.com/markalston/fabric-capacity-analyzer/cli/internal/tui/widgets"
)

const sparklineWidth = 32

var (
	sweepNet  networkFlags
	sweepFrom int
	sweepTo   int
	sweepStep int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare fabrics across a range of user counts",
	Long: `Compare Clos and full-mesh fabrics at every user count from --from to --to
(inclusive) in increments of --step. At most 256 points per sweep.

Exit codes:
  0 - Sweep rendered
  2 - Error (connectivity, invalid range, invalid preset)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		base, err := baseConfig(ctx)
		if err != nil {
			fmt.Fprintf(os.Stdout, "Error: %v\n", err)
			os.Exit(2)
		}

		cfg, err := sweepNet.resolve(cmd, base)
		if err != nil {
			fmt.Fprintf(os.Stdout, "Error: %v\n", err)
			os.Exit(2)
		}

		req := models.SweepRequest{Config: cfg, From: sweepFrom, To: sweepTo, Step: sweepStep}
		exitCode := runSweep(ctx, os.Stdout, req)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	addNetworkFlags(sweepCmd, &sweepNet)
	sweepCmd.Flags().IntVar(&sweepFrom, "from", 256, "First user count")
	sweepCmd.Flags().IntVar(&sweepTo, "to", 4096, "Last user count (inclusive)")
	sweepCmd.Flags().IntVar(&sweepStep, "step", 256, "User count increment")
}

// runSweep executes the sweep and returns exit code
func runSweep(ctx context.Context, w io.Writer, req models.SweepRequest) int {
	resp, err := newBackend().Sweep(ctx, req)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		fmt.Fprintln(w, string(data))
		return 0
	}

	renderSweepTable(w, resp)
	fmt.Fprintln(w)
	fmt.Fprintln(w, formatSweepTrends(resp))
	return 0
}

// renderSweepTable writes one row per sweep point
func renderSweepTable(w io.Writer, resp *models.SweepResponse) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{
		"Users",
		"Clos Switches",
		"Clos Cables",
		"Clos W/Port",
		"Mesh Switches",
		"Mesh Cables",
		"Mesh W/Port",
		"Preferred",
	})

	for _, p := range resp.Points {
		row := table.Row{p.NumUsers}
		row = append(row, seriesCells(p.Clos)...)
		row = append(row, seriesCells(p.Mesh)...)
		row = append(row, preferredAt(p))
		t.AppendRow(row)
	}

	t.Render()
}

// seriesCells formats one design's columns, dashing out infeasible designs
func seriesCells(v models.SeriesValue) []any {
	if !v.Possible {
		return []any{"-", "-", "-"}
	}
	return []any{v.TotalSwitches, v.TotalCables, fmt.Sprintf("%.2f", v.PowerPerPort)}
}

// preferredAt picks the lower-power feasible design, with ties going to Clos
func preferredAt(p models.SweepPoint) string {
	switch {
	case p.Clos.Possible && p.Mesh.Possible:
		if p.Mesh.TotalPower < p.Clos.TotalPower {
			return models.DesignMesh
		}
		return models.DesignClos
	case p.Clos.Possible:
		return models.DesignClos
	case p.Mesh.Possible:
		return models.DesignMesh
	default:
		return models.DesignNone
	}
}

// formatSweepTrends renders watts-per-port sparklines over the feasible points of each design
func formatSweepTrends(resp *models.SweepResponse) string {
	trend := func(design string, pick func(models.SweepPoint) models.SeriesValue) string {
		feasible := lo.Filter(resp.Points, func(p models.SweepPoint, _ int) bool {
			return pick(p).Possible
		})
		label := styles.DesignStyle(design).Render(fmt.Sprintf("%-5s W/port", design))
		if len(feasible) == 0 {
			return label + "  " + widgets.StatusText("no feasible points", widgets.StatusCritical)
		}
		values := lo.Map(feasible, func(p models.SweepPoint, _ int) float64 {
			return pick(p).PowerPerPort
		})
		return fmt.Sprintf("%s  %s  %.2f → %.2f", label,
			widgets.Sparkline(values, sparklineWidth, ""), values[0], values[len(values)-1])
	}

	clos := trend(models.DesignClos, func(p models.SweepPoint) models.SeriesValue { return p.Clos })
	mesh := trend(models.DesignMesh, func(p models.SweepPoint) models.SeriesValue { return p.Mesh })
	return clos + "\n" + mesh
}
