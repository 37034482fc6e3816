// ABOUTME: Check command for fabric-sizer CLI
// ABOUTME: Validates fabric power and latency budgets for CI/CD pipelines

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
)

const (
	defaultMaxPowerW  = 30.0
	defaultMaxAvgHops = 2.5
)

var (
	checkNet        networkFlags
	maxPowerPerPort float64
	maxAvgHops      float64
	checkDesign     string
)

var checkDesignChoices = []string{"both", models.DesignClos, models.DesignMesh}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check fabric power and hop budgets",
	Long: `Compare both fabric designs and exit non-zero if a checked design is infeasible
or exceeds the power-per-port or average-hop budget.

Exit codes:
  0 - All checks passed
  1 - One or more checks failed
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		base, err := baseConfig(ctx)
		if err != nil {
			fmt.Fprintf(os.Stdout, "Error: %v\n", err)
			os.Exit(2)
		}

		cfg, err := checkNet.resolve(cmd, base)
		if err != nil {
			fmt.Fprintf(os.Stdout, "Error: %v\n", err)
			os.Exit(2)
		}

		exitCode := runCheck(ctx, os.Stdout, cfg)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addNetworkFlags(checkCmd, &checkNet)
	checkCmd.Flags().Float64Var(&maxPowerPerPort, "max-power-per-port", defaultMaxPowerW, "Maximum watts per user port")
	checkCmd.Flags().Float64Var(&maxAvgHops, "max-avg-hops", defaultMaxAvgHops, "Maximum average switch hops")
	checkCmd.Flags().StringVar(&checkDesign, "design", "both", "Design to check: both, clos, or mesh")
}

// checkResult represents the result of a single threshold check
type checkResult struct {
	name      string
	value     float64
	threshold float64
	unit      string
	passed    bool
	detail    string // Set instead of value/threshold for feasibility checks
}

// runCheck executes the threshold checks and returns exit code
func runCheck(ctx context.Context, w io.Writer, cfg models.NetworkConfig) int {
	if err := validateThresholds(maxPowerPerPort, maxAvgHops, checkDesign); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	cmp, err := newBackend().Compare(ctx, cfg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	results := performChecks(cmp)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(results))
	} else {
		fmt.Fprintln(w, formatCheckHuman(results))
	}

	_, failed := countResults(results)
	if failed > 0 {
		return 1
	}
	return 0
}

// validateThresholds ensures threshold values are valid
func validateThresholds(power, hops float64, design string) error {
	if power <= 0 {
		return fmt.Errorf("--max-power-per-port must be greater than 0")
	}
	if hops <= 0 {
		return fmt.Errorf("--max-avg-hops must be greater than 0")
	}
	for _, d := range checkDesignChoices {
		if design == d {
			return nil
		}
	}
	return fmt.Errorf("--design must be one of both, clos, mesh; got %q", design)
}

// performChecks runs the budget checks against each selected design
func performChecks(cmp *models.FabricComparison) []checkResult {
	var results []checkResult

	if checkDesign != models.DesignMesh {
		results = append(results, designChecks("Clos", cmp.Clos)...)
	}
	if checkDesign != models.DesignClos {
		results = append(results, designChecks("Mesh", cmp.Mesh)...)
	}

	return results
}

// designChecks reports feasibility, then power and hop budgets when the design is possible
func designChecks(label string, m models.TopologyMetrics) []checkResult {
	if !m.Possible {
		return []checkResult{{
			name:   label + " feasible",
			passed: false,
			detail: m.Details,
		}}
	}

	return []checkResult{
		{
			name:      label + " power per port",
			value:     m.PowerPerPort(),
			threshold: maxPowerPerPort,
			unit:      "W",
			passed:    m.PowerPerPort() <= maxPowerPerPort,
		},
		{
			name:      label + " average hops",
			value:     m.AvgHops,
			threshold: maxAvgHops,
			unit:      "hops",
			passed:    m.AvgHops <= maxAvgHops,
		},
	}
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult) string {
	var output string

	for _, r := range results {
		symbol := "✓"
		if !r.passed {
			symbol = "✗"
		}
		if r.detail != "" {
			output += fmt.Sprintf("%s %s: %s\n", symbol, r.name, r.detail)
			continue
		}
		output += fmt.Sprintf("%s %s: %.2f %s (threshold: %.2f %s)\n",
			symbol, r.name, r.value, r.unit, r.threshold, r.unit)
	}

	passed, failed := countResults(results)
	if failed > 0 {
		output += fmt.Sprintf("\nFAILED: %d check(s) failed", failed)
	} else {
		output += fmt.Sprintf("\nPASSED: All %d check(s) within budget", passed)
	}

	return output
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(results []checkResult) string {
	_, failed := countResults(results)

	checks := make([]map[string]interface{}, len(results))
	for i, r := range results {
		checks[i] = map[string]interface{}{
			"name":      r.name,
			"value":     r.value,
			"threshold": r.threshold,
			"unit":      r.unit,
			"passed":    r.passed,
		}
		if r.detail != "" {
			checks[i]["detail"] = r.detail
		}
	}

	status := "passed"
	if failed > 0 {
		status = "failed"
	}

	output := map[string]interface{}{
		"status": status,
		"checks": checks,
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
