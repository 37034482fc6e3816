// ABOUTME: Root command for fabric-sizer CLI
// ABOUTME: Handles global flags and configuration

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
	localMode  bool
)

const defaultAPIURL = "http://localhost:8080"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "fabric-sizer",
	Short: "CLI for the fabric capacity analyzer",
	Long: `fabric-sizer compares folded-Clos and full-mesh datacenter fabrics at equal capacity.

It reports switch, cable, power and hop figures for both designs, sweeps them across a
range of user counts, and gates CI/CD pipelines on power and latency budgets.

Environment Variables:
  FABRIC_SIZER_API_URL  Backend API URL (default: http://localhost:8080)`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides FABRIC_SIZER_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().BoolVar(&localMode, "local", false, "Compute in-process instead of calling the backend")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("FABRIC_SIZER_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// IsLocal returns whether calculations run in-process
func IsLocal() bool {
	return localMode
}
