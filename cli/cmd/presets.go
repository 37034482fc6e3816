// ABOUTME: Presets command for fabric-sizer CLI
// ABOUTME: Lists named network presets available to --config

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/markalston/fabric-capacity-analyzer/cli/internal/presets"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List named network presets",
	Long: `List YAML presets found in FABRIC_SIZER_PRESETS_PATH or ./presets.
Any listed name can be passed to --config instead of a file path.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runPresets(os.Stdout, presets.FindDir("."))
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

// presetSummary is one listed preset; Error is set when the file does not parse
type presetSummary struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	NumUsers int     `json:"num_users,omitempty"`
	Radix    int     `json:"radix,omitempty"`
	Ratio    float64 `json:"mesh_fabric_ratio,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// runPresets lists presets in dir and returns exit code
func runPresets(w io.Writer, dir string) int {
	if dir == "" {
		fmt.Fprintln(w, "No presets directory found. Set FABRIC_SIZER_PRESETS_PATH or create ./presets.")
		return 0
	}

	files, err := presets.Discover(dir)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	summaries := make([]presetSummary, len(files))
	for i, f := range files {
		summaries[i] = presetSummary{Name: f.Name, Path: f.Path}
		cfg, err := presets.Load(f.Path)
		if err != nil {
			summaries[i].Error = err.Error()
			continue
		}
		summaries[i].NumUsers = cfg.NumUsers
		summaries[i].Radix = cfg.Radix
		summaries[i].Ratio = cfg.MeshFabricRatio
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(summaries, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Name", "Users", "Radix", "Mesh Ratio", "Path"})
	for _, s := range summaries {
		if s.Error != "" {
			t.AppendRow(table.Row{s.Name, "invalid", "", "", s.Path})
			continue
		}
		t.AppendRow(table.Row{s.Name, s.NumUsers, s.Radix, s.Ratio, s.Path})
	}
	t.Render()
	return 0
}
