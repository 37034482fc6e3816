// ABOUTME: Shared lipgloss styles for consistent terminal output
// ABOUTME: Defines colors, borders, and text styles used by fabric reports

package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light
	Info      = lipgloss.Color("#3B82F6") // Blue

	// Colors - One per fabric design
	ClosColor = lipgloss.Color("#8B5CF6") // Lighter purple
	MeshColor = lipgloss.Color("#06B6D4") // Cyan

	// Delta colors: lower switch/cable/power counts are improvements
	DeltaPositive = lipgloss.Color("#10B981") // Green - improvements
	DeltaNegative = lipgloss.Color("#F59E0B") // Amber - costs/increases
	DeltaNeutral  = lipgloss.Color("#6B7280") // Gray - no change

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	// PreferredPanel highlights the design with lower total power
	PreferredPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Value style for emphasized data
	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	// Label style for metric names
	LabelStyle = lipgloss.NewStyle().
			Foreground(Muted)
)

// DesignStyle returns the heading style for a design name ("clos" or "mesh")
func DesignStyle(design string) lipgloss.Style {
	color := ClosColor
	if design == "mesh" {
		color = MeshColor
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}
