// ABOUTME: Comparison view showing Clos and full-mesh sizing side by side
// ABOUTME: Displays per-design breakdowns, mesh-minus-Clos deltas, and warnings

package comparison

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/fabric-capacity-analyzer/backend/models"
	"github.com/markalston/fabric-capacity-analyzer/cli/internal/tui/icons"
	"github.com/markalston/fabric-capacity-analyzer/cli/internal/tui/styles"
	"github.com/markalston/fabric-capacity-analyzer/cli/internal/tui/widgets"
)

// minColWidth keeps panels readable on narrow terminals
const minColWidth = 30

// Comparison displays a fabric comparison result
type Comparison struct {
	result *models.FabricComparison
	width  int
}

// New creates a new comparison view
func New(result *models.FabricComparison, width int) *Comparison {
	return &Comparison{
		result: result,
		width:  width,
	}
}

// View renders the comparison
func (c *Comparison) View() string {
	if c.result == nil {
		return "No comparison data"
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Fabric Comparison"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d users, radix %d, target capacity %d",
		c.result.Config.NumUsers, c.result.Config.Radix, c.result.TargetCapacity)))
	sb.WriteString("\n\n")

	colWidth := max(minColWidth, (c.width-4)/2)

	closPanel := c.renderDesign(models.DesignClos, c.result.Clos, colWidth)
	meshPanel := c.renderDesign(models.DesignMesh, c.result.Mesh, colWidth)
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, closPanel, "  ", meshPanel))
	sb.WriteString("\n\n")

	if c.result.Clos.Possible && c.result.Mesh.Possible {
		sb.WriteString(c.renderDelta())
		sb.WriteString("\n")
	}

	sb.WriteString(c.renderPreferred())
	sb.WriteString("\n")

	if len(c.result.Warnings) > 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render("Warnings"))
		sb.WriteString("\n")
		for _, w := range c.result.Warnings {
			sb.WriteString(fmt.Sprintf("  %s [%s] %s\n",
				widgets.StatusIcon(widgets.SeverityLevel(w.Severity)), w.Design, w.Message))
		}
	}

	return sb.String()
}

func (c *Comparison) renderDesign(design string, m models.TopologyMetrics, width int) string {
	var sb strings.Builder

	sb.WriteString(styles.DesignStyle(design).Render(m.Name))
	sb.WriteString("\n")

	if !m.Possible {
		sb.WriteString(widgets.StatusText("Not possible", widgets.StatusCritical))
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Width(width - 4).Render(m.Details))
		return styles.Panel.Width(width).Render(sb.String())
	}

	line := func(icon icons.Icon, label, value string) {
		sb.WriteString(fmt.Sprintf("%s %s %s\n", icon.String(),
			styles.LabelStyle.Render(label+":"), styles.ValueStyle.Render(value)))
	}

	line(icons.Switch, "Switches", fmt.Sprintf("%d", m.TotalSwitches))
	line(icons.Cable, "Cables", fmt.Sprintf("%d", m.TotalCables))
	line(icons.Power, "Power", fmt.Sprintf("%.0f W (%.2f W/port)", m.TotalPower, m.PowerPerPort()))
	line(icons.Hops, "Hops", fmt.Sprintf("avg %.2f, max %d", m.AvgHops, m.MaxHops))
	line(icons.CheckOK, "Capacity", fmt.Sprintf("%d ports", m.UserCapacity))

	sb.WriteString("\n")
	sb.WriteString(BreakdownLine(m.SwitchConfig))

	panel := styles.Panel
	if c.result.Delta.Preferred == design {
		panel = styles.PreferredPanel
	}
	return panel.Width(width).Render(sb.String())
}

// BreakdownLine describes the per-tier switch layout of a sizing result
func BreakdownLine(sc models.SwitchConfig) string {
	switch v := sc.(type) {
	case models.TwoTierClos:
		return fmt.Sprintf("%d leafs + %d spines, %d user ports/leaf", v.Leafs, v.Spines, v.UserPortsPerSwitch)
	case models.ThreeTierClos:
		return fmt.Sprintf("%d leafs + %d agg + %d core, %d user ports/leaf",
			v.Leafs, v.Aggregation, v.Core, v.UserPortsPerSwitch)
	case models.FullMesh:
		return fmt.Sprintf("%d mesh switches, %d user ports/switch", v.MeshSwitches, v.UserPortsPerSwitch)
	default:
		return "no switch layout"
	}
}

func (c *Comparison) renderDelta() string {
	d := c.result.Delta

	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render("Mesh vs Clos"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Switches:    %s\n", widgets.DeltaBadge(float64(d.SwitchDelta), "%.0f")))
	sb.WriteString(fmt.Sprintf("  Cables:      %s\n", widgets.DeltaBadge(float64(d.CableDelta), "%.0f")))
	sb.WriteString(fmt.Sprintf("  Power:       %s\n", widgets.DeltaBadge(d.PowerDeltaW, "%.0f W")))
	sb.WriteString(fmt.Sprintf("  Power/port:  %s\n", widgets.DeltaBadge(d.PowerPerPortDeltaW, "%.2f W")))
	sb.WriteString(fmt.Sprintf("  Avg hops:    %s\n", widgets.DeltaBadge(d.AvgHopsDelta, "%.2f")))
	return sb.String()
}

func (c *Comparison) renderPreferred() string {
	switch c.result.Delta.Preferred {
	case models.DesignClos:
		return widgets.StatusText("Preferred: Clos (lower total power)", widgets.StatusOK)
	case models.DesignMesh:
		return widgets.StatusText("Preferred: Full Mesh (lower total power)", widgets.StatusOK)
	default:
		return widgets.StatusText("Neither design can serve this configuration", widgets.StatusCritical)
	}
}
