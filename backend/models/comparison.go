// ABOUTME: Data models for side-by-side Clos vs mesh fabric comparison
// ABOUTME: Holds both sizing results, their deltas, and trade-off warnings

package models

// Design labels used in comparison deltas
const (
	DesignClos = "clos"
	DesignMesh = "mesh"
	DesignNone = "none"
)

// Warning severities
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// ComparisonWarning represents a trade-off or feasibility warning
type ComparisonWarning struct {
	Severity string `json:"severity"` // "info", "warning", "critical"
	Design   string `json:"design"`   // "clos", "mesh", or "none" for cross-design notes
	Message  string `json:"message"`
}

// ComparisonDelta holds mesh-minus-Clos differences. Only meaningful when both designs are possible.
type ComparisonDelta struct {
	SwitchDelta        int     `json:"switch_delta"`
	CableDelta         int     `json:"cable_delta"`
	PowerDeltaW        float64 `json:"power_delta_w"`
	PowerPerPortDeltaW float64 `json:"power_per_port_delta_w"`
	AvgHopsDelta       float64 `json:"avg_hops_delta"`
	Preferred          string  `json:"preferred"` // Lower total power among feasible designs
}

// FabricComparison is the full comparison response
type FabricComparison struct {
	Config         NetworkConfig       `json:"config"`
	TargetCapacity int                 `json:"target_capacity"` // Capacity the mesh was sized against
	Clos           TopologyMetrics     `json:"clos"`
	Mesh           TopologyMetrics     `json:"mesh"`
	Delta          ComparisonDelta     `json:"delta"`
	Warnings       []ComparisonWarning `json:"warnings"`
}

// MeshRequest is the body of a standalone mesh sizing call.
// TargetCapacity overrides NumUsers when set, so callers can equalize scale with a Clos result.
type MeshRequest struct {
	NetworkConfig
	TargetCapacity *int `json:"target_capacity,omitempty"`
}
