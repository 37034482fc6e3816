// ABOUTME: Fabric comparator running the Clos and mesh calculators at equal scale
// ABOUTME: Computes mesh-minus-Clos deltas and trade-off warnings

package services

import (
	"fmt"

	"github.com/markalston/fabric-capacity-analyzer/backend/models"
)

// meshOvershootPct flags meshes whose achieved capacity exceeds the target by this much
const meshOvershootPct = 25

// FabricComparator sizes both designs and compares them
type FabricComparator struct {
	clos *ClosSizer
	mesh *MeshSizer
}

// NewFabricComparator creates a comparator with fresh calculators
func NewFabricComparator() *FabricComparator {
	return &FabricComparator{
		clos: NewClosSizer(),
		mesh: NewMeshSizer(),
	}
}

// Compare sizes the Clos fabric first, then asks the mesh to match the capacity Clos achieved.
// When Clos is infeasible the mesh is sized against the requested user count instead.
func (c *FabricComparator) Compare(cfg models.NetworkConfig) models.FabricComparison {
	clos := c.clos.Size(cfg)

	target := cfg.NumUsers
	if clos.Possible {
		target = clos.UserCapacity
	}
	mesh := c.mesh.Size(cfg, target)

	return models.FabricComparison{
		Config:         cfg,
		TargetCapacity: target,
		Clos:           clos,
		Mesh:           mesh,
		Delta:          computeDelta(clos, mesh),
		Warnings:       c.GenerateWarnings(cfg, clos, mesh, target),
	}
}

// computeDelta returns mesh-minus-Clos figures; only Preferred is set unless both designs are possible
func computeDelta(clos, mesh models.TopologyMetrics) models.ComparisonDelta {
	delta := models.ComparisonDelta{Preferred: models.DesignNone}

	switch {
	case clos.Possible && mesh.Possible:
		delta.SwitchDelta = mesh.TotalSwitches - clos.TotalSwitches
		delta.CableDelta = mesh.TotalCables - clos.TotalCables
		delta.PowerDeltaW = mesh.TotalPower - clos.TotalPower
		delta.PowerPerPortDeltaW = mesh.PowerPerPort() - clos.PowerPerPort()
		delta.AvgHopsDelta = roundHops(mesh.AvgHops - clos.AvgHops)
		if mesh.TotalPower < clos.TotalPower {
			delta.Preferred = models.DesignMesh
		} else {
			delta.Preferred = models.DesignClos
		}
	case clos.Possible:
		delta.Preferred = models.DesignClos
	case mesh.Possible:
		delta.Preferred = models.DesignMesh
	}

	return delta
}

// GenerateWarnings produces feasibility and trade-off warnings for a comparison
func (c *FabricComparator) GenerateWarnings(cfg models.NetworkConfig, clos, mesh models.TopologyMetrics, target int) []models.ComparisonWarning {
	warnings := []models.ComparisonWarning{}

	if !clos.Possible {
		warnings = append(warnings, models.ComparisonWarning{
			Severity: models.SeverityCritical,
			Design:   models.DesignClos,
			Message:  "Clos fabric not possible: " + clos.Details,
		})
	}
	if !mesh.Possible {
		warnings = append(warnings, models.ComparisonWarning{
			Severity: models.SeverityCritical,
			Design:   models.DesignMesh,
			Message:  "Full mesh not possible: " + mesh.Details,
		})
	}

	if _, ok := clos.SwitchConfig.(models.ThreeTierClos); ok {
		warnings = append(warnings, models.ComparisonWarning{
			Severity: models.SeverityInfo,
			Design:   models.DesignClos,
			Message:  fmt.Sprintf("Leaf count exceeds radix %d, 3-tier fabric required", cfg.Radix),
		})
	}

	if fm, ok := mesh.SwitchConfig.(models.FullMesh); ok {
		fabricPorts := cfg.Radix - fm.UserPortsPerSwitch
		if peers := fm.MeshSwitches - 1; peers > 0 && fabricPorts/peers > 1 {
			warnings = append(warnings, models.ComparisonWarning{
				Severity: models.SeverityInfo,
				Design:   models.DesignMesh,
				Message:  fmt.Sprintf("Mesh peers use %d-link aggregation groups", fabricPorts/peers),
			})
		}
		if target > 0 && mesh.UserCapacity*100 > target*(100+meshOvershootPct) {
			warnings = append(warnings, models.ComparisonWarning{
				Severity: models.SeverityWarning,
				Design:   models.DesignMesh,
				Message: fmt.Sprintf("Mesh overshoots target capacity: %d ports for %d requested",
					mesh.UserCapacity, target),
			})
		}
	}

	if clos.Possible && mesh.Possible && mesh.TotalSwitches > clos.TotalSwitches {
		warnings = append(warnings, models.ComparisonWarning{
			Severity: models.SeverityWarning,
			Design:   models.DesignMesh,
			Message: fmt.Sprintf("Mesh needs %d more switches than Clos at equal capacity",
				mesh.TotalSwitches-clos.TotalSwitches),
		})
	}

	return warnings
}
