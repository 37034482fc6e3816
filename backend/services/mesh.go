// ABOUTME: Direct-connect full-mesh fabric sizing calculator
// ABOUTME: Searches for the smallest symmetric mesh meeting capacity and fabric-ratio targets

package services

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/markalston/fabric-capacity-analyzer/backend/models"
)

const (
	meshName = "Full Mesh"

	// MaxMeshSwitches bounds the switch-count search; larger meshes are treated as impractical
	MaxMeshSwitches = 500

	// minMeshSwitches is where the search starts; it must stay >= 2 so S-1 is never zero
	minMeshSwitches = 2

	meshMaxHops = 2

	// ratioEpsilon absorbs float error so an exact ratio product does not round up a port
	ratioEpsilon = 1e-9
)

// MeshSizer computes switch, cable, power and hop figures for a full-mesh fabric
type MeshSizer struct{}

// NewMeshSizer creates a new mesh calculator
func NewMeshSizer() *MeshSizer {
	return &MeshSizer{}
}

// meshPlan is an accepted point in the switch-count search
type meshPlan struct {
	switches     int
	linksPerPeer int
	fabricPorts  int
	userPorts    int
}

// Size finds the smallest mesh whose user capacity reaches the target.
// The target defaults to cfg.NumUsers; pass the Clos achieved capacity to compare at equal scale.
// Infeasible requests are reported through Possible=false, never as an error.
func (s *MeshSizer) Size(cfg models.NetworkConfig, targetCapacity ...int) models.TopologyMetrics {
	target := cfg.NumUsers
	if len(targetCapacity) > 0 {
		target = targetCapacity[0]
	}

	if err := cfg.ValidateMesh(); err != nil {
		return models.Infeasible(meshName, fmt.Sprintf("invalid configuration: %v", err))
	}
	if target < 1 {
		return models.Infeasible(meshName, fmt.Sprintf("invalid configuration: target capacity must be at least 1, got %d", target))
	}

	minFabric := MinFabricPorts(cfg.Radix, cfg.MeshFabricRatio)

	plan, ok := s.search(cfg.Radix, minFabric, target)
	if !ok {
		return models.Infeasible(meshName, fmt.Sprintf(
			"cannot reach %d user ports with radix %d at fabric ratio %.2f within %d switches",
			target, cfg.Radix, cfg.MeshFabricRatio, MaxMeshSwitches))
	}

	// Each unordered switch pair contributes linksPerPeer cables
	fabricCables := plan.switches * (plan.switches - 1) / 2 * plan.linksPerPeer
	totalPower := float64(plan.switches)*cfg.PowerPerSwitch + float64(fabricCables)*cfg.CablePowerMesh*2
	if math.IsInf(totalPower, 0) {
		return models.Infeasible(meshName, powerOverflowReason)
	}
	userCapacity := plan.switches * plan.userPorts

	oneHopRatio := cfg.MeshOneHopTraffic / 100
	avgHops := roundHops(oneHopRatio*1 + (1-oneHopRatio)*2)

	slog.Debug("Mesh sized",
		"switches", plan.switches,
		"links_per_peer", plan.linksPerPeer,
		"fabric_ports", plan.fabricPorts,
		"user_ports", plan.userPorts,
		"target", target,
	)

	return models.TopologyMetrics{
		Name:          meshName,
		TotalSwitches: plan.switches,
		TotalCables:   fabricCables,
		AvgHops:       avgHops,
		MaxHops:       meshMaxHops,
		TotalPower:    totalPower,
		UserCapacity:  userCapacity,
		Details: fmt.Sprintf("%d switches, %d link(s) per peer, %d fabric + %d user ports per switch",
			plan.switches, plan.linksPerPeer, plan.fabricPorts, plan.userPorts),
		Possible: true,
		SwitchConfig: models.FullMesh{
			MeshSwitches:       plan.switches,
			UserPortsPerSwitch: plan.userPorts,
		},
	}
}

// search walks switch counts upward and returns the first that meets the target
func (s *MeshSizer) search(radix, minFabric, target int) (meshPlan, bool) {
	for switches := minMeshSwitches; switches <= MaxMeshSwitches; switches++ {
		peers := switches - 1
		if peers < 1 {
			continue
		}

		linksPerPeer := max(1, ceilDiv(minFabric, peers))
		fabricPorts := linksPerPeer * peers
		userPorts := radix - fabricPorts

		if userPorts <= 0 {
			// Single links already exhaust the switch; more peers only make it worse
			if linksPerPeer == 1 {
				slog.Debug("Mesh search stopped, peering consumes every port", "switches", switches, "radix", radix)
				return meshPlan{}, false
			}
			continue
		}

		// Compared per switch so switches*userPorts cannot overflow for huge targets
		if userPorts >= ceilDiv(target, switches) {
			return meshPlan{
				switches:     switches,
				linksPerPeer: linksPerPeer,
				fabricPorts:  fabricPorts,
				userPorts:    userPorts,
			}, true
		}
	}
	return meshPlan{}, false
}

// MinFabricPorts is the smallest fabric-port count f with f/(radix-f) >= ratio.
// Ratios too large to leave a user port saturate at radix.
func MinFabricPorts(radix int, ratio float64) int {
	f := ratio / (1 + ratio) * float64(radix)
	switch {
	case math.IsNaN(f), math.IsInf(f, 0), f >= float64(radix):
		return radix
	case f <= 0:
		return 0
	}
	return int(math.Ceil(f - ratioEpsilon))
}
