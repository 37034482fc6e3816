// ABOUTME: Folded-Clos (fat-tree) fabric sizing calculator
// ABOUTME: Chooses leaf-spine or leaf-aggregation-core and sizes each tier non-blocking

package services

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/markalston/fabric-capacity-analyzer/backend/models"
)

const (
	closName        = "Clos"
	closTwoTierName = "2-Tier Clos (Leaf-Spine)"
	closThreeTier   = "3-Tier Clos (Leaf-Agg-Core)"

	closTwoTierMaxHops   = 2
	closThreeTierMaxHops = 4

	powerOverflowReason = "total power exceeds the representable range; check power_per_switch and cable power"
)

// ClosSizer computes switch, cable, power and hop figures for a folded-Clos fabric
type ClosSizer struct{}

// NewClosSizer creates a new Clos calculator
func NewClosSizer() *ClosSizer {
	return &ClosSizer{}
}

// Size dimensions the smallest non-blocking Clos fabric that serves cfg.NumUsers ports.
// Infeasible requests are reported through Possible=false, never as an error.
func (s *ClosSizer) Size(cfg models.NetworkConfig) models.TopologyMetrics {
	userPortsPerLeaf := cfg.Radix / 2
	if userPortsPerLeaf == 0 {
		return models.Infeasible(closName, fmt.Sprintf("radix too small: %d ports cannot split into user and uplink halves", cfg.Radix))
	}
	if err := cfg.ValidateClos(); err != nil {
		return models.Infeasible(closName, fmt.Sprintf("invalid configuration: %v", err))
	}

	// Checked before tier selection so no later product can overflow
	if maxUsers := MaxThreeTierUsers(cfg.Radix); cfg.NumUsers > maxUsers {
		return models.Infeasible(closName, fmt.Sprintf(
			"requires more than 3 tiers: %d users exceeds the 3-tier limit of %d for radix %d",
			cfg.NumUsers, maxUsers, cfg.Radix))
	}

	numLeafs := ceilDiv(cfg.NumUsers, userPortsPerLeaf)
	userCapacity := numLeafs * userPortsPerLeaf

	var result models.TopologyMetrics
	if numLeafs <= cfg.Radix {
		result = s.twoTier(cfg, numLeafs, userPortsPerLeaf, userCapacity)
	} else {
		result = s.threeTier(cfg, numLeafs, userPortsPerLeaf, userCapacity)
	}
	if math.IsInf(result.TotalPower, 0) {
		return models.Infeasible(closName, powerOverflowReason)
	}
	return result
}

// twoTier sizes a leaf-spine fabric; a single spine can terminate one uplink from every leaf
func (s *ClosSizer) twoTier(cfg models.NetworkConfig, numLeafs, userPortsPerLeaf, userCapacity int) models.TopologyMetrics {
	// Non-blocking: each leaf uplinks as many ports as it serves
	totalUplinks := numLeafs * userPortsPerLeaf
	numSpines := ceilDiv(totalUplinks, cfg.Radix)
	totalSwitches := numLeafs + numSpines
	fabricCables := totalUplinks

	slog.Debug("Clos sized as 2-tier",
		"leafs", numLeafs,
		"spines", numSpines,
		"cables", fabricCables,
	)

	return models.TopologyMetrics{
		Name:          closTwoTierName,
		TotalSwitches: totalSwitches,
		TotalCables:   fabricCables,
		AvgHops:       closTwoTierMaxHops,
		MaxHops:       closTwoTierMaxHops,
		TotalPower:    closPower(cfg, totalSwitches, fabricCables),
		UserCapacity:  userCapacity,
		Details: fmt.Sprintf("%d leafs x %d user ports, %d spines, %d fabric cables",
			numLeafs, userPortsPerLeaf, numSpines, fabricCables),
		Possible: true,
		SwitchConfig: models.TwoTierClos{
			Leafs:              numLeafs,
			Spines:             numSpines,
			UserPortsPerSwitch: userPortsPerLeaf,
		},
	}
}

// threeTier sizes a leaf-aggregation-core fabric; Size has already enforced the 3-tier ceiling
func (s *ClosSizer) threeTier(cfg models.NetworkConfig, numLeafs, userPortsPerLeaf, userCapacity int) models.TopologyMetrics {
	half := cfg.Radix / 2

	// One aggregation switch per leaf; half its ports face down, half face the core
	numAgg := numLeafs
	totalAggUplinks := numAgg * half
	numCore := ceilDiv(totalAggUplinks, cfg.Radix)
	totalSwitches := numLeafs + numAgg + numCore

	leafAggCables := numLeafs * userPortsPerLeaf
	fabricCables := leafAggCables + totalAggUplinks

	avgHops := threeTierAvgHops(numLeafs, half)

	slog.Debug("Clos sized as 3-tier",
		"leafs", numLeafs,
		"aggregation", numAgg,
		"core", numCore,
		"cables", fabricCables,
		"avg_hops", avgHops,
	)

	return models.TopologyMetrics{
		Name:          closThreeTier,
		TotalSwitches: totalSwitches,
		TotalCables:   fabricCables,
		AvgHops:       avgHops,
		MaxHops:       closThreeTierMaxHops,
		TotalPower:    closPower(cfg, totalSwitches, fabricCables),
		UserCapacity:  userCapacity,
		Details: fmt.Sprintf("%d leafs x %d user ports, %d aggregation, %d core, %d fabric cables",
			numLeafs, userPortsPerLeaf, numAgg, numCore, fabricCables),
		Possible: true,
		SwitchConfig: models.ThreeTierClos{
			Leafs:              numLeafs,
			Aggregation:        numAgg,
			Core:               numCore,
			UserPortsPerSwitch: userPortsPerLeaf,
		},
	}
}

// MaxThreeTierUsers is the largest user count a 3-tier fabric of the given radix supports.
// Radixes whose ceiling exceeds the int range saturate at math.MaxInt.
func MaxThreeTierUsers(radix int) int {
	half := radix / 2
	if half <= 0 {
		return 0
	}
	if half > math.MaxInt/half || half*half > math.MaxInt/radix {
		return math.MaxInt
	}
	return half * half * radix
}

// threeTierAvgHops models traffic spread evenly over every other leaf.
// Leaves in the same pod are 2 hops away (leaf-agg-leaf), the rest 4 (leaf-agg-core-agg-leaf).
// Same-switch traffic is excluded, so a single leaf yields 0.
func threeTierAvgHops(numLeafs, leavesPerPod int) float64 {
	remoteLeaves := numLeafs - 1
	if remoteLeaves <= 0 {
		return 0
	}
	if leavesPerPod > numLeafs {
		leavesPerPod = numLeafs
	}

	intraPod := max(0, leavesPerPod-1)
	interPod := max(0, numLeafs-leavesPerPod)

	avg := float64(intraPod)/float64(remoteLeaves)*2 + float64(interPod)/float64(remoteLeaves)*4
	return roundHops(avg)
}

// closPower counts every switch plus two powered plugs per fabric cable
func closPower(cfg models.NetworkConfig, switches, cables int) float64 {
	return float64(switches)*cfg.PowerPerSwitch + float64(cables)*cfg.CablePowerClos*2
}

// roundHops rounds to two decimal places so results are reproducible in equality checks
func roundHops(v float64) float64 {
	return math.Round(v*100) / 100
}

// ceilDiv returns ceil(a/b) for non-negative a and positive b without overflowing near math.MaxInt
func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}
