// ABOUTME: Output model shared by the Clos and mesh calculators
// ABOUTME: SwitchConfig is a closed tagged union encoded with a "kind" discriminator

package models

import (
	"encoding/json"
	"fmt"
)

// SwitchConfigKind identifies a SwitchConfig variant on the wire.
type SwitchConfigKind string

const (
	KindTwoTierClos   SwitchConfigKind = "clos_2tier"
	KindThreeTierClos SwitchConfigKind = "clos_3tier"
	KindFullMesh      SwitchConfigKind = "mesh"
)

// SwitchConfig is the per-design switch breakdown. The only implementations are
// TwoTierClos, ThreeTierClos and FullMesh; callers type-switch on them.
type SwitchConfig interface {
	Kind() SwitchConfigKind
	switchConfig()
}

// TwoTierClos is a leaf-spine layout.
type TwoTierClos struct {
	Leafs              int
	Spines             int
	UserPortsPerSwitch int
}

// ThreeTierClos is a leaf-aggregation-core layout.
type ThreeTierClos struct {
	Leafs              int
	Aggregation        int
	Core               int
	UserPortsPerSwitch int
}

// FullMesh is a direct-connect layout where every switch peers with every other.
type FullMesh struct {
	MeshSwitches       int
	UserPortsPerSwitch int
}

func (TwoTierClos) Kind() SwitchConfigKind   { return KindTwoTierClos }
func (ThreeTierClos) Kind() SwitchConfigKind { return KindThreeTierClos }
func (FullMesh) Kind() SwitchConfigKind      { return KindFullMesh }

func (TwoTierClos) switchConfig()   {}
func (ThreeTierClos) switchConfig() {}
func (FullMesh) switchConfig()      {}

// TopologyMetrics is the sizing result for one fabric design.
// When Possible is false every numeric field is zero, SwitchConfig is nil,
// and Details carries the reason.
type TopologyMetrics struct {
	Name          string       `json:"name"`
	TotalSwitches int          `json:"total_switches"`
	TotalCables   int          `json:"total_cables"` // Fabric cables only
	AvgHops       float64      `json:"avg_hops"`
	MaxHops       int          `json:"max_hops"`
	TotalPower    float64      `json:"total_power"` // Watts
	UserCapacity  int          `json:"user_capacity"`
	Details       string       `json:"details"`
	Possible      bool         `json:"possible"`
	SwitchConfig  SwitchConfig `json:"-"`
}

// Infeasible builds a result for a design that cannot meet the request.
func Infeasible(name, reason string) TopologyMetrics {
	return TopologyMetrics{
		Name:    name,
		Details: reason,
	}
}

// PowerPerPort returns watts per achieved user port, or 0 for infeasible results.
func (m TopologyMetrics) PowerPerPort() float64 {
	if !m.Possible || m.UserCapacity == 0 {
		return 0
	}
	return m.TotalPower / float64(m.UserCapacity)
}

// switchConfigWire is the flattened JSON shape of every SwitchConfig variant.
// The 3-tier aggregation count travels in "spines".
type switchConfigWire struct {
	Kind               SwitchConfigKind `json:"kind"`
	Leafs              int              `json:"leafs,omitempty"`
	Spines             int              `json:"spines,omitempty"`
	Core               int              `json:"core,omitempty"`
	MeshSwitches       int              `json:"mesh_switches,omitempty"`
	UserPortsPerSwitch int              `json:"user_ports_per_switch"`
}

func encodeSwitchConfig(sc SwitchConfig) *switchConfigWire {
	switch v := sc.(type) {
	case TwoTierClos:
		return &switchConfigWire{Kind: KindTwoTierClos, Leafs: v.Leafs, Spines: v.Spines, UserPortsPerSwitch: v.UserPortsPerSwitch}
	case ThreeTierClos:
		return &switchConfigWire{Kind: KindThreeTierClos, Leafs: v.Leafs, Spines: v.Aggregation, Core: v.Core, UserPortsPerSwitch: v.UserPortsPerSwitch}
	case FullMesh:
		return &switchConfigWire{Kind: KindFullMesh, MeshSwitches: v.MeshSwitches, UserPortsPerSwitch: v.UserPortsPerSwitch}
	default:
		return nil
	}
}

func decodeSwitchConfig(w *switchConfigWire) (SwitchConfig, error) {
	if w == nil {
		return nil, nil
	}
	switch w.Kind {
	case KindTwoTierClos:
		return TwoTierClos{Leafs: w.Leafs, Spines: w.Spines, UserPortsPerSwitch: w.UserPortsPerSwitch}, nil
	case KindThreeTierClos:
		return ThreeTierClos{Leafs: w.Leafs, Aggregation: w.Spines, Core: w.Core, UserPortsPerSwitch: w.UserPortsPerSwitch}, nil
	case KindFullMesh:
		return FullMesh{MeshSwitches: w.MeshSwitches, UserPortsPerSwitch: w.UserPortsPerSwitch}, nil
	default:
		return nil, fmt.Errorf("unknown switch config kind %q", w.Kind)
	}
}

// MarshalJSON encodes the metrics with switch_config as a tagged object (null when infeasible).
func (m TopologyMetrics) MarshalJSON() ([]byte, error) {
	type alias TopologyMetrics
	return json.Marshal(struct {
		alias
		SwitchConfig *switchConfigWire `json:"switch_config"`
	}{
		alias:        alias(m),
		SwitchConfig: encodeSwitchConfig(m.SwitchConfig),
	})
}

// UnmarshalJSON restores the concrete SwitchConfig variant from its kind.
func (m *TopologyMetrics) UnmarshalJSON(data []byte) error {
	type alias TopologyMetrics
	aux := struct {
		*alias
		SwitchConfig *switchConfigWire `json:"switch_config"`
	}{
		alias: (*alias)(m),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	sc, err := decodeSwitchConfig(aux.SwitchConfig)
	if err != nil {
		return err
	}
	m.SwitchConfig = sc
	return nil
}
