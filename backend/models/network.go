// ABOUTME: Input model for fabric sizing shared by the Clos and mesh calculators
// ABOUTME: Carries port, power, and mesh traffic assumptions with field validation

package models

import (
	"errors"
	"fmt"
	"math"
)

// MaxRadix bounds the port count per switch so every sizing product stays inside int range.
const MaxRadix = 1 << 16

// NetworkConfig describes the requested fabric scale and the hardware assumptions
// used by both sizing calculators.
type NetworkConfig struct {
	NumUsers          int     `json:"num_users" yaml:"num_users"`                       // Requested user-facing ports
	Radix             int     `json:"radix" yaml:"radix"`                               // Ports per switch ASIC
	PowerPerSwitch    float64 `json:"power_per_switch" yaml:"power_per_switch"`         // Watts per switch chassis
	CablePowerClos    float64 `json:"cable_power_clos" yaml:"cable_power_clos"`         // Watts per optical plug (Clos)
	CablePowerMesh    float64 `json:"cable_power_mesh" yaml:"cable_power_mesh"`         // Watts per optical plug (mesh)
	MeshFabricRatio   float64 `json:"mesh_fabric_ratio" yaml:"mesh_fabric_ratio"`       // Min fabric:user ports per mesh switch
	MeshOneHopTraffic float64 `json:"mesh_one_hop_traffic" yaml:"mesh_one_hop_traffic"` // Percent of mesh traffic on a direct link
}

// DefaultNetworkConfig returns a 64-port, 1024-user baseline.
func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		NumUsers:          1024,
		Radix:             64,
		PowerPerSwitch:    450,
		CablePowerClos:    3.5,
		CablePowerMesh:    5,
		MeshFabricRatio:   1.0,
		MeshOneHopTraffic: 80,
	}
}

// ValidateClos checks the fields the Clos calculator depends on.
func (c NetworkConfig) ValidateClos() error {
	var errs []error
	if c.NumUsers < 1 {
		errs = append(errs, fmt.Errorf("num_users must be at least 1, got %d", c.NumUsers))
	}
	errs = appendRadixErr(errs, c.Radix)
	errs = appendNonNegativeErr(errs, "power_per_switch", c.PowerPerSwitch)
	errs = appendNonNegativeErr(errs, "cable_power_clos", c.CablePowerClos)
	return errors.Join(errs...)
}

// ValidateMesh checks the fields the mesh calculator depends on.
// NumUsers is not checked here because the mesh target can be supplied separately.
func (c NetworkConfig) ValidateMesh() error {
	var errs []error
	errs = appendRadixErr(errs, c.Radix)
	errs = appendNonNegativeErr(errs, "power_per_switch", c.PowerPerSwitch)
	errs = appendNonNegativeErr(errs, "cable_power_mesh", c.CablePowerMesh)
	switch {
	case !isFinite(c.MeshFabricRatio):
		errs = append(errs, fmt.Errorf("mesh_fabric_ratio must be a finite number, got %g", c.MeshFabricRatio))
	case c.MeshFabricRatio <= 0:
		errs = append(errs, fmt.Errorf("mesh_fabric_ratio must be positive, got %g", c.MeshFabricRatio))
	}
	// NaN fails both comparisons, so test the in-range condition rather than its negation
	if !(c.MeshOneHopTraffic >= 0 && c.MeshOneHopTraffic <= 100) {
		errs = append(errs, fmt.Errorf("mesh_one_hop_traffic must be between 0 and 100, got %g", c.MeshOneHopTraffic))
	}
	return errors.Join(errs...)
}

// Validate checks every field. Returns nil when the config is usable by both calculators.
func (c NetworkConfig) Validate() error {
	closErr := c.ValidateClos()
	meshErr := c.ValidateMesh()
	if closErr == nil && meshErr == nil {
		return nil
	}
	// radix and power_per_switch are checked by both; report each problem once
	seen := make(map[string]bool)
	var errs []error
	for _, err := range []error{closErr, meshErr} {
		if err == nil {
			continue
		}
		for _, e := range unwrapAll(err) {
			if !seen[e.Error()] {
				seen[e.Error()] = true
				errs = append(errs, e)
			}
		}
	}
	return errors.Join(errs...)
}

// CacheKey returns a stable identifier for memoizing results computed from this config.
func (c NetworkConfig) CacheKey() string {
	return fmt.Sprintf("u=%d|r=%d|psw=%g|pc=%g|pm=%g|ratio=%g|hop=%g",
		c.NumUsers, c.Radix, c.PowerPerSwitch, c.CablePowerClos, c.CablePowerMesh,
		c.MeshFabricRatio, c.MeshOneHopTraffic)
}

func appendRadixErr(errs []error, radix int) []error {
	switch {
	case radix < 2:
		return append(errs, fmt.Errorf("radix must be at least 2, got %d", radix))
	case radix > MaxRadix:
		return append(errs, fmt.Errorf("radix must be at most %d, got %d", MaxRadix, radix))
	}
	return errs
}

func appendNonNegativeErr(errs []error, field string, v float64) []error {
	switch {
	case !isFinite(v):
		return append(errs, fmt.Errorf("%s must be a finite number, got %g", field, v))
	case v < 0:
		return append(errs, fmt.Errorf("%s cannot be negative, got %g", field, v))
	}
	return errs
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func unwrapAll(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
