// ABOUTME: Tests for NetworkConfig validation and cache keys
// ABOUTME: Covers per-calculator field checks and duplicate suppression

package models

import (
	"math"
	"strings"
	"testing"
)

func TestDefaultNetworkConfig_IsValid(t *testing.T) {
	if err := DefaultNetworkConfig().Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

func TestValidateClos(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*NetworkConfig)
		wantErr string
	}{
		{"zero users", func(c *NetworkConfig) { c.NumUsers = 0 }, "num_users"},
		{"radix one", func(c *NetworkConfig) { c.Radix = 1 }, "radix"},
		{"negative switch power", func(c *NetworkConfig) { c.PowerPerSwitch = -1 }, "power_per_switch"},
		{"negative clos plug power", func(c *NetworkConfig) { c.CablePowerClos = -0.5 }, "cable_power_clos"},
		{"radix above bound", func(c *NetworkConfig) { c.Radix = MaxRadix + 1 }, "radix must be at most"},
		{"NaN switch power", func(c *NetworkConfig) { c.PowerPerSwitch = math.NaN() }, "power_per_switch must be a finite number"},
		{"infinite switch power", func(c *NetworkConfig) { c.PowerPerSwitch = math.Inf(1) }, "power_per_switch must be a finite number"},
		{"negative infinite clos plug power", func(c *NetworkConfig) { c.CablePowerClos = math.Inf(-1) }, "cable_power_clos must be a finite number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultNetworkConfig()
			tt.modify(&cfg)
			err := cfg.ValidateClos()
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateClos_IgnoresMeshFields(t *testing.T) {
	cfg := DefaultNetworkConfig()
	cfg.MeshFabricRatio = 0
	cfg.MeshOneHopTraffic = 150

	if err := cfg.ValidateClos(); err != nil {
		t.Errorf("Expected mesh-only fields to be ignored, got %v", err)
	}
}

func TestValidateMesh(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*NetworkConfig)
		wantErr string
	}{
		{"zero ratio", func(c *NetworkConfig) { c.MeshFabricRatio = 0 }, "mesh_fabric_ratio"},
		{"negative ratio", func(c *NetworkConfig) { c.MeshFabricRatio = -2 }, "mesh_fabric_ratio"},
		{"one hop above 100", func(c *NetworkConfig) { c.MeshOneHopTraffic = 101 }, "mesh_one_hop_traffic"},
		{"one hop below 0", func(c *NetworkConfig) { c.MeshOneHopTraffic = -1 }, "mesh_one_hop_traffic"},
		{"negative mesh plug power", func(c *NetworkConfig) { c.CablePowerMesh = -3 }, "cable_power_mesh"},
		{"NaN mesh plug power", func(c *NetworkConfig) { c.CablePowerMesh = math.NaN() }, "cable_power_mesh must be a finite number"},
		{"NaN ratio", func(c *NetworkConfig) { c.MeshFabricRatio = math.NaN() }, "mesh_fabric_ratio must be a finite number"},
		{"infinite ratio", func(c *NetworkConfig) { c.MeshFabricRatio = math.Inf(1) }, "mesh_fabric_ratio must be a finite number"},
		{"NaN one hop", func(c *NetworkConfig) { c.MeshOneHopTraffic = math.NaN() }, "mesh_one_hop_traffic"},
		{"infinite one hop", func(c *NetworkConfig) { c.MeshOneHopTraffic = math.Inf(1) }, "mesh_one_hop_traffic"},
		{"radix above bound", func(c *NetworkConfig) { c.Radix = MaxRadix + 1 }, "radix must be at most"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultNetworkConfig()
			tt.modify(&cfg)
			err := cfg.ValidateMesh()
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_ReportsSharedFieldOnce(t *testing.T) {
	cfg := DefaultNetworkConfig()
	cfg.Radix = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if n := strings.Count(err.Error(), "radix must be"); n != 1 {
		t.Errorf("Expected radix reported once, got %d times: %v", n, err)
	}
}

func TestCacheKey_DistinguishesConfigs(t *testing.T) {
	a := DefaultNetworkConfig()
	b := DefaultNetworkConfig()
	if a.CacheKey() != b.CacheKey() {
		t.Error("Expected identical configs to share a cache key")
	}

	b.MeshOneHopTraffic = 50
	if a.CacheKey() == b.CacheKey() {
		t.Error("Expected different configs to have different cache keys")
	}
}
