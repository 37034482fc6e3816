// ABOUTME: Tests for the full-mesh sizing calculator
// ABOUTME: Covers minimal switch search, fabric-ratio floor, hop blend, and infeasible inputs

package services

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/markalston/fabric-capacity-analyzer/backend/models"
)

func meshConfig(radix int, ratio float64) models.NetworkConfig {
	cfg := models.DefaultNetworkConfig()
	cfg.Radix = radix
	cfg.MeshFabricRatio = ratio
	return cfg
}

func TestMeshSize_MinimalSwitchCount(t *testing.T) {
	// radix 64, ratio 1.0: 32 fabric ports minimum
	// 33 switches: 32 peers × 1 link, 32 user ports, capacity 1056
	result := NewMeshSizer().Size(meshConfig(64, 1.0), 1024)

	if !result.Possible {
		t.Fatalf("Expected possible result, got details %q", result.Details)
	}
	if result.TotalSwitches != 33 {
		t.Errorf("Expected TotalSwitches 33, got %d", result.TotalSwitches)
	}
	if result.TotalCables != 528 {
		t.Errorf("Expected TotalCables 528, got %d", result.TotalCables)
	}
	if result.UserCapacity != 1056 {
		t.Errorf("Expected UserCapacity 1056, got %d", result.UserCapacity)
	}
	if result.MaxHops != 2 {
		t.Errorf("Expected MaxHops 2, got %d", result.MaxHops)
	}

	// 33 × 450 W + 528 cables × 5 W × 2 plugs
	if result.TotalPower != 20130 {
		t.Errorf("Expected TotalPower 20130, got %v", result.TotalPower)
	}

	fm, ok := result.SwitchConfig.(models.FullMesh)
	if !ok {
		t.Fatalf("Expected FullMesh, got %T", result.SwitchConfig)
	}
	if fm.MeshSwitches != 33 || fm.UserPortsPerSwitch != 32 {
		t.Errorf("Expected 33 switches / 32 user ports, got %+v", fm)
	}

	// No smaller mesh honoring the ratio reaches the target
	minFabric := MinFabricPorts(64, 1.0)
	for s := 2; s < 33; s++ {
		peers := s - 1
		lpp := max(1, ceilDiv(minFabric, peers))
		if capacity := s * (64 - lpp*peers); capacity >= 1024 {
			t.Errorf("Expected %d switches to fall short of 1024, got capacity %d", s, capacity)
		}
	}
}

func TestMeshSize_LinkAggregation(t *testing.T) {
	// Two switches need all 32 fabric ports on the single peer
	result := NewMeshSizer().Size(meshConfig(64, 1.0), 64)

	if result.TotalSwitches != 2 {
		t.Errorf("Expected TotalSwitches 2, got %d", result.TotalSwitches)
	}
	if result.TotalCables != 32 {
		t.Errorf("Expected TotalCables 32, got %d", result.TotalCables)
	}
	if result.UserCapacity != 64 {
		t.Errorf("Expected UserCapacity 64, got %d", result.UserCapacity)
	}
}

func TestMeshSize_TargetDefaultsToNumUsers(t *testing.T) {
	cfg := meshConfig(64, 1.0)
	cfg.NumUsers = 64

	implicit := NewMeshSizer().Size(cfg)
	explicit := NewMeshSizer().Size(cfg, 1024)

	if implicit.TotalSwitches != 2 {
		t.Errorf("Expected NumUsers target to give 2 switches, got %d", implicit.TotalSwitches)
	}
	if explicit.TotalSwitches != 33 {
		t.Errorf("Expected explicit target to give 33 switches, got %d", explicit.TotalSwitches)
	}
}

func TestMeshSize_HopBlend(t *testing.T) {
	tests := []struct {
		oneHop float64
		want   float64
	}{
		{100, 1.0},
		{80, 1.2},
		{50, 1.5},
		{0, 2.0},
		{33.3, 1.67},
	}

	for _, tt := range tests {
		cfg := meshConfig(64, 1.0)
		cfg.MeshOneHopTraffic = tt.oneHop
		result := NewMeshSizer().Size(cfg, 1024)
		if result.AvgHops != tt.want {
			t.Errorf("one-hop %v%%: expected AvgHops %v, got %v", tt.oneHop, tt.want, result.AvgHops)
		}
	}
}

func TestMeshSize_FabricRatioFloor(t *testing.T) {
	sizer := NewMeshSizer()

	for _, ratio := range []float64{0.25, 0.5, 1.0, 1.5, 3.0, 63, 1e6, 1e308} {
		for _, target := range []int{16, 100, 256, 500, 1000} {
			cfg := meshConfig(64, ratio)
			result := sizer.Size(cfg, target)
			if !result.Possible {
				continue
			}
			if result.UserCapacity < target {
				t.Errorf("ratio %v target %d: capacity %d below target", ratio, target, result.UserCapacity)
			}
			fm := result.SwitchConfig.(models.FullMesh)
			fabric := cfg.Radix - fm.UserPortsPerSwitch
			if float64(fabric) < ratio*float64(fm.UserPortsPerSwitch)-ratioEpsilon {
				t.Errorf("ratio %v target %d: %d fabric / %d user ports is under the ratio",
					ratio, target, fabric, fm.UserPortsPerSwitch)
			}
		}
	}
}

func TestMeshSize_Infeasible(t *testing.T) {
	tests := []struct {
		name     string
		cfg      models.NetworkConfig
		target   int
		contains string
	}{
		{
			name:     "capacity beyond any mesh",
			cfg:      meshConfig(64, 1.0),
			target:   5000,
			contains: "cannot reach 5000 user ports with radix 64 at fabric ratio 1.00",
		},
		{
			name:     "ratio leaves no user ports",
			cfg:      meshConfig(64, 1000),
			target:   10,
			contains: "cannot reach 10 user ports",
		},
		{
			name:     "ratio too large to leave a user port",
			cfg:      meshConfig(64, 1e308),
			target:   100,
			contains: "cannot reach 100 user ports",
		},
		{
			name:     "infinite ratio",
			cfg:      meshConfig(64, math.Inf(1)),
			target:   100,
			contains: "invalid configuration",
		},
		{
			name:     "NaN ratio",
			cfg:      meshConfig(64, math.NaN()),
			target:   100,
			contains: "invalid configuration",
		},
		{
			name:     "target at the integer limit",
			cfg:      meshConfig(64, 1.0),
			target:   math.MaxInt,
			contains: "cannot reach",
		},
		{
			name:     "zero ratio",
			cfg:      meshConfig(64, 0),
			target:   100,
			contains: "invalid configuration",
		},
		{
			name:     "zero target",
			cfg:      meshConfig(64, 1.0),
			target:   0,
			contains: "target capacity must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewMeshSizer().Size(tt.cfg, tt.target)
			if result.Possible {
				t.Fatal("Expected infeasible result")
			}
			if !strings.Contains(result.Details, tt.contains) {
				t.Errorf("Expected details containing %q, got %q", tt.contains, result.Details)
			}
			assertZeroed(t, result)
		})
	}
}

func TestMeshSize_InvalidHopPercentage(t *testing.T) {
	cfg := meshConfig(64, 1.0)
	cfg.MeshOneHopTraffic = 120

	result := NewMeshSizer().Size(cfg, 100)
	if result.Possible {
		t.Error("Expected one-hop traffic above 100% to be rejected")
	}
}

func TestMinFabricPorts(t *testing.T) {
	tests := []struct {
		radix int
		ratio float64
		want  int
	}{
		{64, 1.0, 32},
		{64, 3.0, 48},
		{64, 0.5, 22},
		{48, 2.0, 32},
		{10, 1.0 / 3.0, 3},
		{64, 1e308, 64},
		{64, math.Inf(1), 64},
		{64, math.NaN(), 64},
	}

	for _, tt := range tests {
		if got := MinFabricPorts(tt.radix, tt.ratio); got != tt.want {
			t.Errorf("MinFabricPorts(%d, %v) = %d, want %d", tt.radix, tt.ratio, got, tt.want)
		}
	}
}

func TestMeshSize_Deterministic(t *testing.T) {
	cfg := meshConfig(64, 1.0)
	cfg.MeshOneHopTraffic = 37.5

	sizer := NewMeshSizer()
	for _, target := range []int{1, 100, 2048} {
		first := sizer.Size(cfg, target)
		second := sizer.Size(cfg, target)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("target %d: Size is not deterministic:\n%+v\n%+v", target, first, second)
		}
	}
}

func TestMeshSize_PowerOutOfRange(t *testing.T) {
	cfg := meshConfig(64, 1.0)
	cfg.CablePowerMesh = math.MaxFloat64

	result := NewMeshSizer().Size(cfg, 100)
	if result.Possible {
		t.Fatalf("Expected infeasible result, got %+v", result)
	}
	if !strings.Contains(result.Details, "total power exceeds") {
		t.Errorf("Expected power reason, got %q", result.Details)
	}
	assertZeroed(t, result)
}
