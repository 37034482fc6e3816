// ABOUTME: Shared network configuration flags for sizing commands
// ABOUTME: Resolves a NetworkConfig from defaults, an optional preset, and explicit flags

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/markalston/fabric-capacity-analyzer/backend/models"
	"github.com/markalston/fabric-capacity-analyzer/cli/internal/presets"
)

// networkFlags holds flag destinations for every NetworkConfig field
type networkFlags struct {
	presetPath string
	cfg        models.NetworkConfig
}

// addNetworkFlags registers the config flags on cmd, with defaults as the displayed values
func addNetworkFlags(cmd *cobra.Command, nf *networkFlags) {
	d := models.DefaultNetworkConfig()
	f := cmd.Flags()
	f.StringVar(&nf.presetPath, "config", "", "YAML preset file, or the name of a preset in the presets directory")
	f.IntVar(&nf.cfg.NumUsers, "users", d.NumUsers, "Requested user-facing ports")
	f.IntVar(&nf.cfg.Radix, "radix", d.Radix, "Ports per switch")
	f.Float64Var(&nf.cfg.PowerPerSwitch, "power-per-switch", d.PowerPerSwitch, "Watts per switch")
	f.Float64Var(&nf.cfg.CablePowerClos, "cable-power-clos", d.CablePowerClos, "Watts per optical plug in the Clos fabric")
	f.Float64Var(&nf.cfg.CablePowerMesh, "cable-power-mesh", d.CablePowerMesh, "Watts per optical plug in the mesh")
	f.Float64Var(&nf.cfg.MeshFabricRatio, "mesh-fabric-ratio", d.MeshFabricRatio, "Minimum fabric:user port ratio per mesh switch")
	f.Float64Var(&nf.cfg.MeshOneHopTraffic, "mesh-one-hop", d.MeshOneHopTraffic, "Percent of mesh traffic on direct links")
}

// resolve overlays the preset on base, then applies only flags the user set
func (nf *networkFlags) resolve(cmd *cobra.Command, base models.NetworkConfig) (models.NetworkConfig, error) {
	cfg := base
	if nf.presetPath != "" {
		loaded, err := presets.LoadOver(presets.Resolve(nf.presetPath, presets.FindDir(".")), base)
		if err != nil {
			return models.NetworkConfig{}, err
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("users") {
		cfg.NumUsers = nf.cfg.NumUsers
	}
	if f.Changed("radix") {
		cfg.Radix = nf.cfg.Radix
	}
	if f.Changed("power-per-switch") {
		cfg.PowerPerSwitch = nf.cfg.PowerPerSwitch
	}
	if f.Changed("cable-power-clos") {
		cfg.CablePowerClos = nf.cfg.CablePowerClos
	}
	if f.Changed("cable-power-mesh") {
		cfg.CablePowerMesh = nf.cfg.CablePowerMesh
	}
	if f.Changed("mesh-fabric-ratio") {
		cfg.MeshFabricRatio = nf.cfg.MeshFabricRatio
	}
	if f.Changed("mesh-one-hop") {
		cfg.MeshOneHopTraffic = nf.cfg.MeshOneHopTraffic
	}
	return cfg, nil
}
