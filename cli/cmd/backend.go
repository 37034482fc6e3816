// ABOUTME: Fabric calculation backends for CLI commands
// ABOUTME: Chooses between in-process services and the HTTP API client

package cmd

import (
	"context"
	"fmt"

	"github.com/markalston/fabric-capacity-analyzer/backend/models"
	"github.com/markalston/fabric-capacity-analyzer/backend/services"
	"github.com/markalston/fabric-capacity-analyzer/cli/internal/client"
)

// fabricBackend is what compare, sweep and check need from a calculator
type fabricBackend interface {
	Compare(ctx context.Context, cfg models.NetworkConfig) (*models.FabricComparison, error)
	Sweep(ctx context.Context, req models.SweepRequest) (*models.SweepResponse, error)
}

// localBackend runs the sizing services in-process
type localBackend struct {
	comparator *services.FabricComparator
	sweeper    *services.SweepCalculator
}

func newLocalBackend() *localBackend {
	return &localBackend{
		comparator: services.NewFabricComparator(),
		sweeper:    services.NewSweepCalculator(0),
	}
}

func (b *localBackend) Compare(_ context.Context, cfg models.NetworkConfig) (*models.FabricComparison, error) {
	cmp := b.comparator.Compare(cfg)
	return &cmp, nil
}

func (b *localBackend) Sweep(ctx context.Context, req models.SweepRequest) (*models.SweepResponse, error) {
	resp, err := b.sweeper.Sweep(ctx, req)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// baseConfig is the configuration flags and presets overlay: the built-in defaults with --local,
// otherwise the backend's DEFAULT_* values so server-side tuning applies to remote runs.
func baseConfig(ctx context.Context) (models.NetworkConfig, error) {
	if IsLocal() {
		return models.DefaultNetworkConfig(), nil
	}
	remote, err := client.New(GetAPIURL()).Defaults(ctx)
	if err != nil {
		return models.NetworkConfig{}, fmt.Errorf("failed to fetch backend defaults: %w", err)
	}
	return *remote, nil
}

// newBackend returns the in-process backend with --local, the API client otherwise
func newBackend() fabricBackend {
	if IsLocal() {
		return newLocalBackend()
	}
	return client.New(GetAPIURL())
}
