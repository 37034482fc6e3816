// ABOUTME: Capacity sweep evaluating both fabric designs across a user-count range
// ABOUTME: Runs comparisons concurrently with a bounded worker pool

package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/markalston/fabric-capacity-analyzer/backend/models"
)

const (
	// MaxSweepPoints caps the number of comparisons a single sweep may request
	MaxSweepPoints = 256

	defaultSweepWorkers = 4
)

// SweepCalculator evaluates comparisons across a capacity range
type SweepCalculator struct {
	comparator *FabricComparator
	workers    int
}

// NewSweepCalculator creates a sweep calculator; workers <= 0 uses the default pool size
func NewSweepCalculator(workers int) *SweepCalculator {
	if workers <= 0 {
		workers = defaultSweepWorkers
	}
	return &SweepCalculator{
		comparator: NewFabricComparator(),
		workers:    workers,
	}
}

// ValidateSweep checks the range parameters of a sweep request
func ValidateSweep(req models.SweepRequest) error {
	if req.From < 1 {
		return fmt.Errorf("from must be at least 1, got %d", req.From)
	}
	if req.To < req.From {
		return fmt.Errorf("to (%d) must not be less than from (%d)", req.To, req.From)
	}
	if req.Step < 1 {
		return fmt.Errorf("step must be at least 1, got %d", req.Step)
	}
	if n := len(sweepUserCounts(req)); n > MaxSweepPoints {
		return fmt.Errorf("sweep of %d points exceeds the limit of %d", n, MaxSweepPoints)
	}
	return nil
}

// sweepUserCounts returns From, From+Step, ... and always ends on To
func sweepUserCounts(req models.SweepRequest) []int {
	// Avoid materializing huge ranges just to reject them
	if (req.To-req.From)/req.Step+1 > MaxSweepPoints+1 {
		return make([]int, MaxSweepPoints+1)
	}
	counts := lo.RangeWithSteps(req.From, req.To, req.Step)
	if len(counts) == 0 || counts[len(counts)-1] != req.To {
		counts = append(counts, req.To)
	}
	return counts
}

// Sweep computes a comparison at every user count in the request, preserving ascending order.
// Returns the first error from validation or context cancellation.
func (s *SweepCalculator) Sweep(ctx context.Context, req models.SweepRequest) (models.SweepResponse, error) {
	if err := ValidateSweep(req); err != nil {
		return models.SweepResponse{}, err
	}

	counts := sweepUserCounts(req)
	points := make([]models.SweepPoint, len(counts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, users := range counts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cfg := req.Config
			cfg.NumUsers = users
			cmp := s.comparator.Compare(cfg)
			points[i] = models.SweepPoint{
				NumUsers: users,
				Clos:     models.NewSeriesValue(cmp.Clos),
				Mesh:     models.NewSeriesValue(cmp.Mesh),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return models.SweepResponse{}, fmt.Errorf("sweep aborted: %w", err)
	}

	slog.Debug("Sweep completed", "points", len(points), "from", req.From, "to", req.To, "step", req.Step)

	return models.SweepResponse{
		Config: req.Config,
		Points: points,
	}, nil
}
