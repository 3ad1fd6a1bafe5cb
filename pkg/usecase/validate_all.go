package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/adtool/pkg/domain/model"
	"golang.org/x/sync/errgroup"
)

// maxParallelValidations bounds concurrent spec analyses
const maxParallelValidations = 4

// ArchitectureSummary is the issue count of one architecture in the store
type ArchitectureSummary struct {
	ID      string        `json:"id"`
	Summary model.Summary `json:"summary"`
}

// ValidateAll analyzes every architecture in the spec store concurrently.
// Each analysis reads only its own directory and writes only its own
// result slot. Results follow the store's order.
func (uc *UseCases) ValidateAll(ctx context.Context) ([]ArchitectureSummary, error) {
	if uc.store == nil {
		return nil, goerr.Wrap(ErrNoSpecStore, "cannot validate architectures")
	}

	ids, err := uc.store.ListArchitectures(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list architectures")
	}

	results := make([]ArchitectureSummary, len(ids))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(maxParallelValidations)
	for i, id := range ids {
		eg.Go(func() error {
			dir, err := uc.store.Dir(ctx, id)
			if err != nil {
				return goerr.Wrap(err, "failed to resolve architecture",
					goerr.V(model.ArchitectureIDKey, id))
			}
			analysis, err := uc.Analyze(ctx, dir)
			if err != nil {
				return goerr.Wrap(err, "failed to analyze architecture",
					goerr.V(model.ArchitectureIDKey, id))
			}

			results[i] = ArchitectureSummary{ID: id, Summary: analysis.Summary()}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
