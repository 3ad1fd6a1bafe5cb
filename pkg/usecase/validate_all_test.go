package usecase_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/adtool/pkg/domain/model"
	"github.com/secmon-lab/adtool/pkg/domain/types"
	"github.com/secmon-lab/adtool/pkg/usecase"
)

// dirStore is a spec store over a fixed set of directories
type dirStore struct {
	dirs map[string]string
	ids  []string
}

func (s *dirStore) ListArchitectures(ctx context.Context) ([]string, error) {
	return s.ids, nil
}

func (s *dirStore) Dir(ctx context.Context, id string) (string, error) {
	dir, ok := s.dirs[id]
	if !ok {
		return "", goerr.Wrap(model.ErrArchitectureNotFound, "unknown", goerr.V(model.ArchitectureIDKey, id))
	}
	return dir, nil
}

func (s *dirStore) ReadEntity(ctx context.Context, id string, kind types.EntityKind) (map[string]any, error) {
	return map[string]any{}, nil
}

func (s *dirStore) WriteEntity(ctx context.Context, id string, kind types.EntityKind, data map[string]any) error {
	return nil
}

func TestValidateAll(t *testing.T) {
	ctx := context.Background()

	t.Run("summaries in store order", func(t *testing.T) {
		store := &dirStore{
			ids: []string{"alpha", "beta"},
			dirs: map[string]string{
				"alpha": minimalSpecDir(t),
				"beta":  t.TempDir(),
			},
		}
		results, err := usecase.New(usecase.WithSpecStore(store)).ValidateAll(ctx)
		gt.NoError(t, err).Required()

		gt.Value(t, results).Equal([]usecase.ArchitectureSummary{
			{ID: "alpha", Summary: model.Summary{Warn: 1}},
			{ID: "beta", Summary: model.Summary{Error: 3}},
		})
	})

	t.Run("missing directory aborts", func(t *testing.T) {
		store := &dirStore{
			ids:  []string{"gone"},
			dirs: map[string]string{"gone": filepath.Join(t.TempDir(), "gone")},
		}
		_, err := usecase.New(usecase.WithSpecStore(store)).ValidateAll(ctx)
		gt.Error(t, err).Is(usecase.ErrSpecDirNotFound)
	})

	t.Run("requires a store", func(t *testing.T) {
		_, err := usecase.New().ValidateAll(ctx)
		gt.Error(t, err).Is(usecase.ErrNoSpecStore)
	})
}
