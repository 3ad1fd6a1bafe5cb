package usecase_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/adtool/pkg/domain/model"
	"github.com/secmon-lab/adtool/pkg/usecase"
)

func TestLoadGlossary(t *testing.T) {
	dir := t.TempDir()

	t.Run("skips entries without a term", func(t *testing.T) {
		p := filepath.Join(dir, "ok.yaml")
		gt.NoError(t, os.WriteFile(p, []byte(`
glossary:
  - term: " SLI "
    definition: Service level indicator
  - definition: orphan
`), 0o600)).Required()

		terms, err := usecase.LoadGlossary(p)
		gt.NoError(t, err).Required()
		gt.Value(t, terms).Equal([]model.GlossaryTerm{{Term: "SLI", Definition: "Service level indicator"}})
	})

	t.Run("invalid yaml", func(t *testing.T) {
		p := filepath.Join(dir, "bad.yaml")
		gt.NoError(t, os.WriteFile(p, []byte("glossary: [\n"), 0o600)).Required()
		_, err := usecase.LoadGlossary(p)
		gt.Error(t, err).Is(usecase.ErrGlossaryLoad)
	})
}
