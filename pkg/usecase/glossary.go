package usecase

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/adtool/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

type glossaryFile struct {
	Glossary []model.GlossaryTerm `yaml:"glossary"`
}

// LoadGlossary reads a YAML file of the form
//
//	glossary:
//	  - term: SLO
//	    definition: Target service level
//
// Entries without a term are skipped.
func LoadGlossary(path string) ([]model.GlossaryTerm, error) {
	// #nosec G304 - glossary path is given by the operator
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(ErrGlossaryLoad, err.Error(),
			goerr.V(model.PathKey, path),
			goerr.V(model.OperationKey, "read"))
	}

	var file glossaryFile
	if err := yaml.Unmarshal(b, &file); err != nil {
		return nil, goerr.Wrap(ErrGlossaryLoad, err.Error(),
			goerr.V(model.PathKey, path),
			goerr.V(model.OperationKey, "parse"))
	}

	terms := make([]model.GlossaryTerm, 0, len(file.Glossary))
	for _, t := range file.Glossary {
		t.Term = strings.TrimSpace(t.Term)
		t.Definition = strings.TrimSpace(t.Definition)
		if t.Term == "" {
			continue
		}
		terms = append(terms, t)
	}
	return terms, nil
}
