package config

import (
	"bytes"
	"errors"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/adtool/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Vocabulary holds the flag selecting a vocabulary override file
type Vocabulary struct {
	path string
}

// Flags returns the vocabulary flags
func (x *Vocabulary) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "vocabulary",
			Usage:       "TOML file overriding the analyzer keyword tables",
			Sources:     cli.EnvVars("ADTOOL_VOCABULARY"),
			Destination: &x.path,
		},
	}
}

// VocabularyFile is the TOML layout of a vocabulary override
type VocabularyFile struct {
	OperationalTag       string               `toml:"operational_tag"`
	BusinessTag          string               `toml:"business_tag"`
	ProgrammeViewMarker  string               `toml:"programme_view_marker"`
	OperationalKeywords  []string             `toml:"operational_keywords"`
	ProgrammaticKeywords []string             `toml:"programmatic_keywords"`
	ConcernTagViews      []string             `toml:"concern_tag_views"`
	Glossary             []model.GlossaryTerm `toml:"glossary"`
}

// Validate checks the values that may not be blank once given
func (f *VocabularyFile) Validate() error {
	lists := map[string][]string{
		"operational_keywords":  f.OperationalKeywords,
		"programmatic_keywords": f.ProgrammaticKeywords,
		"concern_tag_views":     f.ConcernTagViews,
	}
	for field, values := range lists {
		for _, v := range values {
			if strings.TrimSpace(v) == "" {
				return goerr.Wrap(ErrEmptyTag, "blank entry in list", goerr.V(FieldKey, field))
			}
		}
	}
	for _, term := range f.Glossary {
		if strings.TrimSpace(term.Term) == "" {
			return goerr.Wrap(ErrInvalidConfig, "glossary entry without term", goerr.V(FieldKey, "glossary"))
		}
	}
	return nil
}

// Apply overlays the file onto base. Empty values keep the base entries.
func (f *VocabularyFile) Apply(base *model.Vocabulary) *model.Vocabulary {
	v := *base
	if f.OperationalTag != "" {
		v.OperationalTag = f.OperationalTag
	}
	if f.BusinessTag != "" {
		v.BusinessTag = f.BusinessTag
	}
	if f.ProgrammeViewMarker != "" {
		v.ProgrammeViewMarker = f.ProgrammeViewMarker
	}
	if len(f.OperationalKeywords) > 0 {
		v.OperationalKeywords = f.OperationalKeywords
	}
	if len(f.ProgrammaticKeywords) > 0 {
		v.ProgrammaticKeywords = f.ProgrammaticKeywords
	}
	if len(f.ConcernTagViews) > 0 {
		v.ConcernTagViews = f.ConcernTagViews
	}
	if len(f.Glossary) > 0 {
		v.DefaultGlossary = f.Glossary
	}
	return &v
}

// LoadVocabulary reads a vocabulary override file. Unknown keys are rejected.
func LoadVocabulary(path string) (*VocabularyFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, err.Error(), goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read vocabulary file", goerr.V(ConfigPathKey, path))
	}

	var file VocabularyFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(ConfigPathKey, path))
	}

	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "vocabulary validation failed", goerr.V(ConfigPathKey, path))
	}
	return &file, nil
}

// Configure returns the default vocabulary, overlaid with the file when
// the flag is set
func (x *Vocabulary) Configure() (*model.Vocabulary, error) {
	vocab := model.DefaultVocabulary()
	if x.path == "" {
		return vocab, nil
	}

	file, err := LoadVocabulary(x.path)
	if err != nil {
		return nil, err
	}
	return file.Apply(vocab), nil
}
