package usecase

import (
	"time"

	"github.com/secmon-lab/adtool/pkg/domain/interfaces"
	"github.com/secmon-lab/adtool/pkg/domain/model"
	"github.com/secmon-lab/adtool/pkg/service/render"
)

type UseCases struct {
	vocab    *model.Vocabulary
	classify interfaces.TagClassifier
	renderer interfaces.DocumentRenderer
	store    interfaces.SpecStore
	now      func() time.Time
	analyzer *Analyzer
}

type Option func(*UseCases)

// WithVocabulary replaces the built-in keyword tables
func WithVocabulary(vocab *model.Vocabulary) Option {
	return func(uc *UseCases) {
		uc.vocab = vocab
	}
}

// WithTagClassifier replaces the keyword-based capability tag inference
func WithTagClassifier(classify interfaces.TagClassifier) Option {
	return func(uc *UseCases) {
		uc.classify = classify
	}
}

// WithRenderer replaces the default document renderer. A template path
// given to Build still takes precedence.
func WithRenderer(r interfaces.DocumentRenderer) Option {
	return func(uc *UseCases) {
		uc.renderer = r
	}
}

func WithSpecStore(store interfaces.SpecStore) Option {
	return func(uc *UseCases) {
		uc.store = store
	}
}

// WithClock sets the time source used for report timestamps and default dates
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(opts ...Option) *UseCases {
	uc := &UseCases{
		vocab:    model.DefaultVocabulary(),
		renderer: render.Default(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.vocab == nil {
		uc.vocab = model.DefaultVocabulary()
	}
	if uc.classify == nil {
		uc.classify = uc.vocab.ClassifyCapability
	}
	uc.analyzer = NewAnalyzer(uc.vocab, uc.classify)

	return uc
}

// Vocabulary returns the keyword tables in use
func (uc *UseCases) Vocabulary() *model.Vocabulary {
	return uc.vocab
}

// SpecStore returns the configured spec store, or nil
func (uc *UseCases) SpecStore() interfaces.SpecStore {
	return uc.store
}
