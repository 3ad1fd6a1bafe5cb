package interfaces

import (
	"io"

	"github.com/secmon-lab/adtool/pkg/domain/model"
)

// DocumentRenderer renders an architecture document from its rendering context
type DocumentRenderer interface {
	Render(w io.Writer, view *model.DocumentView) error
}

// TagClassifier infers capability tags from a name and a description.
// It is used only when a capability has no explicit tags.
type TagClassifier func(name, description string) []string
