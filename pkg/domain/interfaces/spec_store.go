package interfaces

import (
	"context"

	"github.com/secmon-lab/adtool/pkg/domain/types"
)

// SpecStore provides access to architecture spec directories
type SpecStore interface {
	// ListArchitectures returns the architecture IDs (sub-directories) in ascending order
	ListArchitectures(ctx context.Context) ([]string, error)

	// Dir resolves an architecture ID to its spec directory
	Dir(ctx context.Context, architectureID string) (string, error)

	// ReadEntity returns the root mapping of an entity file, or an empty mapping if the file does not exist
	ReadEntity(ctx context.Context, architectureID string, kind types.EntityKind) (map[string]any, error)

	// WriteEntity replaces an entity file atomically
	WriteEntity(ctx context.Context, architectureID string, kind types.EntityKind, data map[string]any) error
}
