package specfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/adtool/pkg/domain/interfaces"
	"github.com/secmon-lab/adtool/pkg/domain/model"
	"github.com/secmon-lab/adtool/pkg/domain/types"
	"github.com/secmon-lab/adtool/pkg/utils/safe"
	"gopkg.in/yaml.v3"
)

// RootID addresses the specs root itself. It is listed when the root has
// no architecture sub-directories and it is read-only.
const RootID = "_root"

// relationFields are the list fields that may be sent as a
// whitespace-separated string and are stored as lists
var relationFields = map[types.EntityKind][]string{
	types.EntityConcerns:     {"stakeholders", "tags"},
	types.EntityCapabilities: {"addresses_concerns", "tags"},
	types.EntityRisks:        {"affected_concerns", "affected_capabilities", "threatened_service_levels", "linked_views"},
}

// Store keeps one spec directory per architecture under a root directory
type Store struct {
	root string
}

var _ interfaces.SpecStore = &Store{}

// New creates a store rooted at root
func New(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve specs root", goerr.V(model.PathKey, root))
	}
	return &Store{root: filepath.Clean(abs)}, nil
}

// Root returns the absolute specs root
func (s *Store) Root() string {
	return s.root
}

// ListArchitectures returns the sub-directory names in ascending order.
// Hidden directories are skipped. A root without sub-directories is
// listed as RootID; a missing root lists nothing.
func (s *Store) ListArchitectures(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, goerr.Wrap(err, "failed to list architectures",
			goerr.V(model.PathKey, s.root),
			goerr.V(model.OperationKey, "list"))
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			ids = append(ids, e.Name())
		}
	}
	if len(ids) == 0 {
		return []string{RootID}, nil
	}
	sort.Strings(ids)
	return ids, nil
}

// Dir resolves an architecture ID to its directory, refusing paths that
// escape the root
func (s *Store) Dir(ctx context.Context, architectureID string) (string, error) {
	if isRoot(architectureID) {
		return s.root, nil
	}

	path := filepath.Clean(filepath.Join(s.root, architectureID))
	if path == s.root || !strings.HasPrefix(path, s.root+string(filepath.Separator)) ||
		strings.ContainsAny(architectureID, `/\`) {
		return "", goerr.Wrap(model.ErrInvalidArchitecture, "architecture ID must name a direct sub-directory",
			goerr.V(model.ArchitectureIDKey, architectureID))
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return "", goerr.Wrap(model.ErrArchitectureNotFound, "no such architecture directory",
			goerr.V(model.ArchitectureIDKey, architectureID),
			goerr.V(model.PathKey, path))
	}
	return path, nil
}

// ReadEntity returns the root mapping of an entity file. A missing file
// reads as an empty mapping.
func (s *Store) ReadEntity(ctx context.Context, architectureID string, kind types.EntityKind) (map[string]any, error) {
	dir, err := s.Dir(ctx, architectureID)
	if err != nil {
		return nil, err
	}

	path := entityPath(dir, kind)
	// #nosec G304 - path is confined to the specs root by Dir
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, goerr.Wrap(err, "failed to read entity file",
			goerr.V(model.PathKey, path),
			goerr.V(model.OperationKey, "read"))
	}

	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, goerr.Wrap(model.ErrInvalidRoot, err.Error(),
			goerr.V(model.PathKey, path),
			goerr.V(model.OperationKey, "parse"))
	}
	if doc == nil {
		return map[string]any{}, nil
	}
	root, ok := stringKeys(doc).(map[string]any)
	if !ok {
		return nil, goerr.Wrap(model.ErrInvalidRoot, "entity file root is not a mapping",
			goerr.V(model.PathKey, path))
	}
	return root, nil
}

// WriteEntity replaces an entity file atomically. Relation fields given as
// strings are split on whitespace into lists first. RootID is read-only.
func (s *Store) WriteEntity(ctx context.Context, architectureID string, kind types.EntityKind, data map[string]any) error {
	if isRoot(architectureID) {
		return goerr.Wrap(model.ErrReadOnlyArchitecture, "cannot write to the specs root",
			goerr.V(model.ArchitectureIDKey, architectureID))
	}
	dir, err := s.Dir(ctx, architectureID)
	if err != nil {
		return err
	}

	b, err := yaml.Marshal(NormalizeRelations(kind, data))
	if err != nil {
		return goerr.Wrap(err, "failed to encode entity file",
			goerr.V(model.EntityKindKey, kind))
	}

	path := entityPath(dir, kind)
	if err := safe.WriteFile(ctx, path, b); err != nil {
		return goerr.Wrap(err, "failed to write entity file",
			goerr.V(model.ArchitectureIDKey, architectureID),
			goerr.V(model.EntityKindKey, kind))
	}
	return nil
}

// NormalizeRelations rewrites string values of relation fields into lists
// of whitespace-separated parts. data is modified in place and returned.
func NormalizeRelations(kind types.EntityKind, data map[string]any) map[string]any {
	fields := relationFields[kind]
	if len(fields) == 0 || data == nil {
		return data
	}
	rows, ok := data[kind.CollectionKey()].([]any)
	if !ok {
		return data
	}

	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			continue
		}
		for _, field := range fields {
			if v, ok := m[field].(string); ok {
				parts := []any{}
				for _, p := range strings.Fields(v) {
					parts = append(parts, p)
				}
				m[field] = parts
			}
		}
	}
	return data
}

// entityPath returns the existing file of kind in dir, or the primary
// file name when none exists yet
func entityPath(dir string, kind types.EntityKind) string {
	names := kind.FileNames()
	for _, name := range names {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p
		}
	}
	return filepath.Join(dir, names[0])
}

func isRoot(architectureID string) bool {
	return architectureID == "" || architectureID == RootID
}

// stringKeys converts YAML mappings with non-string keys so that the
// result can be encoded as JSON
func stringKeys(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = stringKeys(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = stringKeys(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = stringKeys(item)
		}
		return val
	default:
		return v
	}
}
