package usecase

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/adtool/pkg/domain/model"
	"github.com/secmon-lab/adtool/pkg/domain/types"
	"gopkg.in/yaml.v3"
)

// LoadSpec locates and decodes every spec file in specDir. Missing or
// malformed files never fail the load: they become empty mappings plus an
// issue in log. Only a missing spec directory is returned as an error.
func LoadSpec(specDir string, log *model.IssueLog) (model.RawSpec, error) {
	info, err := os.Stat(specDir)
	if err != nil {
		return nil, goerr.Wrap(ErrSpecDirNotFound, "cannot read spec directory",
			goerr.V(model.PathKey, specDir),
			goerr.V(model.OperationKey, "read"),
			goerr.V("cause", err.Error()))
	}
	if !info.IsDir() {
		return nil, goerr.Wrap(ErrSpecDirNotFound, "spec path is not a directory",
			goerr.V(model.PathKey, specDir),
			goerr.V(model.OperationKey, "read"))
	}

	raw := model.RawSpec{}
	for _, kind := range types.AllEntityKinds() {
		names := kind.FileNames()
		path := findFile(specDir, names)
		if path == "" {
			if kind.IsRequired() {
				log.Errorf(types.CodeMissingFile, "spec:"+kind.String(),
					"Required file is missing in %s: one of [%s]", specDir, strings.Join(names, ", "))
			}
			raw[kind] = map[string]any{}
			continue
		}

		data, issue := loadYAMLFile(path)
		if issue != nil {
			log.Add(*issue)
			data = map[string]any{}
		}
		raw[kind] = data
	}

	return raw, nil
}

func findFile(dir string, candidates []string) string {
	for _, name := range candidates {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p
		}
	}
	return ""
}

// loadYAMLFile decodes a file whose root must be a mapping. An empty
// document decodes to an empty mapping.
func loadYAMLFile(path string) (map[string]any, *model.Issue) {
	location := "spec:" + filepath.Base(path)

	// #nosec G304 - path is built from the spec directory given on the command line
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &model.Issue{
			Severity: types.SeverityError,
			Code:     types.CodeYAMLParseError,
			Location: location,
			Message:  err.Error(),
		}
	}

	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, &model.Issue{
			Severity: types.SeverityError,
			Code:     types.CodeYAMLParseError,
			Location: location,
			Message:  err.Error(),
		}
	}
	if doc == nil {
		return map[string]any{}, nil
	}

	root, ok := asMapping(normalizeYAML(doc))
	if !ok {
		return nil, &model.Issue{
			Severity: types.SeverityError,
			Code:     types.CodeInvalidRoot,
			Location: location,
			Message:  fmt.Sprintf("YAML root must be a mapping, got %s", typeName(doc)),
		}
	}
	return root, nil
}

// normalizeYAML converts mappings with non-string keys into string-keyed
// mappings so that every mapping below the root has a single Go type
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeYAML(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = normalizeYAML(item)
		}
		return val
	default:
		return v
	}
}

func asMapping(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// typeName names the YAML type of a decoded value for issue messages
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64, uint64:
		return "int"
	case float64:
		return "float"
	case []any:
		return "list"
	case map[string]any, map[any]any:
		return "mapping"
	case time.Time:
		return "timestamp"
	default:
		return fmt.Sprintf("%T", v)
	}
}
