package usecase

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/secmon-lab/adtool/pkg/domain/model"
	"github.com/secmon-lab/adtool/pkg/domain/types"
)

// ParseSpec converts every raw mapping into its typed entity list.
// Problems are recorded in log; parsing itself never fails.
func ParseSpec(raw model.RawSpec, log *model.IssueLog) *model.Spec {
	return &model.Spec{
		Stakeholders:  ParseStakeholders(raw.Get(types.EntityStakeholders), log),
		Concerns:      ParseConcerns(raw.Get(types.EntityConcerns), log),
		Capabilities:  ParseCapabilities(raw.Get(types.EntityCapabilities), log),
		ServiceLevels: ParseServiceLevels(raw.Get(types.EntityServiceLevels), log),
		Risks:         ParseRisks(raw.Get(types.EntityRisks), log),
	}
}

// ParseStakeholders parses the "stakeholders" collection
func ParseStakeholders(raw map[string]any, log *model.IssueLog) []model.Stakeholder {
	var out []model.Stakeholder
	parseEntities(raw, types.EntityStakeholders, log, func(r *fieldReader, id string) {
		out = append(out, model.Stakeholder{
			ID:          id,
			Name:        r.str("name", true),
			Description: r.str("description", false),
		})
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ParseConcerns parses the "concerns" collection
func ParseConcerns(raw map[string]any, log *model.IssueLog) []model.Concern {
	var out []model.Concern
	parseEntities(raw, types.EntityConcerns, log, func(r *fieldReader, id string) {
		c := model.Concern{
			ID:           id,
			Name:         r.str("name", true),
			Description:  r.str("description", true),
			Stakeholders: r.strList("stakeholders", true),
			Tags:         r.strList("tags", false),
		}

		m := r.sub("measurement")
		c.Measurement = model.Measurement{
			SLI:            m.str("sli", false),
			SLO:            m.str("slo", false),
			SLA:            m.str("sla", false),
			ServiceLevelID: m.str("service_level_id", false),
		}
		out = append(out, c)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ParseCapabilities parses the "capabilities" collection
func ParseCapabilities(raw map[string]any, log *model.IssueLog) []model.Capability {
	var out []model.Capability
	parseEntities(raw, types.EntityCapabilities, log, func(r *fieldReader, id string) {
		out = append(out, model.Capability{
			ID:                id,
			Name:              r.str("name", true),
			Description:       r.str("description", true),
			AddressesConcerns: r.strList("addresses_concerns", false),
			Constraints:       r.scalarMap("constraints"),
			Tags:              r.strList("tags", false),
		})
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ParseServiceLevels parses the "service_levels" collection
func ParseServiceLevels(raw map[string]any, log *model.IssueLog) []model.ServiceLevel {
	var out []model.ServiceLevel
	parseEntities(raw, types.EntityServiceLevels, log, func(r *fieldReader, id string) {
		out = append(out, model.ServiceLevel{
			ID:             id,
			Name:           r.str("name", true),
			SLIDefinition:  r.str("sli_definition", true),
			Window:         r.str("window", true),
			Exclusions:     r.str("exclusions", false),
			TargetSLO:      r.str("target_slo", false),
			ContractualSLA: r.str("contractual_sla", false),
		})
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ParseRisks parses the "risks" collection
func ParseRisks(raw map[string]any, log *model.IssueLog) []model.Risk {
	var out []model.Risk
	parseEntities(raw, types.EntityRisks, log, func(r *fieldReader, id string) {
		out = append(out, model.Risk{
			ID:                      id,
			Title:                   r.str("title", true),
			Description:             r.str("description", false),
			Type:                    r.str("type", true),
			Status:                  r.str("status", true),
			Owner:                   r.str("owner", true),
			AffectedConcerns:        r.strList("affected_concerns", false),
			AffectedCapabilities:    r.strList("affected_capabilities", false),
			ThreatenedServiceLevels: r.strList("threatened_service_levels", false),
			LinkedViews:             r.strList("linked_views", false),
			Mitigation:              r.str("mitigation", false),
		})
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// parseEntities walks the collection of one kind. It checks item types,
// validates IDs and reports duplicates before handing each item to build.
func parseEntities(raw map[string]any, kind types.EntityKind, log *model.IssueLog, build func(r *fieldReader, id string)) {
	items := collection(raw, kind, log)
	seen := make(map[string]bool, len(items))

	for idx, item := range items {
		loc := fmt.Sprintf("%s[%d]", kind, idx)
		m, ok := asMapping(item)
		if !ok {
			log.Errorf(types.CodeTypeError, loc, "Expected mapping, got %s", typeName(item))
			continue
		}

		r := &fieldReader{item: m, loc: loc, log: log}
		id := r.str("id", true)
		validateID(id, loc+".id", log)
		if id != "" {
			if seen[id] {
				log.Errorf(types.CodeDuplicateID, loc+".id", "Duplicate %s id '%s'", kind.Label(), id)
			}
			seen[id] = true
		}

		build(r, id)
	}
}

// collection returns the entity list of a kind. An absent or null key is an
// empty collection; a present key of any other non-list type is a TYPE_ERROR.
func collection(raw map[string]any, kind types.EntityKind, log *model.IssueLog) []any {
	key := kind.CollectionKey()
	v, ok := raw[key]
	if !ok || v == nil {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		log.Errorf(types.CodeTypeError, key, "Expected list at key '%s', got %s", key, typeName(v))
		return nil
	}
	return items
}

func validateID(id, location string, log *model.IssueLog) {
	err := types.EntityID(id).Validate()
	switch {
	case err == nil:
		return
	case errors.Is(err, types.ErrEmptyID):
		log.Errorf(types.CodeMissingID, location, "Missing id")
	default:
		log.Errorf(types.CodeBadIDFormat, location, "ID '%s' has invalid format", id)
	}
}

// fieldReader reads typed fields of one entity mapping and records every
// problem in the shared issue log
type fieldReader struct {
	item map[string]any
	loc  string
	log  *model.IssueLog
}

func (r *fieldReader) str(field string, required bool) string {
	v, issues := stringField(r.item, field, r.loc, required)
	r.log.Add(issues...)
	return v
}

func (r *fieldReader) strList(field string, required bool) []string {
	v, issues := stringListField(r.item, field, r.loc, required)
	r.log.Add(issues...)
	return v
}

func (r *fieldReader) scalarMap(field string) map[string]string {
	v, issues := scalarMapField(r.item, field, r.loc)
	r.log.Add(issues...)
	return v
}

// sub returns a reader for a nested mapping. A missing or mistyped field
// yields a reader over an empty mapping.
func (r *fieldReader) sub(field string) *fieldReader {
	m, issues := mappingField(r.item, field, r.loc)
	r.log.Add(issues...)
	return &fieldReader{item: m, loc: r.loc + "." + field, log: r.log}
}

// stringField reads a trimmed string. Absent and null values are empty.
func stringField(item map[string]any, field, loc string, required bool) (string, []model.Issue) {
	location := loc + "." + field
	v, ok := item[field]
	if !ok || v == nil {
		v = ""
	}
	s, ok := v.(string)
	if !ok {
		return "", []model.Issue{typeError(location, "string", v)}
	}
	s = strings.TrimSpace(s)
	if required && s == "" {
		return "", []model.Issue{missingField(location, "Missing/empty field")}
	}
	return s, nil
}

// stringListField reads a list of trimmed strings. Non-string elements are
// reported and dropped; blank elements are dropped silently.
func stringListField(item map[string]any, field, loc string, required bool) ([]string, []model.Issue) {
	location := loc + "." + field
	v, ok := item[field]
	if !ok || v == nil {
		v = []any{}
	}
	list, ok := v.([]any)
	if !ok {
		return nil, []model.Issue{typeError(location, "list", v)}
	}

	var issues []model.Issue
	out := make([]string, 0, len(list))
	for i, elem := range list {
		s, ok := elem.(string)
		if !ok {
			issues = append(issues, typeError(fmt.Sprintf("%s[%d]", location, i), "string", elem))
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if required && len(out) == 0 {
		issues = append(issues, missingField(location, "Missing/empty list"))
	}
	return out, issues
}

func mappingField(item map[string]any, field, loc string) (map[string]any, []model.Issue) {
	v, ok := item[field]
	if !ok || v == nil {
		return map[string]any{}, nil
	}
	m, ok := asMapping(v)
	if !ok {
		return map[string]any{}, []model.Issue{typeError(loc+"."+field, "mapping", v)}
	}
	return m, nil
}

// scalarMapField reads a mapping of name to scalar value, formatting each
// value as a string. Nested values are reported and dropped.
func scalarMapField(item map[string]any, field, loc string) (map[string]string, []model.Issue) {
	m, issues := mappingField(item, field, loc)
	out := make(map[string]string, len(m))
	for name, v := range m {
		s, ok := formatScalar(v)
		if !ok {
			issues = append(issues, typeError(loc+"."+field+"."+name, "scalar", v))
			continue
		}
		out[name] = s
	}
	return out, issues
}

func formatScalar(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", true
	case string:
		return strings.TrimSpace(val), true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), true
	default:
		return "", false
	}
}

func typeError(location, expected string, got any) model.Issue {
	return model.Issue{
		Severity: types.SeverityError,
		Code:     types.CodeTypeError,
		Location: location,
		Message:  fmt.Sprintf("Expected %s, got %s", expected, typeName(got)),
	}
}

func missingField(location, message string) model.Issue {
	return model.Issue{
		Severity: types.SeverityWarn,
		Code:     types.CodeMissingField,
		Location: location,
		Message:  message,
	}
}
