package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/adtool/pkg/domain/model"
	"github.com/secmon-lab/adtool/pkg/domain/types"
	"github.com/secmon-lab/adtool/pkg/usecase"
)

func TestParseStakeholders(t *testing.T) {
	t.Run("sorts by id and trims strings", func(t *testing.T) {
		log := model.NewIssueLog()
		got := usecase.ParseStakeholders(map[string]any{
			"stakeholders": []any{
				map[string]any{"id": "STK-2", "name": " Finance "},
				map[string]any{"id": "STK-1", "name": "Ops", "description": "runs it"},
			},
		}, log)

		gt.Value(t, got).Equal([]model.Stakeholder{
			{ID: "STK-1", Name: "Ops", Description: "runs it"},
			{ID: "STK-2", Name: "Finance"},
		})
		gt.Value(t, log.Len()).Equal(0)
	})

	t.Run("duplicate ids are reported once per repeat and kept", func(t *testing.T) {
		log := model.NewIssueLog()
		got := usecase.ParseStakeholders(map[string]any{
			"stakeholders": []any{
				map[string]any{"id": "STK-1", "name": "A"},
				map[string]any{"id": "STK-1", "name": "B"},
				map[string]any{"id": "STK-1", "name": "C"},
			},
		}, log)

		gt.Array(t, got).Length(3)
		issues := log.Issues()
		gt.Array(t, issues).Length(2)
		gt.Value(t, issues[0]).Equal(model.Issue{
			Severity: types.SeverityError,
			Code:     types.CodeDuplicateID,
			Location: "stakeholders[1].id",
			Message:  "Duplicate stakeholder id 'STK-1'",
		})
		gt.Value(t, issues[1].Location).Equal("stakeholders[2].id")
	})

	t.Run("bad and missing ids keep the entity", func(t *testing.T) {
		log := model.NewIssueLog()
		got := usecase.ParseStakeholders(map[string]any{
			"stakeholders": []any{
				map[string]any{"id": "1-bad", "name": "A"},
				map[string]any{"name": "B"},
				map[string]any{"name": "C"},
			},
		}, log)

		gt.Array(t, got).Length(3)
		issues := log.Issues()
		gt.Array(t, findIssues(issues, types.CodeBadIDFormat, "stakeholders[0].id")).Length(1)
		gt.Array(t, findIssues(issues, types.CodeMissingID, "stakeholders[1].id")).Length(1)
		gt.Array(t, findIssues(issues, types.CodeMissingID, "stakeholders[2].id")).Length(1)
		gt.Array(t, findIssues(issues, types.CodeDuplicateID, "stakeholders[2].id")).Length(0)
		gt.Array(t, findIssues(issues, types.CodeMissingField, "stakeholders[1].id")).Length(1)
	})

	t.Run("non-mapping items are skipped", func(t *testing.T) {
		log := model.NewIssueLog()
		got := usecase.ParseStakeholders(map[string]any{
			"stakeholders": []any{"oops", map[string]any{"id": "STK-1", "name": "A"}},
		}, log)

		gt.Array(t, got).Length(1)
		found := findIssues(log.Issues(), types.CodeTypeError, "stakeholders[0]")
		gt.Array(t, found).Length(1)
		gt.Value(t, found[0].Message).Equal("Expected mapping, got string")
	})

	t.Run("collection of wrong type", func(t *testing.T) {
		log := model.NewIssueLog()
		got := usecase.ParseStakeholders(map[string]any{"stakeholders": "nope"}, log)

		gt.Array(t, got).Length(0)
		gt.Array(t, findIssues(log.Issues(), types.CodeTypeError, "stakeholders")).Length(1)
	})

	t.Run("absent or null collection is empty", func(t *testing.T) {
		log := model.NewIssueLog()
		gt.Array(t, usecase.ParseStakeholders(map[string]any{}, log)).Length(0)
		gt.Array(t, usecase.ParseStakeholders(map[string]any{"stakeholders": nil}, log)).Length(0)
		gt.Value(t, log.Len()).Equal(0)
	})

	t.Run("missing required name is a warning", func(t *testing.T) {
		log := model.NewIssueLog()
		usecase.ParseStakeholders(map[string]any{
			"stakeholders": []any{map[string]any{"id": "STK-1", "name": "  "}},
		}, log)

		found := findIssues(log.Issues(), types.CodeMissingField, "stakeholders[0].name")
		gt.Array(t, found).Length(1)
		gt.Value(t, found[0].Severity).Equal(types.SeverityWarn)
	})
}

func TestParseConcerns(t *testing.T) {
	log := model.NewIssueLog()
	got := usecase.ParseConcerns(map[string]any{
		"concerns": []any{
			map[string]any{
				"id":           "C-1",
				"name":         "Uptime",
				"description":  "x",
				"stakeholders": []any{"STK-1", 7, " ", " STK-2 "},
				"tags":         "Operational",
				"measurement":  map[string]any{"sli": "availability", "slo": 99.9},
			},
			map[string]any{
				"id":          "C-2",
				"name":        "Cost",
				"description": "y",
				"measurement": "none",
			},
		},
	}, log)

	gt.Array(t, got).Length(2)
	gt.Value(t, got[0].Stakeholders).Equal([]string{"STK-1", "STK-2"})
	gt.Value(t, got[0].Measurement.SLI).Equal("availability")
	gt.Value(t, got[0].Measurement.SLO).Equal("")
	gt.Array(t, got[0].Tags).Length(0)

	issues := log.Issues()
	gt.Array(t, findIssues(issues, types.CodeTypeError, "concerns[0].stakeholders[1]")).Length(1)
	gt.Array(t, findIssues(issues, types.CodeTypeError, "concerns[0].tags")).Length(1)
	gt.Array(t, findIssues(issues, types.CodeTypeError, "concerns[0].measurement.slo")).Length(1)
	gt.Array(t, findIssues(issues, types.CodeTypeError, "concerns[1].measurement")).Length(1)
	gt.Array(t, findIssues(issues, types.CodeMissingField, "concerns[1].stakeholders")).Length(1)
}

func TestParseCapabilities(t *testing.T) {
	log := model.NewIssueLog()
	got := usecase.ParseCapabilities(map[string]any{
		"capabilities": []any{
			map[string]any{
				"id":                 "CAP-1",
				"name":               "Monitoring",
				"description":        "Observe",
				"addresses_concerns": []any{"C-1"},
				"constraints": map[string]any{
					"rto":      "4h",
					"replicas": 3,
					"nested":   map[string]any{"a": 1},
				},
			},
		},
	}, log)

	gt.Array(t, got).Length(1)
	gt.Value(t, got[0].Constraints).Equal(map[string]string{"rto": "4h", "replicas": "3"})
	gt.Array(t, findIssues(log.Issues(), types.CodeTypeError, "capabilities[0].constraints.nested")).Length(1)
	gt.Value(t, log.Len()).Equal(1)
}

func TestParseRisksAndServiceLevels(t *testing.T) {
	log := model.NewIssueLog()
	risks := usecase.ParseRisks(map[string]any{
		"risks": []any{
			map[string]any{
				"id":                        "R-1",
				"title":                     "Vendor slip",
				"type":                      "Schedule",
				"status":                    "Open",
				"owner":                     "STK-1",
				"affected_concerns":         []any{"C-1"},
				"affected_capabilities":     []any{"CAP-1"},
				"threatened_service_levels": []any{"SL-1"},
				"linked_views":              []any{"AcV-2"},
				"mitigation":                "Second vendor",
			},
		},
	}, log)
	levels := usecase.ParseServiceLevels(map[string]any{
		"service_levels": []any{
			map[string]any{"id": "SL-1", "name": "Availability", "sli_definition": "ok/total", "window": "30d"},
		},
	}, log)

	gt.Value(t, log.Len()).Equal(0)
	gt.Value(t, risks[0].Owner).Equal("STK-1")
	gt.Value(t, risks[0].LinkedViews).Equal([]string{"AcV-2"})
	gt.Value(t, levels[0].Window).Equal("30d")
}
