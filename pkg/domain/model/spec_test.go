package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/adtool/pkg/domain/model"
	"github.com/secmon-lab/adtool/pkg/domain/types"
)

func TestSpec_TraceabilityMaps(t *testing.T) {
	spec := &model.Spec{
		Stakeholders: []model.Stakeholder{{ID: "STK-1"}, {ID: "STK-2"}},
		Concerns: []model.Concern{
			{ID: "C-1", Stakeholders: []string{"STK-1", "STK-9"}},
			{ID: "C-2", Stakeholders: []string{"STK-1"}},
		},
		Capabilities: []model.Capability{
			{ID: "CAP-1", AddressesConcerns: []string{"C-2"}},
			{ID: "CAP-2", AddressesConcerns: []string{"C-2", "C-404"}},
		},
	}

	byStk := spec.ConcernsByStakeholder()
	gt.Value(t, byStk["STK-1"]).Equal([]string{"C-1", "C-2"})
	gt.Array(t, byStk["STK-2"]).Length(0)
	_, unknown := byStk["STK-9"]
	gt.Bool(t, unknown).False()

	byConcern := spec.CapabilitiesByConcern()
	gt.Array(t, byConcern["C-1"]).Length(0)
	gt.Value(t, byConcern["C-2"]).Equal([]string{"CAP-1", "CAP-2"})

	gt.Bool(t, spec.ConcernIDs().Has("C-1")).True()
	gt.Bool(t, spec.ConcernIDs().Has("C-404")).False()
}

func TestSpec_DuplicateIDs(t *testing.T) {
	spec := &model.Spec{
		Risks: []model.Risk{{ID: "R-1"}, {ID: "R-1"}, {ID: "R-2"}, {ID: ""}, {ID: ""}},
	}
	dups := spec.DuplicateIDs()
	gt.Bool(t, dups[types.EntityRisks].Has("R-1")).True()
	gt.Bool(t, dups[types.EntityRisks].Has("R-2")).False()
	gt.Bool(t, dups[types.EntityRisks].Has("")).False()
	gt.Value(t, len(dups[types.EntityStakeholders])).Equal(0)
}

func TestCapability_ConstraintsString(t *testing.T) {
	c := model.Capability{Constraints: map[string]string{"latency": "200ms", "az": "2"}}
	gt.Value(t, c.ConstraintsString()).Equal("az=2; latency=200ms")
	gt.Value(t, model.Capability{}.ConstraintsString()).Equal("")
}

func TestMetadata_WithDefaults(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	m := model.Metadata{}.WithDefaults(now)
	gt.Value(t, m.SystemName).Equal(model.DefaultSystemName)
	gt.Value(t, m.DocumentID).Equal(model.DefaultDocumentID)
	gt.Value(t, m.Version).Equal(model.DefaultVersion)
	gt.Value(t, m.Status).Equal(model.DefaultStatus)
	gt.Value(t, m.Date).Equal("2026-10-19")
	gt.Value(t, m.Scope).Equal("")

	custom := model.Metadata{SystemName: "Payments", Date: "2025-01-01"}.WithDefaults(now)
	gt.Value(t, custom.SystemName).Equal("Payments")
	gt.Value(t, custom.Date).Equal("2025-01-01")
}

func TestNewReport(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.FixedZone("JST", 9*3600))
	report := model.NewReport("/specs/a", nil, now)
	gt.Value(t, report.GeneratedAt).Equal("2026-10-19T03:00:00Z")
	gt.Array(t, report.Issues).Length(0)
	gt.Value(t, report.Summary).Equal(model.Summary{})
}
