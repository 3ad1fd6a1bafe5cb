package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/secmon-lab/adtool/pkg/domain/interfaces"
	"github.com/secmon-lab/adtool/pkg/domain/model"
	"github.com/secmon-lab/adtool/pkg/domain/types"
)

// NewView builds the rendering context of a document. issues must already
// be in canonical order. A nil vocab selects the defaults and a nil classify
// selects the vocabulary's keyword classifier.
func NewView(spec *model.Spec, issues []model.Issue, meta model.Metadata, vocab *model.Vocabulary, classify interfaces.TagClassifier) *model.DocumentView {
	if vocab == nil {
		vocab = model.DefaultVocabulary()
	}
	if classify == nil {
		classify = vocab.ClassifyCapability
	}
	b := &viewBuilder{
		dups:         spec.DuplicateIDs(),
		stakeholders: spec.StakeholderIDs(),
		concerns:     spec.ConcernIDs(),
		caps:         spec.CapabilityIDs(),
		levels:       spec.ServiceLevelIDs(),
	}

	glossary := meta.Glossary
	if len(glossary) == 0 {
		glossary = vocab.DefaultGlossary
	}

	view := &model.DocumentView{
		SystemName: OneLine(meta.SystemName),
		DocumentID: OneLine(meta.DocumentID),
		Version:    OneLine(meta.Version),
		Date:       OneLine(meta.Date),
		Status:     OneLine(meta.Status),
		Scope:      strings.TrimSpace(meta.Scope),
		Glossary:   glossary,
		Spec:       spec,
		Issues:     issues,
	}

	for _, s := range spec.Stakeholders {
		view.Stakeholders = append(view.Stakeholders, model.StakeholderRow{
			ID:          b.idCell(types.EntityStakeholders, s.ID),
			Name:        Cell(s.Name),
			Description: Cell(s.Description),
		})
	}

	for _, c := range spec.Concerns {
		view.Concerns = append(view.Concerns, model.ConcernRow{
			ID:           b.idCell(types.EntityConcerns, c.ID),
			Name:         Cell(c.Name),
			Description:  Cell(c.Description),
			Stakeholders: refCell(c.Stakeholders, b.stakeholders),
			Tags:         JoinCell(c.Tags),
			Measurement:  b.measurementCell(c.Measurement),
		})
	}

	for _, tag := range vocab.ConcernTagViews {
		var ids []string
		for _, c := range spec.Concerns {
			if c.HasTag(tag) {
				ids = append(ids, c.ID)
			}
		}
		view.ConcernTagViews = append(view.ConcernTagViews, model.TagViewRow{
			Tag:      EscapeCell(tag),
			Concerns: JoinCell(ids),
		})
	}

	for _, capability := range spec.Capabilities {
		tags := capability.Tags
		if len(tags) == 0 {
			tags = classify(capability.Name, capability.Description)
		}
		view.Capabilities = append(view.Capabilities, model.CapabilityRow{
			ID:          b.idCell(types.EntityCapabilities, capability.ID),
			Name:        Cell(capability.Name),
			Description: Cell(capability.Description),
			Concerns:    refCell(capability.AddressesConcerns, b.concerns),
			Constraints: Cell(capability.ConstraintsString()),
			Tags:        JoinCell(tags),
		})
	}

	for _, r := range spec.Risks {
		row := model.RiskRow{
			ID:            b.idCell(types.EntityRisks, r.ID),
			Title:         Cell(r.Title),
			Type:          Cell(r.Type),
			Status:        Cell(r.Status),
			Owner:         b.ownerCell(r.Owner),
			Concerns:      refCell(r.AffectedConcerns, b.concerns),
			Capabilities:  refCell(r.AffectedCapabilities, b.caps),
			ServiceLevels: refCell(r.ThreatenedServiceLevels, b.levels),
			Views:         JoinCell(r.LinkedViews),
			Mitigation:    Cell(r.Mitigation),
		}
		view.Risks = append(view.Risks, row)
		view.RiskTrace = append(view.RiskTrace,
			fmt.Sprintf("**%s %s** → Concerns: %s; Capabilities: %s; SL: %s",
				OneLine(r.ID), OneLine(r.Title), row.Concerns, row.Capabilities, row.ServiceLevels))
	}

	for _, sl := range spec.ServiceLevels {
		view.ServiceLevels = append(view.ServiceLevels, model.ServiceLevelRow{
			ID:             b.idCell(types.EntityServiceLevels, sl.ID),
			Name:           Cell(sl.Name),
			SLIDefinition:  Cell(sl.SLIDefinition),
			Window:         Cell(sl.Window),
			Exclusions:     Cell(sl.Exclusions),
			TargetSLO:      Cell(sl.TargetSLO),
			ContractualSLA: Cell(sl.ContractualSLA),
		})
	}

	byStakeholder := spec.ConcernsByStakeholder()
	for _, s := range spec.Stakeholders {
		view.StakeholderTrace = append(view.StakeholderTrace, model.TraceRow{
			ID:      OneLine(s.ID),
			Name:    OneLine(s.Name),
			Targets: JoinCell(sortedCopy(byStakeholder[s.ID])),
		})
	}

	byConcern := spec.CapabilitiesByConcern()
	for _, c := range spec.Concerns {
		view.ConcernTrace = append(view.ConcernTrace, model.TraceRow{
			ID:      OneLine(c.ID),
			Name:    OneLine(c.Name),
			Targets: JoinCell(sortedCopy(byConcern[c.ID])),
		})
	}

	for _, issue := range model.GapIssues(issues) {
		view.Gaps = append(view.Gaps, model.GapRow{
			Severity: issue.Severity.String(),
			Code:     issue.Code.String(),
			Location: EscapeCell(issue.Location),
			Message:  EscapeCell(issue.Message),
		})
	}

	return view
}

type viewBuilder struct {
	dups         map[types.EntityKind]model.IDSet
	stakeholders model.IDSet
	concerns     model.IDSet
	caps         model.IDSet
	levels       model.IDSet
}

// idCell marks duplicated IDs with the conflict marker
func (b *viewBuilder) idCell(kind types.EntityKind, id string) string {
	if b.dups[kind].Has(id) {
		return Conflict(id)
	}
	return Cell(id)
}

func (b *viewBuilder) ownerCell(owner string) string {
	if owner == "" {
		return TodoMarker
	}
	if !b.stakeholders.Has(owner) {
		return Conflict(owner)
	}
	return EscapeCell(owner)
}

// measurementCell formats "SLI=..; SLO=..; SLA=..; SL=.." with a marker
// for every missing part
func (b *viewBuilder) measurementCell(m model.Measurement) string {
	ref := Cell(m.ServiceLevelID)
	if m.ServiceLevelID != "" && !b.levels.Has(m.ServiceLevelID) {
		ref = Conflict(m.ServiceLevelID)
	}
	return fmt.Sprintf("SLI=%s; SLO=%s; SLA=%s; SL=%s", Cell(m.SLI), Cell(m.SLO), Cell(m.SLA), ref)
}

// refCell joins referenced IDs, marking those that do not resolve
func refCell(ids []string, known model.IDSet) string {
	if len(ids) == 0 {
		return TodoMarker
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		if known.Has(id) {
			parts[i] = EscapeCell(id)
		} else {
			parts[i] = Conflict(id)
		}
	}
	return strings.Join(parts, ", ")
}

func sortedCopy(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out
}
