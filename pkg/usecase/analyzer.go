package usecase

import (
	"sort"
	"strings"

	"github.com/secmon-lab/adtool/pkg/domain/interfaces"
	"github.com/secmon-lab/adtool/pkg/domain/model"
	"github.com/secmon-lab/adtool/pkg/domain/types"
)

// Analyzer runs the cross-entity consistency checks. It holds no state
// besides its vocabulary and is safe for concurrent use.
type Analyzer struct {
	vocab    *model.Vocabulary
	classify interfaces.TagClassifier
}

// NewAnalyzer creates an Analyzer. A nil vocabulary selects the defaults;
// a nil classifier selects the vocabulary's keyword classifier.
func NewAnalyzer(vocab *model.Vocabulary, classify interfaces.TagClassifier) *Analyzer {
	if vocab == nil {
		vocab = model.DefaultVocabulary()
	}
	if classify == nil {
		classify = vocab.ClassifyCapability
	}
	return &Analyzer{vocab: vocab, classify: classify}
}

// Analyze returns the consistency issues of spec in canonical order
func (a *Analyzer) Analyze(spec *model.Spec) []model.Issue {
	log := model.NewIssueLog()

	a.checkBrokenLinks(spec, log)
	a.checkCoverage(spec, log)
	a.checkMeasurements(spec, log)
	a.checkOperationalCoverage(spec, log)
	a.checkServiceLevels(spec, log)
	a.checkRisks(spec, log)

	log.Sort()
	return log.Issues()
}

func (a *Analyzer) checkBrokenLinks(spec *model.Spec, log *model.IssueLog) {
	stakeholders := spec.StakeholderIDs()
	concerns := spec.ConcernIDs()
	serviceLevels := spec.ServiceLevelIDs()

	for _, c := range spec.Concerns {
		for _, sid := range c.Stakeholders {
			if !stakeholders.Has(sid) {
				log.Errorf(types.CodeBrokenLink, entityLoc(types.EntityConcerns, c.ID, "stakeholders"),
					"Concern references unknown stakeholder id '%s'", sid)
			}
		}
	}

	for _, capability := range spec.Capabilities {
		for _, cid := range capability.AddressesConcerns {
			if !concerns.Has(cid) {
				log.Errorf(types.CodeBrokenLink, entityLoc(types.EntityCapabilities, capability.ID, "addresses_concerns"),
					"Capability references unknown concern id '%s'", cid)
			}
		}
	}

	for _, c := range spec.Concerns {
		slID := c.Measurement.ServiceLevelID
		if slID != "" && !serviceLevels.Has(slID) {
			log.Errorf(types.CodeBrokenLink, entityLoc(types.EntityConcerns, c.ID, "measurement.service_level_id"),
				"Concern references unknown service level id '%s'", slID)
		}
	}
}

func (a *Analyzer) checkCoverage(spec *model.Spec, log *model.IssueLog) {
	concernsByStakeholder := spec.ConcernsByStakeholder()
	for _, sid := range sortedKeys(concernsByStakeholder) {
		if len(concernsByStakeholder[sid]) == 0 {
			log.Warnf(types.CodeGap, entityLoc(types.EntityStakeholders, sid, ""),
				"Stakeholder has no concerns mapped to it")
		}
	}

	capsByConcern := spec.CapabilitiesByConcern()
	for _, cid := range sortedKeys(capsByConcern) {
		if len(capsByConcern[cid]) == 0 {
			log.Warnf(types.CodeGap, entityLoc(types.EntityConcerns, cid, ""),
				"Concern is not addressed by any capability")
		}
	}

	for _, capability := range spec.Capabilities {
		if len(capability.AddressesConcerns) == 0 {
			log.Warnf(types.CodeGap, entityLoc(types.EntityCapabilities, capability.ID, ""),
				"Capability is not linked to any concerns")
		}
	}
}

func (a *Analyzer) checkMeasurements(spec *model.Spec, log *model.IssueLog) {
	for _, c := range spec.Concerns {
		loc := entityLoc(types.EntityConcerns, c.ID, "measurement")
		if c.HasTag(a.vocab.OperationalTag) && !c.Measurement.HasIndicator() {
			log.Warnf(types.CodeMissingMeasurement, loc,
				"Operational concern is missing measurement.sli or measurement.service_level_id")
		}
		if c.Measurement.HasTarget() && !c.Measurement.HasIndicator() {
			log.Warnf(types.CodeIncompleteSLOSLA, loc,
				"SLO/SLA stated but no SLI (or service_level_id) defined")
		}
	}
}

// checkOperationalCoverage flags Business+Operational concerns whose linked
// capabilities carry no Operational tag, explicit or inferred
func (a *Analyzer) checkOperationalCoverage(spec *model.Spec, log *model.IssueLog) {
	operational := model.IDSet{}
	for _, capability := range spec.Capabilities {
		tags := capability.Tags
		if len(tags) == 0 {
			tags = a.classify(capability.Name, capability.Description)
		}
		for _, t := range tags {
			if strings.TrimSpace(t) == a.vocab.OperationalTag {
				operational[capability.ID] = true
			}
		}
	}

	capsByConcern := spec.CapabilitiesByConcern()
	for _, c := range spec.Concerns {
		if !c.HasTag(a.vocab.BusinessTag) || !c.HasTag(a.vocab.OperationalTag) {
			continue
		}
		linked := capsByConcern[c.ID]
		if len(linked) == 0 {
			continue
		}
		covered := false
		for _, capID := range linked {
			if operational.Has(capID) {
				covered = true
				break
			}
		}
		if !covered {
			log.Warnf(types.CodeGap, entityLoc(types.EntityConcerns, c.ID, ""),
				"Double-tag concern (Business+Operational) has no operational capability linked")
		}
	}
}

func (a *Analyzer) checkServiceLevels(spec *model.Spec, log *model.IssueLog) {
	referenced := model.IDSet{}
	for _, c := range spec.Concerns {
		if c.Measurement.ServiceLevelID != "" {
			referenced[c.Measurement.ServiceLevelID] = true
		}
	}

	for _, sl := range spec.ServiceLevels {
		if sl.SLIDefinition == "" {
			log.Warnf(types.CodeMissingField, entityLoc(types.EntityServiceLevels, sl.ID, "sli_definition"),
				"Missing SLI definition")
		}
		if sl.Window == "" {
			log.Warnf(types.CodeMissingField, entityLoc(types.EntityServiceLevels, sl.ID, "window"),
				"Missing measurement window")
		}
		if !referenced.Has(sl.ID) {
			log.Infof(types.CodeUnused, entityLoc(types.EntityServiceLevels, sl.ID, ""),
				"Service level is defined but not referenced by any concern.measurement.service_level_id")
		}
	}
}

func (a *Analyzer) checkRisks(spec *model.Spec, log *model.IssueLog) {
	stakeholders := spec.StakeholderIDs()
	concerns := spec.ConcernIDs()
	capabilities := spec.CapabilityIDs()
	serviceLevels := spec.ServiceLevelIDs()

	for _, r := range spec.Risks {
		loc := func(field string) string { return entityLoc(types.EntityRisks, r.ID, field) }

		if r.Owner != "" && !stakeholders.Has(r.Owner) {
			log.Errorf(types.CodeBrokenLink, loc("owner"),
				"Risk owner references unknown stakeholder id '%s'", r.Owner)
		}

		for _, id := range r.AffectedConcerns {
			if !concerns.Has(id) {
				log.Errorf(types.CodeBrokenLink, loc("affected_concerns"),
					"Risk references unknown concern id '%s'", id)
			}
		}
		for _, id := range r.AffectedCapabilities {
			if !capabilities.Has(id) {
				log.Errorf(types.CodeBrokenLink, loc("affected_capabilities"),
					"Risk references unknown capability id '%s'", id)
			}
		}
		for _, id := range r.ThreatenedServiceLevels {
			if !serviceLevels.Has(id) {
				log.Errorf(types.CodeBrokenLink, loc("threatened_service_levels"),
					"Risk references unknown service level id '%s'", id)
			}
		}

		if len(r.AffectedConcerns) == 0 {
			log.Warnf(types.CodeGap, loc("affected_concerns"),
				"Risk has no affected concerns linked (recommend link to ISO42010 concerns)")
		}
		if len(r.AffectedCapabilities) == 0 {
			log.Warnf(types.CodeGap, loc("affected_capabilities"),
				"Risk has no affected capabilities linked (recommend link to MODAF capabilities/views)")
		}
		if r.Mitigation == "" {
			log.Warnf(types.CodeMissingField, loc("mitigation"), "Risk mitigation is missing/empty")
		}

		if a.vocab.IsProgrammaticRisk(r.Type) && !r.LinksView(a.vocab.ProgrammeViewMarker) {
			log.Warnf(types.CodeMissingViewLink, loc("linked_views"),
				"Programmatic/acquisition/schedule risk should link to %s (Programme Timelines)", a.vocab.ProgrammeViewMarker)
		}
		if len(r.LinkedViews) == 0 {
			log.Infof(types.CodeGap, loc("linked_views"),
				"Risk has no linked_views (recommend AV-1 + relevant OV/SV/AcV references)")
		}
	}
}

// entityLoc formats an analyzer location as "kind:ID" or "kind:ID.field"
func entityLoc(kind types.EntityKind, id, field string) string {
	loc := kind.String() + ":" + id
	if field != "" {
		loc += "." + field
	}
	return loc
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
