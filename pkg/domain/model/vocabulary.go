package model

import "strings"

// GlossaryTerm is one entry of the document glossary
type GlossaryTerm struct {
	Term       string `yaml:"term" toml:"term" json:"term"`
	Definition string `yaml:"definition" toml:"definition" json:"definition"`
}

// Vocabulary holds the fixed keyword tables used by the analyzer and the
// renderer. It is built once at process start and never mutated afterwards.
type Vocabulary struct {
	// OperationalKeywords are substrings of a capability name/description
	// that imply the Operational tag when the capability has no explicit tags
	OperationalKeywords []string
	// ProgrammaticKeywords are substrings of a risk type marking
	// programme, acquisition or schedule risks
	ProgrammaticKeywords []string
	// ProgrammeViewMarker must appear in a linked view of a programmatic risk
	ProgrammeViewMarker string
	OperationalTag      string
	BusinessTag         string
	// ConcernTagViews are the tags listed in the "concern views by tag" section
	ConcernTagViews []string
	// DefaultGlossary is rendered when the metadata carries no glossary
	DefaultGlossary []GlossaryTerm
}

// DefaultVocabulary returns the built-in keyword tables
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		OperationalKeywords: []string{
			"observ", "monitor", "metric", "log", "trace", "diagnos", "alert",
			"deploy", "release", "rollback", "migration", "runbook", "sre", "ops",
			"availability", "resilien", "incident",
		},
		ProgrammaticKeywords: []string{
			"program", "programme", "acquisition", "schedule", "timeline",
		},
		ProgrammeViewMarker: "AcV-2",
		OperationalTag:      "Operational",
		BusinessTag:         "Business",
		ConcernTagViews: []string{
			"Business", "Operational", "Security", "Compliance", "Data",
		},
		DefaultGlossary: []GlossaryTerm{
			{Term: "Stakeholder", Definition: "A party whose interests are affected by the architecture."},
			{Term: "Concern", Definition: "A significant interest or question the architecture must address."},
			{Term: "Capability", Definition: "An ability of the system to deliver a specific outcome (what the system must be able to do)."},
			{Term: "SLO (Service Level Objective)", Definition: "Target service level (internal, operational)."},
			{Term: "SLA (Service Level Agreement)", Definition: "Agreed, contractual service level."},
			{Term: "Risk", Definition: "An uncertainty that may affect concerns, capabilities, SLAs and project goals."},
		},
	}
}

// ClassifyCapability infers tags from a capability name and description.
// It yields the Operational tag when any operational keyword occurs
// (case-insensitive). The result is never written back to the capability.
func (v *Vocabulary) ClassifyCapability(name, description string) []string {
	text := strings.ToLower(name + " " + description)
	for _, kw := range v.OperationalKeywords {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			return []string{v.OperationalTag}
		}
	}
	return nil
}

// IsProgrammaticRisk reports whether a risk type names a programme,
// acquisition or schedule risk
func (v *Vocabulary) IsProgrammaticRisk(riskType string) bool {
	t := strings.ToLower(strings.TrimSpace(riskType))
	if t == "" {
		return false
	}
	for _, kw := range v.ProgrammaticKeywords {
		if kw != "" && strings.Contains(t, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
