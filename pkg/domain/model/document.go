package model

// DocumentView is the rendering context of an architecture document.
// Row fields are display-ready: flattened to one line, table delimiters
// escaped and missing values replaced by markers. Templates bind to these
// names only, so any template text renders from the same surface.
type DocumentView struct {
	SystemName string
	DocumentID string
	Version    string
	Date       string
	Status     string
	Scope      string
	Glossary   []GlossaryTerm

	Stakeholders    []StakeholderRow
	Concerns        []ConcernRow
	ConcernTagViews []TagViewRow
	Capabilities    []CapabilityRow
	Risks           []RiskRow
	ServiceLevels   []ServiceLevelRow

	StakeholderTrace []TraceRow
	ConcernTrace     []TraceRow
	RiskTrace        []string

	// Gaps holds ERROR and WARN issues only
	Gaps []GapRow

	// Spec and Issues expose the unformatted data for alternate templates
	Spec   *Spec
	Issues []Issue
}

// StakeholderRow is a row of the stakeholder table
type StakeholderRow struct {
	ID          string
	Name        string
	Description string
}

// ConcernRow is a row of the concern registry
type ConcernRow struct {
	ID           string
	Name         string
	Description  string
	Stakeholders string
	Tags         string
	Measurement  string
}

// TagViewRow lists the concerns carrying one tag
type TagViewRow struct {
	Tag      string
	Concerns string
}

// CapabilityRow is a row of the capability table
type CapabilityRow struct {
	ID          string
	Name        string
	Description string
	Concerns    string
	Constraints string
	Tags        string
}

// RiskRow is a row of the risk register
type RiskRow struct {
	ID            string
	Title         string
	Type          string
	Status        string
	Owner         string
	Concerns      string
	Capabilities  string
	ServiceLevels string
	Views         string
	Mitigation    string
}

// ServiceLevelRow is a row of the service level catalog
type ServiceLevelRow struct {
	ID             string
	Name           string
	SLIDefinition  string
	Window         string
	Exclusions     string
	TargetSLO      string
	ContractualSLA string
}

// TraceRow is one traceability line: an entity and what it links to
type TraceRow struct {
	ID      string
	Name    string
	Targets string
}

// GapRow is a row of the gaps table
type GapRow struct {
	Severity string
	Code     string
	Location string
	Message  string
}
