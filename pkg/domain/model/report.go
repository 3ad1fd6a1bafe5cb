package model

import "time"

// Report is the machine-readable validation report
type Report struct {
	GeneratedAt string  `json:"generated_at"`
	SpecDir     string  `json:"spec_dir"`
	Summary     Summary `json:"summary"`
	Issues      []Issue `json:"issues"`
}

// NewReport creates a report for issues already in canonical order
func NewReport(specDir string, issues []Issue, now time.Time) *Report {
	if issues == nil {
		issues = []Issue{}
	}
	return &Report{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		SpecDir:     specDir,
		Summary:     Summarize(issues),
		Issues:      issues,
	}
}
