package types

import "fmt"

// Severity represents how serious an issue is
type Severity string

const (
	SeverityError Severity = "ERROR"
	SeverityWarn  Severity = "WARN"
	SeverityInfo  Severity = "INFO"
)

// severityRank is the canonical ordering used when sorting issues
var severityRank = map[Severity]int{
	SeverityError: 0,
	SeverityWarn:  1,
	SeverityInfo:  2,
}

// AllSeverities returns all valid severities in canonical order
func AllSeverities() []Severity {
	return []Severity{
		SeverityError,
		SeverityWarn,
		SeverityInfo,
	}
}

// IsValid checks if the severity is valid
func (s Severity) IsValid() bool {
	_, ok := severityRank[s]
	return ok
}

// Rank returns the sort rank of the severity. Unknown severities sort last.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return 99
}

// IsGap reports whether issues of this severity belong in gap listings
func (s Severity) IsGap() bool {
	return s == SeverityError || s == SeverityWarn
}

// String returns the string representation of the severity
func (s Severity) String() string {
	return string(s)
}

// ParseSeverity parses a string into a Severity
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if !sev.IsValid() {
		return "", fmt.Errorf("invalid severity: %s", s)
	}
	return sev, nil
}
