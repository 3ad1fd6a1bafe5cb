package model

import (
	"fmt"
	"sort"

	"github.com/secmon-lab/adtool/pkg/domain/types"
)

// Issue is a single finding produced while loading, parsing or analyzing a spec.
// Issues are facts: once created they are never modified.
type Issue struct {
	Severity types.Severity  `json:"severity"`
	Code     types.IssueCode `json:"code"`
	Location string          `json:"location"`
	Message  string          `json:"message"`
}

// Less reports whether a sorts before b in the canonical
// (severity rank, code, location, message) order
func (a Issue) Less(b Issue) bool {
	if ra, rb := a.Severity.Rank(), b.Severity.Rank(); ra != rb {
		return ra < rb
	}
	if a.Code != b.Code {
		return a.Code < b.Code
	}
	if a.Location != b.Location {
		return a.Location < b.Location
	}
	return a.Message < b.Message
}

// SortIssues sorts issues in place in canonical order
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Less(issues[j])
	})
}

// GapIssues returns the ERROR and WARN issues, preserving order
func GapIssues(issues []Issue) []Issue {
	var gaps []Issue
	for _, issue := range issues {
		if issue.Severity.IsGap() {
			gaps = append(gaps, issue)
		}
	}
	return gaps
}

// IssueLog accumulates issues across the whole pipeline.
// It is passed by pointer from the loader through the analyzer.
type IssueLog struct {
	issues []Issue
}

// NewIssueLog creates an empty IssueLog
func NewIssueLog() *IssueLog {
	return &IssueLog{}
}

// Add appends issues to the log
func (l *IssueLog) Add(issues ...Issue) {
	l.issues = append(l.issues, issues...)
}

// Errorf appends an ERROR issue
func (l *IssueLog) Errorf(code types.IssueCode, location, format string, args ...any) {
	l.add(types.SeverityError, code, location, format, args...)
}

// Warnf appends a WARN issue
func (l *IssueLog) Warnf(code types.IssueCode, location, format string, args ...any) {
	l.add(types.SeverityWarn, code, location, format, args...)
}

// Infof appends an INFO issue
func (l *IssueLog) Infof(code types.IssueCode, location, format string, args ...any) {
	l.add(types.SeverityInfo, code, location, format, args...)
}

func (l *IssueLog) add(sev types.Severity, code types.IssueCode, location, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	l.issues = append(l.issues, Issue{
		Severity: sev,
		Code:     code,
		Location: location,
		Message:  msg,
	})
}

// Len returns the number of issues recorded so far
func (l *IssueLog) Len() int {
	return len(l.issues)
}

// Sort orders the log in canonical order
func (l *IssueLog) Sort() {
	SortIssues(l.issues)
}

// Issues returns a copy of the recorded issues
func (l *IssueLog) Issues() []Issue {
	out := make([]Issue, len(l.issues))
	copy(out, l.issues)
	return out
}

// Summary counts issues per severity
type Summary struct {
	Error int `json:"ERROR"`
	Warn  int `json:"WARN"`
	Info  int `json:"INFO"`
}

// Summarize counts issues per severity
func Summarize(issues []Issue) Summary {
	var s Summary
	for _, issue := range issues {
		switch issue.Severity {
		case types.SeverityError:
			s.Error++
		case types.SeverityWarn:
			s.Warn++
		case types.SeverityInfo:
			s.Info++
		}
	}
	return s
}

// ExitCode applies the exit-code policy: 2 when any ERROR is present,
// 1 when WARN is present and failOnWarn is set, 0 otherwise
func (s Summary) ExitCode(failOnWarn bool) int {
	if s.Error > 0 {
		return 2
	}
	if failOnWarn && s.Warn > 0 {
		return 1
	}
	return 0
}

// String formats the summary as "ERROR=n WARN=n INFO=n"
func (s Summary) String() string {
	return fmt.Sprintf("ERROR=%d WARN=%d INFO=%d", s.Error, s.Warn, s.Info)
}
