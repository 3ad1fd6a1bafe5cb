package usecase_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/adtool/pkg/domain/model"
	"github.com/secmon-lab/adtool/pkg/domain/types"
)

// writeSpec creates a spec directory holding the given files
func writeSpec(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		gt.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600)).Required()
	}
	return dir
}

// findIssues returns the issues matching code and location
func findIssues(issues []model.Issue, code types.IssueCode, location string) []model.Issue {
	var out []model.Issue
	for _, issue := range issues {
		if issue.Code == code && issue.Location == location {
			out = append(out, issue)
		}
	}
	return out
}

func countSeverity(issues []model.Issue, sev types.Severity) int {
	n := 0
	for _, issue := range issues {
		if issue.Severity == sev {
			n++
		}
	}
	return n
}

const minimalStakeholders = `
stakeholders:
  - id: STK-1
    name: Ops
`

const minimalConcerns = `
concerns:
  - id: C-1
    name: Uptime
    description: x
    stakeholders: [STK-1]
    measurement: {}
`

const emptyCapabilities = `
capabilities: []
`
