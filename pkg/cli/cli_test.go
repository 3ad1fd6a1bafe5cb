package cli_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/adtool/pkg/cli"
)

const (
	stakeholdersYAML = "stakeholders:\n  - id: STK-1\n    name: Ops\n"
	warnConcernsYAML = "concerns:\n  - id: C-1\n    name: Uptime\n    description: x\n    stakeholders: [STK-1]\n    measurement: {}\n"
	brokenLinkYAML   = "concerns:\n  - id: C-1\n    name: Uptime\n    description: x\n    stakeholders: [STK-9]\n"
	capabilitiesYAML = "capabilities: []\n"
	coveredCapsYAML  = "capabilities:\n  - id: CAP-1\n    name: Ops console\n    description: d\n    addresses_concerns: [C-1]\n"
)

func writeSpecDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		gt.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600)).Required()
	}
	return dir
}

func run(args ...string) int {
	err := cli.Run(context.Background(), append([]string{"adtool", "--log-level", "error"}, args...), "test")
	return cli.ExitCode(err)
}

func TestExitCodeContract(t *testing.T) {
	warnOnly := map[string]string{
		"stakeholders.yaml": stakeholdersYAML,
		"concerns.yaml":     warnConcernsYAML,
		"capabilities.yaml": capabilitiesYAML,
	}
	withError := map[string]string{
		"stakeholders.yaml": stakeholdersYAML,
		"concerns.yaml":     brokenLinkYAML,
		"capabilities.yaml": coveredCapsYAML,
	}
	clean := map[string]string{
		"stakeholders.yaml": stakeholdersYAML,
		"concerns.yaml":     warnConcernsYAML,
		"capabilities.yaml": coveredCapsYAML,
	}

	tests := []struct {
		name       string
		files      map[string]string
		failOnWarn bool
		want       int
	}{
		{name: "warn only", files: warnOnly, want: 0},
		{name: "warn only with fail-on-warn", files: warnOnly, failOnWarn: true, want: 1},
		{name: "error", files: withError, want: 2},
		{name: "error with fail-on-warn", files: withError, failOnWarn: true, want: 2},
		{name: "clean", files: clean, want: 0},
		{name: "clean with fail-on-warn", files: clean, failOnWarn: true, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeSpecDir(t, tt.files)

			validateArgs := []string{"validate"}
			if tt.failOnWarn {
				validateArgs = append(validateArgs, "--fail-on-warn")
			}
			gt.Value(t, run(append(validateArgs, dir)...)).Equal(tt.want)

			out := filepath.Join(t.TempDir(), "AD.md")
			buildArgs := []string{"build", "--out", out}
			if tt.failOnWarn {
				buildArgs = append(buildArgs, "--fail-on-warn")
			}
			gt.Value(t, run(append(buildArgs, dir)...)).Equal(tt.want)

			for _, name := range []string{"AD.md", "gaps.md", "validation_report.json"} {
				_, err := os.Stat(filepath.Join(filepath.Dir(out), name))
				gt.NoError(t, err)
			}
		})
	}
}

func TestValidateWritesReport(t *testing.T) {
	dir := writeSpecDir(t, map[string]string{
		"stakeholders.yaml": stakeholdersYAML,
		"concerns.yaml":     warnConcernsYAML,
		"capabilities.yaml": capabilitiesYAML,
	})
	report := filepath.Join(t.TempDir(), "nested", "report.json")

	gt.Value(t, run("validate", "--report", report, dir)).Equal(0)

	data, err := os.ReadFile(report)
	gt.NoError(t, err).Required()
	gt.String(t, string(data)).Contains(`"WARN": 1`)
}

func TestAbortedRuns(t *testing.T) {
	t.Run("missing spec dir argument", func(t *testing.T) {
		gt.Value(t, run("validate")).Equal(2)
	})

	t.Run("spec dir does not exist", func(t *testing.T) {
		gt.Value(t, run("validate", filepath.Join(t.TempDir(), "missing"))).Equal(2)
	})

	t.Run("build without --out", func(t *testing.T) {
		gt.Value(t, run("build", t.TempDir())).Equal(2)
	})

	t.Run("unsupported format", func(t *testing.T) {
		dir := writeSpecDir(t, map[string]string{"stakeholders.yaml": stakeholdersYAML})
		out := filepath.Join(t.TempDir(), "AD.md")
		gt.Value(t, run("build", "--out", out, "--format", "pdf", dir)).Equal(2)
	})
}

func TestExitCode(t *testing.T) {
	gt.Value(t, cli.ExitCode(nil)).Equal(0)
	gt.Value(t, cli.ExitCode(&cli.ExitStatus{Code: 1})).Equal(1)
	gt.Value(t, cli.ExitCode(errors.New("boom"))).Equal(2)
}

func TestAbortedRunIsLoggedOnce(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "adtool.log")
	args := []string{"adtool", "--log-format", "json", "--log-output", logPath,
		"validate", filepath.Join(t.TempDir(), "missing")}

	err := cli.Run(context.Background(), args, "test")
	gt.Value(t, cli.ExitCode(err)).Equal(2)

	data, err := os.ReadFile(logPath)
	gt.NoError(t, err).Required()
	gt.Value(t, strings.Count(string(data), `"level":"ERROR"`)).Equal(1)
	gt.String(t, string(data)).Contains(`"msg":"failed to run app"`)
}

func TestPolicyExitIsNotLogged(t *testing.T) {
	dir := writeSpecDir(t, map[string]string{
		"stakeholders.yaml": stakeholdersYAML,
		"concerns.yaml":     brokenLinkYAML,
		"capabilities.yaml": coveredCapsYAML,
	})
	logPath := filepath.Join(t.TempDir(), "adtool.log")
	args := []string{"adtool", "--log-format", "json", "--log-output", logPath, "validate", dir}

	err := cli.Run(context.Background(), args, "test")
	gt.Value(t, cli.ExitCode(err)).Equal(2)

	data, err := os.ReadFile(logPath)
	gt.NoError(t, err).Required()
	gt.Value(t, strings.Count(string(data), `"level":"ERROR"`)).Equal(0)
}
