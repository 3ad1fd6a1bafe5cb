package usecase

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/adtool/pkg/domain/interfaces"
	"github.com/secmon-lab/adtool/pkg/domain/model"
	"github.com/secmon-lab/adtool/pkg/domain/types"
	"github.com/secmon-lab/adtool/pkg/service/render"
	"github.com/secmon-lab/adtool/pkg/service/report"
	"github.com/secmon-lab/adtool/pkg/service/richtext"
	"github.com/secmon-lab/adtool/pkg/utils/logging"
	"github.com/secmon-lab/adtool/pkg/utils/safe"
)

// Default output file names placed next to the document
const (
	DefaultGapsFileName   = "gaps.md"
	DefaultReportFileName = "validation_report.json"
)

// Analysis is the parsed spec of one directory and every issue found in it
type Analysis struct {
	// SpecDir is the absolute spec directory
	SpecDir string
	Spec    *model.Spec
	// Issues are in canonical order
	Issues []model.Issue
}

// Summary counts the issues per severity
func (a *Analysis) Summary() model.Summary {
	return model.Summarize(a.Issues)
}

// Analyze loads, parses and analyzes a spec directory
func (uc *UseCases) Analyze(ctx context.Context, specDir string) (*Analysis, error) {
	absDir, err := filepath.Abs(specDir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve spec directory",
			goerr.V(model.PathKey, specDir))
	}

	log := model.NewIssueLog()
	raw, err := LoadSpec(absDir, log)
	if err != nil {
		return nil, err
	}

	spec := ParseSpec(raw, log)
	log.Add(uc.analyzer.Analyze(spec)...)
	log.Sort()

	analysis := &Analysis{
		SpecDir: absDir,
		Spec:    spec,
		Issues:  log.Issues(),
	}

	logging.From(ctx).Debug("spec analyzed",
		"spec_dir", absDir,
		"stakeholders", len(spec.Stakeholders),
		"concerns", len(spec.Concerns),
		"capabilities", len(spec.Capabilities),
		"service_levels", len(spec.ServiceLevels),
		"risks", len(spec.Risks),
		"issues", len(analysis.Issues),
	)
	return analysis, nil
}

// ValidateInput selects the spec directory and the optional report path
type ValidateInput struct {
	SpecDir    string
	ReportPath string
}

// ValidateResult is the outcome of a validate run
type ValidateResult struct {
	Analysis *Analysis
	Report   *model.Report
}

// Validate analyzes a spec directory and writes the machine report when
// ReportPath is set
func (uc *UseCases) Validate(ctx context.Context, input ValidateInput) (*ValidateResult, error) {
	analysis, err := uc.Analyze(ctx, input.SpecDir)
	if err != nil {
		return nil, err
	}

	rep := model.NewReport(analysis.SpecDir, analysis.Issues, uc.now())
	if input.ReportPath != "" {
		if err := writeReport(ctx, input.ReportPath, rep); err != nil {
			return nil, err
		}
	}

	return &ValidateResult{Analysis: analysis, Report: rep}, nil
}

// BuildInput holds every build option. Empty paths select the defaults.
type BuildInput struct {
	SpecDir string
	// OutPath is required
	OutPath      string
	GapsPath     string
	ReportPath   string
	TemplatePath string
	// Format is "md" or "docx"; empty infers it from OutPath
	Format       string
	GlossaryPath string
	Metadata     model.Metadata
}

// BuildResult is the outcome of a build run
type BuildResult struct {
	Analysis   *Analysis
	Report     *model.Report
	Format     types.OutputFormat
	OutPath    string
	GapsPath   string
	ReportPath string
}

// Build runs the full pipeline and writes the document, the gaps document
// and the machine report. Issues in the spec never fail a build; only
// unusable inputs or unwritable outputs do.
func (uc *UseCases) Build(ctx context.Context, input BuildInput) (*BuildResult, error) {
	if input.OutPath == "" {
		return nil, goerr.Wrap(ErrMissingOutputPath, "build requires an output path")
	}

	format, err := types.ParseOutputFormat(input.Format, input.OutPath)
	if err != nil {
		return nil, goerr.Wrap(ErrUnsupportedFormat, err.Error(), goerr.V(FormatKey, input.Format))
	}

	renderer, err := uc.documentRenderer(input.TemplatePath)
	if err != nil {
		return nil, err
	}

	meta := input.Metadata
	if input.GlossaryPath != "" {
		glossary, err := LoadGlossary(input.GlossaryPath)
		if err != nil {
			return nil, err
		}
		meta.Glossary = glossary
	}

	analysis, err := uc.Analyze(ctx, input.SpecDir)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	meta = meta.WithDefaults(now)
	view := render.NewView(analysis.Spec, analysis.Issues, meta, uc.vocab, uc.classify)

	var buf bytes.Buffer
	if err := renderer.Render(&buf, view); err != nil {
		return nil, goerr.Wrap(ErrRenderDocument, err.Error(),
			goerr.V(model.PathKey, input.TemplatePath))
	}

	document := buf.Bytes()
	if format == types.OutputFormatDocx {
		document, err = richtext.MarkdownToDocx(buf.String())
		if err != nil {
			return nil, goerr.Wrap(ErrRenderDocument, err.Error(), goerr.V(FormatKey, format))
		}
	}

	result := &BuildResult{
		Analysis:   analysis,
		Report:     model.NewReport(analysis.SpecDir, analysis.Issues, now),
		Format:     format,
		OutPath:    input.OutPath,
		GapsPath:   input.GapsPath,
		ReportPath: input.ReportPath,
	}
	if result.GapsPath == "" {
		result.GapsPath = filepath.Join(filepath.Dir(input.OutPath), DefaultGapsFileName)
	}
	if result.ReportPath == "" {
		result.ReportPath = filepath.Join(filepath.Dir(input.OutPath), DefaultReportFileName)
	}

	if err := writeOutput(ctx, result.OutPath, document); err != nil {
		return nil, err
	}
	if err := writeOutput(ctx, result.GapsPath, []byte(report.GapsMarkdown(analysis.Issues))); err != nil {
		return nil, err
	}
	if err := writeReport(ctx, result.ReportPath, result.Report); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("architecture document built",
		"out", result.OutPath,
		"format", format,
		"summary", result.Report.Summary.String(),
	)
	return result, nil
}

func (uc *UseCases) documentRenderer(templatePath string) (interfaces.DocumentRenderer, error) {
	if templatePath == "" {
		return uc.renderer, nil
	}

	// #nosec G304 - template path is given by the operator
	text, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, goerr.Wrap(ErrTemplateLoad, err.Error(),
			goerr.V(model.PathKey, templatePath),
			goerr.V(model.OperationKey, "read"))
	}
	r, err := render.New(string(text))
	if err != nil {
		return nil, goerr.Wrap(ErrTemplateLoad, err.Error(),
			goerr.V(model.PathKey, templatePath),
			goerr.V(model.OperationKey, "parse"))
	}
	return r, nil
}

func writeReport(ctx context.Context, path string, rep *model.Report) error {
	b, err := report.Marshal(rep)
	if err != nil {
		return goerr.Wrap(ErrWriteOutput, err.Error(), goerr.V(model.PathKey, path))
	}
	return writeOutput(ctx, path, b)
}

func writeOutput(ctx context.Context, path string, data []byte) error {
	if err := safe.WriteFile(ctx, path, data); err != nil {
		return goerr.Wrap(ErrWriteOutput, err.Error(),
			goerr.V(model.PathKey, path),
			goerr.V(model.OperationKey, "write"))
	}
	return nil
}
