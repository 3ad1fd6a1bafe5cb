package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/adtool/pkg/cli/config"
	"github.com/secmon-lab/adtool/pkg/domain/model"
	"github.com/secmon-lab/adtool/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdBuild() *cli.Command {
	var vocabCfg config.Vocabulary
	var input usecase.BuildInput
	var failOnWarn bool

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "out",
			Usage:       "Output path of the architecture document",
			Required:    true,
			Destination: &input.OutPath,
		},
		&cli.StringFlag{
			Name:        "gaps",
			Usage:       "Output path of the gaps document (default: gaps.md next to --out)",
			Destination: &input.GapsPath,
		},
		&cli.StringFlag{
			Name:        "report",
			Usage:       "Output path of the JSON report (default: validation_report.json next to --out)",
			Destination: &input.ReportPath,
		},
		&cli.StringFlag{
			Name:        "template",
			Usage:       "Document template replacing the built-in one",
			Sources:     cli.EnvVars("ADTOOL_TEMPLATE"),
			Destination: &input.TemplatePath,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Output format [md|docx] (default: inferred from --out)",
			Destination: &input.Format,
		},
		&cli.StringFlag{
			Name:        "glossary",
			Usage:       "YAML glossary file rendered in the document",
			Sources:     cli.EnvVars("ADTOOL_GLOSSARY"),
			Destination: &input.GlossaryPath,
		},
		&cli.BoolFlag{
			Name:        "fail-on-warn",
			Usage:       "Exit with 1 when warnings are present",
			Sources:     cli.EnvVars("ADTOOL_FAIL_ON_WARN"),
			Destination: &failOnWarn,
		},
	}
	flags = append(flags, metadataFlags(&input.Metadata)...)
	flags = append(flags, vocabCfg.Flags()...)

	return &cli.Command{
		Name:      "build",
		Aliases:   []string{"b"},
		Usage:     "Build the architecture document, the gaps document and the report",
		ArgsUsage: "<spec_dir>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			input.SpecDir = c.Args().First()
			if input.SpecDir == "" {
				return ErrMissingSpecDir
			}

			vocab, err := vocabCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure vocabulary")
			}

			uc := usecase.New(usecase.WithVocabulary(vocab))
			result, err := uc.Build(ctx, input)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			fmt.Fprintf(w, "Built AD: %s\n", result.OutPath)
			fmt.Fprintf(w, "Gaps: %s\n", result.GapsPath)
			fmt.Fprintf(w, "Report: %s\n", result.ReportPath)

			summary := result.Analysis.Summary()
			printSummary(w, "Summary", summary)
			return exitStatus(summary.ExitCode(failOnWarn))
		},
	}
}

func metadataFlags(meta *model.Metadata) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "system-name",
			Category:    "Document",
			Usage:       "System name",
			Value:       model.DefaultSystemName,
			Destination: &meta.SystemName,
		},
		&cli.StringFlag{
			Name:        "document-id",
			Category:    "Document",
			Usage:       "Document identifier",
			Value:       model.DefaultDocumentID,
			Destination: &meta.DocumentID,
		},
		&cli.StringFlag{
			Name:        "version",
			Category:    "Document",
			Usage:       "Document version",
			Value:       model.DefaultVersion,
			Destination: &meta.Version,
		},
		&cli.StringFlag{
			Name:        "date",
			Category:    "Document",
			Usage:       "Document date (default: today)",
			Destination: &meta.Date,
		},
		&cli.StringFlag{
			Name:        "status",
			Category:    "Document",
			Usage:       "Document status",
			Value:       model.DefaultStatus,
			Destination: &meta.Status,
		},
		&cli.StringFlag{
			Name:        "scope",
			Category:    "Document",
			Usage:       "Scope statement",
			Destination: &meta.Scope,
		},
	}
}
