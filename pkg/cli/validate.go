package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/adtool/pkg/cli/config"
	"github.com/secmon-lab/adtool/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// ErrMissingSpecDir is returned when the spec directory argument is absent
var ErrMissingSpecDir = goerr.New("spec directory argument is required")

func cmdValidate() *cli.Command {
	var vocabCfg config.Vocabulary
	var reportPath string
	var failOnWarn bool

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "report",
			Usage:       "Write the JSON validation report to this path",
			Sources:     cli.EnvVars("ADTOOL_REPORT"),
			Destination: &reportPath,
		},
		&cli.BoolFlag{
			Name:        "fail-on-warn",
			Usage:       "Exit with 1 when warnings are present",
			Sources:     cli.EnvVars("ADTOOL_FAIL_ON_WARN"),
			Destination: &failOnWarn,
		},
	}
	flags = append(flags, vocabCfg.Flags()...)

	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Validate a spec directory",
		ArgsUsage: "<spec_dir>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			specDir := c.Args().First()
			if specDir == "" {
				return ErrMissingSpecDir
			}

			vocab, err := vocabCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure vocabulary")
			}

			uc := usecase.New(usecase.WithVocabulary(vocab))
			result, err := uc.Validate(ctx, usecase.ValidateInput{
				SpecDir:    specDir,
				ReportPath: reportPath,
			})
			if err != nil {
				return err
			}

			summary := result.Analysis.Summary()
			printSummary(c.Root().Writer, "Validation summary", summary)
			return exitStatus(summary.ExitCode(failOnWarn))
		},
	}
}
