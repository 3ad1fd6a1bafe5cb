package cli

import (
	"context"
	"errors"

	"github.com/secmon-lab/adtool/pkg/cli/config"
	"github.com/secmon-lab/adtool/pkg/utils/errutil"
	"github.com/secmon-lab/adtool/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Run executes the command line. A failed run is logged here, before the
// log output is released; ExitStatus results are policy outcomes and are
// not logged.
func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var closer func()
	defer func() {
		if closer != nil {
			closer()
		}
	}()

	app := &cli.Command{
		Name:        "adtool",
		Usage:       "Build architecture documents from YAML specs",
		Version:     version,
		HideVersion: true,
		Flags:       loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Debug("Starting adtool", "version", version, "logger", loggerCfg)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdValidate(),
			cmdBuild(),
			cmdServe(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		var status *ExitStatus
		if !errors.As(err, &status) {
			errutil.Log(ctx, err, "failed to run app")
		}
		return err
	}

	return nil
}
