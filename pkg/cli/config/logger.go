package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/adtool/pkg/utils/logging"
	"github.com/secmon-lab/adtool/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// Logger holds the logging flags
type Logger struct {
	level  string
	format string
	output string
}

// Flags returns the logging flags
func (x *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Category:    "Logging",
			Usage:       "Log level [debug|info|warn|error]",
			Value:       "info",
			Sources:     cli.EnvVars("ADTOOL_LOG_LEVEL"),
			Destination: &x.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Category:    "Logging",
			Usage:       "Log format [console|json]",
			Value:       "console",
			Sources:     cli.EnvVars("ADTOOL_LOG_FORMAT"),
			Destination: &x.format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Category:    "Logging",
			Usage:       "Log output [stderr|stdout|<file path>]",
			Value:       "stderr",
			Sources:     cli.EnvVars("ADTOOL_LOG_OUTPUT"),
			Destination: &x.output,
		},
	}
}

// LogValue lets the configuration itself be logged
func (x Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", x.level),
		slog.String("format", x.format),
		slog.String("output", x.output),
	)
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// NewLogger builds the logger described by the flags. The returned closer
// releases the log file, if any.
func (x *Logger) NewLogger() (*slog.Logger, func(), error) {
	level, ok := logLevels[strings.ToLower(x.level)]
	if !ok {
		return nil, nil, goerr.Wrap(ErrInvalidLogLevel, "unsupported log level",
			goerr.V(LogLevelKey, x.level))
	}

	closer := func() {}
	var w io.Writer
	color := false
	switch x.output {
	case "", "stderr":
		w, color = os.Stderr, true
	case "stdout":
		w, color = os.Stdout, true
	default:
		// #nosec G304 - log path is given by the operator
		f, err := os.OpenFile(x.output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to open log file",
				goerr.V(ConfigPathKey, x.output))
		}
		w = f
		closer = func() { safe.Close(context.Background(), f) }
	}

	var handler slog.Handler
	switch x.format {
	case "", "console":
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithColor(color),
		)
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		closer()
		return nil, nil, goerr.Wrap(ErrInvalidLogFormat, "unsupported log format",
			goerr.V(LogFormatKey, x.format))
	}

	return slog.New(handler), closer, nil
}

// Configure builds the logger and installs it as the process default
func (x *Logger) Configure() (func(), error) {
	logger, closer, err := x.NewLogger()
	if err != nil {
		return nil, err
	}
	logging.SetDefault(logger)
	return closer, nil
}
