package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/adtool/pkg/cli/config"
	httpctrl "github.com/secmon-lab/adtool/pkg/controller/http"
	"github.com/secmon-lab/adtool/pkg/domain/model"
	"github.com/secmon-lab/adtool/pkg/repository/specfs"
	"github.com/secmon-lab/adtool/pkg/usecase"
	"github.com/secmon-lab/adtool/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var specsDir string
	var outputDir string
	var vocabCfg config.Vocabulary
	var meta model.Metadata

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("ADTOOL_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "specs-dir",
			Usage:       "Root directory holding one spec directory per architecture",
			Value:       "specs",
			Sources:     cli.EnvVars("ADTOOL_SPECS_DIR"),
			Destination: &specsDir,
		},
		&cli.StringFlag{
			Name:        "output-dir",
			Usage:       "Directory receiving build outputs",
			Value:       "build",
			Sources:     cli.EnvVars("ADTOOL_OUTPUT_DIR"),
			Destination: &outputDir,
		},
	}
	flags = append(flags, metadataFlags(&meta)...)
	flags = append(flags, vocabCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP API over a specs directory",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			vocab, err := vocabCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure vocabulary")
			}

			store, err := specfs.New(specsDir)
			if err != nil {
				return goerr.Wrap(err, "failed to open specs directory")
			}

			uc := usecase.New(
				usecase.WithVocabulary(vocab),
				usecase.WithSpecStore(store),
			)

			handler := httpctrl.New(uc, store,
				httpctrl.WithOutputDir(outputDir),
				httpctrl.WithBuildDefaults(func(string) usecase.BuildInput {
					return usecase.BuildInput{Metadata: meta}
				}),
			)
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "specs_dir", store.Root())
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
