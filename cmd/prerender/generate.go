package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/prerender/internal/adapters/cli"
	"github.com/3-lines-studio/prerender/internal/adapters/fs"
	"github.com/3-lines-studio/prerender/internal/adapters/metrics"
	"github.com/3-lines-studio/prerender/internal/adapters/minify"
	"github.com/3-lines-studio/prerender/internal/core"
	"github.com/3-lines-studio/prerender/internal/usecase"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var (
		outputDir       string
		concurrency     int
		continueOnError bool
		skipBuild       bool
		collisions      string
		metricsFile     string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the application and render every route to static HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("out") {
				cfg.OutputDir = outputDir
			}
			if flags.Changed("concurrency") {
				cfg.Concurrency = concurrency
			}
			if flags.Changed("continue-on-error") {
				cfg.ContinueOnError = continueOnError
			}
			if flags.Changed("skip-build") {
				cfg.Build.Skip = skipBuild
			}
			if flags.Changed("collisions") {
				cfg.Collisions = collisions
			}
			if flags.Changed("metrics-file") {
				cfg.MetricsFile = metricsFile
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			sources, err := paramSources(cfg)
			if err != nil {
				return err
			}

			renderer, err := newRenderer(cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := renderer.Stop(); err != nil {
					logger.Warn("Failed to stop render server", "error", err)
				}
			}()

			recorder := metrics.New()
			service := usecase.NewGenerateService(
				newBuilder(cfg),
				renderer,
				minify.New(),
				fs.NewOSFileSystem(),
				usecase.WithCLI(cli.NewOutput()),
				usecase.WithLogger(logger),
				usecase.WithMetrics(recorder),
			)

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			output := service.GenerateSite(runCtx, generateInput(cfg, sources))

			if cfg.MetricsFile != "" {
				if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
					logger.Warn("Failed to write metrics", "path", cfg.MetricsFile, "error", err)
				}
			}

			return output.Error
		},
	}

	cmd.Flags().StringVarP(&outputDir, "out", "o", "", "Output directory")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Pages rendered per batch")
	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "Keep rendering after a page fails")
	cmd.Flags().BoolVar(&skipBuild, "skip-build", false, "Skip the application build step")
	cmd.Flags().StringVar(&collisions, "collisions", "", "Duplicate output paths: "+collisionChoices())
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file")

	return cmd
}

func collisionChoices() string {
	return string(core.CollisionOverwrite) + ", " + string(core.CollisionWarn) + " or " + string(core.CollisionError)
}
