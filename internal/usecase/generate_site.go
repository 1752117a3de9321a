package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/3-lines-studio/prerender/internal/adapters/cli"
	"github.com/3-lines-studio/prerender/internal/core"
)

var tracer = otel.Tracer("github.com/3-lines-studio/prerender")

type GenerateInput struct {
	Routes          []string
	RouteParams     map[string]core.ParamSource
	OutputDir       string
	StaticDir       string
	BuiltDir        string
	PublicPath      string
	BatchSize       int
	ContinueOnError bool
	Collisions      core.CollisionPolicy
}

type GenerateOutput struct {
	Success  bool
	Routes   []string
	Pages    int
	Batches  int
	Duration time.Duration
	Error    error
}

type GenerateService struct {
	builder  Builder
	renderer Renderer
	minifier Minifier
	fs       FileSystem
	cli      CLIOutput
	logger   *slog.Logger
	metrics  Metrics
}

type ServiceOption func(*GenerateService)

func WithCLI(out CLIOutput) ServiceOption {
	return func(s *GenerateService) { s.cli = out }
}

func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *GenerateService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m Metrics) ServiceOption {
	return func(s *GenerateService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewGenerateService wires the pipeline. builder may be nil when the
// application is already built.
func NewGenerateService(builder Builder, renderer Renderer, minifier Minifier, fs FileSystem, opts ...ServiceOption) *GenerateService {
	s := &GenerateService{
		builder:  builder,
		renderer: renderer,
		minifier: minifier,
		fs:       fs,
		logger:   slog.Default(),
		metrics:  noopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateSite runs build, clean, asset copy, param resolution, route
// expansion, batched rendering and the marker write, strictly in that order.
// Any failure other than cleaning ends the run.
func (s *GenerateService) GenerateSite(ctx context.Context, input GenerateInput) GenerateOutput {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "prerender.generate")
	defer span.End()

	var report *cli.BuildReport
	if s.cli != nil {
		s.cli.PrintHeader("Generate")
		report = cli.NewBuildReport(s.cli, input.OutputDir)
	}

	output := s.run(ctx, input, report)
	output.Duration = time.Since(start)
	output.Success = output.Error == nil

	if output.Error != nil {
		span.RecordError(output.Error)
		span.SetStatus(codes.Error, output.Error.Error())
		if report != nil {
			page, _ := core.FailedRoute(output.Error)
			report.AddError(page, "Generate failed", splitLines(output.Error.Error()))
		}
	}

	s.metrics.RunFinished(output.Pages, output.Duration, output.Error)
	if report != nil {
		report.SetPageCount(output.Pages)
		report.Render()
	}

	if output.Success {
		s.logger.Info("HTML files generated", "pages", output.Pages, "duration", output.Duration.Round(100*time.Millisecond).String())
	}

	return output
}

func (s *GenerateService) run(ctx context.Context, input GenerateInput, report *cli.BuildReport) GenerateOutput {
	var output GenerateOutput

	stage := func(name core.Stage, label string, fn func(context.Context) error) error {
		var step *cli.BuildStep
		if report != nil {
			step = report.StartStep(label)
		}

		stageCtx, span := tracer.Start(ctx, "prerender."+string(name))
		err := fn(stageCtx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		if step != nil {
			msg := ""
			if err != nil {
				msg = err.Error()
			}
			report.EndStep(step, err == nil, msg)
		}

		if err != nil {
			return &core.StageError{Stage: name, Err: err}
		}
		s.logger.Debug("Stage complete", "stage", string(name))
		return nil
	}

	if err := stage(core.StageBuild, "Building application", func(ctx context.Context) error {
		if s.builder == nil {
			return nil
		}
		return s.builder.Build(ctx)
	}); err != nil {
		output.Error = err
		return output
	}

	var unlock func() error
	if err := stage(core.StageLock, "Locking output directory", func(ctx context.Context) error {
		var err error
		unlock, err = s.fs.Lock(filepath.Clean(input.OutputDir) + ".lock")
		return err
	}); err != nil {
		output.Error = err
		return output
	}
	defer func() {
		if err := unlock(); err != nil {
			s.logger.Warn("Failed to release output lock", "error", err)
		}
	}()

	writer := NewOutputWriter(s.fs, input.OutputDir, s.logger)

	_ = stage(core.StageClean, "Cleaning destination folder", func(ctx context.Context) error {
		if err := writer.Clean(ctx); err != nil && report != nil {
			report.AddWarning(input.OutputDir, "Could not clean destination folder", splitLines(err.Error()))
		}
		return nil
	})

	if err := stage(core.StageCopyAssets, "Copying static and built assets", func(ctx context.Context) error {
		return writer.CopyAssets(ctx, input.StaticDir, input.BuiltDir, core.AssetDirName(input.PublicPath))
	}); err != nil {
		output.Error = err
		return output
	}

	routes, err := s.expand(ctx, input, stage)
	if err != nil {
		output.Error = err
		return output
	}
	output.Routes = routes

	renderer := NewBatchRenderer(s.renderer, s.minifier, writer, BatchRendererOptions{
		BatchSize:       input.BatchSize,
		ContinueOnError: input.ContinueOnError,
		Logger:          s.logger,
		Metrics:         s.metrics,
		Observer:        s.progress(len(routes), input.BatchSize),
	})

	if err := stage(core.StageRender, fmt.Sprintf("Rendering %d pages", len(routes)), func(ctx context.Context) error {
		summary, err := renderer.RenderAll(ctx, routes)
		output.Pages = summary.Pages
		output.Batches = summary.Batches
		if err != nil && report != nil {
			for _, route := range summary.Failed {
				report.AddError(route, "Render failed", nil)
			}
		}
		return err
	}); err != nil {
		output.Error = err
		return output
	}

	if err := stage(core.StageWriteMarker, "Writing "+core.MarkerFile, writer.WriteMarker); err != nil {
		output.Error = err
		return output
	}

	return output
}

type stageFunc func(name core.Stage, label string, fn func(context.Context) error) error

func (s *GenerateService) expand(ctx context.Context, input GenerateInput, stage stageFunc) ([]string, error) {
	var resolved core.ResolvedParams
	if err := stage(core.StageResolveParams, "Resolving route params", func(ctx context.Context) error {
		var err error
		resolved, err = NewParamResolver(s.logger).Resolve(ctx, input.RouteParams)
		return err
	}); err != nil {
		return nil, err
	}

	var routes []string
	if err := stage(core.StageExpandRoutes, "Expanding routes", func(ctx context.Context) error {
		var err error
		routes, err = NewRouteExpander(input.Collisions, s.logger).Expand(input.Routes, resolved)
		trace.SpanFromContext(ctx).SetAttributes(attribute.Int("routes", len(routes)))
		return err
	}); err != nil {
		return nil, err
	}

	return routes, nil
}

// ExpandRoutes resolves params and expands the route table without building
// or rendering anything.
func (s *GenerateService) ExpandRoutes(ctx context.Context, input GenerateInput) ([]string, error) {
	plain := func(name core.Stage, _ string, fn func(context.Context) error) error {
		if err := fn(ctx); err != nil {
			return &core.StageError{Stage: name, Err: err}
		}
		return nil
	}
	return s.expand(ctx, input, plain)
}

func (s *GenerateService) progress(total, batchSize int) BatchObserver {
	if s.cli == nil {
		return nil
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &batchProgress{out: s.cli, batches: (total + batchSize - 1) / batchSize}
}

type batchProgress struct {
	out     CLIOutput
	batches int
	started time.Time
}

func (p *batchProgress) BatchStarted(index, size int) {
	p.started = time.Now()
	p.out.PrintStep("", "Batch %d/%d (%d pages)", index+1, p.batches, size)
}

func (p *batchProgress) BatchSettled(index int, err error) {
	if err != nil {
		p.out.PrintWarning("Batch %d/%d failed after %s", index+1, p.batches, cli.FormatDuration(time.Since(p.started)))
	}
}

func splitLines(msg string) []string {
	var lines []string
	for _, line := range strings.Split(msg, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// IsConfigurationError reports whether err was caused by the route table or
// params mapping rather than by rendering or the filesystem.
func IsConfigurationError(err error) bool {
	var cfgErr *core.ConfigurationError
	return errors.As(err, &cfgErr)
}
