package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/3-lines-studio/prerender/internal/core"
)

const DefaultBatchSize = 500

type PageWriter interface {
	WritePage(ctx context.Context, route string, html string) error
}

type BatchRendererOptions struct {
	BatchSize       int
	ContinueOnError bool
	Logger          *slog.Logger
	Metrics         Metrics
	Observer        BatchObserver
}

// BatchRenderer renders routes in fixed-size batches. Every render and write
// of a batch settles before the next batch starts, which caps in-flight
// renders at the batch size.
type BatchRenderer struct {
	renderer        Renderer
	minifier        Minifier
	writer          PageWriter
	batchSize       int
	continueOnError bool
	logger          *slog.Logger
	metrics         Metrics
	observer        BatchObserver
}

type RenderSummary struct {
	Pages   int
	Batches int
	Failed  []string
}

func NewBatchRenderer(renderer Renderer, minifier Minifier, writer PageWriter, opts BatchRendererOptions) *BatchRenderer {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = noopMetrics{}
	}

	return &BatchRenderer{
		renderer:        renderer,
		minifier:        minifier,
		writer:          writer,
		batchSize:       opts.BatchSize,
		continueOnError: opts.ContinueOnError,
		logger:          opts.Logger,
		metrics:         opts.Metrics,
		observer:        opts.Observer,
	}
}

func (b *BatchRenderer) RenderAll(ctx context.Context, routes []string) (RenderSummary, error) {
	var summary RenderSummary
	var failures []error

	for start := 0; start < len(routes); start += b.batchSize {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		end := min(start+b.batchSize, len(routes))
		batch := routes[start:end]
		index := summary.Batches

		if b.observer != nil {
			b.observer.BatchStarted(index, len(batch))
		}

		errs, err := b.renderBatch(ctx, batch)
		summary.Batches++
		b.metrics.BatchCompleted(len(batch))

		if b.observer != nil {
			b.observer.BatchSettled(index, err)
		}

		for i, routeErr := range errs {
			if routeErr == nil {
				summary.Pages++
				continue
			}
			summary.Failed = append(summary.Failed, batch[i])
		}

		if err != nil {
			if !b.continueOnError {
				return summary, err
			}
			failures = append(failures, errs...)
		}

		b.logger.Debug("Batch settled", "batch", index+1, "size", len(batch), "done", end, "total", len(routes))
	}

	if len(failures) > 0 {
		return summary, errors.Join(failures...)
	}

	return summary, nil
}

// renderBatch returns the per-route errors and, when any route failed, the
// first failure observed.
func (b *BatchRenderer) renderBatch(ctx context.Context, batch []string) ([]error, error) {
	var g *errgroup.Group
	runCtx := ctx
	if b.continueOnError {
		g = &errgroup.Group{}
	} else {
		g, runCtx = errgroup.WithContext(ctx)
	}

	errs := make([]error, len(batch))
	for i, route := range batch {
		g.Go(func() error {
			if err := b.renderPage(runCtx, route); err != nil {
				errs[i] = err
				return err
			}
			return nil
		})
	}

	return errs, g.Wait()
}

func (b *BatchRenderer) renderPage(ctx context.Context, route string) (err error) {
	ctx, span := tracer.Start(ctx, "prerender.page", trace.WithAttributes(attribute.String("route", route)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	start := time.Now()

	html, err := b.renderer.Render(ctx, route, core.RenderContext{GenerateMode: true})
	if err != nil {
		return &core.RenderError{Route: route, Err: err}
	}

	html, err = b.minifier.Minify(html)
	if err != nil {
		return &core.RenderError{Route: route, Err: fmt.Errorf("minify: %w", err)}
	}

	if err := b.writer.WritePage(ctx, route, html); err != nil {
		return err
	}

	b.metrics.PageGenerated(route, time.Since(start))
	return nil
}
