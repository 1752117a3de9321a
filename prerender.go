// Package prerender turns an application's route table into a directory of
// pre-rendered HTML files for static hosting.
//
// Dynamic routes (":id", "*") are expanded with parameter objects supplied per
// route, every concrete route is rendered through a Renderer in bounded
// batches, minified and written to <OutputDir>/<route>/index.html.
package prerender

import (
	"context"
	"log/slog"
	"time"

	"github.com/3-lines-studio/prerender/internal/adapters/fs"
	"github.com/3-lines-studio/prerender/internal/adapters/minify"
	"github.com/3-lines-studio/prerender/internal/core"
	"github.com/3-lines-studio/prerender/internal/usecase"
)

type (
	Params          = core.Params
	ParamSource     = core.ParamSource
	RenderContext   = core.RenderContext
	Stage           = core.Stage
	Renderer        = usecase.Renderer
	Builder         = usecase.Builder
	Minifier        = usecase.Minifier
	Metrics         = usecase.Metrics
	FileSystem      = usecase.FileSystem
	CollisionMode   = core.CollisionPolicy
	ConfigError     = core.ConfigurationError
	ParamError      = core.ParamResolutionError
	RenderError     = core.RenderError
	FilesystemError = core.FilesystemError
	StageError      = core.StageError
)

const (
	CollisionOverwrite = core.CollisionOverwrite
	CollisionWarn      = core.CollisionWarn
	CollisionError     = core.CollisionError

	DefaultOutputDir = "dist"
	DefaultBatchSize = usecase.DefaultBatchSize
)

var ErrLocked = core.ErrLocked

// Literal uses the given parameter objects as-is.
func Literal(params ...Params) ParamSource { return core.Literal(params...) }

// Func calls fn once per run.
func Func(fn func() ([]Params, error)) ParamSource { return core.Func(fn) }

// Producer calls fn once per run, concurrently with the other producers.
func Producer(fn func(ctx context.Context) ([]Params, error)) ParamSource {
	return core.Producer(fn)
}

// Skip suppresses generation of a dynamic route.
func Skip() ParamSource { return core.Skip() }

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, route string, rc RenderContext) (string, error)

func (f RendererFunc) Render(ctx context.Context, route string, rc RenderContext) (string, error) {
	return f(ctx, route, rc)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(ctx context.Context) error

func (f BuilderFunc) Build(ctx context.Context) error {
	return f(ctx)
}

// Options configures a Generator. BuiltDir holds the compiled client bundle
// and is required; it is copied below the directory named by the last
// segment of PublicPath ("_nuxt" when empty). StaticDir is copied to the
// output root when it exists.
type Options struct {
	OutputDir       string
	StaticDir       string
	BuiltDir        string
	PublicPath      string
	RouteParams     map[string]ParamSource
	BatchSize       int
	ContinueOnError bool
	Collisions      CollisionMode

	Logger     *slog.Logger
	Metrics    Metrics
	Minifier   Minifier
	FileSystem FileSystem
}

type Result struct {
	Routes   []string
	Pages    int
	Batches  int
	Duration time.Duration
}

type Generator struct {
	opts    Options
	service *usecase.GenerateService
}

// New returns a Generator. builder may be nil when the application is
// already built.
func New(builder Builder, renderer Renderer, opts Options) *Generator {
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}
	if opts.Minifier == nil {
		opts.Minifier = minify.New()
	}
	if opts.FileSystem == nil {
		opts.FileSystem = fs.NewOSFileSystem()
	}

	service := usecase.NewGenerateService(builder, renderer, opts.Minifier, opts.FileSystem,
		usecase.WithLogger(opts.Logger),
		usecase.WithMetrics(opts.Metrics),
	)

	return &Generator{opts: opts, service: service}
}

// Generate runs the whole pipeline for routes. The returned error is a
// *StageError wrapping one of the typed errors of this package.
func (g *Generator) Generate(ctx context.Context, routes []string) (Result, error) {
	out := g.service.GenerateSite(ctx, g.input(routes))
	return Result{
		Routes:   out.Routes,
		Pages:    out.Pages,
		Batches:  out.Batches,
		Duration: out.Duration,
	}, out.Error
}

// Routes resolves params and expands routes without building or rendering.
func (g *Generator) Routes(ctx context.Context, routes []string) ([]string, error) {
	return g.service.ExpandRoutes(ctx, g.input(routes))
}

func (g *Generator) input(routes []string) usecase.GenerateInput {
	return usecase.GenerateInput{
		Routes:          routes,
		RouteParams:     g.opts.RouteParams,
		OutputDir:       g.opts.OutputDir,
		StaticDir:       g.opts.StaticDir,
		BuiltDir:        g.opts.BuiltDir,
		PublicPath:      g.opts.PublicPath,
		BatchSize:       g.opts.BatchSize,
		ContinueOnError: g.opts.ContinueOnError,
		Collisions:      g.opts.Collisions,
	}
}

// OutputPath maps a concrete route to its file below the output directory.
func OutputPath(route string) (string, error) {
	return core.OutputPath(route)
}
