package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/3-lines-studio/prerender/internal/adapters/process"
	"github.com/3-lines-studio/prerender/internal/config"
	"github.com/3-lines-studio/prerender/internal/core"
	"github.com/3-lines-studio/prerender/internal/logging"
	"github.com/3-lines-studio/prerender/internal/usecase"
)

type commandContext struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *slog.Logger
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.logLevel != "" {
		cfg.Logging.Level = strings.ToLower(c.logLevel)
	}
	if c.logFormat != "" {
		cfg.Logging.Format = strings.ToLower(c.logFormat)
	}

	c.cfg = cfg
	return cfg, nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}

	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(os.Stderr, logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, err
	}

	c.logger = logger
	return logger, nil
}

// paramSources merges literal route_params with command-backed producers.
func paramSources(cfg *config.Config) (map[string]core.ParamSource, error) {
	sources, err := cfg.LiteralParamSources()
	if err != nil {
		return nil, err
	}
	for route, command := range cfg.RouteParamsCommands {
		sources[route] = process.CommandParams(command, cfg.SrcDir)
	}
	return sources, nil
}

func generateInput(cfg *config.Config, sources map[string]core.ParamSource) usecase.GenerateInput {
	collisions, _ := core.ParseCollisionPolicy(cfg.Collisions)
	return usecase.GenerateInput{
		Routes:          cfg.Routes,
		RouteParams:     sources,
		OutputDir:       cfg.OutputDir,
		StaticDir:       cfg.StaticDir,
		BuiltDir:        cfg.BuiltDir,
		PublicPath:      cfg.PublicPath,
		BatchSize:       cfg.Concurrency,
		ContinueOnError: cfg.ContinueOnError,
		Collisions:      collisions,
	}
}

func newBuilder(cfg *config.Config) usecase.Builder {
	if cfg.Build.Skip || len(cfg.Build.Command) == 0 {
		return nil
	}
	return &process.CommandBuilder{
		Command: cfg.Build.Command,
		Dir:     cfg.SrcDir,
		Stdout:  os.Stderr,
		Stderr:  os.Stderr,
	}
}

// lazyRenderer defers spawning the render server until the first page is
// rendered, which is after the build step has produced the bundle it serves.
type lazyRenderer struct {
	cfg *config.Config

	once     sync.Once
	renderer *process.Renderer
	err      error
}

func newRenderer(cfg *config.Config) (*lazyRenderer, error) {
	if cfg.Render.URL == "" && len(cfg.Render.Command) == 0 {
		return nil, fmt.Errorf("render.command or render.url must be configured")
	}
	return &lazyRenderer{cfg: cfg}, nil
}

func (l *lazyRenderer) start() {
	timeout := time.Duration(l.cfg.Render.TimeoutSeconds) * time.Second

	if l.cfg.Render.URL != "" {
		l.renderer = process.NewHTTPRenderer(l.cfg.Render.URL, &http.Client{Timeout: timeout})
		return
	}

	l.renderer, l.err = process.NewRenderer(l.cfg.Render.Command, process.SpawnOptions{
		Dir:         l.cfg.SrcDir,
		Stdout:      os.Stderr,
		Stderr:      os.Stderr,
		StartupWait: time.Duration(l.cfg.Render.StartupSeconds) * time.Second,
	})
}

func (l *lazyRenderer) Render(ctx context.Context, route string, rc core.RenderContext) (string, error) {
	l.once.Do(l.start)
	if l.err != nil {
		return "", l.err
	}
	return l.renderer.Render(ctx, route, rc)
}

func (l *lazyRenderer) Stop() error {
	if l.renderer == nil {
		return nil
	}
	return l.renderer.Stop()
}
