package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/3-lines-studio/prerender/internal/core"
)

type ParamResolver struct {
	logger *slog.Logger
}

func NewParamResolver(logger *slog.Logger) *ParamResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParamResolver{logger: logger}
}

// Resolve invokes every producer once, concurrently, and returns a new
// ResolvedParams. The first producer error cancels the others and is returned
// as a *core.ParamResolutionError.
func (r *ParamResolver) Resolve(ctx context.Context, sources map[string]core.ParamSource) (core.ResolvedParams, error) {
	routes := slices.Sorted(maps.Keys(sources))
	entries := make([]core.ResolvedEntry, len(routes))

	g, gctx := errgroup.WithContext(ctx)
	for i, route := range routes {
		source := sources[route]
		g.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					err = &core.ParamResolutionError{Route: route, Err: fmt.Errorf("panic: %v", p)}
				}
			}()

			params, skip, err := source.Resolve(gctx)
			if err != nil {
				return &core.ParamResolutionError{Route: route, Err: err}
			}
			entries[i] = core.ResolvedEntry{Params: params, Skip: skip}

			r.logger.Debug("Route params resolved", "route", route, "source", source.Kind().String(), "count", len(params))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return core.ResolvedParams{}, err
	}

	resolved := make(map[string]core.ResolvedEntry, len(routes))
	for i, route := range routes {
		resolved[route] = entries[i]
	}
	return core.NewResolvedParams(resolved), nil
}
