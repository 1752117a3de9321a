package usecase

import (
	"log/slog"

	"github.com/3-lines-studio/prerender/internal/core"
)

type RouteExpander struct {
	collisions core.CollisionPolicy
	logger     *slog.Logger
}

func NewRouteExpander(collisions core.CollisionPolicy, logger *slog.Logger) *RouteExpander {
	if collisions == "" {
		collisions = core.CollisionOverwrite
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RouteExpander{collisions: collisions, logger: logger}
}

// Expand turns the route table into concrete routes, keeping table order and
// per-route parameter order. A dynamic route without resolved params is a
// *core.ConfigurationError.
func (e *RouteExpander) Expand(routes []string, resolved core.ResolvedParams) ([]string, error) {
	var concrete []string

	for _, route := range routes {
		pattern, err := core.ParsePattern(route)
		if err != nil {
			return nil, &core.ConfigurationError{Route: route, Reason: err.Error()}
		}

		entry, hasParams := resolved.Lookup(route)
		if !pattern.IsDynamic() && !hasParams {
			concrete = append(concrete, route)
			continue
		}

		if !hasParams {
			return nil, &core.ConfigurationError{
				Route:  route,
				Reason: "dynamic route has no params mapping, add it to route_params",
			}
		}

		if entry.Skip || len(entry.Params) == 0 {
			e.logger.Debug("Dynamic route skipped", "route", route)
			continue
		}

		toPath := pattern.WithOptionalTail()
		for _, params := range entry.Params {
			path, err := toPath.Compile(params)
			if err != nil {
				return nil, &core.ConfigurationError{Route: route, Reason: err.Error()}
			}
			concrete = append(concrete, path)
		}
	}

	if err := e.checkCollisions(concrete); err != nil {
		return nil, err
	}

	return concrete, nil
}

func (e *RouteExpander) checkCollisions(routes []string) error {
	seen := make(map[string]string, len(routes))

	for _, route := range routes {
		outPath, err := core.OutputPath(route)
		if err != nil {
			return &core.ConfigurationError{Route: route, Reason: err.Error()}
		}

		previous, dup := seen[outPath]
		seen[outPath] = route
		if !dup {
			continue
		}

		switch e.collisions {
		case core.CollisionError:
			return &core.ConfigurationError{
				Route:  route,
				Reason: "output " + outPath + " is also produced by " + previous,
			}
		case core.CollisionWarn:
			e.logger.Warn("Output path collision, last write wins", "route", route, "previous", previous, "path", outPath)
		}
	}

	return nil
}
