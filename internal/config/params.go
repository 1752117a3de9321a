package config

import (
	"fmt"

	"github.com/3-lines-studio/prerender/internal/core"
)

// LiteralParamSources converts route_params into param sources. A value of
// false skips the route; otherwise it must be an array of tables.
func (c *Config) LiteralParamSources() (map[string]core.ParamSource, error) {
	sources := make(map[string]core.ParamSource, len(c.RouteParams))

	for route, value := range c.RouteParams {
		switch v := value.(type) {
		case bool:
			if v {
				return nil, fmt.Errorf("route_params[%q]: true is not a params list", route)
			}
			sources[route] = core.Skip()
		case []any:
			params := make([]core.Params, 0, len(v))
			for i, item := range v {
				table, ok := item.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("route_params[%q][%d]: expected a table, got %T", route, i, item)
				}
				params = append(params, toParams(table))
			}
			sources[route] = core.Literal(params...)
		default:
			return nil, fmt.Errorf("route_params[%q]: expected an array of tables or false, got %T", route, value)
		}
	}

	return sources, nil
}

func toParams(table map[string]any) core.Params {
	p := make(core.Params, len(table))
	for k, v := range table {
		if s, ok := v.(string); ok {
			p[k] = s
			continue
		}
		p[k] = fmt.Sprint(v)
	}
	return p
}
