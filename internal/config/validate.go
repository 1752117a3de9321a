package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/3-lines-studio/prerender/internal/core"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRun(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateRouteParams()
}

func (c *Config) validateRun() error {
	if c.Concurrency <= 0 {
		return errors.New("concurrency must be greater than 0")
	}
	if _, ok := core.ParseCollisionPolicy(c.Collisions); !ok {
		return fmt.Errorf("collisions: unsupported value %q (want overwrite, warn or error)", c.Collisions)
	}
	for _, route := range c.Routes {
		if !strings.HasPrefix(route, "/") {
			return fmt.Errorf("routes: %q must start with /", route)
		}
	}
	return nil
}

func (c *Config) validateRender() error {
	if len(c.Render.Command) > 0 && c.Render.URL != "" {
		return errors.New("render.command and render.url are mutually exclusive")
	}
	if c.Render.StartupSeconds <= 0 {
		return errors.New("render.startup_seconds must be greater than 0")
	}
	if c.Render.TimeoutSeconds <= 0 {
		return errors.New("render.timeout_seconds must be greater than 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateRouteParams() error {
	for route, command := range c.RouteParamsCommands {
		if _, dup := c.RouteParams[route]; dup {
			return fmt.Errorf("route %s has both route_params and route_params_commands", route)
		}
		if len(command) == 0 {
			return fmt.Errorf("route_params_commands: empty command for %s", route)
		}
	}
	_, err := c.LiteralParamSources()
	return err
}
