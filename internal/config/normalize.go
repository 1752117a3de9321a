package config

import (
	"path/filepath"
	"strings"
)

// normalize resolves directories: src_dir against the config file, and the
// static and built directories against src_dir. Unset static and built
// directories fall back to their defaults under src_dir.
func (c *Config) normalize() {
	if c.dir == "" {
		c.dir = "."
	}

	c.OutputDir = resolve(c.dir, strings.TrimSpace(c.OutputDir), defaultOutputDir)
	c.SrcDir = resolve(c.dir, strings.TrimSpace(c.SrcDir), defaultSrcDir)
	c.StaticDir = resolve(c.SrcDir, strings.TrimSpace(c.StaticDir), defaultStaticDir)
	c.BuiltDir = resolve(c.SrcDir, strings.TrimSpace(c.BuiltDir), defaultBuiltDir)

	if c.MetricsFile != "" {
		c.MetricsFile = resolve(c.dir, c.MetricsFile, "")
	}

	c.Collisions = strings.ToLower(strings.TrimSpace(c.Collisions))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))

	if c.RouteParams == nil {
		c.RouteParams = map[string]any{}
	}
	if c.RouteParamsCommands == nil {
		c.RouteParamsCommands = map[string][]string{}
	}
}

func resolve(base, path, fallback string) string {
	if path == "" {
		path = fallback
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
