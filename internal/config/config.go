package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const DefaultFileName = "prerender.toml"

// Build configures the application build step that runs before generation.
type Build struct {
	Command []string `toml:"command"`
	Skip    bool     `toml:"skip"`
}

// Render configures how pages are rendered: either a render server command
// spawned on a unix socket, or the URL of a server that is already running.
type Render struct {
	Command        []string `toml:"command"`
	URL            string   `toml:"url"`
	StartupSeconds int      `toml:"startup_seconds"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for a generate run.
//
// RouteParams holds literal parameter lists keyed by route pattern; the value
// false skips the route. RouteParamsCommands maps a route pattern to a command
// printing a JSON array of parameter objects.
type Config struct {
	OutputDir           string              `toml:"output_dir"`
	SrcDir              string              `toml:"src_dir"`
	StaticDir           string              `toml:"static_dir"`
	BuiltDir            string              `toml:"built_dir"`
	PublicPath          string              `toml:"public_path"`
	Concurrency         int                 `toml:"concurrency"`
	ContinueOnError     bool                `toml:"continue_on_error"`
	Collisions          string              `toml:"collisions"`
	MetricsFile         string              `toml:"metrics_file"`
	Routes              []string            `toml:"routes"`
	Build               Build               `toml:"build"`
	Render              Render              `toml:"render"`
	Logging             Logging             `toml:"logging"`
	RouteParams         map[string]any      `toml:"route_params"`
	RouteParamsCommands map[string][]string `toml:"route_params_commands"`

	dir string
}

// Load parses the file at path on top of the defaults. A missing file is only
// an error when the path was given explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	cfg.dir = filepath.Dir(absPath)

	file, err := os.Open(absPath)
	switch {
	case err == nil:
		defer file.Close()
		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("open config: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Parse decodes TOML content relative to baseDir.
func Parse(data []byte, baseDir string) (*Config, error) {
	cfg := Default()
	cfg.dir = baseDir

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Dir is the directory relative paths were resolved against.
func (c *Config) Dir() string {
	return c.dir
}
