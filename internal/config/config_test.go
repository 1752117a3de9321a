package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/prerender/internal/core"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil, "/srv/site")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/srv/site", "dist"), cfg.OutputDir)
	assert.Equal(t, "/srv/site", cfg.SrcDir)
	assert.Equal(t, filepath.Join("/srv/site", "static"), cfg.StaticDir)
	assert.Equal(t, filepath.Join("/srv/site", ".nuxt", "dist"), cfg.BuiltDir)
	assert.Equal(t, "/_nuxt/", cfg.PublicPath)
	assert.Equal(t, 500, cfg.Concurrency)
	assert.Equal(t, "overwrite", cfg.Collisions)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "/srv/site", cfg.Dir())
}

func TestParseFile(t *testing.T) {
	data := []byte(`
output_dir = "public"
src_dir = "app"
static_dir = "assets/static"
public_path = "https://cdn.example.com/_files/"
concurrency = 50
continue_on_error = true
collisions = "ERROR"
routes = ["/", "/about", "/users/:id", "/drafts/:id", "/blog/:slug"]

[build]
command = ["npm", "run", "build"]

[render]
command = ["node", "server.js"]
timeout_seconds = 30

[logging]
level = "DEBUG"
format = "json"

[route_params]
"/users/:id" = [{ id = 1 }, { id = "two" }]
"/drafts/:id" = false

[route_params_commands]
"/blog/:slug" = ["node", "scripts/slugs.js"]
`)

	cfg, err := Parse(data, "/srv/site")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/srv/site", "public"), cfg.OutputDir)
	assert.Equal(t, filepath.Join("/srv/site", "app"), cfg.SrcDir)
	assert.Equal(t, filepath.Join("/srv/site", "app", "assets", "static"), cfg.StaticDir)
	assert.Equal(t, filepath.Join("/srv/site", "app", ".nuxt", "dist"), cfg.BuiltDir)
	assert.Equal(t, 50, cfg.Concurrency)
	assert.True(t, cfg.ContinueOnError)
	assert.Equal(t, "error", cfg.Collisions)
	assert.Equal(t, []string{"npm", "run", "build"}, cfg.Build.Command)
	assert.Equal(t, []string{"node", "server.js"}, cfg.Render.Command)
	assert.Equal(t, 30, cfg.Render.TimeoutSeconds)
	assert.Equal(t, 5, cfg.Render.StartupSeconds)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"node", "scripts/slugs.js"}, cfg.RouteParamsCommands["/blog/:slug"])

	sources, err := cfg.LiteralParamSources()
	require.NoError(t, err)
	require.Len(t, sources, 2)

	users, skip, err := sources["/users/:id"].Resolve(context.Background())
	require.NoError(t, err)
	assert.False(t, skip)
	assert.Equal(t, []core.Params{{"id": "1"}, {"id": "two"}}, users)

	assert.Equal(t, core.SourceSkip, sources["/drafts/:id"].Kind())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		toml    string
		wantErr string
	}{
		{name: "zero concurrency", toml: "concurrency = 0", wantErr: "concurrency"},
		{name: "unknown collisions", toml: `collisions = "merge"`, wantErr: "collisions"},
		{name: "relative route", toml: `routes = ["about"]`, wantErr: "must start with /"},
		{name: "command and url", toml: "[render]\ncommand = [\"node\"]\nurl = \"http://localhost:3000\"", wantErr: "mutually exclusive"},
		{name: "bad log level", toml: "[logging]\nlevel = \"loud\"", wantErr: "logging.level"},
		{name: "bad log format", toml: "[logging]\nformat = \"xml\"", wantErr: "logging.format"},
		{name: "params true", toml: "[route_params]\n\"/a/:id\" = true", wantErr: "not a params list"},
		{name: "params scalar", toml: "[route_params]\n\"/a/:id\" = 3", wantErr: "expected an array"},
		{name: "params list of scalars", toml: "[route_params]\n\"/a/:id\" = [1, 2]", wantErr: "expected a table"},
		{name: "duplicate params source", toml: "[route_params]\n\"/a/:id\" = false\n[route_params_commands]\n\"/a/:id\" = [\"x\"]", wantErr: "both"},
		{name: "empty params command", toml: "[route_params_commands]\n\"/a/:id\" = []", wantErr: "empty command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml), "/srv/site")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(`routes = ["/"]`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/"}, cfg.Routes)
	assert.Equal(t, filepath.Join(dir, "dist"), cfg.OutputDir)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)

	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Concurrency)
}

func TestLoadInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("routes = ["), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
