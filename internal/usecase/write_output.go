package usecase

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/3-lines-studio/prerender/internal/core"
)

// OutputWriter owns the destination tree of a run.
type OutputWriter struct {
	fs      FileSystem
	distDir string
	logger  *slog.Logger
}

func NewOutputWriter(fs FileSystem, distDir string, logger *slog.Logger) *OutputWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &OutputWriter{fs: fs, distDir: distDir, logger: logger}
}

// Clean removes the destination tree. A failure is logged and returned for
// reporting only; the run carries on over whatever is left.
func (w *OutputWriter) Clean(ctx context.Context) error {
	if err := w.fs.RemoveAll(w.distDir); err != nil {
		w.logger.Warn("Failed to clean destination folder", "path", w.distDir, "error", err)
		return &core.FilesystemError{Op: "clean", Path: w.distDir, Err: err}
	}
	w.logger.Debug("Destination folder cleaned", "path", w.distDir)
	return nil
}

// CopyAssets seeds the destination with the optional static directory and the
// required built assets, the latter under assetDir.
func (w *OutputWriter) CopyAssets(ctx context.Context, staticDir, builtDir, assetDir string) error {
	if err := w.fs.MkdirAll(w.distDir, 0755); err != nil {
		return &core.FilesystemError{Op: "mkdir", Path: w.distDir, Err: err}
	}

	if staticDir != "" && w.fs.Exists(staticDir) {
		if err := w.fs.CopyDir(staticDir, w.distDir); err != nil {
			return &core.FilesystemError{Op: "copy static", Path: staticDir, Err: err}
		}
	}

	assetPath := filepath.Join(w.distDir, assetDir)
	if err := w.fs.CopyDir(builtDir, assetPath); err != nil {
		return &core.FilesystemError{Op: "copy built assets", Path: builtDir, Err: err}
	}

	w.logger.Debug("Static & build files copied", "static", staticDir, "built", builtDir, "assets", assetPath)
	return nil
}

func (w *OutputWriter) WritePage(ctx context.Context, route string, html string) error {
	rel, err := core.OutputPath(route)
	if err != nil {
		return &core.ConfigurationError{Route: route, Reason: err.Error()}
	}

	path := filepath.Join(w.distDir, rel)
	w.logger.Debug("Generate file", "route", route, "path", rel)

	if err := w.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &core.FilesystemError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}

	if err := w.fs.WriteFile(path, []byte(html), 0644); err != nil {
		return &core.FilesystemError{Op: "write", Path: path, Err: err}
	}

	return nil
}

// WriteMarker writes the empty .nojekyll file so hosts that hide
// underscore-prefixed directories still serve the asset directory.
func (w *OutputWriter) WriteMarker(ctx context.Context) error {
	path := filepath.Join(w.distDir, core.MarkerFile)
	if err := w.fs.WriteFile(path, nil, 0644); err != nil {
		return &core.FilesystemError{Op: "write", Path: path, Err: err}
	}
	return nil
}
