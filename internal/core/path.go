package core

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

const (
	IndexFile       = "index.html"
	MarkerFile      = ".nojekyll"
	DefaultAssetDir = "_nuxt"
)

func NormalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path != "/" && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// ValidateRoutePath checks a concrete route before it is mapped onto disk.
func ValidateRoutePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path must start with /")
	}

	if strings.Contains(path, "?") {
		return fmt.Errorf("path cannot contain query string")
	}

	if strings.Contains(path, "#") {
		return fmt.Errorf("path cannot contain fragment")
	}

	for _, segment := range strings.Split(path, "/") {
		if segment == ".." || segment == "." {
			return fmt.Errorf("path cannot contain relative segments")
		}
	}

	if strings.Contains(path, "*") {
		return fmt.Errorf("path cannot contain wildcards")
	}

	return nil
}

// OutputPath maps a concrete route to its file relative to the output root:
// "/about" becomes "about/index.html" and "/" becomes "index.html".
func OutputPath(route string) (string, error) {
	normalized := NormalizePath(route)
	if err := ValidateRoutePath(normalized); err != nil {
		return "", fmt.Errorf("invalid route %q: %w", route, err)
	}

	trimmed := strings.Trim(normalized, "/")
	if trimmed == "" {
		return IndexFile, nil
	}

	return filepath.Join(filepath.FromSlash(trimmed), IndexFile), nil
}

// AssetDirName picks the output subdirectory for built assets from the
// public asset path. Absolute URLs contribute the last segment of their path.
func AssetDirName(publicPath string) string {
	p := strings.TrimSpace(publicPath)
	if p == "" {
		return DefaultAssetDir
	}

	if u, err := url.Parse(p); err == nil && u.IsAbs() {
		p = u.Path
	}

	name := path.Base(strings.Trim(p, "/"))
	if name == "." || name == "/" || name == "" || name == ".." {
		return DefaultAssetDir
	}
	return name
}
