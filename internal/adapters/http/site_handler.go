package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/3-lines-studio/prerender/internal/core"
)

// SiteHandler serves a generated output directory the way a static host
// would: "/about" resolves to "about/index.html".
type SiteHandler struct {
	root string
}

func NewSiteHandler(root string) http.Handler {
	return &SiteHandler{root: root}
}

func (h *SiteHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path, ok := h.resolve(req.URL.Path)
	if !ok {
		h.notFound(w, req)
		return
	}

	file, err := os.Open(path)
	if err != nil {
		h.notFound(w, req)
		return
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		h.notFound(w, req)
		return
	}

	w.Header().Set("Content-Type", core.GetContentType(path))
	http.ServeContent(w, req, info.Name(), info.ModTime(), file)
}

func (h *SiteHandler) resolve(urlPath string) (string, bool) {
	clean := core.NormalizePath(urlPath)
	if core.ValidateRoutePath(clean) != nil {
		return "", false
	}

	direct := filepath.Join(h.root, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
	if info, err := os.Stat(direct); err == nil && !info.IsDir() {
		return direct, true
	}

	rel, err := core.OutputPath(clean)
	if err != nil {
		return "", false
	}
	return filepath.Join(h.root, rel), true
}

func (h *SiteHandler) notFound(w http.ResponseWriter, req *http.Request) {
	page := core.MissingPage{Route: req.URL.Path}
	if rel, err := core.OutputPath(req.URL.Path); err == nil {
		page.Expected = filepath.ToSlash(rel)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_ = core.MissingPageTemplate.Execute(w, page)
}
