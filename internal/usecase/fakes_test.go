package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/3-lines-studio/prerender/internal/core"
)

type fakeRenderer struct {
	mu       sync.Mutex
	calls    []string
	contexts []core.RenderContext
	fail     map[string]error
	onRender func(route string)
}

func (r *fakeRenderer) Render(ctx context.Context, route string, rc core.RenderContext) (string, error) {
	if r.onRender != nil {
		r.onRender(route)
	}

	r.mu.Lock()
	r.calls = append(r.calls, route)
	r.contexts = append(r.contexts, rc)
	err := r.fail[route]
	r.mu.Unlock()

	if err != nil {
		return "", err
	}
	return fmt.Sprintf("<html>\n  <body>\n    <!-- %s -->\n    <p>%s</p>\n  </body>\n</html>", route, route), nil
}

func (r *fakeRenderer) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type upperMinifier struct{}

func (upperMinifier) Minify(html string) (string, error) {
	return strings.ToUpper(html), nil
}

type memoryWriter struct {
	mu    sync.Mutex
	pages map[string]string
}

func newMemoryWriter() *memoryWriter {
	return &memoryWriter{pages: make(map[string]string)}
}

func (w *memoryWriter) WritePage(ctx context.Context, route string, html string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pages[route] = html
	return nil
}

type recordingMetrics struct {
	mu      sync.Mutex
	pages   int
	batches int
	runs    int
	lastErr error
}

func (m *recordingMetrics) PageGenerated(string, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages++
}

func (m *recordingMetrics) BatchCompleted(int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches++
}

func (m *recordingMetrics) RunFinished(pages int, took time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs++
	m.lastErr = err
}

type builderFunc func(ctx context.Context) error

func (f builderFunc) Build(ctx context.Context) error { return f(ctx) }
