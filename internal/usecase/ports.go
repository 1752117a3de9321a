package usecase

import (
	"context"
	"io"
	"time"

	"github.com/3-lines-studio/prerender/internal/adapters/fs"
	"github.com/3-lines-studio/prerender/internal/core"
)

type Renderer interface {
	Render(ctx context.Context, route string, rc core.RenderContext) (string, error)
}

type Builder interface {
	Build(ctx context.Context) error
}

type Minifier interface {
	Minify(html string) (string, error)
}

type CLIOutput interface {
	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
	PrintHeader(msg string)
	PrintStep(emoji, msg string, args ...any)
	PrintWarning(msg string, args ...any)
	Writer() io.Writer
	ErrWriter() io.Writer
}

// Metrics receives generation counters. Implementations must be safe for
// concurrent use.
type Metrics interface {
	PageGenerated(route string, took time.Duration)
	BatchCompleted(size int)
	RunFinished(pages int, took time.Duration, err error)
}

// BatchObserver is told when each render batch starts and settles.
type BatchObserver interface {
	BatchStarted(index, size int)
	BatchSettled(index int, err error)
}

type FileSystem = fs.FileSystem

type noopMetrics struct{}

func (noopMetrics) PageGenerated(string, time.Duration)   {}
func (noopMetrics) BatchCompleted(int)                    {}
func (noopMetrics) RunFinished(int, time.Duration, error) {}
