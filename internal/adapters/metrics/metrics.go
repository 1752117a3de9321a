package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder keeps the counters of a single generate run in its own registry.
type Recorder struct {
	registry *prometheus.Registry

	pages      prometheus.Counter
	failures   prometheus.Counter
	batches    prometheus.Counter
	renderTime prometheus.Histogram
	runTime    prometheus.Gauge
	lastPages  prometheus.Gauge
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		pages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prerender_pages_generated_total",
			Help: "Pages rendered and written to the output directory.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prerender_runs_failed_total",
			Help: "Generate runs that ended with an error.",
		}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prerender_batches_total",
			Help: "Render batches that settled.",
		}),
		renderTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "prerender_render_duration_seconds",
			Help:    "Time to render, minify and write one page.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		runTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "prerender_run_duration_seconds",
			Help: "Wall time of the last generate run.",
		}),
		lastPages: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "prerender_run_pages",
			Help: "Pages generated by the last run.",
		}),
	}

	r.registry.MustRegister(r.pages, r.failures, r.batches, r.renderTime, r.runTime, r.lastPages)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) PageGenerated(route string, took time.Duration) {
	r.pages.Inc()
	r.renderTime.Observe(took.Seconds())
}

func (r *Recorder) BatchCompleted(size int) {
	r.batches.Inc()
}

func (r *Recorder) RunFinished(pages int, took time.Duration, err error) {
	r.runTime.Set(took.Seconds())
	r.lastPages.Set(float64(pages))
	if err != nil {
		r.failures.Inc()
	}
}

// WriteTextfile writes the metrics in the node_exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
