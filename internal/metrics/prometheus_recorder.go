package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg             *prom.Registry
	documents       prom.Counter
	downloads       *prom.CounterVec
	downloadedBytes prom.Counter
	rewrites        prom.Counter
	runDuration     prom.Gauge
	lastRun         prom.Gauge
}

// NewPrometheusRecorder constructs and registers the run metrics on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		documents: prom.NewCounter(prom.CounterOpts{
			Namespace: "imgvendor",
			Name:      "documents_processed_total",
			Help:      "Markdown documents processed",
		}),
		downloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "imgvendor",
			Name:      "downloads_total",
			Help:      "Image downloads by result",
		}, []string{"result"}),
		downloadedBytes: prom.NewCounter(prom.CounterOpts{
			Namespace: "imgvendor",
			Name:      "downloaded_bytes_total",
			Help:      "Bytes written to the images directory",
		}),
		rewrites: prom.NewCounter(prom.CounterOpts{
			Namespace: "imgvendor",
			Name:      "references_rewritten_total",
			Help:      "Image references rewritten to local paths",
		}),
		runDuration: prom.NewGauge(prom.GaugeOpts{
			Namespace: "imgvendor",
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run",
		}),
		lastRun: prom.NewGauge(prom.GaugeOpts{
			Namespace: "imgvendor",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}
	reg.MustRegister(pr.documents, pr.downloads, pr.downloadedBytes, pr.rewrites, pr.runDuration, pr.lastRun)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) IncDocuments() { p.documents.Inc() }

func (p *PrometheusRecorder) IncDownload(result ResultLabel) {
	p.downloads.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) AddDownloadedBytes(n int) {
	if n > 0 {
		p.downloadedBytes.Add(float64(n))
	}
}

func (p *PrometheusRecorder) AddRewrites(n int) {
	if n > 0 {
		p.rewrites.Add(float64(n))
	}
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	p.runDuration.Set(d.Seconds())
	p.lastRun.SetToCurrentTime()
}

// WriteTextfile writes all registered metrics to path in the Prometheus text format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}
