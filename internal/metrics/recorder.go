package metrics

import "time"

// ResultLabel enumerates download result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
	ResultPlanned ResultLabel = "planned" // dry run
)

// Recorder defines observability hooks for a vendoring run.
type Recorder interface {
	IncDocuments()
	IncDownload(result ResultLabel)
	AddDownloadedBytes(n int)
	AddRewrites(n int)
	ObserveRunDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncDocuments()                    {}
func (NoopRecorder) IncDownload(ResultLabel)          {}
func (NoopRecorder) AddDownloadedBytes(int)           {}
func (NoopRecorder) AddRewrites(int)                  {}
func (NoopRecorder) ObserveRunDuration(time.Duration) {}
