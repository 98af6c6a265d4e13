// Package metrics provides run counters for the vendoring pipeline.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so nothing needs a nil check:
//
//	v := vendoring.New(cfg, fetcher) // NoopRecorder
//	v := vendoring.New(cfg, fetcher, vendoring.WithRecorder(metrics.NewPrometheusRecorder(nil)))
//
// PrometheusRecorder can write its registry in the Prometheus text format
// (WriteTextfile), suitable for node_exporter's textfile collector since a
// one-shot run has no scrape endpoint.
package metrics
