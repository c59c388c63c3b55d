// Package metrics provides the observability hooks for navigation resolution.
//
// Components receive a Recorder through their options. NoopRecorder is the
// default so callers never nil-check; PrometheusRecorder is swapped in by the
// serve command when metrics are enabled:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	resolver := sidebar.NewResolver(links, sidebar.WithRecorder(rec))
package metrics
