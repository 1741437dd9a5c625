// Package metrics provides Prometheus metrics for a pruning run.
//
// A run is a short-lived process, so the metrics are not served over HTTP.
// They are gathered from a private registry and written to a node exporter
// textfile collector file at the end of the run.
package metrics
