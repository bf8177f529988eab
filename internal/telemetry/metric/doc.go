// Package metric provides Prometheus metrics for the local game servers.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Registry, typed recorders and the HTTP handler
//
// Metrics include:
//
//   - File server requests by status code and bytes served
//   - Request latency histogram
//   - Control server open connections
//   - Per-server readiness gauge
//
// Every recorder is safe to call on a nil *Registry, so servers can run
// without metrics wired in.
package metric
