// Package metric provides Prometheus metrics for mpdlink.
//
// This package implements metrics collection for the client session:
//
//   - metric.go: metric definitions and registration
//
// Metrics include:
//
//   - Connection attempt and failure counters
//   - Request counters by outcome
//   - Request latency histogram
//   - In-flight queue depth gauge
//
// All session hooks are nil-safe: a nil *Metrics disables collection.
package metric
