// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the pipeline.
//
// The global backend defaults to a no-op implementation, so metrics are
// always safe to call even when no real backend is configured; the batch run
// stays console-only unless one is installed. Concrete metric systems live in
// subpackages (e.g. prompush) so the pipeline stages depend only on this
// interface.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a duration-style value in seconds.
	ObserveDuration(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)      {}
func (nopBackend) ObserveDuration(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                              { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStage measures one pipeline stage: latency plus success/failure.
func RecordStage(stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"stage": stage, "status": status}
	backend.IncCounter("etl_stage_total", 1, lbls)
	backend.ObserveDuration("etl_stage_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a row-level counter for the given kind.
//
// Typical kinds mirror the run summary, e.g.:
//   - "sales_loaded"
//   - "orders"
//   - "items"
//   - "catalog"
//   - "catalog_dropped"
//   - "orphans_removed"
func RecordRows(kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("etl_rows_total", float64(delta), Labels{"kind": kind})
}
