// Package metrics counts extraction progress with Prometheus collectors.
//
// A nil *Metrics is valid and records nothing, so callers never need to
// check whether metrics were configured.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bandplan"

// Metrics holds the counters for one extraction.
type Metrics struct {
	registry *prometheus.Registry

	pages     *prometheus.CounterVec
	rows      *prometheus.CounterVec
	records   *prometheus.CounterVec
	footnotes *prometheus.CounterVec
	warnings  prometheus.Counter
}

// New creates counters registered on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_total",
			Help:      "Pages visited, by stage and outcome.",
		}, []string{"stage", "outcome"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_rows_total",
			Help:      "Allocation table rows, by outcome.",
		}, []string{"outcome"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_written_total",
			Help:      "Records handed to the sink, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		footnotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "footnotes_reconstructed_total",
			Help:      "Footnotes reconstructed, by taxonomy.",
		}, []string{"taxonomy"}),
		warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Non-fatal problems encountered.",
		}),
	}
	m.registry.MustRegister(m.pages, m.rows, m.records, m.footnotes, m.warnings)
	return m
}

// Registry returns the registry the counters live on
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// PageProcessed counts a page a stage handled
func (m *Metrics) PageProcessed(stage string) {
	if m == nil {
		return
	}
	m.pages.WithLabelValues(stage, "processed").Inc()
}

// PageSkipped counts a page a stage could not use
func (m *Metrics) PageSkipped(stage string) {
	if m == nil {
		return
	}
	m.pages.WithLabelValues(stage, "skipped").Inc()
}

// Rows counts classified and skipped table rows
func (m *Metrics) Rows(classified, skipped int) {
	if m == nil {
		return
	}
	m.rows.WithLabelValues("classified").Add(float64(classified))
	m.rows.WithLabelValues("skipped").Add(float64(skipped))
}

// Written counts records passed to a sink and how many of them were new
func (m *Metrics) Written(kind string, offered, inserted int) {
	if m == nil {
		return
	}
	m.records.WithLabelValues(kind, "inserted").Add(float64(inserted))
	m.records.WithLabelValues(kind, "duplicate").Add(float64(offered - inserted))
}

// Footnotes counts reconstructed footnotes
func (m *Metrics) Footnotes(taxonomy string, n int) {
	if m == nil {
		return
	}
	m.footnotes.WithLabelValues(taxonomy).Add(float64(n))
}

// Warning counts one warning
func (m *Metrics) Warning() {
	if m == nil {
		return
	}
	m.warnings.Inc()
}

// WriteFile writes the counters in the Prometheus text format, suitable for
// the node exporter textfile collector.
func (m *Metrics) WriteFile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
