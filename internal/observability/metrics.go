// Package observability holds the Prometheus metrics of a merge run.
package observability

import (
	"fmt"
	"time"

	"github.com/fermata-energy/fermata/schema"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fermata"

// Metrics holds the Prometheus counters, histograms, and gauges for a merge run.
type Metrics struct {
	registry *prometheus.Registry

	BuildingsProcessed *prometheus.CounterVec // labels: status={ok,empty,skipped,failed}
	RowsMerged         prometheus.Counter
	RowsDropped        prometheus.Counter
	BuildingDuration   prometheus.Histogram
	RunDuration        prometheus.Gauge
	LastRunTimestamp   prometheus.Gauge
}

// NewMetrics creates all merge metrics and registers them with a fresh registry,
// so a run's textfile only carries its own series.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		BuildingsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "buildings_processed_total",
			Help:      "Buildings merged in the run by outcome.",
		}, []string{"status"}),
		RowsMerged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_merged_total",
			Help:      "Feature rows written across all buildings.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Load rows without a matching weather timestamp.",
		}),
		BuildingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "building_duration_seconds",
			Help:      "Time to merge and write one building.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last merge run.",
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last merge run finished.",
		}),
	}

	m.registry.MustRegister(
		m.BuildingsProcessed,
		m.RowsMerged,
		m.RowsDropped,
		m.BuildingDuration,
		m.RunDuration,
		m.LastRunTimestamp,
	)
	for _, st := range schema.AllBuildingStatuses {
		m.BuildingsProcessed.WithLabelValues(string(st))
	}

	return m
}

// ObserveBuilding records the outcome of one building.
func (m *Metrics) ObserveBuilding(r schema.BuildingResult) {
	if m == nil {
		return
	}
	m.BuildingsProcessed.WithLabelValues(string(r.Status)).Inc()
	if r.OK() {
		m.RowsMerged.Add(float64(r.MergedRows))
	}
	if r.DroppedRows > 0 {
		m.RowsDropped.Add(float64(r.DroppedRows))
	}
	m.BuildingDuration.Observe(r.Duration.Seconds())
}

// ObserveRun records the timing of a finished run.
func (m *Metrics) ObserveRun(start, end time.Time) {
	if m == nil {
		return
	}
	m.RunDuration.Set(end.Sub(start).Seconds())
	m.LastRunTimestamp.Set(float64(end.Unix()))
}

// Gatherer exposes the registry, mainly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the metrics in the node exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
