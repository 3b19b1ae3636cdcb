// Package metrics exports a run summary in the Prometheus text format so a
// node_exporter textfile collector can alert on stale or failing rotations.
package metrics

import (
	"fmt"

	"github.com/MrSnakeDoc/boxkeep/internal/errs"
	"github.com/MrSnakeDoc/boxkeep/internal/report"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "boxkeep"

// Registry builds a fresh registry describing s.
func Registry(s *report.Summary) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()

	records := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "records",
		Help:      "Archives found in each storage tier at the start of the last run.",
	}, []string{"tier"})
	records.WithLabelValues("daily").Set(float64(s.DailyRecords))
	records.WithLabelValues("monthly").Set(float64(s.MonthlyRecords))

	failures := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "failures_total",
		Help:      "Remote operations that failed during the last run.",
	}, []string{"op"})
	for _, op := range []errs.Op{errs.OpList, errs.OpRemove, errs.OpCopy} {
		failures.WithLabelValues(string(op)).Set(float64(s.Failures[op]))
	}

	collectors := []prometheus.Collector{
		records,
		failures,
		gauge("expired_total", "Daily archives deleted during the last run.", s.Expired),
		gauge("promoted_total", "Daily archives copied into the monthly tier during the last run.", s.Promoted),
		gauge("skipped_entries_total", "Listed entries that did not match the filename pattern.", s.Skipped),
		gauge("last_run_timestamp_seconds", "Start time of the last run.", int(s.Started.Unix())),
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return reg, nil
}

// WriteTextfile atomically writes the metrics of s to path.
func WriteTextfile(path string, s *report.Summary) error {
	reg, err := Registry(s)
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}

func gauge(name, help string, v int) prometheus.Gauge {
	g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	g.Set(float64(v))
	return g
}
