package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for one run.
type Metrics struct {
	Registry            *prometheus.Registry
	OrdersTotal         *prometheus.CounterVec
	SubmitAttemptsTotal prometheus.Counter
	SubmitFailuresTotal prometheus.Counter
	StepDuration        *prometheus.HistogramVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	orders := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "robotorder_orders_total",
			Help: "Order rows processed, by outcome.",
		},
		[]string{"outcome"},
	)
	attempts := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "robotorder_submit_attempts_total",
			Help: "Clicks on the order button.",
		},
	)
	failures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "robotorder_submit_failures_total",
			Help: "Order button clicks that did not lead to a confirmation.",
		},
	)
	steps := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "robotorder_step_duration_seconds",
			Help:    "Wall time of each workflow step.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
		[]string{"step"},
	)

	registry.MustRegister(orders, attempts, failures, steps)

	return &Metrics{
		Registry:            registry,
		OrdersTotal:         orders,
		SubmitAttemptsTotal: attempts,
		SubmitFailuresTotal: failures,
		StepDuration:        steps,
	}
}

// IncOrder counts a finished order row.
func (m *Metrics) IncOrder(outcome OrderOutcome) {
	if m == nil {
		return
	}
	m.OrdersTotal.WithLabelValues(string(outcome)).Inc()
}

// ObserveSubmit records how many submit clicks a row used and whether the last one confirmed.
func (m *Metrics) ObserveSubmit(attempt SubmitAttempt) {
	if m == nil {
		return
	}
	m.SubmitAttemptsTotal.Add(float64(attempt.Attempts))
	failed := attempt.Attempts
	if attempt.Confirmed {
		failed--
	}
	m.SubmitFailuresTotal.Add(float64(failed))
}

// ObserveStep records a step duration.
func (m *Metrics) ObserveStep(step string, d time.Duration) {
	if m == nil {
		return
	}
	m.StepDuration.WithLabelValues(step).Observe(d.Seconds())
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
