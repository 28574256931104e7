package metrics

import "time"

// EstimateEvent describes one voltage to SOC estimation.
type EstimateEvent struct {
	RequestID string
	Voltage   float64
	SOC       float64
	// Outcome is the estimator outcome name: ok, clamped_high, clamped_low
	// or undefined.
	Outcome string
	Err     error
	// Source names the entry point that triggered the estimation (ui, api, cli).
	Source string
	Time   time.Time
}

// MetricsSink records estimation events for observability purposes.
type MetricsSink interface {
	RecordEstimate(ev EstimateEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordEstimate(EstimateEvent) error { return nil }
