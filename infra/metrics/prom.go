package metrics

import (
	"errors"

	coremetrics "github.com/kilianp07/socest/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records estimation events in Prometheus metrics.
type PromSink struct {
	estimates *prometheus.CounterVec
	soc       prometheus.Histogram
	voltage   prometheus.Gauge
}

// NewPromSink registers estimator metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	estimates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "soc_estimates_total",
		Help: "Total number of state of charge estimations",
	}, []string{"outcome", "source"})
	soc := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "soc_estimate_percent",
		Help:    "Distribution of estimated state of charge",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})
	voltage := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "soc_last_voltage_volts",
		Help: "Last open-circuit voltage submitted for estimation",
	})

	var err error
	if estimates, err = register(reg, estimates); err != nil {
		return nil, err
	}
	if soc, err = register(reg, soc); err != nil {
		return nil, err
	}
	if voltage, err = register(reg, voltage); err != nil {
		return nil, err
	}
	return &PromSink{estimates: estimates, soc: soc, voltage: voltage}, nil
}

// register returns the already registered collector when c was registered
// before, so that several sinks can share the default registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordEstimate counts the event and, for successful estimations, records
// the SOC distribution and last voltage.
func (s *PromSink) RecordEstimate(ev coremetrics.EstimateEvent) error {
	outcome := ev.Outcome
	if outcome == "" {
		outcome = "unknown"
	}
	s.estimates.WithLabelValues(outcome, ev.Source).Inc()
	if ev.Err != nil {
		return nil
	}
	s.soc.Observe(ev.SOC)
	s.voltage.Set(ev.Voltage)
	return nil
}
