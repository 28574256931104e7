package metrics

import "errors"

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordEstimate forwards the event to every sink and joins their errors.
func (m *MultiSink) RecordEstimate(ev EstimateEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordEstimate(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
