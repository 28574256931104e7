package metrics

import (
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/kilianp07/socest/core/metrics"
	"github.com/kilianp07/socest/core/factory"
)

func TestPromSink_RecordEstimate(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	if err := sink.RecordEstimate(coremetrics.EstimateEvent{Voltage: 12.45, SOC: 67.5, Outcome: "ok", Source: "api"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := sink.RecordEstimate(coremetrics.EstimateEvent{Outcome: "undefined", Source: "api", Err: errors.New("x")}); err != nil {
		t.Fatalf("record: %v", err)
	}

	expected := `
# HELP soc_estimates_total Total number of state of charge estimations
# TYPE soc_estimates_total counter
soc_estimates_total{outcome="ok",source="api"} 1
soc_estimates_total{outcome="undefined",source="api"} 1
`
	if err := testutil.CollectAndCompare(sink.estimates, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if got := testutil.ToFloat64(sink.voltage); got != 12.45 {
		t.Errorf("last voltage %v", got)
	}
	if c := testutil.CollectAndCount(sink.soc); c != 1 {
		t.Errorf("expected one histogram got %d", c)
	}
}

func TestPromSink_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	s1, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("first sink: %v", err)
	}
	s2, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("second sink: %v", err)
	}
	_ = s1.RecordEstimate(coremetrics.EstimateEvent{Outcome: "ok", Source: "ui"})
	_ = s2.RecordEstimate(coremetrics.EstimateEvent{Outcome: "ok", Source: "ui"})
	if got := testutil.ToFloat64(s1.estimates.WithLabelValues("ok", "ui")); got != 2 {
		t.Fatalf("collectors not shared: %v", got)
	}
}

func TestBuiltinSinks(t *testing.T) {
	s, err := coremetrics.NewMetricsSink([]factory.ModuleConfig{{Type: "nop"}})
	if err != nil {
		t.Fatalf("nop: %v", err)
	}
	if _, ok := s.(coremetrics.NopSink); !ok {
		t.Fatalf("expected NopSink got %T", s)
	}
	s, err = coremetrics.NewMetricsSink([]factory.ModuleConfig{{Type: "prometheus"}})
	if err != nil {
		t.Fatalf("prometheus: %v", err)
	}
	if _, ok := s.(*PromSink); !ok {
		t.Fatalf("expected PromSink got %T", s)
	}
}
