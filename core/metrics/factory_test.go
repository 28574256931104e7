package metrics

import (
	"slices"
	"strings"
	"testing"

	"github.com/kilianp07/socest/core/factory"
)

func TestNewMetricsSink(t *testing.T) {
	s, err := NewMetricsSink(nil)
	if err != nil {
		t.Fatalf("create nop default: %v", err)
	}
	if _, ok := s.(NopSink); !ok {
		t.Fatalf("expected NopSink, got %T", s)
	}

	if err := RegisterMetricsSink("test-record", func(map[string]any) (MetricsSink, error) {
		return &recordSink{}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	s, err = NewMetricsSink([]factory.ModuleConfig{{Type: "test-record"}, {Type: "test-record"}})
	if err != nil {
		t.Fatalf("create multi: %v", err)
	}
	m, ok := s.(*MultiSink)
	if !ok || len(m.Sinks) != 2 {
		t.Fatalf("expected MultiSink with 2 sinks, got %T", s)
	}

	s, err = NewMetricsSink([]factory.ModuleConfig{{Type: "test-record"}})
	if err != nil {
		t.Fatalf("create single: %v", err)
	}
	if _, ok := s.(*recordSink); !ok {
		t.Fatalf("single entry should not be wrapped, got %T", s)
	}

	_, err = NewMetricsSink([]factory.ModuleConfig{{Type: "test-record"}, {Type: "missing"}})
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
	if !strings.Contains(err.Error(), "metrics sink 1 (missing)") || !strings.Contains(err.Error(), "test-record") {
		t.Fatalf("error should name the entry and the known types: %v", err)
	}
}

func TestMetricsSinkTypes(t *testing.T) {
	_ = RegisterMetricsSink("test-types", func(map[string]any) (MetricsSink, error) { return NopSink{}, nil })
	if !slices.Contains(MetricsSinkTypes(), "test-types") {
		t.Fatalf("registered type missing from %v", MetricsSinkTypes())
	}
}
