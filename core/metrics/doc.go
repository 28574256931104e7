package metrics

// Package metrics defines the sink interface used to observe SOC
// estimations. Sinks are built from configuration through a small registry;
// several configured sinks are combined into a MultiSink.
