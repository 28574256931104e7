package metrics

import "github.com/kilianp07/socest/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	// PrometheusAddress is the listen address of the /metrics endpoint.
	// Empty disables the endpoint.
	PrometheusAddress string                 `json:"prometheus_address"`
	Sinks             []factory.ModuleConfig `json:"sinks"`
}
