package config

import "fmt"

// HTTPConfig configures the web server.
type HTTPConfig struct {
	Address string `json:"address"`
	// ShutdownTimeoutSeconds bounds the graceful shutdown.
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds"`
}

func (c *HTTPConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.ShutdownTimeoutSeconds <= 0 {
		c.ShutdownTimeoutSeconds = 5
	}
}

// UIConfig holds the bounds of the voltage input widget.
type UIConfig struct {
	MinVoltage     float64 `json:"min_voltage"`
	MaxVoltage     float64 `json:"max_voltage"`
	Step           float64 `json:"step"`
	DefaultVoltage float64 `json:"default_voltage"`
}

func (c *UIConfig) SetDefaults() {
	if c.MinVoltage == 0 && c.MaxVoltage == 0 {
		c.MinVoltage, c.MaxVoltage = 10.0, 13.0
	}
	if c.Step <= 0 {
		c.Step = 0.01
	}
	if c.DefaultVoltage == 0 {
		c.DefaultVoltage = 12.5
	}
}

func (c UIConfig) Validate() error {
	if c.MinVoltage >= c.MaxVoltage {
		return fmt.Errorf("min_voltage %.2f must be below max_voltage %.2f", c.MinVoltage, c.MaxVoltage)
	}
	if c.DefaultVoltage < c.MinVoltage || c.DefaultVoltage > c.MaxVoltage {
		return fmt.Errorf("default_voltage %.2f outside [%.2f, %.2f]", c.DefaultVoltage, c.MinVoltage, c.MaxVoltage)
	}
	return nil
}
