package config

import (
	"github.com/kilianp07/socest/core/model"
	"github.com/kilianp07/socest/core/soc"
)

// EstimatorConfig selects the calibration curve and rounding rule.
type EstimatorConfig struct {
	// Model labels the battery in the UI.
	Model string `json:"model"`
	// Rounding is "half_even" (default) or "half_away".
	Rounding string `json:"rounding"`
	// Points overrides the built-in curve when non-empty. They must be
	// listed by descending voltage.
	Points []model.CalibrationPoint `json:"table"`
}

func (c *EstimatorConfig) SetDefaults() {
	if c.Model == "" {
		c.Model = model.YuasaNPW45Model
	}
	if c.Rounding == "" {
		c.Rounding = soc.RoundHalfEven.String()
	}
}

// Table returns the configured calibration table.
func (c EstimatorConfig) Table() model.CalibrationTable {
	if len(c.Points) == 0 {
		return model.NewCalibrationTable(c.Model, model.YuasaNPW45().Points())
	}
	return model.NewCalibrationTable(c.Model, c.Points)
}

// Validate checks the rounding mode and the table invariant.
func (c EstimatorConfig) Validate() error {
	if _, err := soc.ParseRounding(c.Rounding); err != nil {
		return err
	}
	return c.Table().Validate()
}

// NewEstimator builds the estimator described by the configuration.
func (c EstimatorConfig) NewEstimator() (*soc.Estimator, error) {
	r, err := soc.ParseRounding(c.Rounding)
	if err != nil {
		return nil, err
	}
	return soc.New(c.Table(), soc.WithRounding(r))
}
