package model

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTooFewPoints is returned when a table has fewer than two points.
	ErrTooFewPoints = errors.New("calibration table needs at least 2 points")
	// ErrVoltageOrder is returned when voltages are not strictly decreasing.
	ErrVoltageOrder = errors.New("calibration voltages must be strictly decreasing")
	// ErrSOCOrder is returned when SOC increases while voltage decreases.
	ErrSOCOrder = errors.New("calibration soc must not increase as voltage decreases")
	// ErrSOCRange is returned when a SOC value lies outside [0,100].
	ErrSOCRange = errors.New("calibration soc must be within [0,100]")
	// ErrNotFinite is returned for NaN or infinite values.
	ErrNotFinite = errors.New("calibration values must be finite")
)

// CalibrationPoint maps an open-circuit voltage in volts to a state of
// charge in percent.
type CalibrationPoint struct {
	Voltage float64 `json:"voltage" yaml:"voltage"`
	SOC     float64 `json:"soc" yaml:"soc"`
}

// CalibrationTable is an ordered list of calibration points sorted by
// descending voltage. It is never modified once built.
type CalibrationTable struct {
	model  string
	points []CalibrationPoint
}

// NewCalibrationTable copies points into a new table. The result is not
// validated; call Validate before handing it to an estimator.
func NewCalibrationTable(model string, points []CalibrationPoint) CalibrationTable {
	cp := make([]CalibrationPoint, len(points))
	copy(cp, points)
	return CalibrationTable{model: model, points: cp}
}

// Model returns the battery model the table was measured on.
func (t CalibrationTable) Model() string { return t.model }

// Len returns the number of points.
func (t CalibrationTable) Len() int { return len(t.points) }

// At returns the i-th point in descending voltage order.
func (t CalibrationTable) At(i int) CalibrationPoint { return t.points[i] }

// Points returns a copy of the points in descending voltage order.
func (t CalibrationTable) Points() []CalibrationPoint {
	cp := make([]CalibrationPoint, len(t.points))
	copy(cp, t.points)
	return cp
}

// Sorted returns a copy of the points in ascending voltage order, which is
// the order charts and exported tables use.
func (t CalibrationTable) Sorted() []CalibrationPoint {
	n := len(t.points)
	out := make([]CalibrationPoint, n)
	for i, p := range t.points {
		out[n-1-i] = p
	}
	return out
}

// High returns the highest-voltage point. It panics on an empty table.
func (t CalibrationTable) High() CalibrationPoint { return t.points[0] }

// Low returns the lowest-voltage point. It panics on an empty table.
func (t CalibrationTable) Low() CalibrationPoint { return t.points[len(t.points)-1] }

// Validate checks that the table is usable for interpolation.
func (t CalibrationTable) Validate() error {
	if len(t.points) < 2 {
		return ErrTooFewPoints
	}
	for i, p := range t.points {
		if !finite(p.Voltage) || !finite(p.SOC) {
			return fmt.Errorf("point %d: %w", i, ErrNotFinite)
		}
		if p.SOC < 0 || p.SOC > 100 {
			return fmt.Errorf("point %d (%.2f V): %w", i, p.Voltage, ErrSOCRange)
		}
		if i == 0 {
			continue
		}
		prev := t.points[i-1]
		if p.Voltage >= prev.Voltage {
			return fmt.Errorf("point %d (%.2f V after %.2f V): %w", i, p.Voltage, prev.Voltage, ErrVoltageOrder)
		}
		if p.SOC > prev.SOC {
			return fmt.Errorf("point %d (%.2f V): %w", i, p.Voltage, ErrSOCOrder)
		}
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
