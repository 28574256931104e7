package soc

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/kilianp07/socest/core/model"
)

// ErrUndefinedInterpolation is returned when no calibration bracket contains
// the voltage. With a validated table only NaN readings end up here.
var ErrUndefinedInterpolation = errors.New("soc: voltage outside every calibration bracket")

// Outcome classifies how an estimate was obtained.
type Outcome int

const (
	// OutcomeInterpolated means the voltage fell inside the calibrated range.
	OutcomeInterpolated Outcome = iota
	// OutcomeClampedHigh means the voltage was at or above the highest point.
	OutcomeClampedHigh
	// OutcomeClampedLow means the voltage was at or below the lowest point.
	OutcomeClampedLow
	// OutcomeUndefined means the defensive fallback was taken.
	OutcomeUndefined
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInterpolated:
		return "ok"
	case OutcomeClampedHigh:
		return "clamped_high"
	case OutcomeClampedLow:
		return "clamped_low"
	case OutcomeUndefined:
		return "undefined"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is a single estimation.
type Result struct {
	Voltage float64 `json:"voltage"`
	SOC     float64 `json:"soc"`
	Outcome Outcome `json:"-"`
}

// Clamped reports whether the voltage was outside the calibrated range.
func (r Result) Clamped() bool {
	return r.Outcome == OutcomeClampedHigh || r.Outcome == OutcomeClampedLow
}

// Estimator maps open-circuit voltages to state of charge using linear
// interpolation over a calibration table. It holds no mutable state and
// may be shared between goroutines.
type Estimator struct {
	table    model.CalibrationTable
	rounding Rounding
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithRounding selects how interpolated values are rounded to one decimal.
func WithRounding(r Rounding) Option {
	return func(e *Estimator) { e.rounding = r }
}

// New validates the table and returns an estimator over it.
func New(table model.CalibrationTable, opts ...Option) (*Estimator, error) {
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid calibration table: %w", err)
	}
	return NewUnchecked(table, opts...), nil
}

// NewUnchecked builds an estimator without validating the table. Broken
// tables make Estimate return ErrUndefinedInterpolation instead of
// panicking.
func NewUnchecked(table model.CalibrationTable, opts ...Option) *Estimator {
	e := &Estimator{table: table, rounding: RoundHalfEven}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Table returns the calibration table.
func (e *Estimator) Table() model.CalibrationTable { return e.table }

// Rounding returns the configured rounding mode.
func (e *Estimator) Rounding() Rounding { return e.rounding }

// Range returns the lowest and highest calibrated voltages.
func (e *Estimator) Range() (low, high float64) {
	if e.table.Len() == 0 {
		return math.NaN(), math.NaN()
	}
	return e.table.Low().Voltage, e.table.High().Voltage
}

// Estimate returns the state of charge in percent for voltage.
func (e *Estimator) Estimate(voltage float64) (float64, error) {
	r, err := e.Evaluate(voltage)
	return r.SOC, err
}

// Evaluate is Estimate with the outcome classification attached.
func (e *Estimator) Evaluate(voltage float64) (Result, error) {
	res := Result{Voltage: voltage, Outcome: OutcomeUndefined}
	n := e.table.Len()
	if n == 0 {
		return res, ErrUndefinedInterpolation
	}
	if high := e.table.High(); voltage >= high.Voltage {
		res.SOC, res.Outcome = high.SOC, OutcomeClampedHigh
		return res, nil
	}
	if low := e.table.Low(); voltage <= low.Voltage {
		res.SOC, res.Outcome = low.SOC, OutcomeClampedLow
		return res, nil
	}
	for i := 0; i < n-1; i++ {
		hi, lo := e.table.At(i), e.table.At(i+1)
		if lo.Voltage <= voltage && voltage <= hi.Voltage {
			v := lo.SOC + (voltage-lo.Voltage)*(hi.SOC-lo.SOC)/(hi.Voltage-lo.Voltage)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return res, ErrUndefinedInterpolation
			}
			res.SOC, res.Outcome = e.rounding.round(v), OutcomeInterpolated
			return res, nil
		}
	}
	return res, ErrUndefinedInterpolation
}

// Rounding selects the tie-breaking rule used when rounding to one decimal.
type Rounding int

const (
	// RoundHalfEven rounds the exact binary value to the nearest tenth,
	// breaking exact ties to the even digit.
	RoundHalfEven Rounding = iota
	// RoundHalfAwayFromZero rounds ties away from zero. Values within one
	// ulp of a tie count as ties.
	RoundHalfAwayFromZero
)

const decimals = 1

func (r Rounding) round(v float64) float64 {
	if r == RoundHalfAwayFromZero {
		return scalar.Round(v, decimals)
	}
	// FormatFloat rounds the exact binary value, ties to even.
	out, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		return math.NaN()
	}
	return out
}

func (r Rounding) String() string {
	if r == RoundHalfAwayFromZero {
		return "half_away"
	}
	return "half_even"
}

// ParseRounding parses the configuration names "half_even" and "half_away".
// An empty string selects RoundHalfEven.
func ParseRounding(s string) (Rounding, error) {
	switch s {
	case "", "half_even":
		return RoundHalfEven, nil
	case "half_away":
		return RoundHalfAwayFromZero, nil
	default:
		return RoundHalfEven, fmt.Errorf("unknown rounding mode %q", s)
	}
}
