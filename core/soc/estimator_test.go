package soc

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/socest/core/model"
)

func newYuasa(t *testing.T, opts ...Option) *Estimator {
	t.Helper()
	e, err := New(model.YuasaNPW45(), opts...)
	require.NoError(t, err)
	return e
}

func TestEstimate_ClampedAboveRange(t *testing.T) {
	e := newYuasa(t)
	for _, v := range []float64{12.90, 12.91, 13.0, 15, math.Inf(1)} {
		got, err := e.Estimate(v)
		require.NoError(t, err)
		assert.Equal(t, 100.0, got, "voltage %v", v)
	}
}

func TestEstimate_ClampedBelowRange(t *testing.T) {
	e := newYuasa(t)
	for _, v := range []float64{11.80, 11.79, 10.0, 0, -3, math.Inf(-1)} {
		got, err := e.Estimate(v)
		require.NoError(t, err)
		assert.Equal(t, 0.0, got, "voltage %v", v)
	}
}

func TestEstimate_CalibrationPoints(t *testing.T) {
	e := newYuasa(t)
	for _, p := range model.YuasaNPW45().Points() {
		got, err := e.Estimate(p.Voltage)
		require.NoError(t, err)
		assert.InDelta(t, p.SOC, got, 1e-9, "voltage %.2f", p.Voltage)
	}
	got, err := e.Estimate(12.50)
	require.NoError(t, err)
	assert.Equal(t, 75.0, got)
}

func TestEstimate_Interpolates(t *testing.T) {
	e := newYuasa(t)
	cases := []struct {
		v, want float64
	}{
		{12.45, 67.5},
		{12.35, 55.0},
		{12.05, 25.0},
		{12.55, 80.0},
		{11.85, 5.0},
		{12.42, 63.0},
	}
	for _, c := range cases {
		got, err := e.Estimate(c.v)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "voltage %.2f", c.v)
	}
}

func TestEvaluate_Outcome(t *testing.T) {
	e := newYuasa(t)
	r, err := e.Evaluate(13)
	require.NoError(t, err)
	assert.Equal(t, OutcomeClampedHigh, r.Outcome)
	assert.True(t, r.Clamped())

	r, err = e.Evaluate(11)
	require.NoError(t, err)
	assert.Equal(t, OutcomeClampedLow, r.Outcome)

	r, err = e.Evaluate(12.3)
	require.NoError(t, err)
	assert.Equal(t, OutcomeInterpolated, r.Outcome)
	assert.False(t, r.Clamped())
	assert.Equal(t, 12.3, r.Voltage)
}

func TestEstimate_Monotonic(t *testing.T) {
	e := newYuasa(t)
	prev, err := e.Estimate(11.80)
	require.NoError(t, err)
	for mv := 11801; mv <= 12900; mv++ {
		v := float64(mv) / 1000
		got, err := e.Estimate(v)
		require.NoError(t, err)
		if got < prev {
			t.Fatalf("estimate decreased at %.3f V: %v < %v", v, got, prev)
		}
		if got < 0 || got > 100 {
			t.Fatalf("estimate out of range at %.3f V: %v", v, got)
		}
		prev = got
	}
}

func TestEstimate_Idempotent(t *testing.T) {
	e := newYuasa(t)
	first, err := e.Estimate(12.37)
	require.NoError(t, err)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := e.Estimate(12.37)
				if err != nil || got != first {
					t.Errorf("non deterministic result %v %v", got, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestEstimate_NaNFallsBack(t *testing.T) {
	e := newYuasa(t)
	r, err := e.Evaluate(math.NaN())
	assert.ErrorIs(t, err, ErrUndefinedInterpolation)
	assert.Equal(t, OutcomeUndefined, r.Outcome)
}

func TestEstimate_BrokenTableFallsBack(t *testing.T) {
	broken := model.NewCalibrationTable("broken", []model.CalibrationPoint{
		{Voltage: 12.9, SOC: 100},
		{Voltage: math.NaN(), SOC: 50},
		{Voltage: 11.8, SOC: 0},
	})
	e := NewUnchecked(broken)
	_, err := e.Estimate(12.3)
	assert.True(t, errors.Is(err, ErrUndefinedInterpolation))

	empty := NewUnchecked(model.NewCalibrationTable("empty", nil))
	_, err = empty.Estimate(12.3)
	assert.ErrorIs(t, err, ErrUndefinedInterpolation)
	low, high := empty.Range()
	assert.True(t, math.IsNaN(low) && math.IsNaN(high))
}

func TestNew_RejectsInvalidTables(t *testing.T) {
	_, err := New(model.NewCalibrationTable("one", []model.CalibrationPoint{{Voltage: 12.9, SOC: 100}}))
	assert.ErrorIs(t, err, model.ErrTooFewPoints)

	_, err = New(model.NewCalibrationTable("order", []model.CalibrationPoint{
		{Voltage: 12.9, SOC: 100},
		{Voltage: 12.0, SOC: 20},
		{Voltage: 12.5, SOC: 75},
	}))
	assert.ErrorIs(t, err, model.ErrVoltageOrder)

	_, err = New(model.NewCalibrationTable("soc", []model.CalibrationPoint{
		{Voltage: 12.9, SOC: 50},
		{Voltage: 11.8, SOC: 60},
	}))
	assert.ErrorIs(t, err, model.ErrSOCOrder)
}

func TestRange(t *testing.T) {
	low, high := newYuasa(t).Range()
	assert.Equal(t, 11.80, low)
	assert.Equal(t, 12.90, high)
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 12.2, RoundHalfEven.round(12.25))
	assert.Equal(t, 12.3, RoundHalfAwayFromZero.round(12.25))
	assert.Equal(t, 0.8, RoundHalfEven.round(0.75))
	assert.Equal(t, 67.5, RoundHalfEven.round(67.49999999999999))

	e := newYuasa(t, WithRounding(RoundHalfAwayFromZero))
	assert.Equal(t, RoundHalfAwayFromZero, e.Rounding())
	got, err := e.Estimate(12.45)
	require.NoError(t, err)
	assert.Equal(t, 67.5, got)
}

func TestRoundingExactBinaryValue(t *testing.T) {
	e := newYuasa(t)
	tests := []struct {
		voltage float64
		want    float64
	}{
		{12.629, 86.5},  // 86.45000000000000284
		{12.747, 92.3},  // 92.34999999999999432
		{12.0855, 28.5}, // 28.54999999999999716
	}
	for _, tt := range tests {
		got, err := e.Estimate(tt.voltage)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "voltage %v", tt.voltage)
	}
}

func TestParseRounding(t *testing.T) {
	r, err := ParseRounding("")
	require.NoError(t, err)
	assert.Equal(t, RoundHalfEven, r)
	r, err = ParseRounding("half_away")
	require.NoError(t, err)
	assert.Equal(t, RoundHalfAwayFromZero, r)
	assert.Equal(t, "half_away", r.String())
	_, err = ParseRounding("banker")
	assert.Error(t, err)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "ok", OutcomeInterpolated.String())
	assert.Equal(t, "clamped_high", OutcomeClampedHigh.String())
	assert.Equal(t, "clamped_low", OutcomeClampedLow.String())
	assert.Equal(t, "undefined", OutcomeUndefined.String())
}
