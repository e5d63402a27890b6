package uvexposure

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewDaylightWindowRejectsInvertedBounds(t *testing.T) {
	_, err := NewDaylightWindow(at(t, "2024-06-21T20:00:00Z"), at(t, "2024-06-21T06:00:00Z"))
	require.ErrorIs(t, err, ErrInvalidDaylight)

	_, err = NewDaylightWindow(at(t, "2024-06-21T06:00:00Z"), at(t, "2024-06-21T06:00:00Z"))
	require.ErrorIs(t, err, ErrInvalidDaylight)
}

func TestNewDaylightWindowUsesSunriseLocation(t *testing.T) {
	plus2 := time.FixedZone("CEST", 2*60*60)
	sunrise := time.Date(2024, 6, 21, 6, 45, 0, 0, plus2)
	d, err := NewDaylightWindow(sunrise, time.Date(2024, 6, 21, 19, 48, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, plus2, d.Sunset.Location())
	require.Equal(t, 21, d.Sunset.Hour())
}

func TestCurveParameters(t *testing.T) {
	d := testDaylight(t)
	c := NewCurve(d, 8, CurveConfig{})

	require.Equal(t, at(t, "2024-06-21T13:00:00Z"), c.Midpoint())
	require.Equal(t, 14*time.Hour/5, c.Spread())
	require.Equal(t, 8.0, c.Peak())
}

func TestCurveCustomSpreadDivisor(t *testing.T) {
	c := NewCurve(testDaylight(t), 8, CurveConfig{SpreadDivisor: 7})
	require.Equal(t, 2*time.Hour, c.Spread())
}

func TestCurveCoercesInvalidPeak(t *testing.T) {
	require.Zero(t, NewCurve(testDaylight(t), -3, CurveConfig{}).Peak())
	require.Zero(t, NewCurve(testDaylight(t), math.NaN(), CurveConfig{}).Peak())
}

func TestCurveSymmetry(t *testing.T) {
	c := NewCurve(testDaylight(t), 6.5, CurveConfig{})
	for _, d := range []time.Duration{time.Minute, 37 * time.Minute, 2 * time.Hour, 7 * time.Hour, 12 * time.Hour} {
		before := c.ValueAt(c.Midpoint().Add(-d))
		after := c.ValueAt(c.Midpoint().Add(d))
		require.InDelta(t, before, after, 1e-12, "offset %s", d)
	}
}

func TestCurvePeakAtMidpoint(t *testing.T) {
	for _, peak := range []float64{0, 0.4, 3, 8, 11.7} {
		c := NewCurve(testDaylight(t), peak, CurveConfig{})
		require.InDelta(t, peak, c.ValueAt(c.Midpoint()), 1e-12)
	}
}

func TestCurveBoundedAndMonotonic(t *testing.T) {
	c := NewCurve(testDaylight(t), 9, CurveConfig{})
	prev := c.ValueAt(c.Midpoint())
	for step := 1; step <= 96; step++ {
		v := c.ValueAt(c.Midpoint().Add(time.Duration(step) * 15 * time.Minute))
		require.Greater(t, v, 0.0)
		require.LessOrEqual(t, v, 9.0)
		require.Less(t, v, prev)
		prev = v
	}
}

func TestCurveZeroPeakIsFlat(t *testing.T) {
	c := NewCurve(testDaylight(t), 0, CurveConfig{})
	for _, s := range c.SampleDay(testDaylight(t)) {
		require.Zero(t, s.Value)
	}
	require.Zero(t, c.ValueAt(at(t, "2030-01-01T00:00:00Z")))
}

func TestCurveSampleSpacing(t *testing.T) {
	d := testDaylight(t)
	c := NewCurve(d, 8, CurveConfig{})

	samples := c.Sample(d.Sunrise, d.Sunset, 100)
	require.Len(t, samples, 100)
	require.Equal(t, d.Sunrise, samples[0].Time)
	require.Equal(t, d.Sunset, samples[99].Time)

	step := d.Duration() / 99
	for i := 1; i < len(samples); i++ {
		gap := samples[i].Time.Sub(samples[i-1].Time)
		require.InDelta(t, step.Seconds(), gap.Seconds(), 1e-6)
	}
}

func TestCurveSampleFallsBackToConfiguredCount(t *testing.T) {
	d := testDaylight(t)
	c := NewCurve(d, 8, CurveConfig{SampleCount: 25})
	require.Len(t, c.Sample(d.Sunrise, d.Sunset, 1), 25)
	require.Len(t, c.SampleDay(d), 25)
	require.Len(t, c.Sample(d.Sunrise, d.Sunset, 2), 2)
}

func TestFullDaySampleMaximumNearMidpoint(t *testing.T) {
	d := testDaylight(t)
	c := NewCurve(d, 8, CurveConfig{})

	best := Sample{}
	for _, s := range c.SampleDay(d) {
		if s.Value > best.Value {
			best = s
		}
	}
	require.InDelta(t, 8.0, best.Value, 0.01)
	require.LessOrEqual(t, best.Value, 8.0)
	require.InDelta(t, 0, best.Time.Sub(c.Midpoint()).Minutes(), 5)
}

func testDaylight(t *testing.T) DaylightWindow {
	t.Helper()
	d, err := NewDaylightWindow(at(t, "2024-06-21T06:00:00Z"), at(t, "2024-06-21T20:00:00Z"))
	require.NoError(t, err)
	return d
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}
