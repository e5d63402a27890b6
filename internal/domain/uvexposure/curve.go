package uvexposure

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultSampleCount is the resolution used for display and integration.
	DefaultSampleCount = 100
	// DefaultSpreadDivisor makes the curve's standard deviation a fifth of daylight.
	DefaultSpreadDivisor = 5.0
)

// ErrInvalidDaylight is returned when sunrise is not strictly before sunset.
var ErrInvalidDaylight = errors.New("sunrise must be before sunset")

// DaylightWindow is the interval between sunrise and sunset of one day.
type DaylightWindow struct {
	Sunrise time.Time
	Sunset  time.Time
}

// NewDaylightWindow validates the bounds and expresses sunset in sunrise's location.
func NewDaylightWindow(sunrise, sunset time.Time) (DaylightWindow, error) {
	if !sunrise.Before(sunset) {
		return DaylightWindow{}, ErrInvalidDaylight
	}
	return DaylightWindow{Sunrise: sunrise, Sunset: sunset.In(sunrise.Location())}, nil
}

// Duration is the length of daylight.
func (d DaylightWindow) Duration() time.Duration {
	return d.Sunset.Sub(d.Sunrise)
}

// Sample is a curve value at an instant.
type Sample struct {
	Time  time.Time
	Value float64
}

// CurveConfig holds the curve tuning constants.
type CurveConfig struct {
	SpreadDivisor float64
	SampleCount   int
}

func (c CurveConfig) withDefaults() CurveConfig {
	if c.SpreadDivisor <= 0 {
		c.SpreadDivisor = DefaultSpreadDivisor
	}
	if c.SampleCount < 2 {
		c.SampleCount = DefaultSampleCount
	}
	return c
}

// Curve is a Gaussian UV index profile centred at solar midpoint.
type Curve struct {
	midpoint    time.Time
	spread      float64
	peak        float64
	sampleCount int
}

// NewCurve derives the curve parameters from the daylight window. A negative or NaN
// peak is treated as 0.
func NewCurve(daylight DaylightWindow, peak float64, cfg CurveConfig) Curve {
	cfg = cfg.withDefaults()
	if math.IsNaN(peak) || peak < 0 {
		peak = 0
	}
	length := daylight.Duration()
	return Curve{
		midpoint:    daylight.Sunrise.Add(length / 2),
		spread:      length.Seconds() / cfg.SpreadDivisor,
		peak:        peak,
		sampleCount: cfg.SampleCount,
	}
}

// Midpoint is the instant of maximum UV index.
func (c Curve) Midpoint() time.Time { return c.midpoint }

// Spread is the curve's standard deviation.
func (c Curve) Spread() time.Duration {
	return time.Duration(c.spread * float64(time.Second))
}

// Peak is the maximum UV index.
func (c Curve) Peak() float64 { return c.peak }

// ValueAt returns the UV index at t.
func (c Curve) ValueAt(t time.Time) float64 {
	if c.peak == 0 {
		return 0
	}
	z := t.Sub(c.midpoint).Seconds() / c.spread
	return c.peak * math.Exp(-0.5*z*z)
}

// Sample returns count evenly spaced samples over [start, end], both included. A
// count below 2 uses the curve's configured sample count.
func (c Curve) Sample(start, end time.Time, count int) []Sample {
	if count < 2 {
		count = c.sampleCount
	}
	offsets := floats.Span(make([]float64, count), 0, end.Sub(start).Seconds())
	samples := make([]Sample, count)
	for i, off := range offsets {
		at := start.Add(time.Duration(math.Round(off * float64(time.Second))))
		if i == count-1 {
			at = end
		}
		samples[i] = Sample{Time: at, Value: c.ValueAt(at)}
	}
	return samples
}

// SampleDay samples the whole daylight window at the configured resolution.
func (c Curve) SampleDay(daylight DaylightWindow) []Sample {
	return c.Sample(daylight.Sunrise, daylight.Sunset, c.sampleCount)
}
