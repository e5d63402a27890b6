package suntimes

import (
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// Estimator computes sunrise and sunset from coordinates when the weather
// provider omits them.
type Estimator struct{}

// NewEstimator returns an Estimator.
func NewEstimator() *Estimator {
	return &Estimator{}
}

// Estimate returns UTC sunrise and sunset for the UTC calendar day of day. ok is
// false during polar day or night.
func (e *Estimator) Estimate(lat, lon float64, day time.Time) (time.Time, time.Time, bool) {
	day = day.UTC()
	rise, set := sunrise.SunriseSunset(lat, lon, day.Year(), day.Month(), day.Day())
	if rise.IsZero() || set.IsZero() || !rise.Before(set) {
		return time.Time{}, time.Time{}, false
	}
	return rise, set, true
}
