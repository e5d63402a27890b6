package uvexposure

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/integrate"
)

// Band fractions of the total dose. They add up to 1.001; kept as-is so results
// stay comparable with earlier releases.
const (
	uvaFraction = 0.95
	uvbFraction = 0.05
	uvcFraction = 0.001
)

// ExposureWindow is a user requested interval of sun exposure.
type ExposureWindow struct {
	Start time.Time
	End   time.Time
}

// Violation names the rule an exposure window breaks.
type Violation string

const (
	ViolationBeforeSunrise Violation = "before_sunrise"
	ViolationAfterSunset   Violation = "after_sunset"
	ViolationNotOrdered    Violation = "not_ordered"
)

// WindowError reports an exposure window rejected against the daylight bounds.
type WindowError struct {
	Violation Violation
	Window    ExposureWindow
	Daylight  DaylightWindow
}

func (e *WindowError) Error() string {
	switch e.Violation {
	case ViolationBeforeSunrise:
		return fmt.Sprintf("exposure must start at or after sunrise (%s)", e.Daylight.Sunrise.Format("15:04"))
	case ViolationAfterSunset:
		return fmt.Sprintf("exposure must end at or before sunset (%s)", e.Daylight.Sunset.Format("15:04"))
	default:
		return "exposure start must be before its end"
	}
}

// ValidateWindow accepts the window iff it lies inside daylight and start < end.
func ValidateWindow(w ExposureWindow, d DaylightWindow) error {
	switch {
	case w.Start.Before(d.Sunrise):
		return &WindowError{Violation: ViolationBeforeSunrise, Window: w, Daylight: d}
	case w.End.After(d.Sunset):
		return &WindowError{Violation: ViolationAfterSunset, Window: w, Daylight: d}
	case !w.Start.Before(w.End):
		return &WindowError{Violation: ViolationNotOrdered, Window: w, Daylight: d}
	}
	return nil
}

// Integrate applies the trapezoidal rule to count samples of the curve over the
// window, with elapsed seconds on the x axis, rounded to two decimals. The window
// must already be validated.
func Integrate(c Curve, w ExposureWindow, count int) float64 {
	samples := c.Sample(w.Start, w.End, count)
	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.Time.Sub(w.Start).Seconds()
		ys[i] = s.Value
	}
	return round2(integrate.Trapezoidal(xs, ys))
}

// Apportion splits a total dose into UVA, UVB and UVC components.
func Apportion(total float64) DoseResult {
	return DoseResult{
		Total: total,
		UVA:   round2(total * uvaFraction),
		UVB:   round2(total * uvbFraction),
		UVC:   round2(total * uvcFraction),
	}
}

// ComputeDose validates the window, integrates the curve and apportions the total.
// On a validation failure no dose is returned.
func ComputeDose(c Curve, d DaylightWindow, w ExposureWindow, count int) (*DoseResult, error) {
	if err := ValidateWindow(w, d); err != nil {
		return nil, err
	}
	dose := Apportion(Integrate(c, w, count))
	return &dose, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
