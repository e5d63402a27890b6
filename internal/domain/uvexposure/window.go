package uvexposure

import (
	"fmt"
	"strings"
	"time"
)

const clockLayout = "15:04"

// ExposureRequest is either NoWindowRequested or a concrete window.
type ExposureRequest struct {
	window    ExposureWindow
	requested bool
}

// NoWindowRequested is the request value when the caller asked for no dose.
var NoWindowRequested = ExposureRequest{}

// WindowRequest wraps a window to be validated and integrated.
func WindowRequest(w ExposureWindow) ExposureRequest {
	return ExposureRequest{window: w, requested: true}
}

// Window returns the requested window and whether one was requested.
func (r ExposureRequest) Window() (ExposureWindow, bool) {
	return r.window, r.requested
}

// TimeInputError reports an exposure time that could not be parsed.
type TimeInputError struct {
	Field string
	Value string
	Err   error
}

func (e *TimeInputError) Error() string {
	return fmt.Sprintf("invalid time format for %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *TimeInputError) Unwrap() error { return e.Err }

// ParseExposureRequest turns local HH:MM values into an exposure request. Start
// takes sunrise's calendar date and end takes sunset's, both in the daylight
// window's location. A blank value on either side means no window was requested.
func ParseExposureRequest(start, end string, daylight DaylightWindow) (ExposureRequest, error) {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if start == "" || end == "" {
		return NoWindowRequested, nil
	}
	from, err := onDateOf(daylight.Sunrise, start)
	if err != nil {
		return NoWindowRequested, &TimeInputError{Field: "start", Value: start, Err: err}
	}
	to, err := onDateOf(daylight.Sunset, end)
	if err != nil {
		return NoWindowRequested, &TimeInputError{Field: "end", Value: end, Err: err}
	}
	return WindowRequest(ExposureWindow{Start: from, End: to}), nil
}

func onDateOf(day time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), nil
}
