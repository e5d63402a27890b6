package errors

import "errors"

// Codes shared by the domain and transport layers.
const (
	CodeInvalidInput     = "invalid_input"
	CodeLocationNotFound = "location_not_found"
	CodeWeatherError     = "weather_error"
	CodeSunTimesMissing  = "sun_times_missing"
	CodeSunTimesInvalid  = "sun_times_invalid"
	CodeRenderError      = "render_error"
)

// AppError carries a machine readable code next to a user facing message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance. err may be nil.
func Wrap(code, message string, err error) error {
	return &AppError{Code: code, Message: message, Err: err}
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the code of the first AppError in the chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
