package uvexposure

import "time"

// Request captures the inputs accepted by the exposure service. ExposureStart and
// ExposureEnd are local "HH:MM" values; both must be set to request a dose.
type Request struct {
	City          string `json:"city" form:"city"`
	ExposureStart string `json:"exposureStart" form:"exposureStart"`
	ExposureEnd   string `json:"exposureEnd" form:"exposureEnd"`
}

// Response is serialized back to API consumers.
type Response struct {
	City             string           `json:"city"`
	Location         Location         `json:"location"`
	Weather          Weather          `json:"weather"`
	Sunrise          string           `json:"sunrise"`
	Sunset           string           `json:"sunset"`
	SunTimesEstimate bool             `json:"sunTimesEstimated"`
	Timezone         string           `json:"timezone"`
	TimezoneFallback bool             `json:"timezoneFallback"`
	TimezoneNote     string           `json:"timezoneNote,omitempty"`
	PeakUVI          float64          `json:"peakUvi"`
	PeakUVIAvailable bool             `json:"peakUviAvailable"`
	PeakCategory     Category         `json:"peakCategory"`
	Forecast         []ForecastPoint  `json:"forecast,omitempty"`
	Curve            []CurvePoint     `json:"curve"`
	Exposure         *ExposureOutcome `json:"exposure"`
}

// CurvePoint is one sample of the full-day curve in local time.
type CurvePoint struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

// ForecastPoint is an upstream UVI forecast entry converted to local time.
type ForecastPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Exposure statuses reported in ExposureOutcome.Status.
const (
	StatusComputed      = "computed"
	StatusInvalidWindow = "invalid_window"
	StatusMalformedTime = "malformed_time"
)

// ExposureOutcome reports either a dose or the reason none was computed.
type ExposureOutcome struct {
	Start  string      `json:"start"`
	End    string      `json:"end"`
	Status string      `json:"status"`
	Reason string      `json:"reason,omitempty"`
	Dose   *DoseResult `json:"dose,omitempty"`
}

// DoseResult is a cumulative dose in UV-index·seconds with its band split.
type DoseResult struct {
	Total float64 `json:"total"`
	UVA   float64 `json:"uva"`
	UVB   float64 `json:"uvb"`
	UVC   float64 `json:"uvc"`
}

// Location is a resolved place.
type Location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country,omitempty"`
	State     string  `json:"state,omitempty"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Weather is the subset of current conditions the service exposes. Sunrise and
// Sunset are epoch seconds; zero means the upstream omitted them.
type Weather struct {
	Main        string  `json:"main"`
	Description string  `json:"description"`
	TempC       float64 `json:"tempC"`
	FeelsLikeC  float64 `json:"feelsLikeC"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Clouds      int     `json:"clouds"`
	ObservedAt  int64   `json:"-"`
	Sunrise     int64   `json:"-"`
	Sunset      int64   `json:"-"`
}

// UVReading is an upstream UV index value at an epoch timestamp.
type UVReading struct {
	Time  int64
	Value float64
}

// Resolution tells how a LocalTime's zone was obtained.
type Resolution int

const (
	// Resolved means the requested zone was loaded.
	Resolved Resolution = iota
	// FallbackUTC means the zone could not be loaded and UTC was used.
	FallbackUTC
)

func (r Resolution) String() string {
	if r == FallbackUTC {
		return "fallback_utc"
	}
	return "resolved"
}

// LocalTime is an instant converted to a location's civil time.
type LocalTime struct {
	Time       time.Time
	Resolution Resolution
	Reason     string
}

// Config wires tuning knobs for the exposure domain.
type Config struct {
	DefaultCity      string
	SampleCount      int
	SpreadDivisor    float64
	EstimateSunTimes bool
	IncludeForecast  bool
}
