package uvexposure

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/yanqian/uv-exposure/pkg/errors"
)

// ErrLocationNotFound is returned by resolvers when a query matches no place.
var ErrLocationNotFound = errors.New("location not found")

// Service exposes the UV curve and dose capabilities.
type Service interface {
	Analyze(ctx context.Context, req Request) (Response, error)
	Plot(ctx context.Context, city string) ([]byte, error)
}

// LocationResolver maps a place name to coordinates.
type LocationResolver interface {
	Resolve(ctx context.Context, query string) (Location, error)
}

// WeatherSource provides current conditions and UV data for coordinates.
type WeatherSource interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (Weather, error)
	CurrentUVI(ctx context.Context, lat, lon float64) (UVReading, error)
	UVIForecast(ctx context.Context, lat, lon float64) ([]UVReading, error)
}

// ZoneFinder returns the IANA zone name at coordinates, or "" when unknown.
type ZoneFinder interface {
	TimezoneAt(lat, lon float64) string
}

// TimeConverter converts epoch seconds into a zone's civil time, falling back to UTC.
type TimeConverter interface {
	Localize(epoch int64, zone string) LocalTime
}

// SunTimesEstimator computes sunrise and sunset locally. ok is false when the sun
// does not rise or set on that day.
type SunTimesEstimator interface {
	Estimate(lat, lon float64, day time.Time) (sunrise, sunset time.Time, ok bool)
}

// Renderer draws a sampled curve.
type Renderer interface {
	Render(samples []Sample, loc *time.Location) ([]byte, error)
}

// Recorder receives per request outcomes for metrics.
type Recorder interface {
	RecordAnalysis(outcome string)
	RecordExposure(status string)
}

type service struct {
	cfg      Config
	resolver LocationResolver
	weather  WeatherSource
	zones    ZoneFinder
	clock    TimeConverter
	sun      SunTimesEstimator
	renderer Renderer
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the exposure domain.
func NewService(
	cfg Config,
	resolver LocationResolver,
	weather WeatherSource,
	zones ZoneFinder,
	clock TimeConverter,
	sun SunTimesEstimator,
	renderer Renderer,
	recorder Recorder,
	logger *slog.Logger,
) Service {
	return &service{
		cfg:      cfg,
		resolver: resolver,
		weather:  weather,
		zones:    zones,
		clock:    clock,
		sun:      sun,
		renderer: renderer,
		recorder: recorder,
		logger:   logger.With("component", "uvexposure.service"),
		now:      time.Now,
	}
}

// day holds everything derived for one city on one request.
type day struct {
	city          string
	location      Location
	weather       Weather
	zone          string
	fallback      bool
	fallbackNote  string
	estimated     bool
	daylight      DaylightWindow
	curve         Curve
	peakAvailable bool
}

func (s *service) Analyze(ctx context.Context, req Request) (Response, error) {
	d, err := s.prepare(ctx, req.City)
	if err != nil {
		s.recordAnalysis(apperrors.CodeOf(err))
		return Response{}, err
	}

	res := Response{
		City:             d.city,
		Location:         d.location,
		Weather:          d.weather,
		Sunrise:          d.daylight.Sunrise.Format(time.RFC3339),
		Sunset:           d.daylight.Sunset.Format(time.RFC3339),
		SunTimesEstimate: d.estimated,
		Timezone:         d.zone,
		TimezoneFallback: d.fallback,
		TimezoneNote:     d.fallbackNote,
		PeakUVI:          d.curve.Peak(),
		PeakUVIAvailable: d.peakAvailable,
		PeakCategory:     CategoryFor(d.curve.Peak()),
		Curve:            toCurvePoints(d.curve.SampleDay(d.daylight)),
	}
	if s.cfg.IncludeForecast {
		res.Forecast = s.forecast(ctx, d)
	}
	res.Exposure = s.exposure(req, d)

	s.recordAnalysis("ok")
	return res, nil
}

func (s *service) Plot(ctx context.Context, city string) ([]byte, error) {
	d, err := s.prepare(ctx, city)
	if err != nil {
		return nil, err
	}
	img, err := s.renderer.Render(d.curve.SampleDay(d.daylight), d.daylight.Sunrise.Location())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeRenderError, "failed to render uv plot", err)
	}
	return img, nil
}

func (s *service) prepare(ctx context.Context, city string) (day, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		city = s.cfg.DefaultCity
	}

	loc, err := s.resolver.Resolve(ctx, city)
	if err != nil {
		if errors.Is(err, ErrLocationNotFound) {
			return day{}, apperrors.Wrap(apperrors.CodeLocationNotFound, "could not find the city, try another one", err)
		}
		return day{}, apperrors.Wrap(apperrors.CodeWeatherError, "failed to resolve location", err)
	}

	current, err := s.weather.CurrentWeather(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return day{}, apperrors.Wrap(apperrors.CodeWeatherError, "failed to fetch weather data", err)
	}

	peak, peakAvailable := 0.0, true
	uvi, err := s.weather.CurrentUVI(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		s.logger.Warn("current uvi unavailable, using 0", "city", city, "error", err)
		peakAvailable = false
	} else {
		peak = uvi.Value
	}

	zone := s.zones.TimezoneAt(loc.Latitude, loc.Longitude)
	d := day{city: city, location: loc, weather: current, zone: zone, peakAvailable: peakAvailable}

	sunriseEpoch, sunsetEpoch := current.Sunrise, current.Sunset
	if sunriseEpoch == 0 || sunsetEpoch == 0 {
		rise, set, ok := s.estimateSunTimes(loc, current)
		if !ok {
			return day{}, apperrors.Wrap(apperrors.CodeSunTimesMissing, "sunrise/sunset information unavailable", nil)
		}
		sunriseEpoch, sunsetEpoch = rise.Unix(), set.Unix()
		d.estimated = true
	}

	sunrise := s.clock.Localize(sunriseEpoch, zone)
	sunset := s.clock.Localize(sunsetEpoch, zone)
	if sunrise.Resolution == FallbackUTC {
		d.fallback = true
		d.fallbackNote = sunrise.Reason
		d.zone = "UTC"
		s.logger.Warn("timezone fallback to utc", "city", city, "zone", zone, "reason", sunrise.Reason)
	}

	daylight, err := NewDaylightWindow(sunrise.Time, sunset.Time)
	if err != nil {
		return day{}, apperrors.Wrap(apperrors.CodeSunTimesInvalid, "sunrise/sunset information is inconsistent", err)
	}
	d.daylight = daylight
	d.curve = NewCurve(daylight, peak, CurveConfig{SpreadDivisor: s.cfg.SpreadDivisor, SampleCount: s.cfg.SampleCount})
	return d, nil
}

func (s *service) estimateSunTimes(loc Location, current Weather) (time.Time, time.Time, bool) {
	if !s.cfg.EstimateSunTimes || s.sun == nil {
		return time.Time{}, time.Time{}, false
	}
	observed := s.now()
	if current.ObservedAt > 0 {
		observed = time.Unix(current.ObservedAt, 0)
	}
	rise, set, ok := s.sun.Estimate(loc.Latitude, loc.Longitude, observed.UTC())
	if ok {
		s.logger.Info("sun times estimated locally", "lat", loc.Latitude, "lon", loc.Longitude)
	}
	return rise, set, ok
}

func (s *service) exposure(req Request, d day) *ExposureOutcome {
	exposure, err := ParseExposureRequest(req.ExposureStart, req.ExposureEnd, d.daylight)
	if err != nil {
		s.recordExposure(StatusMalformedTime)
		return &ExposureOutcome{Start: req.ExposureStart, End: req.ExposureEnd, Status: StatusMalformedTime, Reason: err.Error()}
	}
	window, ok := exposure.Window()
	if !ok {
		return nil
	}

	out := &ExposureOutcome{Start: req.ExposureStart, End: req.ExposureEnd}
	dose, err := ComputeDose(d.curve, d.daylight, window, s.cfg.SampleCount)
	if err != nil {
		out.Status = StatusInvalidWindow
		out.Reason = err.Error()
		s.recordExposure(StatusInvalidWindow)
		return out
	}
	out.Status = StatusComputed
	out.Dose = dose
	s.recordExposure(StatusComputed)
	s.logger.Debug("uv dose computed", "city", d.city, "total", dose.Total)
	return out
}

func (s *service) forecast(ctx context.Context, d day) []ForecastPoint {
	readings, err := s.weather.UVIForecast(ctx, d.location.Latitude, d.location.Longitude)
	if err != nil {
		s.logger.Warn("uvi forecast unavailable", "city", d.city, "error", err)
		return nil
	}
	loc := d.daylight.Sunrise.Location()
	points := make([]ForecastPoint, 0, len(readings))
	for _, r := range readings {
		points = append(points, ForecastPoint{
			Date:  time.Unix(r.Time, 0).In(loc).Format(time.RFC3339),
			Value: r.Value,
		})
	}
	return points
}

func (s *service) recordAnalysis(outcome string) {
	if s.recorder != nil {
		s.recorder.RecordAnalysis(outcome)
	}
}

func (s *service) recordExposure(status string) {
	if s.recorder != nil {
		s.recorder.RecordExposure(status)
	}
}

func toCurvePoints(samples []Sample) []CurvePoint {
	points := make([]CurvePoint, 0, len(samples))
	for _, sm := range samples {
		points = append(points, CurvePoint{Time: sm.Time.Format(time.RFC3339), Value: sm.Value})
	}
	return points
}
