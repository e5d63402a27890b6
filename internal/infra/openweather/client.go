package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/uv-exposure/internal/domain/uvexposure"
)

const defaultBaseURL = "https://api.openweathermap.org"

// Options configures the client.
type Options struct {
	APIKey      string
	BaseURL     string
	Language    string
	Units       string
	Timeout     time.Duration
	MaxAttempts int
	BaseBackoff time.Duration
}

// Client talks to the OpenWeatherMap geocoding, weather and UV endpoints.
type Client struct {
	apiKey      string
	baseURL     string
	language    string
	units       string
	maxAttempts int
	baseBackoff time.Duration
	httpClient  *http.Client
	logger      *slog.Logger
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewClient builds an API client.
func NewClient(opts Options, logger *slog.Logger) *Client {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	units := opts.Units
	if units == "" {
		units = "metric"
	}
	return &Client{
		apiKey:      opts.APIKey,
		baseURL:     strings.TrimRight(base, "/"),
		language:    opts.Language,
		units:       units,
		maxAttempts: attempts,
		baseBackoff: opts.BaseBackoff,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger.With("component", "openweather.client"),
		sleep:       sleepContext,
	}
}

// Resolve geocodes a city name and returns the first match.
func (c *Client) Resolve(ctx context.Context, query string) (uvexposure.Location, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "1")

	var places []geoPlace
	if err := c.getJSON(ctx, "/geo/1.0/direct", params, &places); err != nil {
		return uvexposure.Location{}, fmt.Errorf("geocode %q: %w", query, err)
	}
	if len(places) == 0 {
		return uvexposure.Location{}, fmt.Errorf("geocode %q: %w", query, uvexposure.ErrLocationNotFound)
	}
	p := places[0]
	return uvexposure.Location{
		Name:      p.Name,
		Country:   p.Country,
		State:     p.State,
		Latitude:  p.Lat,
		Longitude: p.Lon,
	}, nil
}

// CurrentWeather fetches current conditions including sunrise and sunset.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (uvexposure.Weather, error) {
	params := coordinates(lat, lon)
	params.Set("units", c.units)
	if c.language != "" {
		params.Set("lang", c.language)
	}

	var raw weatherResponse
	if err := c.getJSON(ctx, "/data/2.5/weather", params, &raw); err != nil {
		return uvexposure.Weather{}, fmt.Errorf("current weather: %w", err)
	}

	w := uvexposure.Weather{
		TempC:      raw.Main.Temp,
		FeelsLikeC: raw.Main.FeelsLike,
		Humidity:   raw.Main.Humidity,
		WindSpeed:  raw.Wind.Speed,
		Clouds:     raw.Clouds.All,
		ObservedAt: raw.Dt,
		Sunrise:    raw.Sys.Sunrise,
		Sunset:     raw.Sys.Sunset,
	}
	if len(raw.Weather) > 0 {
		w.Main = raw.Weather[0].Main
		w.Description = raw.Weather[0].Description
	}
	return w, nil
}

// CurrentUVI fetches the current UV index.
func (c *Client) CurrentUVI(ctx context.Context, lat, lon float64) (uvexposure.UVReading, error) {
	var raw uviEntry
	if err := c.getJSON(ctx, "/data/2.5/uvi", coordinates(lat, lon), &raw); err != nil {
		return uvexposure.UVReading{}, fmt.Errorf("current uvi: %w", err)
	}
	if raw.Value == nil {
		return uvexposure.UVReading{}, errors.New("current uvi: value missing")
	}
	return uvexposure.UVReading{Time: raw.Date, Value: *raw.Value}, nil
}

// UVIForecast fetches the daily UV index forecast.
func (c *Client) UVIForecast(ctx context.Context, lat, lon float64) ([]uvexposure.UVReading, error) {
	var raw []uviEntry
	if err := c.getJSON(ctx, "/data/2.5/uvi/forecast", coordinates(lat, lon), &raw); err != nil {
		return nil, fmt.Errorf("uvi forecast: %w", err)
	}
	out := make([]uvexposure.UVReading, 0, len(raw))
	for _, entry := range raw {
		if entry.Value == nil {
			continue
		}
		out = append(out, uvexposure.UVReading{Time: entry.Date, Value: *entry.Value})
	}
	return out, nil
}

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("openweather error: status=%d body=%s", e.Status, e.Body)
}

func (e *StatusError) retryable() bool {
	return e.Status >= http.StatusInternalServerError
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dst any) error {
	if c.apiKey == "" {
		return errors.New("openweather api key is empty")
	}
	params.Set("appid", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := c.baseBackoff * time.Duration(1<<(attempt-2))
			if err := c.sleep(ctx, delay); err != nil {
				return err
			}
		}
		body, err := c.do(ctx, endpoint)
		if err == nil {
			if err := json.Unmarshal(body, dst); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
			return nil
		}
		lastErr = err
		var statusErr *StatusError
		if !errors.As(err, &statusErr) || !statusErr.retryable() {
			return err
		}
		c.logger.Warn("transient upstream failure", "path", path, "status", statusErr.Status, "attempt", attempt)
	}
	return lastErr
}

func (c *Client) do(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &StatusError{Status: resp.StatusCode, Body: string(payload)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func coordinates(lat, lon float64) url.Values {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))
	return params
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type geoPlace struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}

type weatherResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Dt  int64 `json:"dt"`
	Sys struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
}

type uviEntry struct {
	Date  int64    `json:"date"`
	Value *float64 `json:"value"`
}
