package openweather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/uv-exposure/internal/domain/uvexposure"
)

func TestResolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/geo/1.0/direct", r.URL.Path)
		require.Equal(t, "Madrid", r.URL.Query().Get("q"))
		require.Equal(t, "1", r.URL.Query().Get("limit"))
		require.Equal(t, "key", r.URL.Query().Get("appid"))
		_, _ = w.Write([]byte(`[{"name":"Madrid","lat":40.4167,"lon":-3.7033,"country":"ES","state":"Community of Madrid"}]`))
	}))
	defer srv.Close()

	loc, err := newTestClient(srv.URL, 1).Resolve(context.Background(), "Madrid")
	require.NoError(t, err)
	require.Equal(t, "Madrid", loc.Name)
	require.Equal(t, "ES", loc.Country)
	require.InDelta(t, 40.4167, loc.Latitude, 1e-9)
	require.InDelta(t, -3.7033, loc.Longitude, 1e-9)
}

func TestResolveNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 1).Resolve(context.Background(), "Atlantis")
	require.ErrorIs(t, err, uvexposure.ErrLocationNotFound)
}

func TestCurrentWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/data/2.5/weather", r.URL.Path)
		require.Equal(t, "metric", r.URL.Query().Get("units"))
		require.Equal(t, "es", r.URL.Query().Get("lang"))
		require.Equal(t, "40.416700", r.URL.Query().Get("lat"))
		_, _ = w.Write([]byte(`{
			"weather":[{"main":"Clear","description":"cielo claro"}],
			"main":{"temp":31.2,"feels_like":30.1,"humidity":22},
			"wind":{"speed":3.6},
			"clouds":{"all":0},
			"dt":1718960000,
			"sys":{"sunrise":1718949600,"sunset":1719000000}
		}`))
	}))
	defer srv.Close()

	w, err := newTestClient(srv.URL, 1).CurrentWeather(context.Background(), 40.4167, -3.7033)
	require.NoError(t, err)
	require.Equal(t, "Clear", w.Main)
	require.Equal(t, "cielo claro", w.Description)
	require.Equal(t, 31.2, w.TempC)
	require.Equal(t, 22, w.Humidity)
	require.Equal(t, int64(1718949600), w.Sunrise)
	require.Equal(t, int64(1719000000), w.Sunset)
	require.Equal(t, int64(1718960000), w.ObservedAt)
}

func TestCurrentUVI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/data/2.5/uvi", r.URL.Path)
		_, _ = w.Write([]byte(`{"lat":40.42,"lon":-3.7,"date":1718971200,"value":8.6}`))
	}))
	defer srv.Close()

	uvi, err := newTestClient(srv.URL, 1).CurrentUVI(context.Background(), 40.42, -3.7)
	require.NoError(t, err)
	require.Equal(t, 8.6, uvi.Value)
	require.Equal(t, int64(1718971200), uvi.Time)
}

func TestCurrentUVIMissingValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"date":1718971200}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 1).CurrentUVI(context.Background(), 40.42, -3.7)
	require.ErrorContains(t, err, "value missing")
}

func TestUVIForecastSkipsEmptyValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/data/2.5/uvi/forecast", r.URL.Path)
		_, _ = w.Write([]byte(`[{"date":1719057600,"value":8.1},{"date":1719144000},{"date":1719230400,"value":7.4}]`))
	}))
	defer srv.Close()

	readings, err := newTestClient(srv.URL, 1).UVIForecast(context.Background(), 40.42, -3.7)
	require.NoError(t, err)
	require.Equal(t, []uvexposure.UVReading{{Time: 1719057600, Value: 8.1}, {Time: 1719230400, Value: 7.4}}, readings)
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"date":1,"value":2}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 3)
	var delays []time.Duration
	client.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	uvi, err := client.CurrentUVI(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Equal(t, 2.0, uvi.Value)
	require.Equal(t, int32(3), calls.Load())
	require.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, delays)
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"cod":401,"message":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).CurrentWeather(context.Background(), 1, 2)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusUnauthorized, statusErr.Status)
	require.Contains(t, statusErr.Body, "Invalid API key")
	require.Equal(t, int32(1), calls.Load())
}

func TestMissingAPIKey(t *testing.T) {
	client := NewClient(Options{BaseURL: "http://127.0.0.1:1"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := client.Resolve(context.Background(), "Madrid")
	require.ErrorContains(t, err, "api key is empty")
}

func newTestClient(baseURL string, attempts int) *Client {
	return NewClient(Options{
		APIKey:      "key",
		BaseURL:     baseURL,
		Language:    "es",
		MaxAttempts: attempts,
		BaseBackoff: 10 * time.Millisecond,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}
