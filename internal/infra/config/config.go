package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "configs/config.yaml"

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Log         LogConfig         `yaml:"log"`
	OpenWeather OpenWeatherConfig `yaml:"openWeather"`
	UVExposure  UVExposureConfig  `yaml:"uvExposure"`
	GeoCache    GeoCacheConfig    `yaml:"geoCache"`
	Plot        PlotConfig        `yaml:"plot"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the per client request limiter.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

// OpenWeatherConfig holds the OpenWeatherMap endpoints and credentials.
type OpenWeatherConfig struct {
	APIKey   string        `yaml:"apiKey"`
	BaseURL  string        `yaml:"baseUrl"`
	Language string        `yaml:"language"`
	Units    string        `yaml:"units"`
	Timeout  time.Duration `yaml:"timeout"`
	Retry    RetryConfig   `yaml:"retry"`
}

// RetryConfig configures retries of transient upstream failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
}

// UVExposureConfig tunes the curve model and request defaults.
type UVExposureConfig struct {
	DefaultCity      string  `yaml:"defaultCity"`
	SampleCount      int     `yaml:"sampleCount"`
	SpreadDivisor    float64 `yaml:"spreadDivisor"`
	EstimateSunTimes bool    `yaml:"estimateSunTimes"`
	IncludeForecast  bool    `yaml:"includeForecast"`
}

// GeoCacheConfig controls caching of geocoding lookups.
type GeoCacheConfig struct {
	TTL    time.Duration `yaml:"ttl"`
	Valkey ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for cache storage.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// PlotConfig sets the rendered chart size in inches.
type PlotConfig struct {
	WidthInches  float64 `yaml:"widthInches"`
	HeightInches float64 `yaml:"heightInches"`
}

// Load reads configuration from defaults, a YAML file, an optional .env file and
// environment variables, in that order.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(defaultConfigPath); err == nil {
		if err := hydrateFromFile(cfg, defaultConfigPath); err != nil {
			return nil, err
		}
	}

	if err := loadDotEnv(os.Getenv("DOTENV_PATH")); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// loadDotEnv never overrides variables already present in the environment.
func loadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat dotenv file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load dotenv file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	// API_KEY is the name used by existing .env files.
	if v := os.Getenv("API_KEY"); v != "" {
		cfg.OpenWeather.APIKey = v
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		cfg.OpenWeather.APIKey = v
	}
	if v := os.Getenv("OPENWEATHER_BASE_URL"); v != "" {
		cfg.OpenWeather.BaseURL = v
	}
	if v := os.Getenv("OPENWEATHER_LANGUAGE"); v != "" {
		cfg.OpenWeather.Language = v
	}
	if v := os.Getenv("OPENWEATHER_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.OpenWeather.Timeout = parsed
		}
	}
	if v := os.Getenv("OPENWEATHER_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.OpenWeather.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("OPENWEATHER_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.OpenWeather.Retry.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("UV_DEFAULT_CITY"); v != "" {
		cfg.UVExposure.DefaultCity = v
	}
	if v := os.Getenv("UV_SAMPLE_COUNT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.UVExposure.SampleCount = parsed
		}
	}
	if v := os.Getenv("UV_SPREAD_DIVISOR"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.UVExposure.SpreadDivisor = parsed
		}
	}
	if v := os.Getenv("UV_ESTIMATE_SUN_TIMES"); v != "" {
		cfg.UVExposure.EstimateSunTimes = parseBool(v)
	}
	if v := os.Getenv("UV_INCLUDE_FORECAST"); v != "" {
		cfg.UVExposure.IncludeForecast = parseBool(v)
	}
	if v := os.Getenv("GEOCACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.GeoCache.TTL = parsed
		}
	}
	if v := os.Getenv("GEOCACHE_VALKEY_ENABLED"); v != "" {
		cfg.GeoCache.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("GEOCACHE_VALKEY_ADDR"); v != "" {
		cfg.GeoCache.Valkey.Addr = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Log: LogConfig{
			Level:   "info",
			Service: "uv-exposure",
		},
		OpenWeather: OpenWeatherConfig{
			BaseURL:  "https://api.openweathermap.org",
			Language: "es",
			Units:    "metric",
			Timeout:  10 * time.Second,
			Retry: RetryConfig{
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
			},
		},
		UVExposure: UVExposureConfig{
			DefaultCity:     "Madrid",
			SampleCount:     100,
			SpreadDivisor:   5,
			IncludeForecast: true,
		},
		GeoCache: GeoCacheConfig{
			TTL: 24 * time.Hour,
			Valkey: ValkeyConfig{
				Prefix: "geocode",
			},
		},
		Plot: PlotConfig{
			WidthInches:  8,
			HeightInches: 4,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.OpenWeather.BaseURL) == "" {
		return errors.New("openWeather.baseUrl cannot be empty")
	}
	if c.OpenWeather.Retry.MaxAttempts <= 0 {
		return errors.New("openWeather.retry.maxAttempts must be positive")
	}
	if c.OpenWeather.Retry.BaseBackoff < 0 {
		return errors.New("openWeather.retry.baseBackoff cannot be negative")
	}
	if strings.TrimSpace(c.UVExposure.DefaultCity) == "" {
		return errors.New("uvExposure.defaultCity cannot be empty")
	}
	if c.UVExposure.SampleCount < 2 {
		return errors.New("uvExposure.sampleCount must be at least 2")
	}
	if c.UVExposure.SpreadDivisor <= 0 {
		return errors.New("uvExposure.spreadDivisor must be positive")
	}
	if c.GeoCache.TTL < 0 {
		return errors.New("geoCache.ttl cannot be negative")
	}
	if c.GeoCache.Valkey.Enabled && strings.TrimSpace(c.GeoCache.Valkey.Addr) == "" {
		return errors.New("geoCache.valkey.addr cannot be empty when valkey is enabled")
	}
	if c.Plot.WidthInches <= 0 || c.Plot.HeightInches <= 0 {
		return errors.New("plot dimensions must be positive")
	}
	return nil
}
