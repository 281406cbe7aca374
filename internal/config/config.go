package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Values are read from an optional app.env file and overridden by environment variables.
type Config struct {
	ServerPort  string `mapstructure:"PORT"`
	ServiceName string `mapstructure:"SERVICE_NAME"`

	// GoogleMapsAPIKey is the upstream credential. It is embedded in embed/photo URLs
	// handed to clients but must never appear in error responses.
	GoogleMapsAPIKey string        `mapstructure:"GOOGLE_MAPS_API_KEY"`
	MapsBaseURL      string        `mapstructure:"MAPS_BASE_URL"`
	MapsTimeout      time.Duration `mapstructure:"MAPS_TIMEOUT"`
	MapsQPS          float64       `mapstructure:"MAPS_QPS"`

	// APIKey enables the shared-secret auth gate when non-empty.
	APIKey string `mapstructure:"API_KEY"`

	RateLimitWindowMS        int64         `mapstructure:"RATE_LIMIT_WINDOW_MS"`
	RateLimitMaxRequests     int64         `mapstructure:"RATE_LIMIT_MAX_REQUESTS"`
	RateLimitCleanupInterval time.Duration `mapstructure:"RATE_LIMIT_CLEANUP_INTERVAL"`
	RateLimitStore           string        `mapstructure:"RATE_LIMIT_STORE"`
	RateLimitFailOpen        bool          `mapstructure:"RATE_LIMIT_FAIL_OPEN"`
	TrustProxy               bool          `mapstructure:"TRUST_PROXY"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// RateLimitWindow returns the fixed window length as a duration.
func (c Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowMS) * time.Millisecond
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8432")
	v.SetDefault("SERVICE_NAME", "maps-proxy")
	v.SetDefault("GOOGLE_MAPS_API_KEY", "")
	v.SetDefault("MAPS_BASE_URL", "https://maps.googleapis.com")
	v.SetDefault("MAPS_TIMEOUT", "10s")
	v.SetDefault("MAPS_QPS", 0)
	v.SetDefault("API_KEY", "")
	v.SetDefault("RATE_LIMIT_WINDOW_MS", 60000)
	v.SetDefault("RATE_LIMIT_MAX_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_CLEANUP_INTERVAL", "1m")
	v.SetDefault("RATE_LIMIT_STORE", "memory")
	v.SetDefault("RATE_LIMIT_FAIL_OPEN", true)
	v.SetDefault("TRUST_PROXY", false)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8080")
}

// LoadConfig reads configuration from app.env in the given path (if present)
// and from the environment.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config.LoadConfig read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.LoadConfig unmarshal: %w", err)
	}
	cfg.CORSAllowedOrigins = cleanList(cfg.CORSAllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the loaded values can run the server.
func (c Config) Validate() error {
	if strings.TrimSpace(c.GoogleMapsAPIKey) == "" {
		return errors.New("GOOGLE_MAPS_API_KEY is required")
	}
	if c.RateLimitWindowMS <= 0 {
		return errors.New("RATE_LIMIT_WINDOW_MS must be > 0")
	}
	if c.RateLimitMaxRequests <= 0 {
		return errors.New("RATE_LIMIT_MAX_REQUESTS must be > 0")
	}
	if c.MapsQPS < 0 {
		return errors.New("MAPS_QPS must be >= 0")
	}
	switch strings.ToLower(c.RateLimitStore) {
	case "memory", "":
	case "redis":
		if strings.TrimSpace(c.RedisAddr) == "" {
			return errors.New("REDIS_ADDR is required when RATE_LIMIT_STORE=redis")
		}
	default:
		return fmt.Errorf("unknown RATE_LIMIT_STORE %q", c.RateLimitStore)
	}
	return nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
