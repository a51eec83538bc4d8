package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// APIKey may be empty; the fetch workflow reports it to the user instead
	// of failing startup.
	APIKey  string
	BaseURL string

	// HTTPTimeout bounds each provider call.
	HTTPTimeout time.Duration

	// RefreshInterval re-fetches the displayed city periodically (0 = disabled).
	RefreshInterval time.Duration

	// Circuit breaker around the provider.
	BreakerFailures    uint32
	BreakerOpenTimeout time.Duration

	// LogFile receives logs in terminal mode; empty discards them.
	LogFile string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.APIKey = os.Getenv("WEATHER_API_KEY")
	cfg.BaseURL = getenvDefault("WEATHER_API_BASE_URL", "https://api.openweathermap.org")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("WEATHER_HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("invalid WEATHER_HTTP_TIMEOUT: must be positive")
	}

	if cfg.RefreshInterval, err = getenvDuration("WEATHER_REFRESH_INTERVAL", "0"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval < 0 {
		return nil, fmt.Errorf("invalid WEATHER_REFRESH_INTERVAL: must not be negative")
	}

	cfg.BreakerFailures = uint32(getenvInt("WEATHER_BREAKER_FAILURES", 5))
	if cfg.BreakerOpenTimeout, err = getenvDuration("WEATHER_BREAKER_OPEN_TIMEOUT", "1m"); err != nil {
		return nil, err
	}

	cfg.LogFile = os.Getenv("WEATHER_LOG_FILE")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
