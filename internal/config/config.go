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
	// OpenWeatherAPIKey is held server-side only; the gateway attaches it to
	// upstream calls and it never reaches clients.
	OpenWeatherAPIKey string

	// UpstreamBaseURL is the weather provider root.
	UpstreamBaseURL string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// RefreshInterval controls how often the last searched city is re-fetched.
	RefreshInterval time.Duration

	// HistoryLimit caps the rolling temperature history window.
	HistoryLimit int

	// RedisURL selects the durable state store; empty means in-memory.
	RedisURL string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.UpstreamBaseURL = getenvDefault("UPSTREAM_BASE_URL", "https://api.openweathermap.org/data/2.5")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Refresh interval: default 15 minutes.
	intervalStr := getenvDefault("REFRESH_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	cfg.HistoryLimit = getenvInt("HISTORY_LIMIT", 7)
	cfg.RedisURL = os.Getenv("REDIS_URL")
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
		if err == nil {
			return n
		}
	}
	return def
}
