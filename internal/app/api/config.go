package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port               string
	PostgresDSN        string
	RedisAddr          string
	TemporalAddress    string
	TemporalNamespace  string
	TemporalDisabled   bool
	InventoryCacheTTL  time.Duration
	AutocompleteLimit  int64
	AutocompleteWindow time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:               envDefault("PORT", "8080"),
		PostgresDSN:        strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		RedisAddr:          strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		TemporalAddress:    envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:  envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:   isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		InventoryCacheTTL:  5 * time.Minute,
		AutocompleteLimit:  20,
		AutocompleteWindow: time.Minute,
	}
	if raw := strings.TrimSpace(os.Getenv("INVENTORY_CACHE_TTL_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("INVENTORY_CACHE_TTL_SECONDS must be a positive integer")
		}
		cfg.InventoryCacheTTL = time.Duration(seconds) * time.Second
	}
	if raw := strings.TrimSpace(os.Getenv("AUTOCOMPLETE_RATE_LIMIT")); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit <= 0 {
			return Config{}, fmt.Errorf("AUTOCOMPLETE_RATE_LIMIT must be a positive integer")
		}
		cfg.AutocompleteLimit = limit
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
