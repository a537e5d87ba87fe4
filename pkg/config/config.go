package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Exchange rate fetch and cache behaviour.
	RateAPIURL         string
	RateCacheTTL       time.Duration
	RateFetchTimeout   time.Duration
	FallbackUsdJpyRate float64

	// Notification delivery and scheduling.
	AMQPURL             string
	NotifyExchange      string
	NotifyCheckSchedule string

	// Per-IP request limit in ulule/limiter format, e.g. "100-H".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("RATE_API_URL", "https://api.exchangerate-api.com/v4/latest/USD")
	viper.SetDefault("RATE_CACHE_TTL", "1h")
	viper.SetDefault("RATE_FETCH_TIMEOUT", "10s")
	viper.SetDefault("FALLBACK_USD_JPY_RATE", 150.0)
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("NOTIFY_EXCHANGE", "subscmng.notifications")
	viper.SetDefault("NOTIFY_CHECK_SCHEDULE", "0 9 * * *")
	viper.SetDefault("RATE_LIMIT", "100-H")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.RateAPIURL = viper.GetString("RATE_API_URL")
	cfg.RateCacheTTL = viper.GetDuration("RATE_CACHE_TTL")
	if cfg.RateCacheTTL <= 0 {
		log.Printf("Warning: Invalid RATE_CACHE_TTL. Defaulting to 1h.\n")
		cfg.RateCacheTTL = time.Hour
	}
	cfg.RateFetchTimeout = viper.GetDuration("RATE_FETCH_TIMEOUT")
	if cfg.RateFetchTimeout <= 0 {
		cfg.RateFetchTimeout = 10 * time.Second
	}
	cfg.FallbackUsdJpyRate = viper.GetFloat64("FALLBACK_USD_JPY_RATE")

	cfg.AMQPURL = viper.GetString("AMQP_URL")
	cfg.NotifyExchange = viper.GetString("NOTIFY_EXCHANGE")
	cfg.NotifyCheckSchedule = viper.GetString("NOTIFY_CHECK_SCHEDULE")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
