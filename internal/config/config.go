package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultRatesURL           = "https://api.exchangeratesapi.io/v1/latest"
	DefaultSessionIdleTimeout = 30 * time.Minute
)

// Config is built once in main and handed to every component that needs it.
type Config struct {
	Port            string
	RatesURL        string
	RatesAccessKey  string
	RedisURL        string
	DatabaseURL     string
	KafkaBrokers    []string
	ConversionTopic string
	DefaultLanguage string
	LogLevel        string

	SessionIdleTimeout time.Duration
}

// Load reads .env (if present) and the process environment.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	idle := DefaultSessionIdleTimeout
	if v := os.Getenv("SESSION_IDLE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid SESSION_IDLE_TIMEOUT %q", v)
		}
		idle = d
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		RatesURL:        getEnv("RATES_URL", DefaultRatesURL),
		RatesAccessKey:  os.Getenv("RATES_ACCESS_KEY"),
		RedisURL:        os.Getenv("REDIS_URL"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		KafkaBrokers:    splitList(os.Getenv("KAFKA_BROKERS")),
		ConversionTopic: getEnv("CONVERSION_KAFKA_TOPIC", "conversion-events"),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),

		SessionIdleTimeout: idle,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
