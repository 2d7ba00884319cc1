package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "RATES_URL", "RATES_ACCESS_KEY", "KAFKA_BROKERS", "DEFAULT_LANGUAGE", "CONVERSION_KAFKA_TOPIC", "SESSION_IDLE_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultRatesURL, cfg.RatesURL)
	assert.Equal(t, "en", cfg.DefaultLanguage)
	assert.Equal(t, "conversion-events", cfg.ConversionTopic)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, DefaultSessionIdleTimeout, cfg.SessionIdleTimeout)
}

func TestLoad_EnvFile(t *testing.T) {
	t.Setenv("RATES_ACCESS_KEY", "")
	t.Setenv("KAFKA_BROKERS", "")
	os.Unsetenv("RATES_ACCESS_KEY")
	os.Unsetenv("KAFKA_BROKERS")

	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("RATES_ACCESS_KEY=secret\nKAFKA_BROKERS=a:9092, b:9092\n"), 0o600))

	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.RatesAccessKey)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
}

func TestLoad_SessionIdleTimeout(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Setenv("SESSION_IDLE_TIMEOUT", "45m")
	cfg, err := Load(missing)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, cfg.SessionIdleTimeout)

	for _, v := range []string{"soon", "-1m"} {
		t.Setenv("SESSION_IDLE_TIMEOUT", v)
		_, err = Load(missing)
		assert.Error(t, err, v)
	}
}
