package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := fromViper(newViper())

	assert.Equal(t, 20, cfg.PerProviderLimit)
	assert.Equal(t, 1, cfg.MaxRetries)
	assert.Equal(t, time.Duration(0), cfg.ProviderTimeout)
	assert.Equal(t, 300*time.Second, cfg.CacheTTL)
	assert.False(t, cfg.ArchiveEnabled)
	assert.Equal(t, "8080", cfg.APIPort)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, time.Duration(0), cfg.ProviderLatency)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PER_PROVIDER_LIMIT", "7")
	t.Setenv("PROVIDER_TIMEOUT_MS", "1500")
	t.Setenv("ARCHIVE_ENABLED", "true")
	t.Setenv("BROWSER_PROVIDER", " AutoTrader ")
	t.Setenv("SIMULATED_LATENCY_MS", "40")

	cfg := fromViper(newViper())

	assert.Equal(t, 7, cfg.PerProviderLimit)
	assert.Equal(t, 1500*time.Millisecond, cfg.ProviderTimeout)
	assert.True(t, cfg.ArchiveEnabled)
	assert.Equal(t, "autotrader", cfg.BrowserProvider)
	assert.Equal(t, 40*time.Millisecond, cfg.ProviderLatency)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost:     "db",
		PostgresPort:     "5433",
		PostgresUser:     "u",
		PostgresPassword: "p",
		PostgresDB:       "cars",
		PostgresSSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=cars sslmode=disable", cfg.DSN())
}
