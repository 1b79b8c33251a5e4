package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "logging:\n  format: json\n"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, SourceFile, cfg.RateSheet.Source)
	assert.Equal(t, "data/daily_rate_sheet.csv", cfg.RateSheet.Path)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "warn", cfg.Logging.CLILevel)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
}

func TestLoadFile_YAMLValues(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
server:
  address: ":9090"
ratelimit:
  requests: 20
  window: 30s
ratesheet:
  source: S3
  s3:
    bucket: rates
    key: daily/rate_sheet.csv
cache:
  enabled: true
  backend: Memory
  ttl: 2m
logging:
  cli_level: error
`))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, 20, cfg.RateLimit.Requests)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, SourceS3, cfg.RateSheet.Source)
	assert.Equal(t, "rates", cfg.RateSheet.S3.Bucket)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, "error", cfg.Logging.CLILevel)
}

func TestLoadFile_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":7070")
	t.Setenv("RATESHEET_PATH", "/tmp/rates.csv")

	cfg, err := LoadFile(writeConfig(t, "server:\n  address: \":9090\"\n"))
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, "/tmp/rates.csv", cfg.RateSheet.Path)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown source", "ratesheet:\n  source: ftp\n"},
		{"s3 without bucket", "ratesheet:\n  source: s3\n"},
		{"zero rate limit", "ratelimit:\n  requests: 0\n"},
		{"unknown cache backend", "cache:\n  backend: memcached\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
