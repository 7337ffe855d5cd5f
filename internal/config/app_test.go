package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.HTTPServer.Port)
	require.Equal(t, DefaultExchangeRatesURL, cfg.ExchangeRateAPI.URL)
	require.Equal(t, 10*time.Second, cfg.HTTPClient.Timeout())
	require.Equal(t, 1, cfg.Notifications.Limit)
	require.Equal(t, 5*time.Second, cfg.Notifications.AutoClose())
	require.Equal(t, 10, cfg.Table.DefaultPerPage)
	require.Equal(t, []int{5, 10, 25, 50}, cfg.Table.PerPageOptions)
	require.Equal(t, int64(256), cfg.Cache.MaxItems)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Zero(t, cfg.Scheduler.RefreshIntervalSec)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
http_server:
  port: "9090"
scheduler:
  refresh_interval_sec: 60
notifications:
  limit: 3
  auto_close_ms: 1500
table:
  default_per_page: 25
  per_page_options: [10, 25]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.HTTPServer.Port)
	require.Equal(t, 60, cfg.Scheduler.RefreshIntervalSec)
	require.Equal(t, 3, cfg.Notifications.Limit)
	require.Equal(t, 1500*time.Millisecond, cfg.Notifications.AutoClose())
	require.Equal(t, 25, cfg.Table.DefaultPerPage)
	require.Equal(t, []int{10, 25}, cfg.Table.PerPageOptions)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
http_server:
  port: "9090"
`)
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("EXCHANGE_RATE_API_URL", "http://localhost:1234/rates")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "7070", cfg.HTTPServer.Port)
	require.Equal(t, "http://localhost:1234/rates", cfg.ExchangeRateAPI.URL)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_InvalidNotificationLimit(t *testing.T) {
	path := writeConfig(t, `
notifications:
  limit: 0
`)
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "notifications.limit")
}

func TestLoad_NegativeAutoClose(t *testing.T) {
	path := writeConfig(t, `
notifications:
  auto_close_ms: -1
`)
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "notifications.auto_close_ms")
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "http_server: [")
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "error reading config file")
}

func TestHTTPClient_TimeoutFallback(t *testing.T) {
	require.Equal(t, 10*time.Second, HTTPClient{}.Timeout())
	require.Equal(t, 3*time.Second, HTTPClient{TimeoutSeconds: 3}.Timeout())
}
