package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			Token:   "123:abc",
			AdminID: 777,
		},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, Normalize(cfg))

	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, defaultLivenessPort, cfg.Liveness.Port)
	assert.Equal(t, defaultFetchTimeout, cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, int64(defaultFetchMaxBytes), cfg.Fetch.MaxBodyBytes)
}

func TestNormalizeRequiresToken(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	assert.ErrorContains(t, Normalize(cfg), "token")
}

func TestNormalizeRequiresAdminID(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.AdminID = 0
	assert.ErrorContains(t, Normalize(cfg), "admin_id")
}

func TestNormalizeRunModeAliases(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "Polling"
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)

	cfg = validConfig()
	cfg.Telegram.RunMode = "LONGPOLL"
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
}

func TestNormalizeRejectsUnknownRunMode(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "carrier-pigeon"
	assert.ErrorContains(t, Normalize(cfg), "run_mode")
}

func TestNormalizeWebhookRequirements(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	assert.ErrorContains(t, Normalize(cfg), "webhook.url")

	cfg.Webhook.URL = "https://bot.example.com/hook"
	assert.ErrorContains(t, Normalize(cfg), "webhook.listen")

	cfg.Webhook.Listen = "0.0.0.0"
	assert.ErrorContains(t, Normalize(cfg), "webhook.port")

	cfg.Webhook.Port = 8443
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, RunModeWebhook, cfg.Telegram.RunMode)
}

func TestNormalizeNegativeBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Liveness.Port = -1
	assert.ErrorContains(t, Normalize(cfg), "liveness.port")

	cfg = validConfig()
	cfg.Fetch.TimeoutSeconds = -1
	assert.ErrorContains(t, Normalize(cfg), "fetch.timeout_seconds")

	cfg = validConfig()
	cfg.Fetch.MaxBodyBytes = -1
	assert.ErrorContains(t, Normalize(cfg), "fetch.max_body_bytes")
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
telegram:
  token: "123:abc"
  admin_id: 777
  run_mode: longpoll
logging:
  level: debug
  format: kv
liveness:
  port: 9090
fetch:
  timeout_seconds: 3
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, int64(777), cfg.Telegram.AdminID)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 9090, cfg.Liveness.Port)
	assert.Equal(t, 3, cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, int64(defaultFetchMaxBytes), cfg.Fetch.MaxBodyBytes)
}

func TestLoadEnvOnly(t *testing.T) {
	t.Setenv("BOT_TOKEN", "456:def")
	t.Setenv("TELEGRAM_ADMIN_ID", "4242")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "456:def", cfg.Telegram.Token)
	assert.Equal(t, int64(4242), cfg.Telegram.AdminID)
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
