package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "job_applications.html", cfg.Catalog.Path)
	assert.Equal(t, "company", cfg.Catalog.IdentityMode)
	assert.Equal(t, 14, cfg.Fetch.WindowDays)
	assert.Equal(t, 90, cfg.Fetch.BackfillDays)
	assert.Equal(t, int64(100), cfg.Fetch.MaxResults)
	assert.Equal(t, 24, cfg.Scheduler.IntervalHours)
	assert.Equal(t, "UTC", cfg.Scheduler.Location().String())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
logging:
  level: debug
catalog:
  path: /data/catalog.html
  identityMode: company-role
fetch:
  windowDays: 7
accounts:
  - email: me@gmail.com
    trustAll: true
  - email: work@gmail.com
overrides:
  "Acme Talent": Acme
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	t.Setenv(configPathEnv, path)

	cfg := Load()

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/data/catalog.html", cfg.Catalog.Path)
	assert.Equal(t, "company-role", cfg.Catalog.IdentityMode)
	assert.Equal(t, 7, cfg.Fetch.WindowDays)
	// Unset file fields keep their defaults.
	assert.Equal(t, 90, cfg.Fetch.BackfillDays)

	require.Len(t, cfg.Accounts, 2)
	assert.True(t, cfg.Accounts[0].TrustAll)
	assert.Equal(t, []string{"me@gmail.com"}, cfg.TrustAllAccounts())
	assert.Equal(t, "Acme", cfg.Overrides["Acme Talent"])
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(databaseDSNEnv, "postgres://archive")
	t.Setenv(catalogPathEnv, "/tmp/override.html")
	t.Setenv(telegramTokenEnv, "bot-token")
	t.Setenv(telegramChatIDEnv, "chat-42")

	cfg := Load()

	assert.Equal(t, "postgres://archive", cfg.Database.DSN)
	assert.Equal(t, "/tmp/override.html", cfg.Catalog.Path)
	assert.Equal(t, "bot-token", cfg.Notifications.Telegram.BotToken)
	assert.Equal(t, "chat-42", cfg.Notifications.Telegram.ChatID)
}

func TestLoadBadTimezoneFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
scheduler:
  timezone: Not/AZone
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	t.Setenv(configPathEnv, path)

	cfg := Load()
	assert.Equal(t, "UTC", cfg.Scheduler.Location().String())
}
