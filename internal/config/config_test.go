package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
telegram:
  token: "test-token"
  admin_id: 42
  orders_chat_id: -100123
  run_mode: longpoll
database:
  host: localhost
  name: candlebot
catalog:
  photo_dir: assets/photos
`

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.Core.Telegram.Token)
	assert.Equal(t, int64(42), cfg.Core.Telegram.AdminID)
	assert.Equal(t, int64(-100123), cfg.Core.Telegram.OrdersChatID)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "assets/photos", cfg.Catalog.PhotoDir)
	require.NotNil(t, cfg.CoreConfig())
	assert.Equal(t, "test-token", cfg.CoreConfig().Telegram.Token)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Database.MaxConnections)
	assert.Equal(t, "configs/catalog.yaml", cfg.Catalog.SeedFile)
}

func TestLoadRequiresDatabaseHost(t *testing.T) {
	_, err := Load(writeConfigFile(t, `
telegram:
  token: "test-token"
database:
  name: candlebot
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.host")
}

func TestLoadRequiresDatabaseName(t *testing.T) {
	_, err := Load(writeConfigFile(t, `
telegram:
  token: "test-token"
database:
  host: localhost
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.name")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TELEGRAM_ORDERS_CHAT_ID", "-100999")

	cfg, err := Load(writeConfigFile(t, validConfig))
	require.NoError(t, err)
	assert.Equal(t, int64(-100999), cfg.Core.Telegram.OrdersChatID)
}
