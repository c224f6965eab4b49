package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
version = 1

[debug]
log_level = "debug"

[server]
host = "127.0.0.1"
port = 9090

[postgresql]
host = "db.internal"
port = 5432
user = "overflow"
password = "secret"
db_name = "overflow"
max_open_conns = 4
max_idle_conns = 2
max_lifetime = 10
max_idle_time = 5

[redis]
host = "cache.internal"
port = 6379

[push]
enabled = true
`

func chdir(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func writeConfig(t *testing.T, content string) {
	t.Helper()

	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "server.toml"), []byte(content), 0o600))
}

func TestLoadConfig(t *testing.T) {
	writeConfig(t, validConfig)

	cfg, usedDir, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ".", usedDir)
	assert.Equal(t, "debug", cfg.Debug.LogLevel)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.PostgreSQL.Host)
	assert.Equal(t, 4, cfg.PostgreSQL.MaxOpenConns)
	assert.Equal(t, "cache.internal", cfg.Redis.Host)
	assert.True(t, cfg.Push.Enabled)
}

func TestLoadConfigMissing(t *testing.T) {
	chdir(t, t.TempDir())

	_, _, err := config.LoadConfig()
	require.ErrorIs(t, err, config.ErrConfigFileNotFound)
}

func TestLoadConfigVersionMismatch(t *testing.T) {
	writeConfig(t, `version = 0`)

	_, _, err := config.LoadConfig()
	require.ErrorIs(t, err, config.ErrConfigVersionMismatch)
}
