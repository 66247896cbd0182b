package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ConfigYAML(t *testing.T) {
	path := filepath.Join("..", "..", "configs", "config.yaml")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.NotEmpty(t, cfg.Database.DSN)
	assert.Equal(t, 3333, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "pt-BR", cfg.Display.Locale)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Port, cfg.Server.Port)
	assert.Equal(t, ":3333", cfg.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DB_DSN", ":memory:")
	t.Setenv("FOOD_API_TIMEOUT", "2s")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, ":memory:", cfg.Database.DSN)
	assert.Equal(t, 2*time.Second, cfg.Client.Timeout)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: mongo\n  dsn: x\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unsupported database driver")
}
