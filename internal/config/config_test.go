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
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := writeConfig(t, "server:\n  port: \"9090\"\n")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, "GigaChat", cfg.GigaChat.Model)
	assert.Equal(t, "GIGACHAT_API_PERS", cfg.GigaChat.Scope)
	assert.Equal(t, 30*time.Second, cfg.GigaChat.AuthTimeout)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.File)
}

func TestLoadConfig_EnvOverridesSecrets(t *testing.T) {
	dir := writeConfig(t, "gigachat:\n  auth_key: from-file\n  scope: GIGACHAT_API_CORP\n")
	t.Setenv("GIGACHAT_AUTH_KEY", "from-env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.GigaChat.AuthKey)
	assert.Equal(t, "GIGACHAT_API_CORP", cfg.GigaChat.Scope)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Empty(t, cfg.File)
}

func TestLoadConfig_RejectsUnknownStorage(t *testing.T) {
	dir := writeConfig(t, "storage:\n  type: floppy\n")

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floppy")
}

func TestValidate_DatabaseDriver(t *testing.T) {
	cfg := &Config{
		Storage:   StorageConfig{Type: "database"},
		Database:  DatabaseConfig{Driver: "oracle"},
		RateLimit: RateLimitConfig{MaxRequests: 1, WindowMinutes: 1},
	}
	require.Error(t, cfg.Validate())

	cfg.Database.Driver = "postgres"
	require.NoError(t, cfg.Validate())
}
