package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
url = "https://bakus.example.com"
timeout_seconds = 5

[rename]
default_language = "es"
delete_untouched = true

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://bakus.example.com", cfg.Server.URL)
	assert.Equal(t, 5, cfg.Server.TimeoutSeconds)
	assert.Equal(t, "es", cfg.Rename.Language().Code)
	assert.True(t, cfg.Rename.SessionOptions().DeleteUntouched)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Logging.MaxSizeMB, "unset keys keep defaults")
	assert.Equal(t, "127.0.0.1:8686", cfg.API.Addr)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BAKUS_SERVER_URL", "http://env:8000")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "http://env:8000", cfg.Server.URL)
}

func TestLoad_RejectsUnknownLanguage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[rename]\ndefault_language = \"klingon\"\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Server.URL = "https://bakus.example.com"
	cfg.API.Token = "secret"
	cfg.Rename.DefaultLanguage = "ja"
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestServerTimeout(t *testing.T) {
	assert.Equal(t, "30s", ServerConfig{}.Timeout().String())
	assert.Equal(t, "7s", ServerConfig{TimeoutSeconds: 7}.Timeout().String())
}

func TestDatabasePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SUDO_USER", "")

	cfg := DefaultConfig()
	p, err := cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "bakus", "bakus.db"), p)

	cfg.Database.Path = "~/media/bakus.db"
	p, err = cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "media", "bakus.db"), p)
}
