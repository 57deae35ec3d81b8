package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter("info", &buf)

	log.Debug("rename", "hidden")
	log.Info("rename", "plan built", F("entries", 3), F("addition", "101"))
	log.Error("client", "submit failed", errors.New("boom"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] [rename] plan built | entries=3 | addition=101")
	assert.Contains(t, out, "[ERROR] [client] submit failed | error=boom")
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bakus.log")
	log, err := New(Config{Level: "debug", File: path})
	require.NoError(t, err)
	defer log.Close()

	log.Debug("test", "hello")
	assert.Equal(t, path, log.FilePath())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(string(data)), "[DEBUG] [test] hello"))
}

func TestRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bakus.log")
	log, err := New(Config{Level: "info", File: path, MaxSizeMB: 1, MaxBackups: 2})
	require.NoError(t, err)
	defer log.Close()
	log.file.maxSize = 64

	for i := 0; i < 10; i++ {
		log.Info("test", strings.Repeat("x", 40))
	}

	_, err = os.Stat(filepath.Join(dir, "bakus.1.log"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "bakus.3.log"))
	assert.True(t, os.IsNotExist(err), "backups beyond max are removed")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter("debug", &buf).With("api")

	log.Debug("request", F("path", "/api/v1/health"))
	log.Warn("slow")

	assert.Contains(t, buf.String(), "[DEBUG] [api] request | path=/api/v1/health")
	assert.Contains(t, buf.String(), "[WARN] [api] slow")
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter("error", &buf)
	log.Info("x", "dropped")
	log.SetLevel(LevelInfo)
	log.Info("x", "kept")

	assert.Equal(t, LevelInfo, log.GetLevel())
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
	assert.Empty(t, log.FilePath())
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("x", "y", errors.New("z"))
	assert.NoError(t, log.Close())
}
