package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.NotEmpty(t, cfg.Storage.DataDir)
	assert.True(t, cfg.Storage.SyncWrites)
	assert.False(t, cfg.Log.Debug)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ESULAT_STORAGE_BACKEND", "memory")
	t.Setenv("ESULAT_SERVER_ADDR", ":9999")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  addr: \":7070\"\nstorage:\n  backend: badger\n  data_dir: /tmp/esulat\nlog:\n  debug: true\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, BackendBadger, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/esulat", cfg.Storage.DataDir)
	assert.True(t, cfg.Log.Debug)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("ESULAT_STORAGE_BACKEND", "cassandra")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
