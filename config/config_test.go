package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, TransportSSE, cfg.Transport)
	assert.Equal(t, ":8000", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 150, cfg.DefaultDPI)
	assert.Equal(t, 1000, cfg.ChunkSize)
	assert.Equal(t, 200, cfg.PreviewBytes)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transport: stdio\nchunk_size: 500\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, 150, cfg.DefaultDPI)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transport: sse\n"), 0o644))
	t.Setenv("PDFSCHOLAR_TRANSPORT", "stdio")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, TransportStdio, cfg.Transport)
}

func TestLoadRejectsUnknownTransport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transport: websocket\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &Config{
		Transport:  TransportStdio,
		ListenAddr: ":9000",
		LogLevel:   "debug",
		DefaultDPI: 96,
		ChunkSize:  800,
	}
	require.NoError(t, Save(want, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want.Transport, got.Transport)
	assert.Equal(t, want.ListenAddr, got.ListenAddr)
	assert.Equal(t, 96, got.DefaultDPI)
	assert.Equal(t, 800, got.ChunkSize)
}
