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

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.StorageBackend)
}

func TestLoadYAMLOverriddenByEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9090\"\nstorage_backend: badger\n"), 0o644))

	t.Setenv("INTERVIEW_PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port, "env must win over the file")
	assert.Equal(t, "badger", cfg.StorageBackend)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestResolveBackendPriority(t *testing.T) {
	cfg := &Config{OpenAIAPIKey: "sk-x", GroqAPIKey: "gsk-y"}
	backend, err := cfg.ResolveBackend()
	require.NoError(t, err)
	assert.Equal(t, BackendOpenAI, backend, "OpenAI key takes priority")

	cfg = &Config{GroqAPIKey: "gsk-y"}
	backend, err = cfg.ResolveBackend()
	require.NoError(t, err)
	assert.Equal(t, BackendGroq, backend)

	cfg = &Config{}
	_, err = cfg.ResolveBackend()
	assert.Error(t, err, "no keys means no backend")
}

func TestResolveBackendExplicitWins(t *testing.T) {
	cfg := &Config{Backend: BackendMock, OpenAIAPIKey: "sk-x"}
	backend, err := cfg.ResolveBackend()
	require.NoError(t, err)
	assert.Equal(t, BackendMock, backend)
}
