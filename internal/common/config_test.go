package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "gpt-3.5-turbo", config.LLM.Model)
	assert.InDelta(t, 0.7, config.LLM.Temperature, 0.001)
	assert.Equal(t, 500, config.LLM.MaxTokens)
	assert.Equal(t, 3, config.Retrieval.TopK)
	assert.Equal(t, "memory", config.Storage.VectorType)
	assert.Equal(t, 1536, config.Embeddings.Dimension)
	assert.False(t, config.App.DemoMode)
}

func TestLoadFromFiles(t *testing.T) {
	t.Log("=== Testing config file layering ===")

	dir := t.TempDir()
	base := filepath.Join(dir, "base.toml")
	override := filepath.Join(dir, "override.toml")

	require.NoError(t, os.WriteFile(base, []byte(`
environment = "production"

[server]
port = 9090

[llm]
model = "claude-sonnet-4-5"
`), 0o644))

	require.NoError(t, os.WriteFile(override, []byte(`
[server]
port = 9999
`), 0o644))

	config, err := LoadFromFiles(base, override)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, 9999, config.Server.Port, "later file wins")
	assert.Equal(t, "claude-sonnet-4-5", config.LLM.Model)
	assert.Equal(t, 3, config.Retrieval.TopK, "unset fields keep defaults")

	t.Log("✅ SUCCESS: later files override earlier, defaults fill the rest")
}

func TestLoadFromFilesMissingFile(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/config.toml")
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DOCUASSIST_SERVER_PORT", "7070")
	t.Setenv("DOCUASSIST_LLM_MODEL", "gemini-2.0-flash")
	t.Setenv("DOCUASSIST_TOP_K", "5")
	t.Setenv("DOCUASSIST_DEMO_MODE", "true")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, "gemini-2.0-flash", config.LLM.Model)
	assert.Equal(t, 5, config.Retrieval.TopK)
	assert.True(t, config.App.DemoMode)
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, 3000, "127.0.0.1")
	assert.Equal(t, 3000, config.Server.Port)
	assert.Equal(t, "127.0.0.1", config.Server.Host)

	ApplyFlagOverrides(config, 0, "")
	assert.Equal(t, 3000, config.Server.Port, "zero values leave config untouched")
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("DOCUASSIST_TEST_KEY", "from-env")

	key, err := ResolveAPIKey([]string{"DOCUASSIST_TEST_KEY"}, "from-config")
	require.NoError(t, err)
	assert.Equal(t, "from-env", key, "environment wins over config")

	key, err = ResolveAPIKey([]string{"DOCUASSIST_UNSET_KEY"}, "from-config")
	require.NoError(t, err)
	assert.Equal(t, "from-config", key)

	_, err = ResolveAPIKey([]string{"DOCUASSIST_UNSET_KEY"}, "")
	require.Error(t, err)
}
