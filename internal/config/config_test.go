package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goetz-markgraf/maach-et/internal/dispatch"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"MAACHET_MODEL", "OLLAMA_HOST", "MAACHET_ERROR_POLICY", "MAACHET_OBSERVE_JSON"} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "ollama/qwen2.5-coder", cfg.Model)
	assert.Equal(t, "localhost", cfg.Ollama.Host)
	assert.Equal(t, 11434, cfg.Ollama.Port)
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"), true)
	assert.Error(t, err)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
model: openai/gpt-4
tools:
  error_policy: surface
  max_consecutive: 5
history:
  backend: sqlite
  path: h.db
`), 0o644))

	cfg, err := Load(path, true)

	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-4", cfg.Model)
	assert.Equal(t, dispatch.PolicySurface, cfg.ErrorPolicy())
	assert.Equal(t, 5, cfg.Tools.MaxConsecutive)
	assert.Equal(t, "sqlite", cfg.History.Backend)
	// Untouched sections keep their defaults.
	assert.Equal(t, 11434, cfg.Ollama.Port)
	assert.True(t, cfg.UI.Render)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: [unclosed"), 0o644))
	_, err := Load(path, false)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("MAACHET_MODEL", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MAACHET_MODEL", "gemini/gemini-2.0-flash")
		cfg := Default()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, "gemini/gemini-2.0-flash", cfg.Model)
	})

	t.Run("OLLAMA_HOST with scheme and port", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OLLAMA_HOST", "http://gpu-box:8080")
		cfg := Default()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, "gpu-box", cfg.Ollama.Host)
		assert.Equal(t, 8080, cfg.Ollama.Port)
	})

	t.Run("OLLAMA_HOST host only keeps port", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OLLAMA_HOST", "gpu-box")
		cfg := Default()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, "gpu-box", cfg.Ollama.Host)
		assert.Equal(t, 11434, cfg.Ollama.Port)
	})

	t.Run("OLLAMA_HOST bad port", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OLLAMA_HOST", "gpu-box:http")
		assert.Error(t, Default().applyEnvOverrides())
	})

	t.Run("policy and telemetry", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MAACHET_ERROR_POLICY", "surface")
		t.Setenv("MAACHET_OBSERVE_JSON", "1")
		cfg := Default()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, "surface", cfg.Tools.ErrorPolicy)
		assert.True(t, cfg.Telemetry.Enabled)
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"BadModel", func(c *Config) { c.Model = "qwen" }, "provider"},
		{"BadPort", func(c *Config) { c.Ollama.Port = 70000 }, "out of range"},
		{"BadPolicy", func(c *Config) { c.Tools.ErrorPolicy = "ignore" }, "error policy"},
		{"NegativeLimit", func(c *Config) { c.Tools.MaxConsecutive = -1 }, "max_consecutive"},
		{"BadBackend", func(c *Config) { c.History.Backend = "redis" }, "history backend"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "c.yaml")
	cfg := Default()
	cfg.Model = "anthropic/claude-3-7-sonnet-latest"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestProviderSettings(t *testing.T) {
	ps := Default().ProviderSettings()
	assert.Equal(t, "ollama/qwen2.5-coder", ps.Model)
	assert.Equal(t, "localhost", ps.Host)
	assert.Equal(t, 11434, ps.Port)
	assert.Equal(t, "5m0s", ps.Timeout.String())
}

func TestSchema(t *testing.T) {
	b, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, "maachet configuration", doc["title"])
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok, "schema has properties")
	for _, k := range []string{"model", "ollama", "tools", "history", "ui"} {
		assert.Contains(t, props, k)
	}
}
