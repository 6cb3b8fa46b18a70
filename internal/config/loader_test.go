package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = `
app:
  name: hackathon-idea-api
  env: ${TEST_IDEA_ENV:development}
server:
  http:
    port: ${TEST_IDEA_PORT:9001}
    write_timeout: 90s
llm:
  default_provider: gemini
  providers:
    gemini:
      kind: genai
      api_key: ${TEST_IDEA_GOOGLE_KEY:}
      model: gemini-2.5-flash
    openai:
      kind: openai
      base_url: http://localhost:1234/v1
      model: local-model
`

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("TEST_IDEA_SET", "value")

	tests := []struct {
		in   string
		want string
	}{
		{"${TEST_IDEA_SET}", "value"},
		{"${TEST_IDEA_SET:fallback}", "value"},
		{"${TEST_IDEA_UNSET:fallback}", "fallback"},
		{"${TEST_IDEA_UNSET:}", ""},
		{"${TEST_IDEA_UNSET}", "${TEST_IDEA_UNSET}"},
		{"prefix-${TEST_IDEA_SET}-suffix", "prefix-value-suffix"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, expandEnv(tt.in))
		})
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yaml", baseConfig)
	t.Setenv("APP_ENV", "development")

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Server.HTTP.Port)
	assert.Equal(t, 90*time.Second, cfg.Server.HTTP.WriteTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.HTTP.ShutdownTimeout)

	name, provider, ok := cfg.LLM.Provider()
	require.True(t, ok)
	assert.Equal(t, "gemini", name)
	assert.Equal(t, ProviderKindGenAI, provider.Kind)
	assert.Empty(t, provider.APIKey)

	assert.True(t, cfg.Observability.Metrics.Enabled)
	assert.False(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, []string{"*"}, cfg.Security.CORS.AllowedOrigins)
}

func TestLoadFromDir_Overrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yaml", baseConfig)
	writeConfig(t, dir, "config.staging.yaml", "server:\n  http:\n    port: 9100\n")

	t.Setenv("APP_ENV", "staging")
	t.Setenv("TEST_IDEA_GOOGLE_KEY", "secret")
	t.Setenv("LLM_DEFAULT_PROVIDER", "openai")

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.HTTP.Port)
	assert.Equal(t, "secret", cfg.LLM.Providers["gemini"].APIKey)

	name, provider, ok := cfg.LLM.Provider()
	require.True(t, ok)
	assert.Equal(t, "openai", name)
	assert.Equal(t, "local-model", provider.Model)
}

func TestLoadFromDir_MissingBase(t *testing.T) {
	_, err := LoadFromDir(t.TempDir())
	assert.Error(t, err)
}
