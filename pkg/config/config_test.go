package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SMARTCART_ADDR", "LOG_LEVEL", "LLM_PROVIDER", "LLM_MODEL", "GOOGLE_API_KEY",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OLLAMA_HOST",
		"LLM_BASE_URL", "LLM_TIMEOUT", "PROMPT_OVERRIDES", "PROMPT_TOKEN_BUDGET",
		"TOKENIZER_MODEL", "RECOMMEND_CONCURRENCY", "OTEL_STDOUT",
	} {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { os.Setenv(k, v) })
			os.Unsetenv(k)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 2000, cfg.PromptTokenBudget)
	assert.Equal(t, 4, cfg.RecommendConcurrency)
	assert.False(t, cfg.OTelStdout)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OTEL_STDOUT", "yes")
	t.Setenv("PROMPT_TOKEN_BUDGET", "not a number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.OTelStdout)
	assert.Equal(t, 2000, cfg.PromptTokenBudget, "unparseable values keep the default")
	assert.Equal(t, map[string]any{"model": "gpt-4o-mini", "api_key": "test-key"}, cfg.LLM.ProviderConfig())
}

func TestGeminiKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"api_key": "g-key"}, cfg.LLM.ProviderConfig())
	assert.Equal(t, map[string]any{"api_key": "g-key"}, cfg.LLM.SpeechConfig())
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "palm")
	t.Setenv("RECOMMEND_CONCURRENCY", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_PROVIDER")
	assert.Contains(t, err.Error(), "RECOMMEND_CONCURRENCY")
}

func TestOllamaConfig(t *testing.T) {
	c := LLMConfig{Provider: "ollama", OllamaHost: "http://gpu-box:11434"}
	assert.Equal(t, map[string]any{"server_url": "http://gpu-box:11434"}, c.ProviderConfig())
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LLM_PROVIDER=anthropic\nSMARTCART_ADDR=:9090\n"), 0o600))
	t.Setenv("SMARTCART_ADDR", ":7070")
	t.Cleanup(func() { os.Unsetenv("LLM_PROVIDER") })

	require.NoError(t, LoadDotEnv(path))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, ":7070", cfg.Addr, "existing variables win")

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
