// Package config reads SmartCart settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Addr     string
	LogLevel slog.Level

	LLM LLMConfig

	// PromptOverrides is an optional YAML catalog applied over the built-in prompts.
	PromptOverrides string
	// PromptTokenBudget bounds the behavior history in persona updates. Zero is unbounded.
	PromptTokenBudget int
	// TokenizerModel selects the tiktoken encoding used to count that budget.
	TokenizerModel string

	RecommendConcurrency int
	OTelStdout           bool
}

// LLMConfig selects and configures the model provider.
type LLMConfig struct {
	Provider     string
	Model        string
	GoogleAPIKey string
	OpenAIKey    string
	AnthropicKey string
	OllamaHost   string
	BaseURL      string
	// Timeout bounds each model call. Zero leaves calls unbounded.
	Timeout time.Duration
}

// Providers accepted by LLM_PROVIDER.
var Providers = []string{"gemini", "openai", "anthropic", "ollama"}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding ones already set. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	googleKey := getEnv("GOOGLE_API_KEY", "")
	if googleKey == "" {
		googleKey = getEnv("GEMINI_API_KEY", "")
	}
	cfg := &Config{
		Addr:     getEnv("SMARTCART_ADDR", ":8080"),
		LogLevel: getEnvLevel("LOG_LEVEL", slog.LevelInfo),
		LLM: LLMConfig{
			Provider:     strings.ToLower(getEnv("LLM_PROVIDER", "gemini")),
			Model:        getEnv("LLM_MODEL", ""),
			GoogleAPIKey: googleKey,
			OpenAIKey:    getEnv("OPENAI_API_KEY", ""),
			AnthropicKey: getEnv("ANTHROPIC_API_KEY", ""),
			OllamaHost:   getEnv("OLLAMA_HOST", ""),
			BaseURL:      getEnv("LLM_BASE_URL", ""),
			Timeout:      getEnvDuration("LLM_TIMEOUT", 30*time.Second),
		},
		PromptOverrides:      getEnv("PROMPT_OVERRIDES", ""),
		PromptTokenBudget:    getEnvInt("PROMPT_TOKEN_BUDGET", 2000),
		TokenizerModel:       getEnv("TOKENIZER_MODEL", "gpt-4o"),
		RecommendConcurrency: getEnvInt("RECOMMEND_CONCURRENCY", 4),
		OTelStdout:           getEnvBool("OTEL_STDOUT", false),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail at first use.
// API keys are not required here; the provider reports a missing key when
// the client is built.
func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("SMARTCART_ADDR cannot be empty"))
	}
	known := false
	for _, p := range Providers {
		if c.LLM.Provider == p {
			known = true
		}
	}
	if !known {
		errs = append(errs, fmt.Errorf("LLM_PROVIDER %q is not one of %v", c.LLM.Provider, Providers))
	}
	if c.LLM.Timeout < 0 {
		errs = append(errs, errors.New("LLM_TIMEOUT must be >= 0"))
	}
	if c.PromptTokenBudget < 0 {
		errs = append(errs, errors.New("PROMPT_TOKEN_BUDGET must be >= 0"))
	}
	if c.RecommendConcurrency <= 0 {
		errs = append(errs, errors.New("RECOMMEND_CONCURRENCY must be > 0"))
	}
	return errors.Join(errs...)
}

// ProviderConfig returns the config map understood by the selected llm factory.
func (c LLMConfig) ProviderConfig() map[string]any {
	out := map[string]any{}
	if c.Model != "" {
		out["model"] = c.Model
	}
	switch c.Provider {
	case "gemini":
		setIf(out, "api_key", c.GoogleAPIKey)
	case "openai":
		setIf(out, "api_key", c.OpenAIKey)
		setIf(out, "base_url", c.BaseURL)
	case "anthropic":
		setIf(out, "api_key", c.AnthropicKey)
		setIf(out, "base_url", c.BaseURL)
	case "ollama":
		setIf(out, "server_url", c.OllamaHost)
	}
	return out
}

// SpeechConfig returns the config for the Gemini transcriber, which is used
// whatever the chat provider is.
func (c LLMConfig) SpeechConfig() map[string]any {
	out := map[string]any{}
	setIf(out, "api_key", c.GoogleAPIKey)
	return out
}

func setIf(m map[string]any, k, v string) {
	if v != "" {
		m[k] = v
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return fallback
	}
	return l
}
