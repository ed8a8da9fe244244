package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inferenceatlas/atlas/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("should load config with defaults", func(t *testing.T) {
		// Clear environment
		os.Clearenv()

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify defaults
		require.Equal(t, 8080, cfg.Server.Port)
		require.Equal(t, 30, cfg.Server.ReadTimeout)
		require.Equal(t, 30, cfg.Server.WriteTimeout)
		require.Equal(t, "anthropic", cfg.Parse.Primary)
		require.Equal(t, "openai", cfg.Parse.Fallback)
		require.Equal(t, uint64(2), cfg.Parse.MaxRetries)
		require.Equal(t, 500, cfg.Parse.InitialBackoffMS)
		require.Equal(t, 5000, cfg.Parse.MaxBackoffMS)
		require.Equal(t, 15000, cfg.Parse.MaxElapsedMS)
		require.Empty(t, cfg.Redis.Addr)
		require.Equal(t, "claude-sonnet-4-5", cfg.Anthropic.Model)
		require.Equal(t, 30, cfg.Anthropic.Timeout)
		require.Empty(t, cfg.Anthropic.APIKey)
		require.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
		require.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
		require.Empty(t, cfg.OpenAI.APIKey)
	})

	t.Run("should load config from environment variables", func(t *testing.T) {
		// Set environment variables using t.Setenv for automatic cleanup
		t.Setenv("SERVER_PORT", "9000")
		t.Setenv("SERVER_READ_TIMEOUT", "60")
		t.Setenv("SERVER_WRITE_TIMEOUT", "60")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("REDIS_DB", "2")
		t.Setenv("PARSE_PRIMARY_PROVIDER", "openai")
		t.Setenv("PARSE_FALLBACK_PROVIDER", "anthropic")
		t.Setenv("PARSE_MAX_RETRIES", "5")
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test-key")
		t.Setenv("ANTHROPIC_MODEL", "claude-test")
		t.Setenv("OPENAI_API_KEY", "sk-test-key")
		t.Setenv("OPENAI_BASE_URL", "https://test.openai.com")

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify loaded values
		require.Equal(t, 9000, cfg.Server.Port)
		require.Equal(t, 60, cfg.Server.ReadTimeout)
		require.Equal(t, 60, cfg.Server.WriteTimeout)
		require.Equal(t, "localhost:6379", cfg.Redis.Addr)
		require.Equal(t, 2, cfg.Redis.DB)
		require.Equal(t, "openai", cfg.Parse.Primary)
		require.Equal(t, "anthropic", cfg.Parse.Fallback)
		require.Equal(t, uint64(5), cfg.Parse.MaxRetries)
		require.Equal(t, "sk-ant-test-key", cfg.Anthropic.APIKey)
		require.Equal(t, "claude-test", cfg.Anthropic.Model)
		require.Equal(t, "sk-test-key", cfg.OpenAI.APIKey)
		require.Equal(t, "https://test.openai.com", cfg.OpenAI.BaseURL)
	})
}

func TestParseDependenciesConfig(t *testing.T) {
	os.Clearenv()

	cfg := config.Load()
	deps := config.ParseDependenciesConfig(cfg)

	require.Same(t, &cfg.Server, deps.Server)
	require.Same(t, &cfg.CORS, deps.CORS)
	require.Same(t, &cfg.Redis, deps.Redis)
	require.Same(t, &cfg.Parse, deps.Parse)
	require.Same(t, &cfg.Anthropic, deps.Anthropic)
	require.Same(t, &cfg.OpenAI, deps.OpenAI)
}
