package main

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inferenceatlas/atlas/internal/parse"
)

func registeredProviders(t *testing.T) []string {
	t.Helper()
	container := buildContainer()

	var names []string
	err := container.Invoke(func(reg *parse.Registry) {
		names = reg.List(context.Background())
	})
	require.NoError(t, err)
	return names
}

func TestBuildContainer_ProviderRegistration(t *testing.T) {
	t.Run("only openai key set registers openai", func(t *testing.T) {
		os.Clearenv()
		t.Setenv("OPENAI_API_KEY", "sk-test-key")

		require.Equal(t, []string{"openai"}, registeredProviders(t))
	})

	t.Run("only anthropic key set registers anthropic", func(t *testing.T) {
		os.Clearenv()
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test-key")

		require.Equal(t, []string{"anthropic"}, registeredProviders(t))
	})

	t.Run("both keys set register both providers", func(t *testing.T) {
		os.Clearenv()
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test-key")
		t.Setenv("OPENAI_API_KEY", "sk-test-key")

		require.Equal(t, []string{"anthropic", "openai"}, registeredProviders(t))
	})

	t.Run("no keys set registers nothing", func(t *testing.T) {
		os.Clearenv()

		require.Empty(t, registeredProviders(t))
	})
}
