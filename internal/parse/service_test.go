package parse_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inferenceatlas/atlas/internal/parse"
)

// memoryCache is an in-process Cache for tests.
type memoryCache struct {
	entries map[string]parse.WorkloadSpec
	getErr  error
	setErr  error
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]parse.WorkloadSpec)}
}

func (c *memoryCache) Get(_ context.Context, userText string) (*parse.WorkloadSpec, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	spec, ok := c.entries[userText]
	if !ok {
		return nil, parse.ErrCacheMiss
	}
	return &spec, nil
}

func (c *memoryCache) Set(_ context.Context, userText string, spec parse.WorkloadSpec, _ time.Duration) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[userText] = spec
	return nil
}

func newTestService(t *testing.T, provider *scriptedProvider, cache parse.Cache) *parse.Service {
	t.Helper()
	registry := parse.NewRegistry()
	require.NoError(t, registry.Register(context.Background(), provider))

	router := parse.NewRouter(registry, parse.RouterConfig{
		Primary:        provider.Name(),
		MaxRetries:     0,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     time.Millisecond,
		MaxElapsed:     time.Second,
	})
	return parse.NewService(router, cache)
}

func TestService_ParseWorkloadText(t *testing.T) {
	ctx := context.Background()

	t.Run("provider result is returned and cached", func(t *testing.T) {
		provider := &scriptedProvider{name: "primary", payload: validPayload()}
		cache := newMemoryCache()
		service := newTestService(t, provider, cache)

		result, err := service.ParseWorkloadText(ctx, "a million tokens a day", nil)

		require.NoError(t, err)
		require.Equal(t, "primary", result.ProviderUsed)
		require.False(t, result.UsedFallback)
		require.Equal(t, "llama_8b", result.Workload.ModelKey)
		require.Equal(t, 1, cache.sets)
	})

	t.Run("cache hit skips the provider", func(t *testing.T) {
		provider := &scriptedProvider{name: "primary", payload: validPayload()}
		cache := newMemoryCache()
		cache.entries["a million tokens a day"] = parse.WorkloadSpec{
			TokensPerDay: 1_000_000,
			Pattern:      "steady",
			ModelKey:     "llama_8b",
		}
		service := newTestService(t, provider, cache)

		result, err := service.ParseWorkloadText(ctx, "a million tokens a day", nil)

		require.NoError(t, err)
		require.Equal(t, "cache", result.ProviderUsed)
		require.Equal(t, 0, provider.calls)
	})

	t.Run("cache backend failure is tolerated", func(t *testing.T) {
		provider := &scriptedProvider{name: "primary", payload: validPayload()}
		cache := newMemoryCache()
		cache.getErr = errors.New("connection refused")
		service := newTestService(t, provider, cache)

		result, err := service.ParseWorkloadText(ctx, "a million tokens a day", nil)

		require.NoError(t, err)
		require.Equal(t, "primary", result.ProviderUsed)
	})

	t.Run("providers exhausted with manual fallback", func(t *testing.T) {
		provider := &scriptedProvider{name: "primary", err: errors.New("rate limited")}
		service := newTestService(t, provider, nil)

		manual := parse.WorkloadSpec{
			TokensPerDay: 500_000,
			Pattern:      "bursty",
			ModelKey:     "llama_70b",
		}
		result, err := service.ParseWorkloadText(ctx, "a million tokens a day", &manual)

		require.NoError(t, err)
		require.Equal(t, parse.ManualFallbackProvider, result.ProviderUsed)
		require.True(t, result.UsedFallback)
		require.Equal(t, manual, result.Workload)
		require.Contains(t, result.Warning, "rate limited")
	})

	t.Run("providers exhausted without fallback", func(t *testing.T) {
		provider := &scriptedProvider{name: "primary", err: errors.New("rate limited")}
		service := newTestService(t, provider, nil)

		_, err := service.ParseWorkloadText(ctx, "a million tokens a day", nil)

		require.Error(t, err)
		require.Contains(t, err.Error(), "all parse providers failed")
	})

	t.Run("nil cache disables caching", func(t *testing.T) {
		provider := &scriptedProvider{name: "primary", payload: validPayload()}
		service := newTestService(t, provider, nil)

		result, err := service.ParseWorkloadText(ctx, "a million tokens a day", nil)

		require.NoError(t, err)
		require.Equal(t, "primary", result.ProviderUsed)
	})

	t.Run("failed set does not fail the request", func(t *testing.T) {
		provider := &scriptedProvider{name: "primary", payload: validPayload()}
		cache := newMemoryCache()
		cache.setErr = errors.New("connection refused")
		service := newTestService(t, provider, cache)

		result, err := service.ParseWorkloadText(ctx, "a million tokens a day", nil)

		require.NoError(t, err)
		require.Equal(t, "primary", result.ProviderUsed)
		require.Equal(t, 1, cache.sets)
	})
}
