package main

import (
	"context"
	"errors"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"github.com/inferenceatlas/atlas/internal/cache/redis"
	"github.com/inferenceatlas/atlas/internal/catalog"
	"github.com/inferenceatlas/atlas/internal/config"
	"github.com/inferenceatlas/atlas/internal/http"
	"github.com/inferenceatlas/atlas/internal/http/middleware"
	"github.com/inferenceatlas/atlas/internal/observability"
	"github.com/inferenceatlas/atlas/internal/parse"
	"github.com/inferenceatlas/atlas/internal/parse/anthropic"
	"github.com/inferenceatlas/atlas/internal/parse/openai"
)

// ErrProviderNotConfigured indicates that a parse provider is not configured
// and should be skipped.
var ErrProviderNotConfigured = errors.New("provider not configured")

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server) {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Catalog
	if err := container.Provide(catalog.Default); err != nil {
		log.Fatalf("Failed to provide catalog: %v", err)
	}

	// Parse provider registry
	if err := container.Provide(parse.NewRegistry); err != nil {
		log.Fatalf("Failed to provide parse registry: %v", err)
	}

	// Anthropic provider
	if err := container.Provide(func(cfg *anthropic.Config) (*anthropic.Provider, error) {
		if cfg.APIKey == "" {
			return nil, ErrProviderNotConfigured
		}
		return anthropic.NewProvider(*cfg)
	}); err != nil {
		log.Fatalf("Failed to provide Anthropic provider: %v", err)
	}

	// OpenAI provider
	if err := container.Provide(func(cfg *openai.Config) (*openai.Provider, error) {
		if cfg.APIKey == "" {
			return nil, ErrProviderNotConfigured
		}
		return openai.NewProvider(*cfg)
	}); err != nil {
		log.Fatalf("Failed to provide OpenAI provider: %v", err)
	}

	// Register providers with registry (invoked for side effects). Each
	// provider gets its own invoke: an unconfigured provider aborts only its
	// own registration, never the other's.
	if err := container.Invoke(func(reg *parse.Registry, provider *anthropic.Provider) error {
		return reg.Register(context.Background(), provider)
	}); err != nil {
		// Ignore ErrProviderNotConfigured as it's expected for optional providers
		if !errors.Is(err, ErrProviderNotConfigured) {
			log.Fatalf("Failed to register Anthropic provider: %v", err)
		}
	}

	if err := container.Invoke(func(reg *parse.Registry, provider *openai.Provider) error {
		return reg.Register(context.Background(), provider)
	}); err != nil {
		if !errors.Is(err, ErrProviderNotConfigured) {
			log.Fatalf("Failed to register OpenAI provider: %v", err)
		}
	}

	// Parse cache (optional - disabled when no Redis address is set)
	if err := container.Provide(func(cfg *config.RedisConfig) parse.Cache {
		if cfg.Addr == "" {
			return nil
		}
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		return redis.NewParseCache(client)
	}); err != nil {
		log.Fatalf("Failed to provide parse cache: %v", err)
	}

	// Parse router and service
	if err := container.Provide(func(reg *parse.Registry, cfg *config.ParseConfig) *parse.Router {
		return parse.NewRouter(reg, parse.RouterConfig{
			Primary:        cfg.Primary,
			Fallback:       cfg.Fallback,
			MaxRetries:     cfg.MaxRetries,
			InitialBackoff: millis(cfg.InitialBackoffMS),
			MaxBackoff:     millis(cfg.MaxBackoffMS),
			MaxElapsed:     millis(cfg.MaxElapsedMS),
		})
	}); err != nil {
		log.Fatalf("Failed to provide parse router: %v", err)
	}
	if err := container.Provide(parse.NewService); err != nil {
		log.Fatalf("Failed to provide parse service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
