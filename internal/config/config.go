package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/inferenceatlas/atlas/internal/parse/anthropic"
	"github.com/inferenceatlas/atlas/internal/parse/openai"
)

// Config represents the service configuration.
type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Redis     RedisConfig
	Parse     ParseConfig
	Anthropic anthropic.Config
	OpenAI    openai.Config
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"30"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// RedisConfig contains parse cache backend settings. An empty address
// disables the cache entirely.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// ParseConfig bounds the natural-language parse routing policy.
type ParseConfig struct {
	Primary          string `env:"PARSE_PRIMARY_PROVIDER"  envDefault:"anthropic"`
	Fallback         string `env:"PARSE_FALLBACK_PROVIDER" envDefault:"openai"`
	MaxRetries       uint64 `env:"PARSE_MAX_RETRIES"       envDefault:"2"`
	InitialBackoffMS int    `env:"PARSE_BACKOFF_INITIAL_MS" envDefault:"500"`
	MaxBackoffMS     int    `env:"PARSE_BACKOFF_MAX_MS"     envDefault:"5000"`
	MaxElapsedMS     int    `env:"PARSE_BACKOFF_ELAPSED_MS" envDefault:"15000"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out

	Server    *ServerConfig
	CORS      *CORSConfig
	Redis     *RedisConfig
	Parse     *ParseConfig
	Anthropic *anthropic.Config
	OpenAI    *openai.Config
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		Server:    &cfg.Server,
		CORS:      &cfg.CORS,
		Redis:     &cfg.Redis,
		Parse:     &cfg.Parse,
		Anthropic: &cfg.Anthropic,
		OpenAI:    &cfg.OpenAI,
	}
}
