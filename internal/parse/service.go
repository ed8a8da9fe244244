package parse

import (
	"context"
	"errors"
	"time"

	"github.com/inferenceatlas/atlas/internal/observability"
)

const cacheTTL = 1 * time.Hour

// ParseResult is the structured outcome of natural-language workload parsing.
type ParseResult struct {
	Workload     WorkloadSpec `json:"workload"`
	ProviderUsed string       `json:"provider_used"`
	UsedFallback bool         `json:"used_fallback"`
	Warning      string       `json:"warning,omitempty"`
}

// ManualFallbackProvider is the provider name reported when parsing degraded
// to a caller-supplied spec.
const ManualFallbackProvider = "manual_fallback"

// Service parses workload text through the provider router with an optional
// result cache in front. A nil cache disables caching.
type Service struct {
	router *Router
	cache  Cache
}

// NewService creates a parse service (DI constructor).
func NewService(router *Router, cache Cache) *Service {
	return &Service{
		router: router,
		cache:  cache,
	}
}

// ParseWorkloadText parses text with the provider chain. If every provider
// fails and a fallback spec is supplied, the fallback is returned explicitly
// marked; without one, the provider error propagates so the caller can
// collect manual input instead.
func (s *Service) ParseWorkloadText(
	ctx context.Context,
	userText string,
	fallback *WorkloadSpec,
) (ParseResult, error) {
	logger := observability.FromContext(ctx)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userText)
		if err != nil && !errors.Is(err, ErrCacheMiss) {
			logger.Warn("parse cache get failed, continuing without cache",
				observability.Error(err))
		}
		if cached != nil {
			logger.Info("parse cache hit",
				observability.String("model", cached.ModelKey),
				observability.String("pattern", cached.Pattern))
			return ParseResult{
				Workload:     *cached,
				ProviderUsed: "cache",
				UsedFallback: false,
			}, nil
		}
	}

	spec, providerName, err := s.router.ParseWorkload(ctx, userText)
	if err != nil {
		if fallback == nil {
			return ParseResult{}, err
		}
		logger.Warn("parse providers exhausted, using manual fallback",
			observability.Error(err))
		return ParseResult{
			Workload:     *fallback,
			ProviderUsed: ManualFallbackProvider,
			UsedFallback: true,
			Warning:      err.Error(),
		}, nil
	}

	if s.cache != nil {
		if setErr := s.cache.Set(ctx, userText, spec, cacheTTL); setErr != nil {
			logger.Warn("failed to store parse result in cache",
				observability.Error(setErr))
		}
	}

	return ParseResult{
		Workload:     spec,
		ProviderUsed: providerName,
		UsedFallback: false,
	}, nil
}

// ExplainResult is the outcome of a plain-language explanation request.
type ExplainResult struct {
	Explanation  string `json:"explanation"`
	ProviderUsed string `json:"provider_used"`
}

// ExplainRecommendation narrates a deterministic recommendation summary.
// Explanations are never cached: the summary embeds computed numbers that
// change with the catalog.
func (s *Service) ExplainRecommendation(
	ctx context.Context,
	summary string,
	workload WorkloadSpec,
) (ExplainResult, error) {
	text, providerName, err := s.router.Explain(ctx, summary, workload)
	if err != nil {
		return ExplainResult{}, err
	}
	return ExplainResult{
		Explanation:  text,
		ProviderUsed: providerName,
	}, nil
}
