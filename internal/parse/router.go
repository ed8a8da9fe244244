package parse

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/inferenceatlas/atlas/internal/observability"
)

// routerState tracks progress through the provider fallback chain.
type routerState int

const (
	stateTryPrimary routerState = iota
	stateTryFallback
	stateFailed
)

// RouterConfig selects the provider chain and bounds the retry policy.
type RouterConfig struct {
	Primary        string
	Fallback       string
	MaxRetries     uint64
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	MaxElapsed     time.Duration
}

// Router walks an explicit provider state machine: try the primary with
// bounded retry, then the fallback, then give up. Degradation to a manually
// entered spec is the service layer's concern, not the router's.
type Router struct {
	registry *Registry
	config   RouterConfig
}

// NewRouter creates a router over registered providers.
func NewRouter(registry *Registry, config RouterConfig) *Router {
	return &Router{
		registry: registry,
		config:   config,
	}
}

// ParseWorkload runs the provider chain until one produces a payload that
// validates. It returns the validated spec and the name of the provider that
// produced it.
func (r *Router) ParseWorkload(ctx context.Context, userText string) (WorkloadSpec, string, error) {
	if userText == "" {
		return WorkloadSpec{}, "", fmt.Errorf("user text cannot be empty")
	}

	logger := observability.FromContext(ctx)

	state := stateTryPrimary
	var lastErr error

	for {
		switch state {
		case stateTryPrimary:
			spec, err := r.tryProvider(ctx, r.config.Primary, userText)
			if err == nil {
				return spec, r.config.Primary, nil
			}
			lastErr = err
			logger.Warn("primary parse provider failed",
				observability.String("provider", r.config.Primary),
				observability.Error(err))
			state = stateTryFallback

		case stateTryFallback:
			if r.config.Fallback == "" {
				state = stateFailed
				continue
			}
			spec, err := r.tryProvider(ctx, r.config.Fallback, userText)
			if err == nil {
				return spec, r.config.Fallback, nil
			}
			lastErr = err
			logger.Warn("fallback parse provider failed",
				observability.String("provider", r.config.Fallback),
				observability.Error(err))
			state = stateFailed

		case stateFailed:
			return WorkloadSpec{}, "", fmt.Errorf("all parse providers failed: %w", lastErr)

		default:
			return WorkloadSpec{}, "", fmt.Errorf("invalid router state %d", state)
		}
	}
}

// Explain asks the primary provider to narrate a recommendation summary,
// trying the fallback once if it fails. Explanations are best-effort, so no
// retry policy applies. It returns the text and the provider that produced it.
func (r *Router) Explain(ctx context.Context, summary string, workload WorkloadSpec) (string, string, error) {
	if summary == "" {
		return "", "", fmt.Errorf("summary cannot be empty")
	}

	logger := observability.FromContext(ctx)

	var lastErr error
	for _, name := range []string{r.config.Primary, r.config.Fallback} {
		if name == "" {
			continue
		}
		provider, err := r.registry.Get(ctx, name)
		if err != nil {
			lastErr = err
			continue
		}
		text, err := provider.Explain(ctx, summary, workload)
		if err == nil {
			return text, name, nil
		}
		lastErr = err
		logger.Warn("explain provider failed",
			observability.String("provider", name),
			observability.Error(err))
	}

	return "", "", fmt.Errorf("all parse providers failed: %w", lastErr)
}

// tryProvider invokes one provider with exponential backoff on transient
// failure. A payload that fails validation is a provider quality problem,
// not a transient fault, so it short-circuits the retry loop.
func (r *Router) tryProvider(ctx context.Context, name, userText string) (WorkloadSpec, error) {
	provider, err := r.registry.Get(ctx, name)
	if err != nil {
		return WorkloadSpec{}, err
	}

	policy := backoff.NewExponentialBackOff()
	if r.config.InitialBackoff > 0 {
		policy.InitialInterval = r.config.InitialBackoff
	}
	if r.config.MaxBackoff > 0 {
		policy.MaxInterval = r.config.MaxBackoff
	}
	policy.MaxElapsedTime = r.config.MaxElapsed

	var spec WorkloadSpec
	operation := func() error {
		payload, parseErr := provider.ParseWorkload(ctx, userText)
		if parseErr != nil {
			return parseErr
		}
		validated, validateErr := ValidateWorkloadPayload(payload)
		if validateErr != nil {
			return backoff.Permanent(fmt.Errorf("provider %s returned invalid payload: %w",
				name, validateErr))
		}
		spec = validated
		return nil
	}

	retryPolicy := backoff.WithMaxRetries(backoff.WithContext(policy, ctx), r.config.MaxRetries)
	if err := backoff.Retry(operation, retryPolicy); err != nil {
		return WorkloadSpec{}, err
	}

	return spec, nil
}
