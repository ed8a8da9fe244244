package parse

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss indicates no cached spec exists for the given text.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores parse results keyed by input text. Implementations must treat
// a miss as ErrCacheMiss so callers can distinguish it from backend failure.
type Cache interface {
	// Get retrieves a previously parsed spec for the same input text.
	Get(ctx context.Context, userText string) (*WorkloadSpec, error)

	// Set stores a parsed spec with a TTL.
	Set(ctx context.Context, userText string, spec WorkloadSpec, ttl time.Duration) error
}
