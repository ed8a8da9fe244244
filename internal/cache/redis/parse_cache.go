// Package redis implements the parse result cache on Redis. Entries are
// keyed by a digest of the normalized input text, so only byte-identical
// requests hit.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inferenceatlas/atlas/internal/observability"
	"github.com/inferenceatlas/atlas/internal/parse"
)

const keyPrefix = "atlas:parse:"

// ParseCache implements parse.Cache on a Redis client.
type ParseCache struct {
	client *redis.Client
}

// NewParseCache creates a Redis-backed parse cache.
func NewParseCache(client *redis.Client) *ParseCache {
	return &ParseCache{
		client: client,
	}
}

func cacheKey(userText string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(userText)), " ")
	digest := sha256.Sum256([]byte(normalized))
	return keyPrefix + hex.EncodeToString(digest[:])
}

// Get retrieves a previously parsed spec for the same input text.
func (c *ParseCache) Get(ctx context.Context, userText string) (*parse.WorkloadSpec, error) {
	logger := observability.FromContext(ctx)

	data, err := c.client.Get(ctx, cacheKey(userText)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, parse.ErrCacheMiss
		}
		logger.Error("parse cache get failed", observability.Error(err))
		return nil, fmt.Errorf("cache get failed: %w", err)
	}

	var spec parse.WorkloadSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to decode cached spec: %w", err)
	}

	return &spec, nil
}

// Set stores a parsed spec with a TTL.
func (c *ParseCache) Set(
	ctx context.Context,
	userText string,
	spec parse.WorkloadSpec,
	ttl time.Duration,
) error {
	data, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("failed to encode spec: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(userText), data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}

	return nil
}
