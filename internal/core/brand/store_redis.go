// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package brand

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/blenda/internal/platform/constants"
)

// allTeamsKey names the cache entry for the unfiltered catalog.
const allTeamsKey = "all"

// CachedRepository is a cache-aside decorator over a [Repository].
//
// Only ListBrands is cached. Slug resolution stays on the primary store so
// a filter can never resolve against a stale catalog. Redis failures are
// logged and bypassed; they never fail a request.
type CachedRepository struct {
	next   Repository
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRepository wraps next with a Redis cache of the given ttl.
func NewCachedRepository(next Repository, client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func cacheKey(teamID string) string {
	if teamID == "" {
		teamID = allTeamsKey
	}
	return constants.RedisPrefixBrandCatalog + teamID
}

/*
ListBrands serves the catalog from Redis when possible.

Flow:
 1. GET the team's key; a hit is decoded and returned.
 2. On a miss or any cache error, read the primary store.
 3. Store the fresh result with the configured TTL.
*/
func (repository *CachedRepository) ListBrands(ctx context.Context, teamID string) ([]*Brand, error) {
	key := cacheKey(teamID)

	payload, err := repository.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var brands []*Brand
		if jsonErr := json.Unmarshal(payload, &brands); jsonErr == nil {
			return brands, nil
		}
		repository.logger.WarnContext(ctx, "brand_cache_corrupt", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		repository.logger.WarnContext(ctx, "brand_cache_read_failed", slog.String("key", key), slog.Any("error", err))
	}

	brands, err := repository.next.ListBrands(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(brands); err == nil {
		if err := repository.client.Set(ctx, key, encoded, repository.ttl).Err(); err != nil {
			repository.logger.WarnContext(ctx, "brand_cache_write_failed", slog.String("key", key), slog.Any("error", err))
		}
	}

	return brands, nil
}

// FindBySlug always reads the primary store.
func (repository *CachedRepository) FindBySlug(ctx context.Context, slug string) (*Brand, error) {
	return repository.next.FindBySlug(ctx, slug)
}

// Create writes through and drops every cached catalog, since a shared
// brand changes the list of every team.
func (repository *CachedRepository) Create(ctx context.Context, brand *Brand) error {
	if err := repository.next.Create(ctx, brand); err != nil {
		return err
	}
	repository.Invalidate(ctx)
	return nil
}

// Invalidate removes every cached catalog entry.
func (repository *CachedRepository) Invalidate(ctx context.Context) {
	iterator := repository.client.Scan(ctx, 0, constants.RedisPrefixBrandCatalog+"*", 100).Iterator()

	var keys []string
	for iterator.Next(ctx) {
		keys = append(keys, iterator.Val())
	}
	if err := iterator.Err(); err != nil {
		repository.logger.WarnContext(ctx, "brand_cache_scan_failed", slog.Any("error", err))
		return
	}

	if len(keys) == 0 {
		return
	}
	if err := repository.client.Del(ctx, keys...).Err(); err != nil {
		repository.logger.WarnContext(ctx, "brand_cache_invalidate_failed", slog.Any("error", err))
	}
}
