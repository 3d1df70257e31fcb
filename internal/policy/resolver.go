// Package policy resolves the per-account generation constraints the
// pipeline must honor.
package policy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"babystory-server/internal/models"
)

// Repository is the policy store collaborator.
type Repository interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.Policy, error)
}

// Resolver maps an account to its effective policy. Accounts without a
// stored record get the hardcoded default instead of an error, so first-time
// users can generate before touching settings.
type Resolver struct {
	repo     Repository
	cache    *redis.Client // optional
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewResolver builds a resolver. cache may be nil to disable caching.
func NewResolver(repo Repository, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) *Resolver {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Resolver{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "policy").Logger(),
	}
}

func cacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("policy:%s", userID)
}

// Resolve returns the effective policy for the account. Cache failures
// degrade to a direct repository read; an absent record resolves to
// models.DefaultPolicy().
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) (models.EffectivePolicy, error) {
	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, cacheKey(userID)).Bytes(); err == nil {
			var effective models.EffectivePolicy
			if err := json.Unmarshal(cached, &effective); err == nil {
				return effective, nil
			}
			// Corrupt cache entry, fall through to the repository.
			r.cache.Del(ctx, cacheKey(userID))
		} else if !errors.Is(err, redis.Nil) {
			r.logger.Warn().Err(err).Msg("policy cache read failed, falling back to database")
		}
	}

	var effective models.EffectivePolicy
	stored, err := r.repo.GetByUser(ctx, userID)
	switch {
	case err == nil:
		effective = stored.Effective()
	case errors.Is(err, models.ErrPolicyNotFound):
		r.logger.Debug().Str("user_id", userID.String()).Msg("no policy record, using default")
		effective = models.DefaultPolicy()
	default:
		return models.EffectivePolicy{}, fmt.Errorf("failed to resolve policy: %w", err)
	}

	if r.cache != nil {
		if data, err := json.Marshal(effective); err == nil {
			if err := r.cache.Set(ctx, cacheKey(userID), data, r.cacheTTL).Err(); err != nil {
				r.logger.Warn().Err(err).Msg("policy cache write failed")
			}
		}
	}

	return effective, nil
}
