package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
	"github.com/rs/zerolog"

	"github.com/post-engagement-api/internal/config"
	"github.com/post-engagement-api/internal/models"
)

// cachedUserRepo serves id lookups from an in-process cache. Every post
// projection resolves its authors through GetByIDs, so this sits on the hot path.
// Entries are marshaled, so callers always receive their own copy.
type cachedUserRepo struct {
	UserRepository
	cache *marshaler.Marshaler
	ttl   time.Duration
	log   zerolog.Logger
}

// NewCachedUserRepo wraps inner with a ristretto-backed cache
func NewCachedUserRepo(inner UserRepository, cfg config.CacheConfig, log zerolog.Logger) (UserRepository, error) {
	rc, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.MaxItems * 10,
		MaxCost:     cfg.MaxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user cache: %w", err)
	}

	manager := cache.New[any](ristretto_store.NewRistretto(rc))

	return &cachedUserRepo{
		UserRepository: inner,
		cache:          marshaler.New(manager),
		ttl:            cfg.TTL,
		log:            log.With().Str("component", "user_cache").Logger(),
	}, nil
}

func userKey(id string) string {
	return "user#" + id
}

// GetByID checks the cache before the store
func (r *cachedUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := r.get(ctx, id); ok {
		return user, nil
	}

	user, err := r.UserRepository.GetByID(ctx, id)
	if err != nil || user == nil {
		return user, err
	}
	r.set(ctx, user)
	return user, nil
}

// GetByIDs resolves cached users first and loads the rest in one query
func (r *cachedUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User, len(ids))
	var missing []string
	for _, id := range ids {
		if user, ok := r.get(ctx, id); ok {
			users[id] = user
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return users, nil
	}

	loaded, err := r.UserRepository.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, user := range loaded {
		users[id] = user
		r.set(ctx, user)
	}
	return users, nil
}

// Update writes through and drops the stale entry
func (r *cachedUserRepo) Update(ctx context.Context, user *models.User) error {
	if err := r.UserRepository.Update(ctx, user); err != nil {
		return err
	}
	r.invalidate(ctx, user.ID)
	return nil
}

// Delete removes the user and its cache entry
func (r *cachedUserRepo) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.UserRepository.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	r.invalidate(ctx, id)
	return deleted, nil
}

func (r *cachedUserRepo) get(ctx context.Context, id string) (*models.User, bool) {
	value, err := r.cache.Get(ctx, userKey(id), new(models.User))
	if err != nil {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

func (r *cachedUserRepo) set(ctx context.Context, user *models.User) {
	err := r.cache.Set(ctx, userKey(user.ID), user,
		store.WithExpiration(r.ttl),
		store.WithCost(1),
	)
	if err != nil {
		r.log.Debug().Err(err).Str("user_id", user.ID).Msg("Failed to cache user")
	}
}

func (r *cachedUserRepo) invalidate(ctx context.Context, id string) {
	if err := r.cache.Delete(ctx, userKey(id)); err != nil {
		r.log.Debug().Err(err).Str("user_id", id).Msg("Failed to evict user")
	}
}
