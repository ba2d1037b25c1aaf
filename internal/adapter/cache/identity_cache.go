package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "lead-crm-service/internal/domain/user"
)

// IdentityCache defines the interface for caching authenticated identities.
// The auth middleware resolves a token's user ID on every protected request,
// so the lookup is cached to keep the database off the hot path.
type IdentityCache interface {
	// Get retrieves a user from cache by ID.
	// Returns nil if the user is not cached.
	Get(ctx context.Context, id string) (*domain.User, error)

	// Set stores a user in cache with the configured TTL.
	Set(ctx context.Context, user *domain.User) error

	// Delete removes a user from cache by ID.
	Delete(ctx context.Context, id string) error
}

// RedisIdentityCache implements IdentityCache using Redis as the backing store.
type RedisIdentityCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisIdentityCache creates a new Redis-backed identity cache.
func NewRedisIdentityCache(client *redis.Client, ttl time.Duration, log *zap.Logger) IdentityCache {
	return &RedisIdentityCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// cacheKey generates a Redis key for a user ID.
func (c *RedisIdentityCache) cacheKey(id string) string {
	return fmt.Sprintf("identity:%s", id)
}

// Get retrieves a user from Redis cache.
func (c *RedisIdentityCache) Get(ctx context.Context, id string) (*domain.User, error) {
	key := c.cacheKey(id)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		// Cache miss - not an error
		c.log.Debug("identity cache miss", zap.String("user_id", id))
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get from identity cache", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		c.log.Error("failed to unmarshal cached identity", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}

	c.log.Debug("identity cache hit", zap.String("user_id", id))
	return &user, nil
}

// Set stores a user in Redis cache with TTL.
// The password hash is stripped first: Redis never holds credentials.
func (c *RedisIdentityCache) Set(ctx context.Context, user *domain.User) error {
	if user == nil {
		return fmt.Errorf("cannot cache nil user")
	}

	public := *user
	public.Password = ""

	key := c.cacheKey(public.ID)

	data, err := json.Marshal(&public)
	if err != nil {
		c.log.Error("failed to marshal identity for cache", zap.String("user_id", public.ID), zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Error("failed to set identity cache", zap.String("user_id", public.ID), zap.Error(err))
		return err
	}

	c.log.Debug("cached identity", zap.String("user_id", public.ID), zap.Duration("ttl", c.ttl))
	return nil
}

// Delete removes a user from Redis cache.
func (c *RedisIdentityCache) Delete(ctx context.Context, id string) error {
	key := c.cacheKey(id)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Error("failed to delete from identity cache", zap.String("user_id", id), zap.Error(err))
		return err
	}

	c.log.Debug("deleted identity from cache", zap.String("user_id", id))
	return nil
}
