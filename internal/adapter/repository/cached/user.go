package cached

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"lead-crm-service/internal/adapter/cache"
	domain "lead-crm-service/internal/domain/user"
	"lead-crm-service/internal/usecase/auth"
)

// CachedUserRepository implements auth.Repository with caching support.
// It wraps the persistent repository and the identity cache. Only GetByID is
// cached: it runs on every authenticated request, while GetByEmail runs only
// at login and must always see fresh credential hashes.
type CachedUserRepository struct {
	dbRepo auth.Repository
	cache  cache.IdentityCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo auth.Repository, cache cache.IdentityCache, log *zap.Logger) auth.Repository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Create delegates to the DB repository.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) (string, error) {
	return r.dbRepo.Create(ctx, u)
}

// GetByEmail delegates to the DB repository. Login verifies the password hash,
// which the cache deliberately does not hold.
func (r *CachedUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.dbRepo.GetByEmail(ctx, email)
}

// GetByID retrieves a user by ID using the cache-aside pattern, with
// single-flight collapsing concurrent misses for the same identity.
// Returns (nil, nil) when the user does not exist; absence is not cached.
func (r *CachedUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if r.cache != nil {
		cachedUser, err := r.cache.Get(ctx, id)
		if err != nil {
			r.log.Warn("identity cache get error, falling back to database", zap.String("id", id), zap.Error(err))
		} else if cachedUser != nil {
			return cachedUser, nil
		}
	}

	key := fmt.Sprintf("identity:%s", id)
	result, err, _ := r.group.Do(key, func() (any, error) {
		// Double-check cache in case another request populated it while we were waiting
		if r.cache != nil {
			cachedUser, err := r.cache.Get(ctx, id)
			if err == nil && cachedUser != nil {
				return cachedUser, nil
			}
		}

		usr, err := r.dbRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if usr == nil {
			return (*domain.User)(nil), nil
		}

		if r.cache != nil {
			if err := r.cache.Set(ctx, usr); err != nil {
				r.log.Warn("failed to cache identity", zap.String("id", id), zap.Error(err))
			}
		}
		return usr, nil
	})
	if err != nil {
		return nil, err
	}

	usr, _ := result.(*domain.User)
	return usr, nil
}
