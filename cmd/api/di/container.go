package di

import (
	"fmt"
	"time"

	"lead-crm-service/cmd/api/infrastructure"
	"lead-crm-service/internal/adapter/cache"
	"lead-crm-service/internal/adapter/db/postgres"
	ginhandler "lead-crm-service/internal/adapter/gin/handler"
	"lead-crm-service/internal/adapter/repository/cached"
	"lead-crm-service/internal/config"
	"lead-crm-service/internal/usecase/auth"
	"lead-crm-service/internal/usecase/lead"
	redisclient "lead-crm-service/pkg/redis"
	"lead-crm-service/pkg/token"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	Tokens      *token.Manager
	UserRepo    auth.Repository
	AuthUC      auth.Usecase
	LeadUC      lead.Usecase
	AuthHandler *ginhandler.AuthHandler
	LeadHandler *ginhandler.LeadHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Initialize database
	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis client
	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	// Identity cache sits in front of the user repository so the auth
	// middleware does not hit Postgres on every request.
	identityCache := cache.NewRedisIdentityCache(
		rdb.Client,
		time.Duration(cfg.Redis.CacheTTL)*time.Second,
		l,
	)

	// Initialize repositories
	userRepo := cached.NewCachedUserRepository(postgres.NewUserRepoPG(db, l), identityCache, l)
	leadRepo := postgres.NewLeadRepoPG(db, l)

	// Token manager
	tokens := token.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	// Initialize use cases
	authUC := auth.New(userRepo, tokens, l)
	leadUC := lead.New(leadRepo, l)

	// Initialize Gin handlers
	authHandler := ginhandler.NewAuthHandler(authUC, l)
	leadHandler := ginhandler.NewLeadHandler(leadUC, l)

	return &Container{
		Config:      cfg,
		Logger:      l,
		DB:          db,
		RedisClient: rdb,
		Tokens:      tokens,
		UserRepo:    userRepo,
		AuthUC:      authUC,
		LeadUC:      leadUC,
		AuthHandler: authHandler,
		LeadHandler: leadHandler,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
