package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"user-table-service/cmd/api/infrastructure"
	ginhandler "user-table-service/internal/adapter/gin/handler"
	"user-table-service/internal/adapter/memory"
	"user-table-service/internal/adapter/ratelimit"
	"user-table-service/internal/config"
	"user-table-service/internal/usecase/user"
	redisclient "user-table-service/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	RedisClient *redisclient.Client // nil unless rate limiting is enabled
	UserTable   *memory.UserTable
	UserUC      user.Usecase
	RateLimiter *ratelimit.Limiter // nil unless rate limiting is enabled
	GinHandler  *ginhandler.UserHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{
		Config: cfg,
		Logger: l,
	}

	// Redis is only needed as the rate limiter backend
	if cfg.RateLimit.Enabled {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb
		c.RateLimiter = ratelimit.New(rdb.Client, ratelimit.Config{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstCapacity:     cfg.RateLimit.BurstCapacity,
			Enabled:           true,
		}, l)
	}

	c.UserTable = memory.NewUserTable(l)
	c.UserUC = user.New(c.UserTable, l)
	c.GinHandler = ginhandler.NewUserHandler(c.UserUC, l)

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}
	return nil
}
