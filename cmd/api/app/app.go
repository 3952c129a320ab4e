package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"user-table-service/cmd/api/di"
	"user-table-service/cmd/api/server"
	ginrouter "user-table-service/internal/adapter/gin/router"
	"user-table-service/internal/config"
	"user-table-service/pkg/logger"
)

// App represents the application
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Server    *server.Server
	Container *di.Container
}

// New creates a new application instance
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := initLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	container, err := di.NewContainer(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	return NewWithContainer(container), nil
}

// NewWithContainer assembles the router and server around an existing container
func NewWithContainer(c *di.Container) *App {
	router := ginrouter.SetupRouter(c.GinHandler, ginrouter.Options{
		ServiceName:    c.Config.Logger.ServiceName,
		SwaggerEnabled: c.Config.App.SwaggerEnabled,
		RateLimiter:    c.RateLimiter,
		Counter:        c.UserTable,
	}, c.Logger)

	return &App{
		Config:    c.Config,
		Logger:    c.Logger,
		Server:    server.New(c.Config, c.Logger, router),
		Container: c,
	}
}

// Run serves until ctx is cancelled or the server fails, then shuts down.
func (a *App) Run(ctx context.Context) error {
	a.Logger.Info("starting application",
		zap.String("service", a.Config.Logger.ServiceName),
		zap.String("version", a.Config.Logger.ServiceVersion),
		zap.String("environment", a.Config.App.Environment),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				a.Logger.Error("panic recovered in server", zap.Any("panic", r), zap.Stack("stack"))
				err = fmt.Errorf("server panic: %v", r)
			}
		}()

		if err := a.Server.Start(); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("shutting down application...")
		return a.shutdown()
	})

	return g.Wait()
}

// shutdown gracefully shuts down the application
func (a *App) shutdown() error {
	timeout := time.Duration(a.Config.App.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	a.Logger.Info("starting graceful shutdown", zap.Int("timeout_seconds", a.Config.App.ShutdownTimeoutSeconds))

	var errs []error

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("failed to shutdown HTTP server", zap.Error(err))
		errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
	}

	if a.Container != nil {
		a.Logger.Info("closing container resources...")
		if err := a.Container.Close(); err != nil {
			a.Logger.Error("failed to close container", zap.Error(err))
			errs = append(errs, fmt.Errorf("container close: %w", err))
		}
	}

	a.Logger.Info("application shutdown complete")

	// Sync errors on stdout/stderr are expected on most platforms
	if err := a.Logger.Sync(); err != nil && !errors.Is(err, syscall.EINVAL) && !errors.Is(err, syscall.ENOTTY) {
		errs = append(errs, fmt.Errorf("logger sync: %w", err))
	}

	return errors.Join(errs...)
}

// initLogger initializes the application logger
func initLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.NewWithConfig(logger.Config{
		Level:          cfg.Logger.Level,
		Format:         cfg.Logger.Format,
		OutputPath:     cfg.Logger.OutputPath,
		EnableSampling: cfg.Logger.EnableSampling,
		ServiceName:    cfg.Logger.ServiceName,
		ServiceVersion: cfg.Logger.ServiceVersion,
		Environment:    cfg.App.Environment,
	})
}

// getConfigPath returns the configuration path
func getConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "."
}
