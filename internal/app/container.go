package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"github.com/okwama/bm-server/internal/config"
	"github.com/okwama/bm-server/internal/http/handlers"
	mw "github.com/okwama/bm-server/internal/http/middleware"
	"github.com/okwama/bm-server/internal/http/router"
	"github.com/okwama/bm-server/internal/logx"
	"github.com/okwama/bm-server/internal/notify"
	"github.com/okwama/bm-server/internal/repository"
	"github.com/okwama/bm-server/internal/service/assignments"
	"github.com/okwama/bm-server/internal/service/lifecycle"
	"github.com/okwama/bm-server/internal/transport/kafka"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerNotify(container); err != nil {
		return nil, fmt.Errorf("notify: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		func() *log.Logger { return log.Default() },
		NewLogger,
		config.Load,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB, repository.NewRequestRepo)
}

func registerNotify(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config, logger logx.Logger) *notify.Bus {
			return notify.NewBus(cfg.SSE.StaleThreshold, cfg.SSE.StaleSweepInterval, logger)
		},
		func(cfg *config.Config, repo *repository.RequestRepo, bus *notify.Bus, logger logx.Logger) *notify.DashboardCache {
			return notify.NewDashboardCache(repo, bus, notify.CacheConfig{
				TTL:           cfg.SSE.CacheTimeout,
				QueryTimeout:  cfg.SSE.QueryTimeout,
				Debounce:      cfg.SSE.Debounce,
				SweepInterval: cfg.SSE.CacheSweepInterval,
			}, logger)
		},
		notify.NewNotifier,
	)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		func(repo *repository.RequestRepo, notifier *notify.Notifier, cfg *config.Config, logger logx.Logger) *lifecycle.Service {
			return lifecycle.NewService(repo, notifier, cfg.Lifecycle.OperationTimeout, logger)
		},
		func(repo *repository.RequestRepo, notifier *notify.Notifier, logger logx.Logger) *assignments.Processor {
			return assignments.NewProcessor(repo, notifier, logger)
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			// no WriteTimeout, /sse/connect holds its response open
			IdleTimeout: 60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewLifecycleUsecase,
		handlers.NewRequestHandler,
		func(logger logx.Logger, bus *notify.Bus, cache *notify.DashboardCache, cfg *config.Config) *handlers.StreamHandler {
			return handlers.NewStreamHandler(logger, bus, cache, cfg.SSE.HeartbeatInterval)
		},
		func(logger logx.Logger, bus *notify.Bus, cache *notify.DashboardCache, repo *repository.RequestRepo) *handlers.AdminHandler {
			return handlers.NewAdminHandler(logger, bus, cache, repo)
		},
		func() mw.Authenticator { return mw.HeaderAuthenticator{} },
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		router.New,
		serverProvider,
	)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(p *assignments.Processor) kafka.HandleFunc {
			return p.Handle
		},
		func(cfg *config.Config, h kafka.HandleFunc, logger logx.Logger) (*kafka.Consumer, error) {
			return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h, logger)
		},
	)
}
