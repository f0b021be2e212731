package app

import (
	"context"
	"log"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"github.com/okwama/bm-server/internal/config"
	"github.com/okwama/bm-server/internal/logx"
	"github.com/okwama/bm-server/internal/notify"
	"github.com/okwama/bm-server/internal/repository"
)

func TestGracefulShutdown_DoesNotPanic(t *testing.T) {
	t.Parallel()

	srv := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NewServeMux(),
	}
	logger := log.New(log.Writer(), "", 0)

	require.NotPanics(t, func() {
		gracefulShutdown(srv, logger, 100*time.Millisecond)
	})
}

func TestRun_StartsAndStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container := dig.New()

	require.NoError(t, container.Provide(func() context.Context { return ctx }))
	require.NoError(t, container.Provide(func() *log.Logger { return log.New(log.Writer(), "", 0) }))
	require.NoError(t, container.Provide(logx.Nop))
	require.NoError(t, container.Provide(func() *pgxpool.Pool { return nil }))
	require.NoError(t, container.Provide(func() *http.Server {
		return &http.Server{
			Addr:    "127.0.0.1:0",
			Handler: http.NewServeMux(),
		}
	}))
	require.NoError(t, container.Provide(func(logger logx.Logger) *notify.Bus {
		sse := config.DefaultSSE()
		return notify.NewBus(sse.StaleThreshold, sse.StaleSweepInterval, logger)
	}))
	require.NoError(t, container.Provide(func(bus *notify.Bus, logger logx.Logger) *notify.DashboardCache {
		return notify.NewDashboardCache(repository.NewRequestRepo(nil), bus, notify.CacheConfig{}, logger)
	}))

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	require.NoError(t, run(container))
}
