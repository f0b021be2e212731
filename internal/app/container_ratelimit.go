package app

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/okwama/bm-server/internal/config"
	"github.com/okwama/bm-server/internal/http/middleware/ratelimit"
	"github.com/okwama/bm-server/internal/logx"
)

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.NopLimiter{}
	}
	return ratelimit.NewTokenBucketLimiter(clock, ratelimit.Config{
		Rate:       rl.Rate,
		Burst:      rl.Burst,
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

func newRateLimitMiddleware(logger logx.Logger, limiter ratelimit.Limiter) *ratelimit.Middleware {
	return ratelimit.New(logger, rateLimitDeniedTotal, limiter)
}

var rateLimitDeniedTotal = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "rate_limit_exceeded_total",
	Help: "Requests rejected by the rate limiter",
})

func init() {
	prometheus.MustRegister(rateLimitDeniedTotal)
}
