package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okwama/bm-server/internal/domain"
	"github.com/okwama/bm-server/internal/logx"
	"github.com/okwama/bm-server/internal/metrics"
)

// CounterSource provides the per-status aggregate counts behind a dashboard.
type CounterSource interface {
	CountByStatus(ctx context.Context, staffID int64, status domain.Status) (int64, error)
}

type eventEmitter interface {
	Emit(userID int64, ev Event) int
}

// CacheConfig bundles the dashboard-cache timings.
type CacheConfig struct {
	TTL           time.Duration
	QueryTimeout  time.Duration
	Debounce      time.Duration
	SweepInterval time.Duration
}

func (c *CacheConfig) applyDefaults() {
	if c.TTL <= 0 {
		c.TTL = 30 * time.Second
	}
	if c.QueryTimeout <= 0 {
		c.QueryTimeout = 10 * time.Second
	}
	if c.Debounce <= 0 {
		c.Debounce = 500 * time.Millisecond
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = time.Minute
	}
}

type cacheEntry struct {
	snap       domain.DashboardSnapshot
	capturedAt time.Time
}

// DashboardCache keeps a short-lived per-user snapshot of dashboard counts and
// pushes dashboard_update events through the bus. Refreshes are debounced per
// user; a force path bypasses both the pending timer and the cached value.
// A data-source outage degrades to the last snapshot, never to an error that
// reaches the transition path.
type DashboardCache struct {
	source  CounterSource
	emitter eventEmitter
	cfg     CacheConfig
	logger  logx.Logger
	now     func() time.Time

	mu      sync.Mutex
	entries map[int64]cacheEntry
	timers  map[int64]*time.Timer
}

// NewDashboardCache creates a DashboardCache.
func NewDashboardCache(source CounterSource, emitter eventEmitter, cfg CacheConfig, logger logx.Logger) *DashboardCache {
	cfg.applyDefaults()
	return &DashboardCache{
		source:  source,
		emitter: emitter,
		cfg:     cfg,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		entries: make(map[int64]cacheEntry),
		timers:  make(map[int64]*time.Timer),
	}
}

// RequestRefresh schedules a refresh after the quiet period, replacing any
// refresh already pending for this user. Bursts collapse into one recomputation.
func (c *DashboardCache) RequestRefresh(staffID int64) {
	c.mu.Lock()
	if t, ok := c.timers[staffID]; ok {
		t.Stop()
	}
	c.timers[staffID] = time.AfterFunc(c.cfg.Debounce, func() {
		c.mu.Lock()
		delete(c.timers, staffID)
		c.mu.Unlock()
		if err := c.refresh(context.Background(), staffID); err != nil {
			c.logger.Warn("debounced dashboard refresh failed",
				logx.Int64("staff_id", staffID),
				logx.Err(err),
			)
		}
	})
	c.mu.Unlock()
}

// ForceRefresh cancels any pending refresh, discards the cached snapshot and
// recomputes immediately. Used right after a committed transition so the
// pushed event and the dashboard numbers agree.
func (c *DashboardCache) ForceRefresh(staffID int64) error {
	c.mu.Lock()
	if t, ok := c.timers[staffID]; ok {
		t.Stop()
		delete(c.timers, staffID)
	}
	delete(c.entries, staffID)
	c.mu.Unlock()

	return c.refresh(context.Background(), staffID)
}

// SendNow recomputes (or reuses a fresh snapshot) without debouncing. Used for
// the initial dashboard send on connect.
func (c *DashboardCache) SendNow(ctx context.Context, staffID int64) error {
	return c.refresh(ctx, staffID)
}

func (c *DashboardCache) refresh(ctx context.Context, staffID int64) error {
	now := c.now()

	c.mu.Lock()
	cached, ok := c.entries[staffID]
	c.mu.Unlock()

	if ok && now.Sub(cached.capturedAt) < c.cfg.TTL {
		c.emitter.Emit(staffID, DashboardUpdate(cached.snap, true, false, now))
		metrics.DashboardRefreshTotal.WithLabelValues("cached").Inc()
		return nil
	}

	qctx, cancel := context.WithTimeout(ctx, c.cfg.QueryTimeout)
	defer cancel()

	snap, err := c.fetch(qctx, staffID)
	if err != nil {
		if ok {
			c.emitter.Emit(staffID, DashboardUpdate(cached.snap, true, true, c.now()))
		} else {
			c.emitter.Emit(staffID, DashboardUpdate(domain.DashboardSnapshot{}, false, true, c.now()))
		}
		metrics.DashboardRefreshTotal.WithLabelValues("fallback").Inc()
		return fmt.Errorf("dashboard counts staff=%d: %w", staffID, err)
	}

	c.mu.Lock()
	c.entries[staffID] = cacheEntry{snap: snap, capturedAt: c.now()}
	c.mu.Unlock()

	c.emitter.Emit(staffID, DashboardUpdate(snap, false, false, c.now()))
	metrics.DashboardRefreshTotal.WithLabelValues("fresh").Inc()
	return nil
}

func (c *DashboardCache) fetch(ctx context.Context, staffID int64) (domain.DashboardSnapshot, error) {
	var snap domain.DashboardSnapshot
	var err error

	if snap.Pending, err = c.source.CountByStatus(ctx, staffID, domain.StatusPending); err != nil {
		return domain.DashboardSnapshot{}, err
	}
	if snap.InProgress, err = c.source.CountByStatus(ctx, staffID, domain.StatusInProgress); err != nil {
		return domain.DashboardSnapshot{}, err
	}
	if snap.Completed, err = c.source.CountByStatus(ctx, staffID, domain.StatusCompleted); err != nil {
		return domain.DashboardSnapshot{}, err
	}
	return snap, nil
}

// ClearUser drops one user's snapshot and pending refresh.
func (c *DashboardCache) ClearUser(staffID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, staffID)
	if t, ok := c.timers[staffID]; ok {
		t.Stop()
		delete(c.timers, staffID)
	}
}

// ClearAll drops every snapshot and pending refresh.
func (c *DashboardCache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int64]cacheEntry)
	for _, t := range c.timers {
		t.Stop()
	}
	c.timers = make(map[int64]*time.Timer)
}

// CacheStats is the operational view of the cache.
type CacheStats struct {
	CachedUsers    int    `json:"cachedUsers"`
	PendingUpdates int    `json:"pendingUpdates"`
	CacheTimeout   string `json:"cacheTimeout"`
}

// Stats reports the current cache occupancy.
func (c *DashboardCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		CachedUsers:    len(c.entries),
		PendingUpdates: len(c.timers),
		CacheTimeout:   c.cfg.TTL.String(),
	}
}

// Run drives the periodic eviction sweep until the context is canceled.
func (c *DashboardCache) Run(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *DashboardCache) evictExpired() int {
	now := c.now()
	evicted := 0

	c.mu.Lock()
	for id, e := range c.entries {
		if now.Sub(e.capturedAt) > c.cfg.TTL {
			delete(c.entries, id)
			evicted++
		}
	}
	c.mu.Unlock()

	return evicted
}
