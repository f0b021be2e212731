package notify

import (
	"context"
	"sync"
	"time"

	"github.com/okwama/bm-server/internal/logx"
	"github.com/okwama/bm-server/internal/metrics"
)

// Meta carries client metadata captured at connect time.
type Meta struct {
	Name string
	Role string
}

type userEntry struct {
	mu           sync.Mutex
	sinks        map[Sink]struct{}
	meta         Meta
	connectedAt  time.Time
	lastActivity time.Time
}

// Bus is the in-process registry of live per-user channels. Each user owns an
// entry with its own lock; the registry lock only guards the map itself, so
// unrelated users' deliveries do not contend.
type Bus struct {
	mu    sync.RWMutex
	users map[int64]*userEntry

	logger         logx.Logger
	staleThreshold time.Duration
	sweepInterval  time.Duration
	now            func() time.Time
}

// NewBus creates a notification Bus.
func NewBus(staleThreshold, sweepInterval time.Duration, logger logx.Logger) *Bus {
	if staleThreshold <= 0 {
		staleThreshold = 5 * time.Minute
	}
	if sweepInterval <= 0 {
		sweepInterval = 30 * time.Second
	}
	return &Bus{
		users:          make(map[int64]*userEntry),
		logger:         logger,
		staleThreshold: staleThreshold,
		sweepInterval:  sweepInterval,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Connect registers a channel under the user and pushes the connected event.
// Returns the user's channel count after registration.
func (b *Bus) Connect(userID int64, sink Sink, meta Meta) int {
	now := b.now()

	b.mu.Lock()
	e, ok := b.users[userID]
	if !ok {
		e = &userEntry{sinks: make(map[Sink]struct{}), connectedAt: now}
		b.users[userID] = e
	}
	e.mu.Lock()
	e.sinks[sink] = struct{}{}
	e.meta = meta
	e.lastActivity = now
	n := len(e.sinks)
	e.mu.Unlock()
	b.mu.Unlock()

	metrics.ActiveConnections.Inc()
	b.logger.Info("client connected",
		logx.Int64("user_id", userID),
		logx.Int("connections", n),
	)

	b.deliver(userID, e, Connected(userID, now))
	return n
}

// Disconnect removes a channel; when the user's set becomes empty the whole
// registration is destroyed.
func (b *Bus) Disconnect(userID int64, sink Sink) {
	b.mu.Lock()
	e, ok := b.users[userID]
	if !ok {
		b.mu.Unlock()
		return
	}
	e.mu.Lock()
	if _, had := e.sinks[sink]; had {
		delete(e.sinks, sink)
		metrics.ActiveConnections.Dec()
	}
	remaining := len(e.sinks)
	if remaining == 0 {
		delete(b.users, userID)
	} else {
		e.lastActivity = b.now()
	}
	e.mu.Unlock()
	b.mu.Unlock()

	b.logger.Info("client disconnected",
		logx.Int64("user_id", userID),
		logx.Int("remaining", remaining),
	)
}

// Emit pushes an event to every live channel of the user. A failed channel is
// removed and closed without aborting delivery to the others. Returns the
// number of channels reached.
func (b *Bus) Emit(userID int64, ev Event) int {
	b.mu.RLock()
	e := b.users[userID]
	b.mu.RUnlock()
	if e == nil {
		return 0
	}
	return b.deliver(userID, e, ev)
}

// Broadcast emits the event to every registered user. Used for system-wide
// notices only.
func (b *Bus) Broadcast(ev Event) {
	b.mu.RLock()
	ids := make([]int64, 0, len(b.users))
	for id := range b.users {
		ids = append(ids, id)
	}
	b.mu.RUnlock()

	for _, id := range ids {
		b.Emit(id, ev)
	}
}

func (b *Bus) deliver(userID int64, e *userEntry, ev Event) int {
	e.mu.Lock()
	var dead []Sink
	sent := 0
	for s := range e.sinks {
		if err := s.Send(ev); err != nil {
			dead = append(dead, s)
			continue
		}
		sent++
	}
	for _, s := range dead {
		delete(e.sinks, s)
		_ = s.Close()
	}
	if sent > 0 {
		e.lastActivity = b.now()
	}
	empty := len(e.sinks) == 0
	e.mu.Unlock()

	if len(dead) > 0 {
		metrics.ActiveConnections.Sub(float64(len(dead)))
		b.logger.Warn("removed broken channels",
			logx.Int64("user_id", userID),
			logx.Int("count", len(dead)),
		)
	}
	if sent > 0 {
		metrics.EventsSentTotal.WithLabelValues(ev.Type).Add(float64(sent))
	}
	if empty {
		b.dropIfEmpty(userID)
	}
	return sent
}

func (b *Bus) dropIfEmpty(userID int64) {
	b.mu.Lock()
	if e, ok := b.users[userID]; ok {
		e.mu.Lock()
		if len(e.sinks) == 0 {
			delete(b.users, userID)
		}
		e.mu.Unlock()
	}
	b.mu.Unlock()
}

// UserStats describes one user's registration.
type UserStats struct {
	UserID       int64     `json:"userId"`
	Connections  int       `json:"connections"`
	ConnectedAt  time.Time `json:"connectedAt"`
	LastActivity time.Time `json:"lastActivity"`
}

// ConnectionStats is an aggregate view over all registrations.
type ConnectionStats struct {
	TotalUsers       int         `json:"totalUsers"`
	TotalConnections int         `json:"totalConnections"`
	Users            []UserStats `json:"perUser"`
}

// Stats reports the current registrations.
func (b *Bus) Stats() ConnectionStats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stats := ConnectionStats{Users: make([]UserStats, 0, len(b.users))}
	for id, e := range b.users {
		e.mu.Lock()
		n := len(e.sinks)
		us := UserStats{
			UserID:       id,
			Connections:  n,
			ConnectedAt:  e.connectedAt,
			LastActivity: e.lastActivity,
		}
		e.mu.Unlock()

		stats.TotalUsers++
		stats.TotalConnections += n
		stats.Users = append(stats.Users, us)
	}
	return stats
}

// Run drives the periodic stale sweep until the context is canceled.
func (b *Bus) Run(ctx context.Context) {
	ticker := time.NewTicker(b.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.sweepStale()
		}
	}
}

// sweepStale force-closes every registration whose last activity is older
// than the staleness threshold. Clients that vanished without a disconnect
// signal are reaped here.
func (b *Bus) sweepStale() int {
	now := b.now()
	removed := 0

	b.mu.Lock()
	for id, e := range b.users {
		e.mu.Lock()
		if now.Sub(e.lastActivity) > b.staleThreshold {
			for s := range e.sinks {
				_ = s.Close()
			}
			metrics.ActiveConnections.Sub(float64(len(e.sinks)))
			delete(b.users, id)
			removed++
			b.logger.Info("stale registration removed", logx.Int64("user_id", id))
		}
		e.mu.Unlock()
	}
	b.mu.Unlock()

	if removed > 0 {
		metrics.StaleSweptTotal.Add(float64(removed))
	}
	return removed
}
