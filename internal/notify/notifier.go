package notify

import (
	"time"

	"github.com/okwama/bm-server/internal/domain"
)

// Notifier bridges the lifecycle engine to the bus and the dashboard cache.
// Emitting to a user with no open streams is a successful no-op.
type Notifier struct {
	bus   *Bus
	cache *DashboardCache
	now   func() time.Time
}

// NewNotifier creates a Notifier over the given bus and cache.
func NewNotifier(bus *Bus, cache *DashboardCache) *Notifier {
	return &Notifier{
		bus:   bus,
		cache: cache,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// RequestStatusChanged pushes a request_status_changed event to the request owner.
func (n *Notifier) RequestStatusChanged(staffID, requestID int64, oldStatus, newStatus domain.Status, req *domain.Request) error {
	n.bus.Emit(staffID, StatusChanged(requestID, oldStatus, newStatus, req, n.now()))
	return nil
}

// ForceRefresh recomputes the owner's dashboard immediately, skipping the
// debounce window and the cached snapshot.
func (n *Notifier) ForceRefresh(staffID int64) error {
	return n.cache.ForceRefresh(staffID)
}

// NewAssignment pushes a new_request_assigned event and schedules a debounced
// dashboard refresh for the assignee.
func (n *Notifier) NewAssignment(staffID int64, req *domain.Request) error {
	n.bus.Emit(staffID, NewAssignment(req, n.now()))
	n.cache.RequestRefresh(staffID)
	return nil
}
