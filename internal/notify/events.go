package notify

import (
	"time"

	"github.com/okwama/bm-server/internal/domain"
)

// Event kinds pushed over streaming channels.
const (
	EventConnected          = "connected"
	EventHeartbeat          = "heartbeat"
	EventDashboardUpdate    = "dashboard_update"
	EventStatusChanged      = "request_status_changed"
	EventNewAssignment      = "new_request_assigned"
	EventSystemNotification = "system_notification"
)

// Event is one record pushed to a channel. Serialized as a single
// line-delimited JSON object by the transport sink.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

// ConnectedData acknowledges a newly registered channel.
type ConnectedData struct {
	UserID  int64  `json:"userId"`
	Message string `json:"message"`
}

// StatusChangedData describes one lifecycle transition.
type StatusChangedData struct {
	RequestID int64           `json:"requestId"`
	OldStatus domain.Status   `json:"oldStatus"`
	NewStatus domain.Status   `json:"newStatus"`
	Request   *domain.Request `json:"request,omitempty"`
}

// DashboardData carries the per-status counts plus their provenance flags.
type DashboardData struct {
	domain.DashboardSnapshot
	Cached   bool `json:"cached"`
	Fallback bool `json:"fallback,omitempty"`
}

// SystemNotificationData carries an ad hoc operator message.
type SystemNotificationData struct {
	Message string `json:"message"`
	Level   string `json:"level"`
}

// Connected builds the event pushed right after a channel registers.
func Connected(userID int64, at time.Time) Event {
	return Event{
		Type:      EventConnected,
		Timestamp: at,
		Data:      ConnectedData{UserID: userID, Message: "stream connection established"},
	}
}

// Heartbeat builds a keep-alive event.
func Heartbeat(at time.Time) Event {
	return Event{Type: EventHeartbeat, Timestamp: at}
}

// StatusChanged builds a lifecycle transition event.
func StatusChanged(requestID int64, oldStatus, newStatus domain.Status, req *domain.Request, at time.Time) Event {
	return Event{
		Type:      EventStatusChanged,
		Timestamp: at,
		Data: StatusChangedData{
			RequestID: requestID,
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Request:   req,
		},
	}
}

// DashboardUpdate builds a counts event tagged with its provenance.
func DashboardUpdate(snap domain.DashboardSnapshot, cached, fallback bool, at time.Time) Event {
	return Event{
		Type:      EventDashboardUpdate,
		Timestamp: at,
		Data:      DashboardData{DashboardSnapshot: snap, Cached: cached, Fallback: fallback},
	}
}

// NewAssignment builds the event pushed when a request is assigned to a staff member.
func NewAssignment(req *domain.Request, at time.Time) Event {
	return Event{Type: EventNewAssignment, Timestamp: at, Data: req}
}

// SystemNotification builds an operator-initiated message event.
func SystemNotification(message, level string, at time.Time) Event {
	if level == "" {
		level = "info"
	}
	return Event{
		Type:      EventSystemNotification,
		Timestamp: at,
		Data:      SystemNotificationData{Message: message, Level: level},
	}
}
