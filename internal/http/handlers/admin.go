package handlers

import (
	"context"
	"net/http"
	"time"

	mw "github.com/okwama/bm-server/internal/http/middleware"
	"github.com/okwama/bm-server/internal/logx"
	"github.com/okwama/bm-server/internal/notify"
)

type healthChecker interface {
	Health(ctx context.Context) error
}

// AdminHandler exposes the operational endpoints of the notification service.
type AdminHandler struct {
	bus       *notify.Bus
	cache     *notify.DashboardCache
	store     healthChecker
	logger    logx.Logger
	startedAt time.Time
	now       func() time.Time
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(logger logx.Logger, bus *notify.Bus, cache *notify.DashboardCache, store healthChecker) *AdminHandler {
	now := func() time.Time { return time.Now().UTC() }
	return &AdminHandler{
		bus:       bus,
		cache:     cache,
		store:     store,
		logger:    logger,
		startedAt: now(),
		now:       now,
	}
}

// RefreshDashboard handles POST /sse/refresh-dashboard. It forces an
// immediate recomputation of the caller's own dashboard.
func (h *AdminHandler) RefreshDashboard(w http.ResponseWriter, r *http.Request) {
	caller, ok := mw.CallerFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.cache.ForceRefresh(caller.ID); err != nil {
		h.logger.Warn("forced dashboard refresh degraded",
			logx.Int64("staff_id", caller.ID),
			logx.Err(err),
		)
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "refresh sent"})
}

type notifyRequest struct {
	StaffID   *int64 `json:"staffId,omitempty"`
	Message   string `json:"message"`
	Level     string `json:"level,omitempty"`
	Broadcast bool   `json:"broadcast,omitempty"`
}

// Notify handles POST /sse/notify. Admins push a system notification to one
// user or to everyone connected.
func (h *AdminHandler) Notify(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var body notifyRequest
	if ok := decodeJSON(h.logger, w, r, &body); !ok {
		return
	}
	if body.Message == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "message is required")
		return
	}
	if body.Level == "" {
		body.Level = "info"
	}

	ev := notify.SystemNotification(body.Message, body.Level, h.now())
	switch {
	case body.Broadcast:
		h.bus.Broadcast(ev)
		h.logger.Info("system notification broadcast", logx.Int64("by", caller.ID))
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "broadcast sent"})
	case body.StaffID != nil:
		sent := h.bus.Emit(*body.StaffID, ev)
		writeJSON(h.logger, w, r, http.StatusOK, map[string]any{"status": "sent", "connections": sent})
	default:
		writeError(h.logger, w, r, http.StatusBadRequest, "staffId or broadcast is required")
	}
}

// Stats handles GET /sse/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	writeJSON(h.logger, w, r, http.StatusOK, map[string]any{
		"connections": h.bus.Stats(),
		"cache":       h.cache.Stats(),
	})
}

type healthResponse struct {
	Status            string             `json:"status"`
	IsInitialized     bool               `json:"isInitialized"`
	ActiveConnections int                `json:"activeConnections"`
	Cache             notify.CacheStats  `json:"cache"`
	DataStore         string             `json:"dataStore"`
	Uptime            string             `json:"uptime"`
	Timestamp         time.Time          `json:"timestamp"`
}

// Health handles GET /sse/health.
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	resp := healthResponse{
		Status:            "ok",
		IsInitialized:     true,
		ActiveConnections: h.bus.Stats().TotalConnections,
		Cache:             h.cache.Stats(),
		DataStore:         "ok",
		Uptime:            h.now().Sub(h.startedAt).String(),
		Timestamp:         h.now(),
	}

	status := http.StatusOK
	if err := h.store.Health(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.DataStore = "unreachable"
		status = http.StatusServiceUnavailable
	}
	writeJSON(h.logger, w, r, status, resp)
}

// ClearCache handles POST /sse/clear-cache. With a staffId it clears one
// user's snapshot, without it the whole cache.
func (h *AdminHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var body struct {
		StaffID *int64 `json:"staffId,omitempty"`
	}
	if ok := decodeJSON(h.logger, w, r, &body); !ok {
		return
	}

	if body.StaffID != nil {
		h.cache.ClearUser(*body.StaffID)
	} else {
		h.cache.ClearAll()
	}
	h.logger.Info("dashboard cache cleared", logx.Int64("by", caller.ID))
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "cache cleared"})
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) (mw.Caller, bool) {
	caller, ok := mw.CallerFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "authentication required")
		return mw.Caller{}, false
	}
	if !caller.IsAdmin() {
		writeError(h.logger, w, r, http.StatusForbidden, "admin role required")
		return mw.Caller{}, false
	}
	return caller, true
}
