package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	mw "github.com/okwama/bm-server/internal/http/middleware"
	"github.com/okwama/bm-server/internal/logx"
	"github.com/okwama/bm-server/internal/notify"
)

// StreamHandler serves the per-user server-sent event streams.
type StreamHandler struct {
	bus       *notify.Bus
	cache     *notify.DashboardCache
	heartbeat time.Duration
	logger    logx.Logger
}

// NewStreamHandler creates a StreamHandler.
func NewStreamHandler(logger logx.Logger, bus *notify.Bus, cache *notify.DashboardCache, heartbeat time.Duration) *StreamHandler {
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	return &StreamHandler{bus: bus, cache: cache, heartbeat: heartbeat, logger: logger}
}

// sseSink writes events to one open response stream. Send is safe for
// concurrent use; writes after Close fail.
type sseSink struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	closed  bool
}

func (s *sseSink) Send(ev notify.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("stream closed")
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func (s *sseSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Connect handles GET /sse/connect. The stream stays open until the client
// disconnects or the sink is swept as stale.
func (h *StreamHandler) Connect(w http.ResponseWriter, r *http.Request) {
	caller, ok := mw.CallerFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(h.logger, w, r, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sink := &sseSink{w: w, flusher: flusher}
	total := h.bus.Connect(caller.ID, sink, notify.Meta{Name: caller.Name, Role: caller.Role})
	h.logger.Info("sse stream opened",
		logx.Int64("staff_id", caller.ID),
		logx.Int("connections", total),
	)

	defer func() {
		h.bus.Disconnect(caller.ID, sink)
		h.logger.Info("sse stream closed", logx.Int64("staff_id", caller.ID))
	}()

	// initial dashboard send, not debounced
	if err := h.cache.SendNow(r.Context(), caller.ID); err != nil {
		h.logger.Warn("initial dashboard send failed",
			logx.Int64("staff_id", caller.ID),
			logx.Err(err),
		)
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := sink.Send(notify.Heartbeat(time.Now().UTC())); err != nil {
				return
			}
		}
	}
}
