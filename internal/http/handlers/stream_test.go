package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	mw "github.com/okwama/bm-server/internal/http/middleware"
	"github.com/okwama/bm-server/internal/notify"
	testlog "github.com/okwama/bm-server/internal/testutil"
)

func TestSSESink_WritesDataFrames(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	sink := &sseSink{w: rr, flusher: rr}

	require.NoError(t, sink.Send(notify.Heartbeat(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))))

	body := rr.Body.String()
	require.Contains(t, body, "data: ")
	require.Contains(t, body, `"type":"heartbeat"`)
	require.True(t, rr.Flushed)

	require.NoError(t, sink.Close())
	require.Error(t, sink.Send(notify.Heartbeat(time.Now())), "writes after close must fail")
	require.NoError(t, sink.Close(), "close is idempotent")
}

func newStreamHandler(source notify.CounterSource) (*StreamHandler, *notify.Bus) {
	logger := testlog.New().Logger()
	bus := notify.NewBus(5*time.Minute, 30*time.Second, logger)
	cache := notify.NewDashboardCache(source, bus, notify.CacheConfig{}, logger)
	return NewStreamHandler(logger, bus, cache, 30*time.Second), bus
}

func TestConnect_RequiresIdentity(t *testing.T) {
	t.Parallel()

	h, _ := newStreamHandler(&stubCounterSource{})

	rr := httptest.NewRecorder()
	h.Connect(rr, httptest.NewRequest(http.MethodGet, "/sse/connect", nil))

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

// plainWriter hides the recorder's Flush method.
type plainWriter struct {
	http.ResponseWriter
}

// withIdentity runs the request through the identity middleware and returns it
// with the caller stored in its context.
func withIdentity(t *testing.T, r *http.Request) *http.Request {
	t.Helper()
	var out *http.Request
	h := mw.Identity(mw.HeaderAuthenticator{})(http.HandlerFunc(func(_ http.ResponseWriter, req *http.Request) {
		out = req
	}))
	h.ServeHTTP(httptest.NewRecorder(), r)
	require.NotNil(t, out)
	return out
}

func TestConnect_RejectsNonStreamingWriter(t *testing.T) {
	t.Parallel()

	h, _ := newStreamHandler(&stubCounterSource{})

	r := withIdentity(t, asStaff(httptest.NewRequest(http.MethodGet, "/sse/connect", nil), 3, "J. Doe"))
	rr := httptest.NewRecorder()

	h.Connect(plainWriter{rr}, r)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestConnect_StreamsInitialEvents(t *testing.T) {
	t.Parallel()

	h, bus := newStreamHandler(&stubCounterSource{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := withIdentity(t, asStaff(httptest.NewRequest(http.MethodGet, "/sse/connect", nil).WithContext(ctx), 3, "J. Doe"))

	rr := httptest.NewRecorder()
	h.Connect(rr, r)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	require.Equal(t, "no", rr.Header().Get("X-Accel-Buffering"))

	body := rr.Body.String()
	require.Contains(t, body, `"type":"connected"`)
	require.Contains(t, body, `"type":"dashboard_update"`)

	// The canceled context tore the stream down and unregistered the sink.
	require.Zero(t, bus.Stats().TotalConnections)
}
