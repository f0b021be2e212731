package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// ActiveConnections tracks currently registered streaming channels.
	ActiveConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sse_active_connections",
		Help: "Number of currently registered SSE channels",
	})

	// EventsSentTotal counts events delivered to channels, by event type.
	EventsSentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sse_events_sent_total",
		Help: "Total number of events delivered to SSE channels",
	}, []string{"type"})

	// DashboardRefreshTotal counts dashboard recomputations by outcome.
	DashboardRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_refresh_total",
		Help: "Total number of dashboard refreshes by outcome",
	}, []string{"result"})

	// StaleSweptTotal counts user registrations removed by the stale sweep.
	StaleSweptTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sse_stale_connections_swept_total",
		Help: "Total number of user registrations removed as stale",
	})
)

func init() {
	prometheus.MustRegister(ActiveConnections, EventsSentTotal, DashboardRefreshTotal, StaleSweptTotal)
}
