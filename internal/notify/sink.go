package notify

// Sink is one live output channel of a connected client. Implementations are
// transport-specific; the bus only needs delivery and teardown.
type Sink interface {
	// Send pushes one event. A returned error marks the sink dead: the bus
	// removes and closes it, and keeps delivering to the user's other sinks.
	Send(ev Event) error
	// Close force-terminates the sink. Safe to call more than once.
	Close() error
}
