package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/okwama/bm-server/internal/domain"
)

func TestNotifier_RequestStatusChanged(t *testing.T) {
	t.Parallel()

	bus := newTestBus()
	sink := &fakeSink{}
	bus.Connect(3, sink, Meta{})

	cache := newTestCache(&fakeSource{}, &fakeEmitter{}, CacheConfig{})
	n := NewNotifier(bus, cache)

	req := &domain.Request{ID: 11, StaffID: 3}
	require.NoError(t, n.RequestStatusChanged(3, 11, domain.StatusPending, domain.StatusInProgress, req))

	require.Equal(t, []string{EventConnected, EventStatusChanged}, sink.types())
	data, ok := sink.events[1].Data.(StatusChangedData)
	require.True(t, ok)
	require.Equal(t, int64(11), data.RequestID)
	require.Equal(t, domain.StatusPending, data.OldStatus)
	require.Equal(t, domain.StatusInProgress, data.NewStatus)
}

func TestNotifier_NewAssignmentSchedulesDebouncedRefresh(t *testing.T) {
	t.Parallel()

	bus := newTestBus()
	sink := &fakeSink{}
	bus.Connect(3, sink, Meta{})

	cache := newTestCache(&fakeSource{}, &fakeEmitter{}, CacheConfig{Debounce: time.Hour})
	n := NewNotifier(bus, cache)

	require.NoError(t, n.NewAssignment(3, &domain.Request{ID: 11, StaffID: 3}))

	require.Contains(t, sink.types(), EventNewAssignment)
	require.Equal(t, 1, cache.Stats().PendingUpdates)
}

func TestNotifier_NoStreamsIsANoOp(t *testing.T) {
	t.Parallel()

	n := NewNotifier(newTestBus(), newTestCache(&fakeSource{}, &fakeEmitter{}, CacheConfig{Debounce: time.Hour}))
	require.NoError(t, n.RequestStatusChanged(99, 1, domain.StatusPending, domain.StatusInProgress, nil))
}
