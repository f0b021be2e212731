package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"github.com/okwama/bm-server/internal/service/assignments"
	testlog "github.com/okwama/bm-server/internal/testutil"
)

type fakeSession struct {
	ctx    context.Context
	marked []int64
}

func (s *fakeSession) Claims() map[string][]int32 { return nil }
func (s *fakeSession) MemberID() string           { return "test-member" }
func (s *fakeSession) GenerationID() int32        { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (s *fakeSession) Commit()                                  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}

func (s *fakeSession) Context() context.Context {
	if s.ctx != nil {
		return s.ctx
	}
	return context.Background()
}

type fakeClaim struct {
	msgs chan *sarama.ConsumerMessage
}

func newFakeClaim(values ...[]byte) *fakeClaim {
	ch := make(chan *sarama.ConsumerMessage, len(values))
	for i, v := range values {
		ch <- &sarama.ConsumerMessage{Topic: "assignments", Offset: int64(i), Value: v}
	}
	close(ch)
	return &fakeClaim{msgs: ch}
}

func (c *fakeClaim) Topic() string                               { return "assignments" }
func (c *fakeClaim) Partition() int32                            { return 0 }
func (c *fakeClaim) InitialOffset() int64                        { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64                  { return 0 }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage    { return c.msgs }

func newClaimHandler(h HandleFunc) *groupHandler {
	return &groupHandler{c: &Consumer{
		topic:   "assignments",
		handler: h,
		logger:  testlog.New().Logger(),
	}}
}

func TestConsumeClaim_DispatchesValidEvents(t *testing.T) {
	t.Parallel()

	var got []assignments.Event
	h := newClaimHandler(func(_ context.Context, ev assignments.Event) error {
		got = append(got, ev)
		return nil
	})

	sess := &fakeSession{}
	claim := newFakeClaim(
		[]byte(`{"request_id":11,"staff_id":3}`),
		[]byte(`{"request_id":12,"staff_id":4}`),
	)

	require.NoError(t, h.ConsumeClaim(sess, claim))
	require.Len(t, got, 2)
	require.Equal(t, int64(11), got[0].RequestID)
	require.Equal(t, []int64{0, 1}, sess.marked)
}

func TestConsumeClaim_SkipsBadPayloads(t *testing.T) {
	t.Parallel()

	calls := 0
	h := newClaimHandler(func(context.Context, assignments.Event) error {
		calls++
		return nil
	})

	sess := &fakeSession{}
	claim := newFakeClaim(
		[]byte(`{not json`),
		[]byte(`{"request_id":0,"staff_id":3}`),
		[]byte(`{"request_id":11,"staff_id":0}`),
		[]byte(`{"request_id":11,"staff_id":3}`),
	)

	require.NoError(t, h.ConsumeClaim(sess, claim))
	require.Equal(t, 1, calls, "only the well-formed event reaches the handler")
	require.Equal(t, []int64{0, 1, 2, 3}, sess.marked, "bad messages are marked, not retried")
}

func TestConsumeClaim_ReturnsHandlerErrorForRetry(t *testing.T) {
	t.Parallel()

	h := newClaimHandler(func(context.Context, assignments.Event) error {
		return errors.New("db down")
	})

	sess := &fakeSession{}
	claim := newFakeClaim([]byte(`{"request_id":11,"staff_id":3}`))

	err := h.ConsumeClaim(sess, claim)
	require.Error(t, err)
	require.Empty(t, sess.marked, "a retryable failure must leave the offset unmarked")
}

func TestConsumeClaim_MarksPermanentFailures(t *testing.T) {
	t.Parallel()

	h := newClaimHandler(func(context.Context, assignments.Event) error {
		return Permanent(errors.New("request gone"))
	})

	sess := &fakeSession{}
	claim := newFakeClaim([]byte(`{"request_id":11,"staff_id":3}`))

	require.NoError(t, h.ConsumeClaim(sess, claim))
	require.Equal(t, []int64{0}, sess.marked)
}

func TestNewConsumer_DisabledWithoutBrokers(t *testing.T) {
	t.Parallel()

	c, err := NewConsumer(nil, "bm-server", "assignments", nil, testlog.New().Logger())
	require.NoError(t, err)
	require.Nil(t, c)

	c, err = NewConsumer([]string{"localhost:9092"}, "", "assignments", nil, testlog.New().Logger())
	require.NoError(t, err)
	require.Nil(t, c)

	var nilC *Consumer
	require.NoError(t, nilC.Run(context.Background()))
	require.NoError(t, nilC.Close())
}
