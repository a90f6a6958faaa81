package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCheckpoints struct {
	last     map[string]int64
	getErr   error
	advanced []int64
	// lost makes Advance report that another delivery moved the checkpoint first.
	lost bool
}

func (f *fakeCheckpoints) Last(ctx context.Context, consumer, partitionKey string) (int64, bool, error) {
	if f.getErr != nil {
		return 0, false, f.getErr
	}
	v, ok := f.last[partitionKey]
	return v, ok, nil
}

func (f *fakeCheckpoints) Advance(ctx context.Context, consumer, partitionKey string, seq int64) (bool, error) {
	f.advanced = append(f.advanced, seq)
	if f.lost {
		return false, nil
	}
	if f.last == nil {
		f.last = map[string]int64{}
	}
	if seq <= f.last[partitionKey] {
		return false, nil
	}
	f.last[partitionKey] = seq
	return true, nil
}

type fakeWatcher struct {
	watchFunc func(ctx context.Context, orderID string) error
	watched   []string
}

func (f *fakeWatcher) Watch(ctx context.Context, orderID string) error {
	f.watched = append(f.watched, orderID)
	if f.watchFunc != nil {
		return f.watchFunc(ctx, orderID)
	}
	return nil
}

func orderCreatedBody(t *testing.T, orderID string, seq int64) []byte {
	t.Helper()
	env := newEnvelope(EventTypeOrderCreated, 1, "evt-1", EventMeta{PartitionKey: orderID}, seq, "order-backend",
		OrderCreatedPayload{OrderID: orderID, Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	body, err := json.Marshal(env)
	require.NoError(t, err)
	return body
}

func discard() *log.Logger { return log.New(io.Discard, "", 0) }

func TestOrderCreatedHandler_WatchesAndAdvances(t *testing.T) {
	cp := &fakeCheckpoints{}
	w := &fakeWatcher{}
	handler := OrderCreatedHandler(cp, w, discard(), OrderCreatedConsumerName)

	require.NoError(t, handler(context.Background(), orderCreatedBody(t, "order-1", 1)))
	assert.Equal(t, []string{"order-1"}, w.watched)
	assert.Equal(t, []int64{1}, cp.advanced)
}

func TestOrderCreatedHandler_SkipsDuplicate(t *testing.T) {
	cp := &fakeCheckpoints{last: map[string]int64{"order-1": 3}}
	w := &fakeWatcher{}
	handler := OrderCreatedHandler(cp, w, discard(), OrderCreatedConsumerName)

	require.NoError(t, handler(context.Background(), orderCreatedBody(t, "order-1", 3)))
	assert.Empty(t, w.watched)
	assert.Empty(t, cp.advanced)
}

func TestOrderCreatedHandler_GapStillProcessed(t *testing.T) {
	cp := &fakeCheckpoints{last: map[string]int64{"order-1": 1}}
	w := &fakeWatcher{}
	handler := OrderCreatedHandler(cp, w, discard(), OrderCreatedConsumerName)

	require.NoError(t, handler(context.Background(), orderCreatedBody(t, "order-1", 5)))
	assert.Equal(t, []string{"order-1"}, w.watched)
	assert.Equal(t, int64(5), cp.last["order-1"])
}

func TestOrderCreatedHandler_LostAdvanceIsNotAnError(t *testing.T) {
	cp := &fakeCheckpoints{lost: true}
	w := &fakeWatcher{}
	handler := OrderCreatedHandler(cp, w, discard(), OrderCreatedConsumerName)

	require.NoError(t, handler(context.Background(), orderCreatedBody(t, "order-1", 2)))
	assert.Equal(t, []string{"order-1"}, w.watched)
	assert.Equal(t, []int64{2}, cp.advanced)
}

func TestOrderCreatedHandler_NoSequenceSkipsDedup(t *testing.T) {
	cp := &fakeCheckpoints{getErr: errors.New("must not be called")}
	w := &fakeWatcher{}
	handler := OrderCreatedHandler(cp, w, discard(), OrderCreatedConsumerName)

	require.NoError(t, handler(context.Background(), orderCreatedBody(t, "order-2", 0)))
	assert.Equal(t, []string{"order-2"}, w.watched)
	assert.Empty(t, cp.advanced)
}

func TestOrderCreatedHandler_WatchErrorDoesNotAdvance(t *testing.T) {
	cp := &fakeCheckpoints{}
	w := &fakeWatcher{watchFunc: func(ctx context.Context, orderID string) error {
		return errors.New("db down")
	}}
	handler := OrderCreatedHandler(cp, w, discard(), OrderCreatedConsumerName)

	require.Error(t, handler(context.Background(), orderCreatedBody(t, "order-1", 1)))
	assert.Empty(t, cp.advanced)
}

func TestOrderCreatedHandler_RejectsBadInput(t *testing.T) {
	handler := OrderCreatedHandler(&fakeCheckpoints{}, &fakeWatcher{}, discard(), OrderCreatedConsumerName)

	require.Error(t, handler(context.Background(), []byte(`not json`)))
	require.Error(t, handler(context.Background(), []byte(`{"eventName":"OrderCancelled","eventVersion":1,"partitionKey":"o"}`)))
	require.Error(t, handler(context.Background(), []byte(`{"eventName":"OrderCreated","eventVersion":1,"partitionKey":"o","payload":{}}`)))
}
