package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type payload struct {
	N int `json:"n"`
}

func TestMemoryQueue_DeliversAll(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryQueue(Config{Workers: 3, Buffer: 4}, zaptest.NewLogger(t))

	var (
		mux  sync.Mutex
		seen = map[int]string{}
	)
	q.Subscribe(func(_ context.Context, msg Message) error {
		var p payload
		if err := msg.Decode(&p); err != nil {
			return err
		}

		mux.Lock()
		seen[p.N] = msg.ID
		mux.Unlock()

		if p.N%5 == 0 {
			return errors.New("handler errors are logged only")
		}
		return nil
	})
	require.NoError(t, q.Start(ctx))

	ids := map[string]struct{}{}
	for i := range 20 {
		id, err := q.Publish(ctx, payload{N: i})
		require.NoError(t, err)
		ids[id] = struct{}{}
	}
	assert.Len(t, ids, 20, "message ids are unique")

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, q.Stop(stopCtx))

	assert.Len(t, seen, 20, "queued messages are drained on stop")

	_, err := q.Publish(ctx, payload{N: 21})
	require.ErrorIs(t, err, ErrClosed)
	require.NoError(t, q.Stop(stopCtx), "stop is idempotent")
}

func TestMemoryQueue_RecoversPanics(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryQueue(Config{}, zaptest.NewLogger(t))

	calls := make(chan struct{}, 2)
	q.Subscribe(func(context.Context, Message) error {
		calls <- struct{}{}
		panic("boom")
	})
	require.NoError(t, q.Start(ctx))

	_, err := q.Publish(ctx, payload{N: 1})
	require.NoError(t, err)
	_, err = q.Publish(ctx, payload{N: 2})
	require.NoError(t, err)

	require.NoError(t, q.Stop(ctx))
	assert.Len(t, calls, 2)
}

func TestMemoryQueue_StopWithoutStart(t *testing.T) {
	q := NewMemoryQueue(Config{}, zaptest.NewLogger(t))
	require.NoError(t, q.Stop(context.Background()))
}

func TestNew(t *testing.T) {
	q, err := New(Config{}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.IsType(t, &MemoryQueue{}, q)

	q, err = New(Config{Driver: "Redis", Redis: RedisConfig{Address: "127.0.0.1:0"}}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.IsType(t, &RedisQueue{}, q)

	_, err = New(Config{Driver: "kafka"}, zaptest.NewLogger(t))
	require.ErrorIs(t, err, ErrUnknownDriver)
}
