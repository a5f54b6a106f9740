package queue

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// MemoryQueue delivers messages inside the process. Pending messages are lost
// on restart.
type MemoryQueue struct {
	messages chan Message
	workers  int
	handler  Handler

	mux     sync.RWMutex
	started bool
	closed  bool
	done    chan struct{}

	logger *zap.Logger
}

func NewMemoryQueue(config Config, logger *zap.Logger) *MemoryQueue {
	return &MemoryQueue{
		messages: make(chan Message, config.buffer()),
		workers:  config.workers(),
		handler:  nil,

		mux:     sync.RWMutex{},
		started: false,
		closed:  false,
		done:    make(chan struct{}),

		logger: logger,
	}
}

// Subscribe implements Queue.
func (q *MemoryQueue) Subscribe(handler Handler) {
	q.mux.Lock()
	defer q.mux.Unlock()

	q.handler = handler
}

// Publish implements Publisher. It blocks while the buffer is full.
func (q *MemoryQueue) Publish(ctx context.Context, payload any) (string, error) {
	msg, err := newMessage(payload)
	if err != nil {
		return "", err
	}

	q.mux.RLock()
	defer q.mux.RUnlock()

	if q.closed {
		return "", ErrClosed
	}

	select {
	case q.messages <- msg:
	case <-ctx.Done():
		return "", ctx.Err() //nolint:wrapcheck //context error
	}

	return msg.ID, nil
}

// Start implements Queue.
func (q *MemoryQueue) Start(_ context.Context) error {
	q.mux.Lock()
	defer q.mux.Unlock()

	if q.started || q.closed {
		return nil
	}
	q.started = true

	go q.run(q.handler)

	return nil
}

// Stop implements Queue. Messages already queued are processed before it
// returns, unless ctx is done first.
func (q *MemoryQueue) Stop(ctx context.Context) error {
	q.mux.Lock()
	if q.closed {
		q.mux.Unlock()
		return nil
	}
	q.closed = true
	close(q.messages)
	started := q.started
	q.mux.Unlock()

	if !started {
		return nil
	}

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck //context error
	}
}

func (q *MemoryQueue) run(handler Handler) {
	defer close(q.done)

	p := pool.New().WithMaxGoroutines(q.workers)
	for msg := range q.messages {
		p.Go(func() {
			dispatch(context.Background(), handler, msg, q.logger)
		})
	}
	p.Wait()
}

var _ Queue = (*MemoryQueue)(nil)
