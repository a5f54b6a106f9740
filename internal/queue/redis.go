package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

const (
	redisPingTimeout = 5 * time.Second
	redisPopTimeout  = time.Second
	redisRetryDelay  = time.Second
)

func NewRedisClient(config RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         config.Address,
		Password:     config.Password,
		DB:           config.DB,
		MaxRetries:   3,               //nolint:mnd //defaults
		DialTimeout:  5 * time.Second, //nolint:mnd //defaults
		WriteTimeout: 3 * time.Second, //nolint:mnd //defaults
	})
}

// RedisQueue keeps pending messages in a redis list. Producers push on the
// left, workers block-pop from the right.
type RedisQueue struct {
	client  *redis.Client
	key     string
	workers int
	handler Handler

	mux    sync.Mutex
	cancel context.CancelFunc
	pool   *pool.Pool

	logger *zap.Logger
}

func NewRedisQueue(client *redis.Client, config Config, logger *zap.Logger) *RedisQueue {
	return &RedisQueue{
		client:  client,
		key:     config.key(),
		workers: config.workers(),
		handler: nil,

		mux:    sync.Mutex{},
		cancel: nil,
		pool:   nil,

		logger: logger,
	}
}

// Subscribe implements Queue.
func (q *RedisQueue) Subscribe(handler Handler) {
	q.mux.Lock()
	defer q.mux.Unlock()

	q.handler = handler
}

// Publish implements Publisher.
func (q *RedisQueue) Publish(ctx context.Context, payload any) (string, error) {
	msg, err := newMessage(payload)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to encode message: %w", err)
	}

	if pushErr := q.client.LPush(ctx, q.key, data).Err(); pushErr != nil {
		return "", fmt.Errorf("failed to publish message: %w", pushErr)
	}

	return msg.ID, nil
}

// Start implements Queue.
func (q *RedisQueue) Start(ctx context.Context) error {
	q.mux.Lock()
	defer q.mux.Unlock()

	if q.cancel != nil {
		return nil
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, redisPingTimeout)
	defer pingCancel()

	if err := q.client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	q.cancel = cancel
	q.pool = pool.New().WithMaxGoroutines(q.workers)

	handler := q.handler
	for range q.workers {
		q.pool.Go(func() {
			q.consume(runCtx, handler)
		})
	}

	q.logger.Info("redis queue started", zap.String("key", q.key), zap.Int("workers", q.workers))

	return nil
}

// Stop implements Queue. Workers finish their current message.
func (q *RedisQueue) Stop(ctx context.Context) error {
	q.mux.Lock()
	cancel, p := q.cancel, q.pool
	q.mux.Unlock()

	if cancel != nil {
		cancel()

		done := make(chan struct{})
		go func() {
			p.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err() //nolint:wrapcheck //context error
		}
	}

	if err := q.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}

func (q *RedisQueue) consume(ctx context.Context, handler Handler) {
	for ctx.Err() == nil {
		values, err := q.client.BRPop(ctx, redisPopTimeout, q.key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}

			q.logger.Error("failed to pop message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(redisRetryDelay):
			}
			continue
		}

		// values holds the key followed by the popped element
		var msg Message
		if decodeErr := json.Unmarshal([]byte(values[1]), &msg); decodeErr != nil {
			q.logger.Error("failed to decode message", zap.Error(decodeErr))
			continue
		}

		dispatch(context.WithoutCancel(ctx), handler, msg, q.logger)
	}
}

var _ Queue = (*RedisQueue)(nil)
