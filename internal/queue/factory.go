package queue

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// New builds the queue named by config.Driver. An empty name selects the
// in-process queue.
func New(config Config, logger *zap.Logger) (Queue, error) {
	driver := Driver(strings.ToLower(strings.TrimSpace(config.Driver)))

	switch driver {
	case "", DriverMemory:
		return NewMemoryQueue(config, logger), nil
	case DriverRedis:
		return NewRedisQueue(NewRedisClient(config.Redis), config, logger), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, config.Driver)
}
