package queue

const (
	DefaultWorkers = 2
	DefaultBuffer  = 100
	DefaultKey     = "memberships:export:v1"
)

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type Config struct {
	// memory or redis
	Driver string
	// Number of messages processed concurrently
	Workers int
	// Capacity of the in-process queue
	Buffer int
	// Redis list holding pending messages
	Key   string
	Redis RedisConfig
}

func (c Config) workers() int {
	if c.Workers < 1 {
		return DefaultWorkers
	}
	return c.Workers
}

func (c Config) buffer() int {
	if c.Buffer < 1 {
		return DefaultBuffer
	}
	return c.Buffer
}

func (c Config) key() string {
	if c.Key == "" {
		return DefaultKey
	}
	return c.Key
}
