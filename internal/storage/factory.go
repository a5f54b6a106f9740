package storage

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ParseDriver normalizes a configured backend name. An empty name selects
// the JSON file backend.
func ParseDriver(name string) (Driver, error) {
	driver := Driver(strings.ToLower(strings.TrimSpace(name)))
	if driver == "" {
		return DriverJSON, nil
	}

	switch driver {
	case DriverJSON, DriverMemory, DriverBadger, DriverPostgres:
		return driver, nil
	case DriverMySQL, DriverSQLite:
		return driver, fmt.Errorf("%w: %s", ErrDriverNotImplemented, name)
	}

	return driver, fmt.Errorf("%w: %s", ErrUnknownDriver, name)
}

// Select builds the provider named by config.Driver.
func Select(config Config, logger *zap.Logger) (Provider, error) {
	driver, err := ParseDriver(config.Driver)
	if err != nil {
		return nil, err
	}

	logger.Info("selecting storage provider", zap.String("driver", string(driver)))

	switch driver {
	case DriverMemory:
		return NewMemoryProvider(logger), nil
	case DriverBadger:
		provider, openErr := OpenBadgerProvider(config.Badger, logger)
		if openErr != nil {
			return nil, openErr
		}
		return provider, nil
	case DriverPostgres:
		provider, openErr := NewPostgresProvider(config.PostgresDSN, logger)
		if openErr != nil {
			return nil, openErr
		}
		return provider, nil
	case DriverJSON, DriverMySQL, DriverSQLite:
	}

	path := config.JSONPath
	if path == "" {
		path = DefaultJSONPath
	}

	return NewJSONProvider(path, logger), nil
}
