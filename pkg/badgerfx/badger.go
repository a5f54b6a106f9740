package badgerfx

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// SeekEnd is appended to a prefix to position a reverse iterator on the last
// key of that prefix.
const SeekEnd = byte(0xFF)

// Open opens the database described by config, routing badger's own log
// output to logger.
func Open(config Config, logger *zap.Logger) (*badger.DB, error) {
	opts := config.Build().
		WithLogger(newLogger(logger.Named("badger"), config.infoLevel()))

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}

	return db, nil
}
