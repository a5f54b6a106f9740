package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // postgres driver
	"go.uber.org/zap"
)

// PostgresProvider has the shape of a relational backend but stores nothing.
// Reads return empty results, Create echoes the input with a zero id and
// mutations report that nothing was found.
//
// When a DSN is configured a connection pool is opened and checked on Init,
// so the wiring can be verified before the backend is implemented.
type PostgresProvider struct {
	db *sql.DB

	logger *zap.Logger
}

func NewPostgresProvider(dsn string, logger *zap.Logger) (*PostgresProvider, error) {
	if dsn == "" {
		return NewPostgresProviderWithDB(nil, logger), nil
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	return NewPostgresProviderWithDB(db, logger), nil
}

func NewPostgresProviderWithDB(db *sql.DB, logger *zap.Logger) *PostgresProvider {
	return &PostgresProvider{
		db: db,

		logger: logger,
	}
}

// Init implements Initializer. Connection problems are reported but do not
// fail startup.
func (p *PostgresProvider) Init(ctx context.Context) error {
	p.logger.Warn("postgres provider is a stub, no data will be stored")

	if p.db == nil {
		return nil
	}

	if err := p.db.PingContext(ctx); err != nil {
		p.logger.Warn("postgres is unreachable", zap.Error(err))
	}

	return nil
}

// Close releases the connection pool.
func (p *PostgresProvider) Close() error {
	if p.db == nil {
		return nil
	}

	if err := p.db.Close(); err != nil {
		return fmt.Errorf("failed to close postgres: %w", err)
	}
	return nil
}

// FindAll implements Provider.
func (p *PostgresProvider) FindAll(_ context.Context, collection string) ([]Record, error) {
	p.logger.Debug("findAll", zap.String("collection", collection))
	return []Record{}, nil
}

// FindByID implements Provider.
func (p *PostgresProvider) FindByID(_ context.Context, collection string, id any) (Record, bool, error) {
	p.logger.Debug("findById", zap.String("collection", collection), zap.Any("id", id))
	return nil, false, nil
}

// Create implements Provider.
func (p *PostgresProvider) Create(_ context.Context, collection string, data Record) (Record, error) {
	p.logger.Debug("create", zap.String("collection", collection))

	record := data.Clone()
	if record == nil {
		record = Record{}
	}
	record[FieldID] = int64(0)

	return record, nil
}

// Update implements Provider.
func (p *PostgresProvider) Update(_ context.Context, collection string, id any, _ Record) (Record, bool, error) {
	p.logger.Debug("update", zap.String("collection", collection), zap.Any("id", id))
	return nil, false, nil
}

// Delete implements Provider.
func (p *PostgresProvider) Delete(_ context.Context, collection string, id any) (bool, error) {
	p.logger.Debug("delete", zap.String("collection", collection), zap.Any("id", id))
	return false, nil
}

var _ Provider = (*PostgresProvider)(nil)
var _ Initializer = (*PostgresProvider)(nil)
