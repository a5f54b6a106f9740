package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/apiarycd/memberships/pkg/badgerfx"
	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const badgerKeySeparator = ":"

// BadgerProvider stores each record as a JSON value under the key
// "<collection>:<zero padded id>", so keys of one collection sort by id.
type BadgerProvider struct {
	db      *badger.DB
	records *badgerfx.Repository[Record]

	mux sync.Mutex

	logger *zap.Logger
}

func NewBadgerProvider(db *badger.DB, logger *zap.Logger) *BadgerProvider {
	return &BadgerProvider{
		db: db,
		records: badgerfx.NewRepository(badgerfx.Codec[Record]{
			Marshal: func(r Record) ([]byte, error) {
				return json.Marshal(r) //nolint:wrapcheck //wrapped by repository
			},
			Unmarshal: func(data []byte) (Record, error) {
				record := Record{}
				err := decodeJSON(data, &record)
				return record, err
			},
		}),

		mux: sync.Mutex{},

		logger: logger,
	}
}

// OpenBadgerProvider opens the database described by config and returns a
// provider owning it.
func OpenBadgerProvider(config badgerfx.Config, logger *zap.Logger) (*BadgerProvider, error) {
	db, err := badgerfx.Open(config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger provider: %w", err)
	}

	return NewBadgerProvider(db, logger), nil
}

// Close releases the database.
func (p *BadgerProvider) Close() error {
	if err := p.db.Close(); err != nil {
		return fmt.Errorf("failed to close BadgerDB: %w", err)
	}
	return nil
}

// FindAll implements Provider.
func (p *BadgerProvider) FindAll(_ context.Context, collection string) ([]Record, error) {
	p.logger.Debug("findAll", zap.String("collection", collection))

	var records []Record
	err := p.db.View(func(txn *badger.Txn) error {
		var listErr error
		records, listErr = p.records.List(txn, p.prefix(collection), badger.DefaultIteratorOptions)
		return listErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}

	return records, nil
}

// FindByID implements Provider.
func (p *BadgerProvider) FindByID(_ context.Context, collection string, id any) (Record, bool, error) {
	p.logger.Debug("findById", zap.String("collection", collection), zap.Any("id", id))

	key, ok := p.key(collection, id)
	if !ok {
		return nil, false, nil
	}

	var (
		record Record
		found  bool
	)
	err := p.db.View(func(txn *badger.Txn) error {
		var readErr error
		record, found, readErr = p.records.Read(txn, key)
		return readErr
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", collection, err)
	}

	return record, found, nil
}

// Create implements Provider.
func (p *BadgerProvider) Create(_ context.Context, collection string, data Record) (Record, error) {
	p.mux.Lock()
	defer p.mux.Unlock()

	var created Record
	err := p.db.Update(func(txn *badger.Txn) error {
		id := int64(1)
		if last, ok := p.records.LastKey(txn, p.prefix(collection)); ok {
			n, parseErr := strconv.ParseInt(strings.TrimPrefix(last, p.prefix(collection)), 10, 64)
			if parseErr != nil {
				return fmt.Errorf("malformed key %q: %w", last, parseErr)
			}
			id = n + 1
		}

		record := data.Clone()
		if record == nil {
			record = Record{}
		}
		record[FieldID] = id

		key, _ := p.key(collection, id)
		if writeErr := p.records.Write(txn, key, record); writeErr != nil {
			return writeErr
		}

		var readErr error
		created, _, readErr = p.records.Read(txn, key)
		return readErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", collection, err)
	}

	p.logger.Debug("record created", zap.String("collection", collection), zap.Any("id", created.ID()))

	return created, nil
}

// Update implements Provider.
func (p *BadgerProvider) Update(_ context.Context, collection string, id any, fields Record) (Record, bool, error) {
	p.logger.Debug("update", zap.String("collection", collection), zap.Any("id", id))

	key, ok := p.key(collection, id)
	if !ok {
		return nil, false, nil
	}

	p.mux.Lock()
	defer p.mux.Unlock()

	var (
		updated Record
		found   bool
	)
	err := p.db.Update(func(txn *badger.Txn) error {
		current, exists, readErr := p.records.Read(txn, key)
		if readErr != nil || !exists {
			return readErr
		}

		if writeErr := p.records.Write(txn, key, current.Merge(fields)); writeErr != nil {
			return writeErr
		}

		updated, found, readErr = p.records.Read(txn, key)
		return readErr
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to update %s: %w", collection, err)
	}

	return updated, found, nil
}

// Delete implements Provider.
func (p *BadgerProvider) Delete(_ context.Context, collection string, id any) (bool, error) {
	p.logger.Debug("delete", zap.String("collection", collection), zap.Any("id", id))

	key, ok := p.key(collection, id)
	if !ok {
		return false, nil
	}

	p.mux.Lock()
	defer p.mux.Unlock()

	var deleted bool
	err := p.db.Update(func(txn *badger.Txn) error {
		var delErr error
		deleted, delErr = p.records.Delete(txn, key)
		return delErr
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", collection, err)
	}

	return deleted, nil
}

func (p *BadgerProvider) prefix(collection string) string {
	return collection + badgerKeySeparator
}

// key returns the storage key of a record. Only non-negative integer ids can
// address a record.
func (p *BadgerProvider) key(collection string, id any) (string, bool) {
	n, ok := numericID(id)
	if !ok || n < 0 {
		return "", false
	}

	return fmt.Sprintf("%s%020d", p.prefix(collection), n), true
}

var _ Provider = (*BadgerProvider)(nil)
