package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

const (
	jsonDirPerm  = 0o755
	jsonFilePerm = 0o644
)

// JSONProvider mirrors all collections to a single JSON document on disk.
//
// The document is loaded once, on Init or on the first operation, and fully
// rewritten after every mutation. Mutations are serialized by one lock per
// instance. When a rewrite fails the error is returned, but the in-memory
// state already holds the mutation.
type JSONProvider struct {
	path string

	mux    sync.RWMutex
	docs   documents
	loaded bool

	logger *zap.Logger
}

func NewJSONProvider(path string, logger *zap.Logger) *JSONProvider {
	return &JSONProvider{
		path: path,

		mux:    sync.RWMutex{},
		docs:   documents{},
		loaded: false,

		logger: logger,
	}
}

// Init implements Initializer.
func (p *JSONProvider) Init(_ context.Context) error {
	p.mux.Lock()
	defer p.mux.Unlock()

	return p.ensureLoaded()
}

// FindAll implements Provider.
func (p *JSONProvider) FindAll(_ context.Context, collection string) ([]Record, error) {
	if err := p.readLock(); err != nil {
		return nil, err
	}
	defer p.mux.RUnlock()

	p.logger.Debug("findAll", zap.String("collection", collection))
	return p.docs.findAll(collection), nil
}

// FindByID implements Provider.
func (p *JSONProvider) FindByID(_ context.Context, collection string, id any) (Record, bool, error) {
	if err := p.readLock(); err != nil {
		return nil, false, err
	}
	defer p.mux.RUnlock()

	p.logger.Debug("findById", zap.String("collection", collection), zap.Any("id", id))
	record, ok := p.docs.findByID(collection, id)
	return record, ok, nil
}

// Create implements Provider.
func (p *JSONProvider) Create(_ context.Context, collection string, data Record) (Record, error) {
	normalized, err := normalizeRecord(data)
	if err != nil {
		return nil, err
	}

	p.mux.Lock()
	defer p.mux.Unlock()

	if loadErr := p.ensureLoaded(); loadErr != nil {
		return nil, loadErr
	}

	record := p.docs.create(collection, normalized)
	// keep the id in the same shape a reload produces
	record[FieldID] = json.Number(NormalizeID(record.ID()))
	p.docs[collection][len(p.docs[collection])-1] = record.Clone()

	p.logger.Debug("record created", zap.String("collection", collection), zap.Any("id", record.ID()))

	return record, p.persist()
}

// Update implements Provider.
func (p *JSONProvider) Update(_ context.Context, collection string, id any, fields Record) (Record, bool, error) {
	normalized, err := normalizeRecord(fields)
	if err != nil {
		return nil, false, err
	}

	p.mux.Lock()
	defer p.mux.Unlock()

	if loadErr := p.ensureLoaded(); loadErr != nil {
		return nil, false, loadErr
	}

	p.logger.Debug("update", zap.String("collection", collection), zap.Any("id", id))
	record, ok := p.docs.update(collection, id, normalized)
	if !ok {
		return nil, false, nil
	}

	return record, true, p.persist()
}

// Delete implements Provider.
func (p *JSONProvider) Delete(_ context.Context, collection string, id any) (bool, error) {
	p.mux.Lock()
	defer p.mux.Unlock()

	if err := p.ensureLoaded(); err != nil {
		return false, err
	}

	p.logger.Debug("delete", zap.String("collection", collection), zap.Any("id", id))
	if !p.docs.delete(collection, id) {
		return false, nil
	}

	return true, p.persist()
}

// readLock takes the read lock with the document loaded. On success the
// caller must release it.
func (p *JSONProvider) readLock() error {
	p.mux.RLock()
	if p.loaded {
		return nil
	}
	p.mux.RUnlock()

	p.mux.Lock()
	err := p.ensureLoaded()
	p.mux.Unlock()
	if err != nil {
		return err
	}

	p.mux.RLock()
	return nil
}

// ensureLoaded must be called with the write lock held.
func (p *JSONProvider) ensureLoaded() error {
	if p.loaded {
		return nil
	}
	p.loaded = true

	data, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		p.logger.Warn("data file not found, creating empty store", zap.String("path", p.path))
		p.docs = documents{}
		return p.persist()
	}
	if err != nil {
		p.logger.Error("failed to read data file, starting with empty store", zap.String("path", p.path), zap.Error(err))
		p.docs = documents{}
		return nil
	}

	docs := documents{}
	if decodeErr := decodeJSON(data, &docs); decodeErr != nil {
		p.logger.Error("failed to parse data file, starting with empty store", zap.String("path", p.path), zap.Error(decodeErr))
		p.docs = documents{}
		return nil
	}

	p.docs = docs
	p.logger.Info("data file loaded", zap.String("path", p.path), zap.Int("collections", len(docs)))

	return nil
}

// persist must be called with the write lock held.
func (p *JSONProvider) persist() error {
	if err := os.MkdirAll(filepath.Dir(p.path), jsonDirPerm); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(p.docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode data file: %w", err)
	}

	if writeErr := os.WriteFile(p.path, data, jsonFilePerm); writeErr != nil {
		return fmt.Errorf("failed to write data file: %w", writeErr)
	}

	return nil
}

// normalizeRecord converts a record into the form it takes after being
// written to and read back from a JSON document.
func normalizeRecord(data Record) (Record, error) {
	if data == nil {
		return Record{}, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	record := Record{}
	if decodeErr := decodeJSON(raw, &record); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode record: %w", decodeErr)
	}

	return record, nil
}

func decodeJSON(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	return decoder.Decode(v) //nolint:wrapcheck //wrapped by callers
}

var _ Provider = (*JSONProvider)(nil)
var _ Initializer = (*JSONProvider)(nil)
