package storage

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// MemoryProvider keeps all collections in process memory. Nothing survives a
// restart.
type MemoryProvider struct {
	mux  sync.RWMutex
	docs documents

	logger *zap.Logger
}

func NewMemoryProvider(logger *zap.Logger) *MemoryProvider {
	return &MemoryProvider{
		mux:  sync.RWMutex{},
		docs: documents{},

		logger: logger,
	}
}

// FindAll implements Provider.
func (p *MemoryProvider) FindAll(_ context.Context, collection string) ([]Record, error) {
	p.mux.RLock()
	defer p.mux.RUnlock()

	p.logger.Debug("findAll", zap.String("collection", collection))
	return p.docs.findAll(collection), nil
}

// FindByID implements Provider.
func (p *MemoryProvider) FindByID(_ context.Context, collection string, id any) (Record, bool, error) {
	p.mux.RLock()
	defer p.mux.RUnlock()

	p.logger.Debug("findById", zap.String("collection", collection), zap.Any("id", id))
	record, ok := p.docs.findByID(collection, id)
	return record, ok, nil
}

// Create implements Provider.
func (p *MemoryProvider) Create(_ context.Context, collection string, data Record) (Record, error) {
	p.mux.Lock()
	defer p.mux.Unlock()

	record := p.docs.create(collection, data)
	p.logger.Debug("record created", zap.String("collection", collection), zap.Any("id", record.ID()))

	return record, nil
}

// Update implements Provider.
func (p *MemoryProvider) Update(_ context.Context, collection string, id any, fields Record) (Record, bool, error) {
	p.mux.Lock()
	defer p.mux.Unlock()

	p.logger.Debug("update", zap.String("collection", collection), zap.Any("id", id))
	record, ok := p.docs.update(collection, id, fields)
	return record, ok, nil
}

// Delete implements Provider.
func (p *MemoryProvider) Delete(_ context.Context, collection string, id any) (bool, error) {
	p.mux.Lock()
	defer p.mux.Unlock()

	p.logger.Debug("delete", zap.String("collection", collection), zap.Any("id", id))
	return p.docs.delete(collection, id), nil
}

var _ Provider = (*MemoryProvider)(nil)
