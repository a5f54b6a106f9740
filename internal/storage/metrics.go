package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOK       = "ok"
	resultNotFound = "not_found"
	resultError    = "error"
)

type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storage_operations_total",
				Help: "Total number of storage operations",
			},
			[]string{"driver", "operation", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storage_operation_duration_seconds",
				Help:    "Storage operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"driver", "operation"},
		),
	}

	for _, c := range []prometheus.Collector{m.operations, m.duration} {
		if err := registerer.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register storage metrics: %w", err)
		}
	}

	return m, nil
}

func (m *Metrics) observe(driver Driver, operation string, started time.Time, found bool, err error) {
	result := resultOK
	switch {
	case err != nil:
		result = resultError
	case !found:
		result = resultNotFound
	}

	m.operations.WithLabelValues(string(driver), operation, result).Inc()
	m.duration.WithLabelValues(string(driver), operation).Observe(time.Since(started).Seconds())
}

// InstrumentedProvider records operation counts and latencies of the wrapped
// provider.
type InstrumentedProvider struct {
	next    Provider
	driver  Driver
	metrics *Metrics
}

func NewInstrumentedProvider(next Provider, driver Driver, metrics *Metrics) *InstrumentedProvider {
	return &InstrumentedProvider{
		next:    next,
		driver:  driver,
		metrics: metrics,
	}
}

// Unwrap returns the wrapped provider.
func (p *InstrumentedProvider) Unwrap() Provider {
	return p.next
}

// Init implements Initializer.
func (p *InstrumentedProvider) Init(ctx context.Context) error {
	if i, ok := p.next.(Initializer); ok {
		return i.Init(ctx) //nolint:wrapcheck //decorator
	}
	return nil
}

// Close implements io.Closer.
func (p *InstrumentedProvider) Close() error {
	if c, ok := p.next.(io.Closer); ok {
		return c.Close() //nolint:wrapcheck //decorator
	}
	return nil
}

// FindAll implements Provider.
func (p *InstrumentedProvider) FindAll(ctx context.Context, collection string) ([]Record, error) {
	started := time.Now()
	records, err := p.next.FindAll(ctx, collection)
	p.metrics.observe(p.driver, "find_all", started, true, err)

	return records, err //nolint:wrapcheck //decorator
}

// FindByID implements Provider.
func (p *InstrumentedProvider) FindByID(ctx context.Context, collection string, id any) (Record, bool, error) {
	started := time.Now()
	record, found, err := p.next.FindByID(ctx, collection, id)
	p.metrics.observe(p.driver, "find_by_id", started, found, err)

	return record, found, err //nolint:wrapcheck //decorator
}

// Create implements Provider.
func (p *InstrumentedProvider) Create(ctx context.Context, collection string, data Record) (Record, error) {
	started := time.Now()
	record, err := p.next.Create(ctx, collection, data)
	p.metrics.observe(p.driver, "create", started, true, err)

	return record, err //nolint:wrapcheck //decorator
}

// Update implements Provider.
func (p *InstrumentedProvider) Update(ctx context.Context, collection string, id any, fields Record) (Record, bool, error) {
	started := time.Now()
	record, found, err := p.next.Update(ctx, collection, id, fields)
	p.metrics.observe(p.driver, "update", started, found, err)

	return record, found, err //nolint:wrapcheck //decorator
}

// Delete implements Provider.
func (p *InstrumentedProvider) Delete(ctx context.Context, collection string, id any) (bool, error) {
	started := time.Now()
	deleted, err := p.next.Delete(ctx, collection, id)
	p.metrics.observe(p.driver, "delete", started, deleted, err)

	return deleted, err //nolint:wrapcheck //decorator
}

var _ Provider = (*InstrumentedProvider)(nil)
var _ Initializer = (*InstrumentedProvider)(nil)
var _ io.Closer = (*InstrumentedProvider)(nil)
