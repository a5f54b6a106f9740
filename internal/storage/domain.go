package storage

import (
	"context"
)

// Driver names a storage backend implementation.
type Driver string

const (
	DriverJSON     Driver = "json"
	DriverMemory   Driver = "memory"
	DriverBadger   Driver = "badger"
	DriverPostgres Driver = "postgres"
	DriverMySQL    Driver = "mysql"
	DriverSQLite   Driver = "sqlite"
)

// Provider is the uniform CRUD contract over named collections of records.
//
// Collections are created implicitly on first write. Identity lookups compare
// ids in their normalized string form, so numeric and string ids match.
// Absence is reported through the boolean results, never as an error.
type Provider interface {
	// FindAll returns all records of a collection, or an empty list if the
	// collection has never been written to.
	FindAll(ctx context.Context, collection string) ([]Record, error)

	// FindByID returns the record with the given id.
	FindByID(ctx context.Context, collection string, id any) (Record, bool, error)

	// Create assigns the next id of the collection, stores the record and
	// returns it including the assigned id.
	Create(ctx context.Context, collection string, data Record) (Record, error)

	// Update shallow-merges fields onto the record with the given id.
	Update(ctx context.Context, collection string, id any, fields Record) (Record, bool, error)

	// Delete removes the first record with the given id.
	Delete(ctx context.Context, collection string, id any) (bool, error)
}

// Initializer is implemented by providers that load state when the
// application starts.
type Initializer interface {
	Init(ctx context.Context) error
}

// Transactor is implemented by providers able to run several operations as
// one atomic unit.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
