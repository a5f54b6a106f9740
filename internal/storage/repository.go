package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Repository is a typed view of one collection of a Provider. Values are
// converted to records through their JSON representation, so T controls the
// stored field names with json tags.
type Repository[T any] struct {
	collection string
	provider   Provider
}

func NewRepository[T any](collection string, provider Provider) (*Repository[T], error) {
	if collection == "" {
		return nil, ErrMissingCollection
	}
	if provider == nil {
		return nil, ErrMissingProvider
	}

	return &Repository[T]{
		collection: collection,
		provider:   provider,
	}, nil
}

func (r *Repository[T]) Collection() string {
	return r.collection
}

func (r *Repository[T]) Provider() Provider {
	return r.provider
}

func (r *Repository[T]) FindAll(ctx context.Context) ([]T, error) {
	records, err := r.provider.FindAll(ctx, r.collection)
	if err != nil {
		return nil, err //nolint:wrapcheck //backend errors are passed through
	}

	items := make([]T, 0, len(records))
	for _, record := range records {
		item, decodeErr := r.decode(record)
		if decodeErr != nil {
			return nil, decodeErr
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *Repository[T]) FindByID(ctx context.Context, id int64) (T, bool, error) {
	var zero T

	record, found, err := r.provider.FindByID(ctx, r.collection, id)
	if err != nil || !found {
		return zero, false, err //nolint:wrapcheck //backend errors are passed through
	}

	item, err := r.decode(record)
	if err != nil {
		return zero, false, err
	}

	return item, true, nil
}

// Create stores item under a new id and returns it as stored. Any id set on
// item is ignored.
func (r *Repository[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T

	record, err := r.encode(item)
	if err != nil {
		return zero, err
	}
	delete(record, FieldID)

	created, err := r.provider.Create(ctx, r.collection, record)
	if err != nil {
		return zero, err //nolint:wrapcheck //backend errors are passed through
	}

	return r.decode(created)
}

// CreateMany creates items one after another in input order and returns the
// stored values in the same order. It stops at the first error; items created
// before it are kept.
func (r *Repository[T]) CreateMany(ctx context.Context, items []T) ([]T, error) {
	created := make([]T, 0, len(items))
	for _, item := range items {
		c, err := r.Create(ctx, item)
		if err != nil {
			return nil, err
		}
		created = append(created, c)
	}

	return created, nil
}

// Update shallow-merges fields onto the stored value with the given id.
func (r *Repository[T]) Update(ctx context.Context, id int64, fields Record) (T, bool, error) {
	var zero T

	record, found, err := r.provider.Update(ctx, r.collection, id, fields)
	if err != nil || !found {
		return zero, false, err //nolint:wrapcheck //backend errors are passed through
	}

	item, err := r.decode(record)
	if err != nil {
		return zero, false, err
	}

	return item, true, nil
}

func (r *Repository[T]) Delete(ctx context.Context, id int64) (bool, error) {
	return r.provider.Delete(ctx, r.collection, id) //nolint:wrapcheck //backend errors are passed through
}

func (r *Repository[T]) encode(item T) (Record, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", r.collection, err)
	}

	record := Record{}
	if decodeErr := decodeJSON(data, &record); decodeErr != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", r.collection, decodeErr)
	}

	return record, nil
}

func (r *Repository[T]) decode(record Record) (T, error) {
	var item T

	data, err := json.Marshal(record)
	if err != nil {
		return item, fmt.Errorf("failed to decode %s: %w", r.collection, err)
	}

	if unmarshalErr := json.Unmarshal(data, &item); unmarshalErr != nil {
		return item, fmt.Errorf("failed to decode %s: %w", r.collection, unmarshalErr)
	}

	return item, nil
}
