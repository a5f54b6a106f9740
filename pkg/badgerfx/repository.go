package badgerfx

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Codec converts values to and from their stored byte form.
type Codec[T any] struct {
	Marshal   func(T) ([]byte, error)
	Unmarshal func([]byte) (T, error)
}

// JSONCodec stores values as JSON documents.
func JSONCodec[T any]() Codec[T] {
	return Codec[T]{
		Marshal: func(v T) ([]byte, error) {
			return json.Marshal(v) //nolint:wrapcheck //wrapped by repository
		},
		Unmarshal: func(data []byte) (T, error) {
			var v T
			err := json.Unmarshal(data, &v)
			return v, err //nolint:wrapcheck //wrapped by repository
		},
	}
}

// Repository reads and writes values of one type inside caller-managed
// transactions.
type Repository[T any] struct {
	zero  T
	codec Codec[T]
}

func NewRepository[T any](codec Codec[T]) *Repository[T] {
	var zero T
	return &Repository[T]{
		zero:  zero,
		codec: codec,
	}
}

// List returns every value whose key starts with prefix, in key order, or in
// reverse key order when options.Reverse is set.
func (r *Repository[T]) List(txn *badger.Txn, prefix string, options badger.IteratorOptions) ([]T, error) {
	validPrefix := []byte(prefix)
	seekPrefix := []byte(prefix)
	if options.Reverse {
		seekPrefix = append(seekPrefix, SeekEnd)
	}

	it := txn.NewIterator(options)
	defer it.Close()

	entities := []T{}
	for it.Seek(seekPrefix); it.ValidForPrefix(validPrefix); it.Next() {
		entity, err := r.decode(it.Item())
		if err != nil {
			return nil, err
		}

		entities = append(entities, entity)
	}

	return entities, nil
}

// LastKey returns the greatest key starting with prefix.
func (r *Repository[T]) LastKey(txn *badger.Txn, prefix string) (string, bool) {
	options := badger.DefaultIteratorOptions
	options.Reverse = true
	options.PrefetchValues = false

	it := txn.NewIterator(options)
	defer it.Close()

	it.Seek(append([]byte(prefix), SeekEnd))
	if !it.ValidForPrefix([]byte(prefix)) {
		return "", false
	}

	return string(it.Item().KeyCopy(nil)), true
}

// Read returns the value stored under key. A missing key is reported as false.
func (r *Repository[T]) Read(txn *badger.Txn, key string) (T, bool, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return r.zero, false, nil
	}
	if err != nil {
		return r.zero, false, fmt.Errorf("failed to get entity: %w", err)
	}

	entity, err := r.decode(item)
	if err != nil {
		return r.zero, false, err
	}

	return entity, true, nil
}

// Write stores entity under key.
func (r *Repository[T]) Write(txn *badger.Txn, key string, entity T) error {
	data, err := r.codec.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	if setErr := txn.Set([]byte(key), data); setErr != nil {
		return fmt.Errorf("failed to update entity: %w", setErr)
	}

	return nil
}

// Delete removes key and reports whether it existed.
func (r *Repository[T]) Delete(txn *badger.Txn, key string) (bool, error) {
	_, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get entity: %w", err)
	}

	if delErr := txn.Delete([]byte(key)); delErr != nil {
		return false, fmt.Errorf("failed to delete entity: %w", delErr)
	}

	return true, nil
}

func (r *Repository[T]) decode(item *badger.Item) (T, error) {
	var entity T
	if err := item.Value(func(val []byte) error {
		var decodeErr error
		entity, decodeErr = r.codec.Unmarshal(val)
		return decodeErr
	}); err != nil {
		return r.zero, fmt.Errorf("failed to unmarshal entity: %w", err)
	}

	return entity, nil
}
