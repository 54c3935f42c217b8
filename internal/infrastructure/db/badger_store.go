package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v3"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/repository"
)

// Key prefixes of the badger keyspace
const (
	InventoryPrefix   = "inv:"
	TransactionPrefix = "tx:"
)

// OpenBadger opens (creating if needed) a badger database at path
func OpenBadger(path string) (*badger.DB, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable Badger's default logger

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// BadgerStore implements repository.Store with JSON values under a key prefix
type BadgerStore[T repository.Record] struct {
	db     *badger.DB
	prefix string
}

// NewBadgerStore creates a store for the records under prefix
func NewBadgerStore[T repository.Record](db *badger.DB, prefix string) *BadgerStore[T] {
	return &BadgerStore[T]{db: db, prefix: prefix}
}

// NewBadgerInventoryStore creates the inventory store
func NewBadgerInventoryStore(db *badger.DB) *BadgerStore[entity.InventoryItem] {
	return NewBadgerStore[entity.InventoryItem](db, InventoryPrefix)
}

// NewBadgerTransactionStore creates the transaction store
func NewBadgerTransactionStore(db *badger.DB) *BadgerStore[entity.Transaction] {
	return NewBadgerStore[entity.Transaction](db, TransactionPrefix)
}

func (s *BadgerStore[T]) key(key string) []byte {
	return []byte(s.prefix + key)
}

// Seed inserts records when the keyspace is empty
func (s *BadgerStore[T]) Seed(ctx context.Context, records ...T) error {
	existing, err := s.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, record := range records {
		if _, err := s.Insert(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// List returns every record under the prefix in key order
func (s *BadgerStore[T]) List(ctx context.Context) ([]T, error) {
	var records []T

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(s.prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var record T
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			}); err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return records, nil
}

// Insert stores a new record
func (s *BadgerStore[T]) Insert(ctx context.Context, record T) (T, error) {
	var zero T

	data, err := json.Marshal(record)
	if err != nil {
		return zero, fmt.Errorf("failed to marshal record: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(s.key(record.Key()))
		if err == nil {
			return fmt.Errorf("%w: %s", entity.ErrDuplicate, record.Key())
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(s.key(record.Key()), data)
	})
	if err != nil {
		if errors.Is(err, entity.ErrDuplicate) {
			return zero, err
		}
		return zero, fmt.Errorf("failed to store record: %w", err)
	}

	return record, nil
}

// Update replaces the record stored under key
func (s *BadgerStore[T]) Update(ctx context.Context, key string, record T) (T, error) {
	var zero T

	if record.Key() != key {
		return zero, fmt.Errorf("%w: key %s cannot change to %s", entity.ErrValidation, key, record.Key())
	}

	data, err := json.Marshal(record)
	if err != nil {
		return zero, fmt.Errorf("failed to marshal record: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(s.key(key)); err != nil {
			return err
		}
		return txn.Set(s.key(key), data)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return zero, fmt.Errorf("%w: %s", entity.ErrNotFound, key)
	}
	if err != nil {
		return zero, fmt.Errorf("failed to update record: %w", err)
	}

	return record, nil
}

// Delete removes the record stored under key
func (s *BadgerStore[T]) Delete(ctx context.Context, key string) (T, error) {
	var record T

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(key))
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		}); err != nil {
			return err
		}
		return txn.Delete(s.key(key))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		var zero T
		return zero, fmt.Errorf("%w: %s", entity.ErrNotFound, key)
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to delete record: %w", err)
	}

	return record, nil
}
