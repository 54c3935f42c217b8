// Package repository defines the storage contracts consumed by the application services
package repository

import (
	"context"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
)

// Record is a storable entity with a unique key
type Record interface {
	Key() string
}

// Store is the generic per-entity store used by the ledgers
type Store[T Record] interface {
	// List returns every stored record
	List(ctx context.Context) ([]T, error)

	// Insert stores a new record and returns it as stored
	Insert(ctx context.Context, record T) (T, error)

	// Update replaces the record stored under key and returns the new value
	Update(ctx context.Context, key string, record T) (T, error)

	// Delete removes the record stored under key and returns the removed value
	Delete(ctx context.Context, key string) (T, error)
}

// InventoryRepository stores inventory items keyed by currency code
type InventoryRepository = Store[entity.InventoryItem]

// TransactionRepository stores transactions keyed by id
type TransactionRepository = Store[entity.Transaction]
