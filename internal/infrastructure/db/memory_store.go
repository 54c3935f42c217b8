package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/repository"
)

// MemoryStore is a process-local store that keeps records in insertion order
type MemoryStore[T repository.Record] struct {
	mu      sync.RWMutex
	records map[string]T
	order   []string
}

// NewMemoryStore creates a memory store holding seed
func NewMemoryStore[T repository.Record](seed ...T) *MemoryStore[T] {
	s := &MemoryStore[T]{records: make(map[string]T, len(seed))}
	for _, record := range seed {
		if _, exists := s.records[record.Key()]; exists {
			continue
		}
		s.records[record.Key()] = record
		s.order = append(s.order, record.Key())
	}
	return s
}

// List returns every stored record in insertion order
func (s *MemoryStore[T]) List(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.records[key])
	}
	return out, nil
}

// Insert stores a new record
func (s *MemoryStore[T]) Insert(ctx context.Context, record T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := record.Key()
	if _, exists := s.records[key]; exists {
		var zero T
		return zero, fmt.Errorf("%w: %s", entity.ErrDuplicate, key)
	}

	s.records[key] = record
	s.order = append(s.order, key)
	return record, nil
}

// Update replaces the record stored under key
func (s *MemoryStore[T]) Update(ctx context.Context, key string, record T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if _, exists := s.records[key]; !exists {
		return zero, fmt.Errorf("%w: %s", entity.ErrNotFound, key)
	}
	if record.Key() != key {
		return zero, fmt.Errorf("%w: key %s cannot change to %s", entity.ErrValidation, key, record.Key())
	}

	s.records[key] = record
	return record, nil
}

// Delete removes the record stored under key
func (s *MemoryStore[T]) Delete(ctx context.Context, key string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.records[key]
	if !exists {
		var zero T
		return zero, fmt.Errorf("%w: %s", entity.ErrNotFound, key)
	}

	delete(s.records, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return record, nil
}

// SeedInventory returns the opening cash positions of a fresh bureau
func SeedInventory() []entity.InventoryItem {
	return []entity.InventoryItem{
		{Code: "USD", Name: "US Dollar", Amount: 125430, Threshold: 50000},
		{Code: "EUR", Name: "Euro", Amount: 89250, Threshold: 40000},
	}
}

// SeedTransactions returns the demo ledger shown before any exchange is recorded
func SeedTransactions() []entity.Transaction {
	return []entity.Transaction{
		{
			ID:           "TXN001",
			Date:         "2025-03-10",
			Time:         "10:30 AM",
			Customer:     "John Doe",
			FromCurrency: "USD",
			ToCurrency:   "EUR",
			Amount:       1000,
			Converted:    920,
			Rate:         0.92,
			Status:       entity.StatusCompleted,
			CreatedAt:    time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:           "TXN002",
			Date:         "2025-03-10",
			Time:         "10:15 AM",
			Customer:     "Jane Smith",
			FromCurrency: "GBP",
			ToCurrency:   "USD",
			Amount:       500,
			Converted:    635,
			Rate:         1.27,
			Status:       entity.StatusCompleted,
			CreatedAt:    time.Date(2025, 3, 10, 10, 15, 0, 0, time.UTC),
		},
	}
}
