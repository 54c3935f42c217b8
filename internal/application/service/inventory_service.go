package service

import (
	"context"
	"fmt"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/rates"
	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/repository"
)

// InventoryService manages the per-currency cash balances.
// Recording a transaction never changes inventory; the two ledgers are independent.
type InventoryService struct {
	repo repository.InventoryRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(repo repository.InventoryRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

// ListItems returns every inventory item
func (s *InventoryService) ListItems(ctx context.Context) ([]entity.InventoryItem, error) {
	return s.repo.List(ctx)
}

// LowStock returns the items whose balance is below their threshold
func (s *InventoryService) LowStock(ctx context.Context) ([]entity.InventoryItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	low := make([]entity.InventoryItem, 0)
	for _, item := range items {
		if item.IsLow() {
			low = append(low, item)
		}
	}
	return low, nil
}

// CreateItem validates and stores a new item. A missing name is taken from the currency catalog.
func (s *InventoryService) CreateItem(ctx context.Context, item entity.InventoryItem) (entity.InventoryItem, error) {
	item = prepareItem(item)
	if err := item.Validate(); err != nil {
		return entity.InventoryItem{}, err
	}

	return s.repo.Insert(ctx, item)
}

// UpdateItem applies patch to the item stored for code. Fields the patch leaves nil keep
// their stored values.
func (s *InventoryService) UpdateItem(ctx context.Context, code string, patch entity.InventoryPatch) (entity.InventoryItem, error) {
	key := entity.NormalizeCurrencyCode(code)
	current, err := s.find(ctx, key)
	if err != nil {
		return entity.InventoryItem{}, err
	}

	item := prepareItem(patch.Apply(current))
	if err := item.Validate(); err != nil {
		return entity.InventoryItem{}, err
	}

	return s.repo.Update(ctx, string(key), item)
}

// DeleteItem removes the item stored for code and returns it
func (s *InventoryService) DeleteItem(ctx context.Context, code string) (entity.InventoryItem, error) {
	return s.repo.Delete(ctx, string(entity.NormalizeCurrencyCode(code)))
}

func (s *InventoryService) find(ctx context.Context, code entity.CurrencyCode) (entity.InventoryItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return entity.InventoryItem{}, err
	}
	for _, item := range items {
		if item.Code == code {
			return item, nil
		}
	}
	return entity.InventoryItem{}, fmt.Errorf("%w: inventory item %s", entity.ErrNotFound, code)
}

func prepareItem(item entity.InventoryItem) entity.InventoryItem {
	item.Code = entity.NormalizeCurrencyCode(string(item.Code))
	if item.Name == "" {
		if c, ok := rates.CurrencyByCode(item.Code); ok {
			item.Name = c.Name
		}
	}
	return item
}
