package entity

import (
	"fmt"
	"math"
)

// InventoryItem is the cash balance the bureau holds in one currency
type InventoryItem struct {
	Code      CurrencyCode `json:"code"`
	Name      string       `json:"name"`
	Amount    float64      `json:"amount"`
	Threshold float64      `json:"threshold"`
}

// Key returns the store key of the item
func (i InventoryItem) Key() string {
	return string(i.Code)
}

// IsLow reports whether the balance has dropped below the low-stock threshold
func (i InventoryItem) IsLow() bool {
	return i.Amount < i.Threshold
}

// Validate ensures the item meets all requirements
func (i *InventoryItem) Validate() error {
	if !i.Code.Valid() {
		return fmt.Errorf("%w: currency code must be 3 upper-case letters", ErrValidation)
	}
	if math.IsNaN(i.Amount) || i.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}
	if math.IsNaN(i.Threshold) || i.Threshold < 0 {
		return fmt.Errorf("%w: threshold must not be negative", ErrValidation)
	}
	return nil
}

// InventoryPatch carries the fields of a partial inventory update.
// Nil fields keep the stored value.
type InventoryPatch struct {
	Name      *string
	Amount    *float64
	Threshold *float64
}

// Apply returns item with every set field of the patch written over it
func (p InventoryPatch) Apply(item InventoryItem) InventoryItem {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Amount != nil {
		item.Amount = *p.Amount
	}
	if p.Threshold != nil {
		item.Threshold = *p.Threshold
	}
	return item
}
