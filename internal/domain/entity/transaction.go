package entity

import (
	"fmt"
	"math"
	"time"
)

// TransactionStatus is the settlement state of an exchange
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
	StatusCancelled TransactionStatus = "cancelled"
)

// Valid reports whether s is a known status
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusPending, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transaction in status s may move to next
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusCompleted || next == StatusCancelled
	case StatusCompleted:
		return next == StatusCancelled
	}
	return false
}

// Transaction is a completed (or in-flight) currency exchange at the counter
type Transaction struct {
	ID           string            `json:"id"`
	Date         string            `json:"date"`
	Time         string            `json:"time,omitempty"`
	Customer     string            `json:"customer"`
	FromCurrency CurrencyCode      `json:"from_currency"`
	ToCurrency   CurrencyCode      `json:"to_currency"`
	Amount       float64           `json:"amount"`
	Converted    float64           `json:"converted"`
	Rate         float64           `json:"rate"`
	Status       TransactionStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

// Key returns the store key of the transaction
func (t Transaction) Key() string {
	return t.ID
}

// Validate ensures the transaction meets all requirements
func (t *Transaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", t.Date); err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrValidation)
	}
	if !t.FromCurrency.Valid() || !t.ToCurrency.Valid() {
		return fmt.Errorf("%w: currency codes must be 3 upper-case letters", ErrValidation)
	}
	if math.IsNaN(t.Amount) || t.Amount <= 0 {
		return fmt.Errorf("%w: amount must be a positive value", ErrValidation)
	}
	if math.IsNaN(t.Rate) || t.Rate <= 0 {
		return fmt.Errorf("%w: rate must be a positive value", ErrValidation)
	}
	if math.IsNaN(t.Converted) || t.Converted < 0 {
		return fmt.Errorf("%w: converted amount must not be negative", ErrValidation)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, t.Status)
	}
	return nil
}

// TransactionPatch carries the fields of a partial transaction update.
// Nil fields keep the stored value.
type TransactionPatch struct {
	Date         *string
	Time         *string
	Customer     *string
	FromCurrency *CurrencyCode
	ToCurrency   *CurrencyCode
	Amount       *float64
	Converted    *float64
	Rate         *float64
	Status       *TransactionStatus
}

// Apply returns tx with every set field of the patch written over it
func (p TransactionPatch) Apply(tx Transaction) Transaction {
	if p.Date != nil {
		tx.Date = *p.Date
	}
	if p.Time != nil {
		tx.Time = *p.Time
	}
	if p.Customer != nil {
		tx.Customer = *p.Customer
	}
	if p.FromCurrency != nil {
		tx.FromCurrency = NormalizeCurrencyCode(string(*p.FromCurrency))
	}
	if p.ToCurrency != nil {
		tx.ToCurrency = NormalizeCurrencyCode(string(*p.ToCurrency))
	}
	if p.Amount != nil {
		tx.Amount = *p.Amount
	}
	if p.Converted != nil {
		tx.Converted = *p.Converted
	}
	if p.Rate != nil {
		tx.Rate = *p.Rate
	}
	if p.Status != nil {
		tx.Status = *p.Status
	}
	return tx
}

// RepricesWithoutConverted reports whether the patch changes the amount or rate
// but leaves the converted amount to be derived
func (p TransactionPatch) RepricesWithoutConverted() bool {
	return p.Converted == nil && (p.Amount != nil || p.Rate != nil)
}
