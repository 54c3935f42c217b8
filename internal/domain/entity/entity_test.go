package entity

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrencyCode(t *testing.T) {
	assert.Equal(t, CurrencyCode("KES"), NormalizeCurrencyCode(" kes "))
	assert.True(t, CurrencyCode("USD").Valid())
	assert.False(t, CurrencyCode("usd").Valid())
	assert.False(t, CurrencyCode("US").Valid())
	assert.False(t, CurrencyCode("US1").Valid())
	assert.False(t, CurrencyCode("").Valid())
}

func TestInventoryItem(t *testing.T) {
	t.Run("Low stock is strictly below threshold", func(t *testing.T) {
		assert.True(t, InventoryItem{Amount: 99, Threshold: 100}.IsLow())
		assert.False(t, InventoryItem{Amount: 100, Threshold: 100}.IsLow())
		assert.False(t, InventoryItem{Amount: 0, Threshold: 0}.IsLow())
	})

	t.Run("Validate", func(t *testing.T) {
		tests := []struct {
			name    string
			item    InventoryItem
			wantErr bool
		}{
			{"Valid", InventoryItem{Code: "USD", Amount: 1, Threshold: 1}, false},
			{"Zero balance", InventoryItem{Code: "USD"}, false},
			{"Bad code", InventoryItem{Code: "usd"}, true},
			{"Negative amount", InventoryItem{Code: "USD", Amount: -1}, true},
			{"NaN threshold", InventoryItem{Code: "USD", Threshold: math.NaN()}, true},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				err := tc.item.Validate()
				if tc.wantErr {
					assert.True(t, errors.Is(err, ErrValidation))
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})
}

func TestTransaction(t *testing.T) {
	valid := func() Transaction {
		return Transaction{
			ID:           "TXN001",
			Date:         "2025-03-10",
			FromCurrency: "USD",
			ToCurrency:   "EUR",
			Amount:       1000,
			Converted:    920,
			Rate:         0.92,
			Status:       StatusCompleted,
		}
	}

	t.Run("Validate", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*Transaction)
		}{
			{"Missing id", func(tx *Transaction) { tx.ID = "" }},
			{"Bad date", func(tx *Transaction) { tx.Date = "2025-3-10" }},
			{"Bad currency", func(tx *Transaction) { tx.ToCurrency = "EURO" }},
			{"Zero amount", func(tx *Transaction) { tx.Amount = 0 }},
			{"Zero rate", func(tx *Transaction) { tx.Rate = 0 }},
			{"Negative converted", func(tx *Transaction) { tx.Converted = -1 }},
			{"Unknown status", func(tx *Transaction) { tx.Status = "refunded" }},
		}

		tx := valid()
		assert.NoError(t, tx.Validate())

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				tx := valid()
				tc.mutate(&tx)
				assert.ErrorIs(t, tx.Validate(), ErrValidation)
			})
		}
	})

	t.Run("Status transitions", func(t *testing.T) {
		assert.True(t, StatusPending.CanTransitionTo(StatusCompleted))
		assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
		assert.True(t, StatusCompleted.CanTransitionTo(StatusCancelled))
		assert.True(t, StatusCompleted.CanTransitionTo(StatusCompleted))
		assert.False(t, StatusCompleted.CanTransitionTo(StatusPending))
		assert.False(t, StatusCancelled.CanTransitionTo(StatusCompleted))
		assert.False(t, StatusCancelled.CanTransitionTo(StatusPending))
	})
}

func TestPatches(t *testing.T) {
	t.Run("Inventory patch writes only set fields", func(t *testing.T) {
		item := InventoryItem{Code: "EUR", Name: "Euro", Amount: 89250, Threshold: 40000}
		amount := 10.0

		patched := InventoryPatch{Amount: &amount}.Apply(item)

		assert.Equal(t, InventoryItem{Code: "EUR", Name: "Euro", Amount: 10, Threshold: 40000}, patched)
		assert.Equal(t, 89250.0, item.Amount, "original is untouched")
	})

	t.Run("Transaction patch writes only set fields", func(t *testing.T) {
		tx := Transaction{ID: "TXN001", Date: "2025-03-10", FromCurrency: "USD", ToCurrency: "EUR", Amount: 1000, Converted: 920, Rate: 0.92, Status: StatusCompleted}
		status := StatusCancelled
		to := CurrencyCode("gbp")

		patched := TransactionPatch{Status: &status, ToCurrency: &to}.Apply(tx)

		assert.Equal(t, StatusCancelled, patched.Status)
		assert.Equal(t, CurrencyCode("GBP"), patched.ToCurrency)
		assert.Equal(t, "2025-03-10", patched.Date)
		assert.Equal(t, 920.0, patched.Converted)
	})

	t.Run("Repricing without converted", func(t *testing.T) {
		amount, converted := 5.0, 4.6

		assert.True(t, TransactionPatch{Amount: &amount}.RepricesWithoutConverted())
		assert.False(t, TransactionPatch{Amount: &amount, Converted: &converted}.RepricesWithoutConverted())
		assert.False(t, TransactionPatch{}.RepricesWithoutConverted())
	})
}

func TestProvenance(t *testing.T) {
	assert.True(t, ProvenanceFallback.IsFallback())
	assert.True(t, ProvenanceFallbackError.IsFallback())
	assert.False(t, ProvenanceFrankfurter.IsFallback())
	assert.Equal(t, ProvenanceFallback.Label(), ProvenanceFallbackError.Label())
	assert.Equal(t, "Live rates via ExchangeRate-API.com", ProvenanceExchangeRateV6.Label())
}

func TestRateTable(t *testing.T) {
	var missing *RateTable
	_, ok := missing.Rate("USD")
	assert.False(t, ok)

	table := &RateTable{Base: "USD", Rates: Rates{"USD": 1, "EUR": 0.92}}
	rate, ok := table.Rate("EUR")
	assert.True(t, ok)
	assert.Equal(t, 0.92, rate)

	clone := table.Rates.Clone()
	clone["EUR"] = 1
	assert.Equal(t, 0.92, table.Rates["EUR"])
}
