package handler

import (
	"time"

	"github.com/damon-houk/forex-bureau-dashboard/internal/application/service"
	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
)

// InventoryItemRequest is the body of POST and PUT /api/inventory
type InventoryItemRequest struct {
	Code      string  `json:"code" validate:"required,len=3,alpha"`
	Name      string  `json:"name" validate:"max=64"`
	Amount    float64 `json:"amount" validate:"gte=0"`
	Threshold float64 `json:"threshold" validate:"gte=0"`
}

func (r InventoryItemRequest) toEntity() entity.InventoryItem {
	return entity.InventoryItem{
		Code:      entity.NormalizeCurrencyCode(r.Code),
		Name:      r.Name,
		Amount:    r.Amount,
		Threshold: r.Threshold,
	}
}

// InventoryItemUpdateRequest is the body of PUT /api/inventory. Code selects the item;
// omitted fields keep their stored values.
type InventoryItemUpdateRequest struct {
	Code      string   `json:"code" validate:"required,len=3,alpha"`
	Name      *string  `json:"name" validate:"omitempty,max=64"`
	Amount    *float64 `json:"amount" validate:"omitempty,gte=0"`
	Threshold *float64 `json:"threshold" validate:"omitempty,gte=0"`
}

func (r InventoryItemUpdateRequest) toPatch() entity.InventoryPatch {
	return entity.InventoryPatch{
		Name:      r.Name,
		Amount:    r.Amount,
		Threshold: r.Threshold,
	}
}

// InventoryItemResponse is an inventory item with its low-stock flag
type InventoryItemResponse struct {
	entity.InventoryItem
	LowStock bool `json:"low_stock"`
}

func newInventoryItemResponse(item entity.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{InventoryItem: item, LowStock: item.IsLow()}
}

func newInventoryItemResponses(items []entity.InventoryItem) []InventoryItemResponse {
	out := make([]InventoryItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, newInventoryItemResponse(item))
	}
	return out
}

// TransactionRequest is the body of POST /api/transactions.
// Optional fields left empty take the service defaults.
type TransactionRequest struct {
	ID           string  `json:"id" validate:"omitempty,max=64"`
	Date         string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time         string  `json:"time" validate:"max=16"`
	Customer     string  `json:"customer" validate:"max=128"`
	FromCurrency string  `json:"from_currency" validate:"required,len=3,alpha"`
	ToCurrency   string  `json:"to_currency" validate:"required,len=3,alpha"`
	Amount       float64 `json:"amount" validate:"gt=0"`
	Converted    float64 `json:"converted" validate:"gte=0"`
	Rate         float64 `json:"rate" validate:"gt=0"`
	Status       string  `json:"status" validate:"omitempty,oneof=completed pending cancelled"`
}

func (r TransactionRequest) toEntity() entity.Transaction {
	return entity.Transaction{
		ID:           r.ID,
		Date:         r.Date,
		Time:         r.Time,
		Customer:     r.Customer,
		FromCurrency: entity.CurrencyCode(r.FromCurrency),
		ToCurrency:   entity.CurrencyCode(r.ToCurrency),
		Amount:       r.Amount,
		Converted:    r.Converted,
		Rate:         r.Rate,
		Status:       entity.TransactionStatus(r.Status),
	}
}

// TransactionUpdateRequest is the body of PUT /api/transactions. ID selects the transaction;
// omitted fields keep their stored values.
type TransactionUpdateRequest struct {
	ID           string   `json:"id" validate:"omitempty,max=64"`
	Date         *string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time         *string  `json:"time" validate:"omitempty,max=16"`
	Customer     *string  `json:"customer" validate:"omitempty,max=128"`
	FromCurrency *string  `json:"from_currency" validate:"omitempty,len=3,alpha"`
	ToCurrency   *string  `json:"to_currency" validate:"omitempty,len=3,alpha"`
	Amount       *float64 `json:"amount" validate:"omitempty,gt=0"`
	Converted    *float64 `json:"converted" validate:"omitempty,gte=0"`
	Rate         *float64 `json:"rate" validate:"omitempty,gt=0"`
	Status       *string  `json:"status" validate:"omitempty,oneof=completed pending cancelled"`
}

func (r TransactionUpdateRequest) toPatch() entity.TransactionPatch {
	patch := entity.TransactionPatch{
		Date:      r.Date,
		Time:      r.Time,
		Customer:  r.Customer,
		Amount:    r.Amount,
		Converted: r.Converted,
		Rate:      r.Rate,
	}
	if r.FromCurrency != nil {
		code := entity.CurrencyCode(*r.FromCurrency)
		patch.FromCurrency = &code
	}
	if r.ToCurrency != nil {
		code := entity.CurrencyCode(*r.ToCurrency)
		patch.ToCurrency = &code
	}
	if r.Status != nil {
		status := entity.TransactionStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

// ItemResponse wraps a single record
type ItemResponse struct {
	Success bool        `json:"success"`
	Item    interface{} `json:"item"`
}

// ItemsResponse wraps a list of records
type ItemsResponse struct {
	Success bool        `json:"success"`
	Items   interface{} `json:"items"`
}

// RatesResponse is the body of GET /api/rates
type RatesResponse struct {
	Success     bool                `json:"success"`
	Base        entity.CurrencyCode `json:"base"`
	Date        string              `json:"date"`
	Rates       entity.Rates        `json:"rates"`
	Timestamp   time.Time           `json:"timestamp"`
	Source      entity.Provenance   `json:"source"`
	SourceLabel string              `json:"source_label"`
	NeedsAPIKey bool                `json:"needsApiKey"`
}

func newRatesResponse(table *entity.RateTable) RatesResponse {
	return RatesResponse{
		Success:     true,
		Base:        table.Base,
		Date:        table.Date,
		Rates:       table.Rates,
		Timestamp:   table.Timestamp,
		Source:      table.Provenance,
		SourceLabel: table.Provenance.Label(),
		NeedsAPIKey: table.NeedsAPIKey,
	}
}

// DashboardResponse is the body of GET /api/dashboard
type DashboardResponse struct {
	Success bool `json:"success"`
	entity.DashboardSnapshot
}

// ConversionResponse is the body of GET /api/convert
type ConversionResponse struct {
	Success bool `json:"success"`
	*service.Conversion
	SourceLabel string `json:"source_label"`
}

// CurrenciesResponse is the body of GET /api/currencies
type CurrenciesResponse struct {
	Success    bool              `json:"success"`
	Currencies []entity.Currency `json:"currencies"`
	Regions    []string          `json:"regions"`
}
