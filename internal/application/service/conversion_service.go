package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/logger"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/middleware"
	"github.com/shopspring/decimal"
)

// Conversion is the result of converting an amount between two currencies
type Conversion struct {
	Amount     float64             `json:"amount"`
	From       entity.CurrencyCode `json:"from"`
	To         entity.CurrencyCode `json:"to"`
	Rate       float64             `json:"rate"`
	Converted  float64             `json:"converted"`
	RateDate   string              `json:"rate_date"`
	Provenance entity.Provenance   `json:"source"`
	Timestamp  time.Time           `json:"timestamp"`
}

// ConversionService is the counter calculator: it quotes an amount in another currency
type ConversionService struct {
	rates  RateFetcher
	logger logger.Logger
}

// NewConversionService creates a new conversion service
func NewConversionService(rates RateFetcher, log logger.Logger) *ConversionService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ConversionService{
		rates:  rates,
		logger: log,
	}
}

// Convert quotes amount of from in to, using a table anchored at from.
// A target missing from the table is quoted at parity.
func (s *ConversionService) Convert(ctx context.Context, amount float64, from, to entity.CurrencyCode) (*Conversion, error) {
	requestID := middleware.GetRequestID(ctx)

	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be a positive value", entity.ErrValidation)
	}
	if !from.Valid() || !to.Valid() {
		return nil, fmt.Errorf("%w: currency codes must be 3 upper-case letters", entity.ErrValidation)
	}

	table := s.rates.FetchRates(ctx, from)
	if table == nil {
		table = &entity.RateTable{Base: from}
	}

	rate, ok := table.Rate(to)
	if !ok {
		s.logger.Warn("Target currency missing from rate table, quoting at parity", map[string]interface{}{
			"request_id": requestID,
			"from":       from,
			"to":         to,
			"source":     table.Provenance,
		})
		rate = 1
	}

	converted := ConvertAmount(amount, rate)
	quotedRate, _ := decimal.NewFromFloat(rate).Round(4).Float64()

	s.logger.Info("Conversion completed", map[string]interface{}{
		"request_id":       requestID,
		"from":             from,
		"to":               to,
		"original_amount":  amount,
		"exchange_rate":    rate,
		"converted_amount": converted,
		"source":           table.Provenance,
	})

	return &Conversion{
		Amount:     amount,
		From:       from,
		To:         to,
		Rate:       quotedRate,
		Converted:  converted,
		RateDate:   table.Date,
		Provenance: table.Provenance,
		Timestamp:  table.Timestamp,
	}, nil
}
