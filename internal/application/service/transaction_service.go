package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionService handles business logic for transactions
type TransactionService struct {
	repo repository.TransactionRepository
	now  func() time.Time
}

// NewTransactionService creates a new transaction service
func NewTransactionService(repo repository.TransactionRepository) *TransactionService {
	return &TransactionService{repo: repo, now: time.Now}
}

// ListTransactions returns every transaction, newest first
func (s *TransactionService) ListTransactions(ctx context.Context) ([]entity.Transaction, error) {
	txs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})
	return txs, nil
}

// CreateTransaction fills in defaults, validates and stores a new transaction.
// A missing id becomes TXN-<uuid>, a missing converted amount is amount*rate rounded
// to cents, a missing status is completed and a missing date/time is now.
func (s *TransactionService) CreateTransaction(ctx context.Context, tx entity.Transaction) (entity.Transaction, error) {
	now := s.now()

	if tx.ID == "" {
		tx.ID = "TXN-" + strings.ToUpper(uuid.New().String())
	}
	if tx.Date == "" {
		tx.Date = now.UTC().Format("2006-01-02")
	}
	if tx.Time == "" {
		tx.Time = now.UTC().Format("03:04 PM")
	}
	if tx.Status == "" {
		tx.Status = entity.StatusCompleted
	}
	tx.FromCurrency = entity.NormalizeCurrencyCode(string(tx.FromCurrency))
	tx.ToCurrency = entity.NormalizeCurrencyCode(string(tx.ToCurrency))
	if tx.Converted == 0 && tx.Amount > 0 && tx.Rate > 0 {
		tx.Converted = ConvertAmount(tx.Amount, tx.Rate)
	}
	tx.CreatedAt = now

	if err := tx.Validate(); err != nil {
		return entity.Transaction{}, err
	}

	return s.repo.Insert(ctx, tx)
}

// UpdateTransaction applies patch to the transaction stored under id. Fields the patch leaves
// nil keep their stored values; a new amount or rate without a converted amount re-derives it.
// Status changes must follow pending -> completed|cancelled or completed -> cancelled.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, patch entity.TransactionPatch) (entity.Transaction, error) {
	current, err := s.find(ctx, id)
	if err != nil {
		return entity.Transaction{}, err
	}

	tx := patch.Apply(current)
	if !current.Status.CanTransitionTo(tx.Status) {
		return entity.Transaction{}, fmt.Errorf("%w: cannot move transaction from %s to %s", entity.ErrValidation, current.Status, tx.Status)
	}
	if patch.RepricesWithoutConverted() {
		tx.Converted = ConvertAmount(tx.Amount, tx.Rate)
	}

	if err := tx.Validate(); err != nil {
		return entity.Transaction{}, err
	}

	return s.repo.Update(ctx, id, tx)
}

// DeleteTransaction removes the transaction stored under id and returns it
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) (entity.Transaction, error) {
	return s.repo.Delete(ctx, id)
}

func (s *TransactionService) find(ctx context.Context, id string) (entity.Transaction, error) {
	txs, err := s.repo.List(ctx)
	if err != nil {
		return entity.Transaction{}, err
	}
	for _, tx := range txs {
		if tx.ID == id {
			return tx, nil
		}
	}
	return entity.Transaction{}, fmt.Errorf("%w: transaction %s", entity.ErrNotFound, id)
}

// ConvertAmount multiplies amount by rate and rounds half away from zero to cents
func ConvertAmount(amount, rate float64) float64 {
	converted, _ := decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(rate)).Round(2).Float64()
	return converted
}
