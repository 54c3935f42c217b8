package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/repository"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/logger"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/middleware"
)

// DashboardService computes the dashboard statistics from both ledgers and one rate fetch
type DashboardService struct {
	txRepo  repository.TransactionRepository
	invRepo repository.InventoryRepository
	rates   RateFetcher
	logger  logger.Logger
	now     func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(txRepo repository.TransactionRepository, invRepo repository.InventoryRepository, rates RateFetcher, log logger.Logger) *DashboardService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &DashboardService{
		txRepo:  txRepo,
		invRepo: invRepo,
		rates:   rates,
		logger:  log,
		now:     time.Now,
	}
}

// ComputeSnapshot aggregates revenue, today's transaction count, distinct customers and
// cash on hand in USD. Store failures count as empty ledgers. An error is returned only
// when an unexpected fault escapes the computation.
func (s *DashboardService) ComputeSnapshot(ctx context.Context) (snapshot *entity.DashboardSnapshot, err error) {
	requestID := middleware.GetRequestID(ctx)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Dashboard aggregation failed", map[string]interface{}{
				"request_id": requestID,
				"panic":      fmt.Sprint(r),
			})
			snapshot = nil
			err = fmt.Errorf("dashboard aggregation failed: %v", r)
		}
	}()

	transactions := s.loadTransactions(ctx, requestID)
	inventory := s.loadInventory(ctx, requestID)

	today := s.now().UTC().Format("2006-01-02")
	snapshot = &entity.DashboardSnapshot{
		TotalRevenue:      totalRevenue(transactions),
		TransactionsToday: countOnDate(transactions, today),
		ActiveCustomers:   distinctCustomers(transactions),
	}

	var table *entity.RateTable
	if s.rates != nil {
		table = s.rates.FetchRates(ctx, entity.DefaultBase)
	}
	snapshot.CashOnHand = cashOnHandUSD(inventory, table)

	s.logger.Info("Dashboard snapshot computed", map[string]interface{}{
		"request_id":         requestID,
		"transactions":       len(transactions),
		"inventory_items":    len(inventory),
		"transactions_today": snapshot.TransactionsToday,
		"active_customers":   snapshot.ActiveCustomers,
		"total_revenue":      snapshot.TotalRevenue,
		"cash_on_hand":       snapshot.CashOnHand,
	})

	return snapshot, nil
}

func (s *DashboardService) loadTransactions(ctx context.Context, requestID string) []entity.Transaction {
	if s.txRepo == nil {
		return nil
	}
	txs, err := s.txRepo.List(ctx)
	if err != nil {
		s.logger.Warn("Failed to load transactions, treating as empty", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		return nil
	}
	return txs
}

func (s *DashboardService) loadInventory(ctx context.Context, requestID string) []entity.InventoryItem {
	if s.invRepo == nil {
		return nil
	}
	items, err := s.invRepo.List(ctx)
	if err != nil {
		s.logger.Warn("Failed to load inventory, treating as empty", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		return nil
	}
	return items
}

// totalRevenue sums the converted amount of each transaction, or its source amount when
// the converted amount is not a valid positive number
func totalRevenue(transactions []entity.Transaction) float64 {
	total := 0.0
	for _, tx := range transactions {
		if finite(tx.Converted) && tx.Converted > 0 {
			total += tx.Converted
			continue
		}
		if finite(tx.Amount) {
			total += tx.Amount
		}
	}
	return total
}

func countOnDate(transactions []entity.Transaction, date string) int {
	count := 0
	for _, tx := range transactions {
		if tx.Date == date {
			count++
		}
	}
	return count
}

func distinctCustomers(transactions []entity.Transaction) int {
	seen := make(map[string]struct{}, len(transactions))
	for _, tx := range transactions {
		seen[tx.Customer] = struct{}{}
	}
	return len(seen)
}

// cashOnHandUSD converts every balance into USD using a USD anchored table.
// A code missing from the table is taken at parity. Without a usable table the raw
// amounts are summed as if they were already USD.
func cashOnHandUSD(inventory []entity.InventoryItem, table *entity.RateTable) float64 {
	total := 0.0

	if table == nil || len(table.Rates) == 0 || len(inventory) == 0 {
		for _, item := range inventory {
			total += safeAmount(item.Amount)
		}
		return total
	}

	for _, item := range inventory {
		amount := safeAmount(item.Amount)
		rate, ok := table.Rates[item.Code]
		if !ok {
			rate = 1
		}
		if rate == 0 || !finite(rate) {
			total += amount
			continue
		}
		total += amount / rate
	}
	return total
}

func safeAmount(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
