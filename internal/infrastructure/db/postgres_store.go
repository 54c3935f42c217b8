package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
)

// PostgresInventoryStore implements repository.InventoryRepository on the inventory table
type PostgresInventoryStore struct {
	pool *pgxpool.Pool
}

// NewPostgresInventoryStore creates an inventory store on pool
func NewPostgresInventoryStore(pool *pgxpool.Pool) *PostgresInventoryStore {
	return &PostgresInventoryStore{pool: pool}
}

const inventoryColumns = `code, name, amount, threshold`

func scanInventory(row pgx.Row) (entity.InventoryItem, error) {
	var item entity.InventoryItem
	var code string
	err := row.Scan(&code, &item.Name, &item.Amount, &item.Threshold)
	item.Code = entity.CurrencyCode(code)
	return item, err
}

// List returns every inventory item ordered by code
func (s *PostgresInventoryStore) List(ctx context.Context) ([]entity.InventoryItem, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+inventoryColumns+` FROM inventory ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	var items []entity.InventoryItem
	for rows.Next() {
		item, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Insert stores a new inventory item
func (s *PostgresInventoryStore) Insert(ctx context.Context, item entity.InventoryItem) (entity.InventoryItem, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO inventory (code, name, amount, threshold)
		VALUES ($1, $2, $3, $4)
		RETURNING `+inventoryColumns,
		string(item.Code), item.Name, item.Amount, item.Threshold,
	)

	stored, err := scanInventory(row)
	if isUniqueViolation(err) {
		return entity.InventoryItem{}, fmt.Errorf("%w: %s", entity.ErrDuplicate, item.Code)
	}
	if err != nil {
		return entity.InventoryItem{}, fmt.Errorf("failed to insert inventory item: %w", err)
	}
	return stored, nil
}

// Update replaces the inventory item stored under code
func (s *PostgresInventoryStore) Update(ctx context.Context, code string, item entity.InventoryItem) (entity.InventoryItem, error) {
	if item.Key() != code {
		return entity.InventoryItem{}, fmt.Errorf("%w: key %s cannot change to %s", entity.ErrValidation, code, item.Key())
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE inventory SET name = $2, amount = $3, threshold = $4
		WHERE code = $1
		RETURNING `+inventoryColumns,
		code, item.Name, item.Amount, item.Threshold,
	)

	stored, err := scanInventory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.InventoryItem{}, notFound(code)
	}
	if err != nil {
		return entity.InventoryItem{}, fmt.Errorf("failed to update inventory item: %w", err)
	}
	return stored, nil
}

// Delete removes the inventory item stored under code
func (s *PostgresInventoryStore) Delete(ctx context.Context, code string) (entity.InventoryItem, error) {
	row := s.pool.QueryRow(ctx, `DELETE FROM inventory WHERE code = $1 RETURNING `+inventoryColumns, code)

	removed, err := scanInventory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.InventoryItem{}, notFound(code)
	}
	if err != nil {
		return entity.InventoryItem{}, fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return removed, nil
}

// PostgresTransactionStore implements repository.TransactionRepository on the transactions table
type PostgresTransactionStore struct {
	pool *pgxpool.Pool
}

// NewPostgresTransactionStore creates a transaction store on pool
func NewPostgresTransactionStore(pool *pgxpool.Pool) *PostgresTransactionStore {
	return &PostgresTransactionStore{pool: pool}
}

const transactionColumns = `id, date::text, time, customer, from_currency, to_currency, amount, converted, rate, status, created_at`

func scanTransaction(row pgx.Row) (entity.Transaction, error) {
	var tx entity.Transaction
	var from, to, status string
	err := row.Scan(
		&tx.ID, &tx.Date, &tx.Time, &tx.Customer, &from, &to,
		&tx.Amount, &tx.Converted, &tx.Rate, &status, &tx.CreatedAt,
	)
	tx.FromCurrency = entity.CurrencyCode(from)
	tx.ToCurrency = entity.CurrencyCode(to)
	tx.Status = entity.TransactionStatus(status)
	tx.CreatedAt = tx.CreatedAt.UTC()
	return tx, err
}

// List returns every transaction, newest first
func (s *PostgresTransactionStore) List(ctx context.Context) ([]entity.Transaction, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []entity.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// Insert stores a new transaction
func (s *PostgresTransactionStore) Insert(ctx context.Context, tx entity.Transaction) (entity.Transaction, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO transactions (id, date, time, customer, from_currency, to_currency, amount, converted, rate, status, created_at)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+transactionColumns,
		tx.ID, tx.Date, tx.Time, tx.Customer, string(tx.FromCurrency), string(tx.ToCurrency),
		tx.Amount, tx.Converted, tx.Rate, string(tx.Status), tx.CreatedAt,
	)

	stored, err := scanTransaction(row)
	if isUniqueViolation(err) {
		return entity.Transaction{}, fmt.Errorf("%w: %s", entity.ErrDuplicate, tx.ID)
	}
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return stored, nil
}

// Update replaces the transaction stored under id
func (s *PostgresTransactionStore) Update(ctx context.Context, id string, tx entity.Transaction) (entity.Transaction, error) {
	if tx.Key() != id {
		return entity.Transaction{}, fmt.Errorf("%w: key %s cannot change to %s", entity.ErrValidation, id, tx.Key())
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE transactions SET
			date = $2::date, time = $3, customer = $4, from_currency = $5, to_currency = $6,
			amount = $7, converted = $8, rate = $9, status = $10
		WHERE id = $1
		RETURNING `+transactionColumns,
		id, tx.Date, tx.Time, tx.Customer, string(tx.FromCurrency), string(tx.ToCurrency),
		tx.Amount, tx.Converted, tx.Rate, string(tx.Status),
	)

	stored, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.Transaction{}, notFound(id)
	}
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("failed to update transaction: %w", err)
	}
	return stored, nil
}

// Delete removes the transaction stored under id
func (s *PostgresTransactionStore) Delete(ctx context.Context, id string) (entity.Transaction, error) {
	row := s.pool.QueryRow(ctx, `DELETE FROM transactions WHERE id = $1 RETURNING `+transactionColumns, id)

	removed, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.Transaction{}, notFound(id)
	}
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("failed to delete transaction: %w", err)
	}
	return removed, nil
}
