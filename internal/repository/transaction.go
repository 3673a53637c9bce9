package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"finbook/internal/models"
)

// PostgresTransactionRepository implements owner-scoped transaction
// persistence against PostgreSQL.
type PostgresTransactionRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresTransactionRepository creates a new
// PostgresTransactionRepository using the provided *sql.DB.
func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{DB: db}
}

// Create persists a new transaction stamped with its owner.
func (r *PostgresTransactionRepository) Create(ctx context.Context, t *models.Transaction) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, category_id, amount, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, t.ID, t.UserID, t.CategoryID, t.Amount, t.Description, t.Date, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// ListByOwner fetches the user's transactions, optionally narrowed by the
// filter's date range and category.
func (r *PostgresTransactionRepository) ListByOwner(ctx context.Context, userID string, filter models.TransactionFilter) ([]models.Transaction, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT id, user_id, category_id, amount, description, date, created_at FROM transactions
		WHERE user_id = $1 AND deleted = false`)
	args := []any{userID}

	if filter.From != nil {
		args = append(args, *filter.From)
		query.WriteString(` AND date >= $` + strconv.Itoa(len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query.WriteString(` AND date <= $` + strconv.Itoa(len(args)))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		query.WriteString(` AND category_id = $` + strconv.Itoa(len(args)))
	}
	query.WriteString(` ORDER BY date DESC`)

	rows, err := r.DB.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Description, &t.Date, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

// GetByOwner retrieves a single transaction by ID for the given user.
// Returns models.ErrNotFound when no such transaction exists for that user.
func (r *PostgresTransactionRepository) GetByOwner(ctx context.Context, userID, id string) (*models.Transaction, error) {
	var t models.Transaction
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, category_id, amount, description, date, created_at FROM transactions
		WHERE user_id = $1 AND id = $2 AND deleted = false
	`, userID, id).Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Description, &t.Date, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// UpdateByOwner stores the new fields of an existing transaction.
// Returns models.ErrNotFound when no such transaction exists for that user.
func (r *PostgresTransactionRepository) UpdateByOwner(ctx context.Context, t *models.Transaction) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE transactions SET category_id = $3, amount = $4, description = $5, date = $6
		WHERE user_id = $1 AND id = $2 AND deleted = false
	`, t.UserID, t.ID, t.CategoryID, t.Amount, t.Description, t.Date)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteByOwner soft-deletes a transaction for the given user.
// Returns models.ErrNotFound when no such transaction exists for that user.
func (r *PostgresTransactionRepository) DeleteByOwner(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE transactions SET deleted = true, deleted_at = now()
		WHERE user_id = $1 AND id = $2 AND deleted = false
	`, userID, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if rows == 0 {
		return models.ErrNotFound
	}
	return nil
}
