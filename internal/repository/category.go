package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"finbook/internal/models"
)

// PostgresCategoryRepository implements owner-scoped category persistence
// against PostgreSQL.
type PostgresCategoryRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresCategoryRepository creates a new PostgresCategoryRepository
// using the provided *sql.DB.
func NewPostgresCategoryRepository(db *sql.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{DB: db}
}

// Create persists a new category stamped with its owner.
func (r *PostgresCategoryRepository) Create(ctx context.Context, c *models.Category) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO categories (id, user_id, name, type, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.UserID, c.Name, c.Type, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// ListByOwner fetches all categories for the specified user.
func (r *PostgresCategoryRepository) ListByOwner(ctx context.Context, userID string) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, name, type, created_at FROM categories
		WHERE user_id = $1 AND deleted = false
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetByOwner retrieves a single category by ID for the given user.
// Returns models.ErrNotFound when no such category exists for that user.
func (r *PostgresCategoryRepository) GetByOwner(ctx context.Context, userID, id string) (*models.Category, error) {
	var c models.Category
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, name, type, created_at FROM categories
		WHERE user_id = $1 AND id = $2 AND deleted = false
	`, userID, id).Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// UpdateByOwner stores the new name and type of an existing category.
// Returns models.ErrNotFound when no such category exists for that user.
func (r *PostgresCategoryRepository) UpdateByOwner(ctx context.Context, c *models.Category) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE categories SET name = $3, type = $4
		WHERE user_id = $1 AND id = $2 AND deleted = false
	`, c.UserID, c.ID, c.Name, c.Type)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteByOwner soft-deletes a category for the given user.
// Returns models.ErrNotFound when no such category exists for that user.
func (r *PostgresCategoryRepository) DeleteByOwner(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE categories SET deleted = true, deleted_at = now()
		WHERE user_id = $1 AND id = $2 AND deleted = false
	`, userID, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if rows == 0 {
		return models.ErrNotFound
	}
	return nil
}
