package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"finbook/internal/models"
)

// TransactionRepository defines the owner-scoped persistence operations
// required by the TransactionService.
type TransactionRepository interface {
	// Create persists a new transaction stamped with its owner.
	Create(ctx context.Context, t *models.Transaction) error
	// ListByOwner fetches the user's transactions matching the filter.
	ListByOwner(ctx context.Context, userID string, filter models.TransactionFilter) ([]models.Transaction, error)
	// GetByOwner fetches a single transaction by ID for the specified user.
	GetByOwner(ctx context.Context, userID, id string) (*models.Transaction, error)
	// UpdateByOwner stores the new fields of an existing transaction.
	UpdateByOwner(ctx context.Context, t *models.Transaction) error
	// DeleteByOwner removes a transaction for the specified user.
	DeleteByOwner(ctx context.Context, userID, id string) error
}

// CategoryReader provides the category lookups the transaction service
// needs to verify references and classify amounts.
type CategoryReader interface {
	GetByOwner(ctx context.Context, userID, id string) (*models.Category, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Category, error)
}

// TransactionService implements owner-scoped transaction operations and
// summary aggregation.
type TransactionService struct {
	repo       TransactionRepository
	categories CategoryReader
}

// NewTransactionService constructs a TransactionService with the provided
// repositories.
func NewTransactionService(repo TransactionRepository, categories CategoryReader) *TransactionService {
	return &TransactionService{repo: repo, categories: categories}
}

// TransactionPatch holds the fields of a transaction update. Nil fields
// keep their current value.
type TransactionPatch struct {
	CategoryID  *string
	Amount      *float64
	Description *string
	Date        *time.Time
}

// checkCategory verifies the referenced category exists and belongs to the
// user. A category owned by someone else looks absent at the repository
// layer, so both cases surface as the same validation failure.
func (s *TransactionService) checkCategory(ctx context.Context, userID, categoryID string) error {
	if categoryID == "" {
		return models.Validationf("category is required")
	}
	_, err := s.categories.GetByOwner(ctx, userID, categoryID)
	if errors.Is(err, models.ErrNotFound) {
		return models.Validationf("unknown category")
	}
	return err
}

// Create validates and persists a new transaction for the user. The
// referenced category must belong to the same user. A zero date defaults
// to now.
func (s *TransactionService) Create(ctx context.Context, userID, categoryID string, amount float64, description string, date time.Time) (*models.Transaction, error) {
	if err := s.checkCategory(ctx, userID, categoryID); err != nil {
		return nil, err
	}
	now := time.Now()
	if date.IsZero() {
		date = now
	}
	t := &models.Transaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: description,
		Date:        date,
		CreatedAt:   now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns the user's transactions matching the filter.
func (s *TransactionService) List(ctx context.Context, userID string, filter models.TransactionFilter) ([]models.Transaction, error) {
	return s.repo.ListByOwner(ctx, userID, filter)
}

// Get returns a single transaction of the user.
func (s *TransactionService) Get(ctx context.Context, userID, id string) (*models.Transaction, error) {
	return s.repo.GetByOwner(ctx, userID, id)
}

// Update applies the patch to the user's transaction and stores it. A
// changed category reference is re-verified against the user's categories.
func (s *TransactionService) Update(ctx context.Context, userID, id string, patch TransactionPatch) (*models.Transaction, error) {
	t, err := s.repo.GetByOwner(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if patch.CategoryID != nil {
		if err := s.checkCategory(ctx, userID, *patch.CategoryID); err != nil {
			return nil, err
		}
		t.CategoryID = *patch.CategoryID
	}
	if patch.Amount != nil {
		t.Amount = *patch.Amount
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Date != nil {
		t.Date = *patch.Date
	}
	if err := s.repo.UpdateByOwner(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes the user's transaction.
func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.DeleteByOwner(ctx, userID, id)
}

// GetSummary folds the user's transactions matching the filter into income
// and expense totals, classified by the referenced category's type.
// Transactions whose category no longer exists are skipped. Net is always
// income minus expense.
func (s *TransactionService) GetSummary(ctx context.Context, userID string, filter models.TransactionFilter) (*models.Summary, error) {
	transactions, err := s.repo.ListByOwner(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	types := make(map[string]models.CategoryType, len(categories))
	for _, c := range categories {
		types[c.ID] = c.Type
	}

	var sum models.Summary
	for _, t := range transactions {
		switch types[t.CategoryID] {
		case models.Income:
			sum.Income += t.Amount
		case models.Expense:
			sum.Expense += t.Amount
		}
	}
	sum.Net = sum.Income - sum.Expense
	return &sum, nil
}
