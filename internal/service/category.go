package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"finbook/internal/models"
)

// CategoryRepository defines the owner-scoped persistence operations
// required by the CategoryService.
type CategoryRepository interface {
	// Create persists a new category stamped with its owner.
	Create(ctx context.Context, c *models.Category) error
	// ListByOwner fetches all categories belonging to the specified user.
	ListByOwner(ctx context.Context, userID string) ([]models.Category, error)
	// GetByOwner fetches a single category by ID for the specified user.
	GetByOwner(ctx context.Context, userID, id string) (*models.Category, error)
	// UpdateByOwner stores the new fields of an existing category.
	UpdateByOwner(ctx context.Context, c *models.Category) error
	// DeleteByOwner removes a category for the specified user.
	DeleteByOwner(ctx context.Context, userID, id string) error
}

// CategoryService implements owner-scoped category operations.
type CategoryService struct {
	repo CategoryRepository
}

// NewCategoryService constructs a CategoryService with the provided
// repository.
func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CategoryPatch holds the fields of a category update. Nil fields keep
// their current value.
type CategoryPatch struct {
	Name *string
	Type *models.CategoryType
}

func validateCategory(c *models.Category) error {
	if c.Name == "" {
		return models.Validationf("name is required")
	}
	if !c.Type.Valid() {
		return models.Validationf("type must be %q or %q", models.Income, models.Expense)
	}
	return nil
}

// Create validates and persists a new category for the user.
func (s *CategoryService) Create(ctx context.Context, userID, name string, ctype models.CategoryType) (*models.Category, error) {
	c := &models.Category{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Type:      ctype,
		CreatedAt: time.Now(),
	}
	if err := validateCategory(c); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns all categories of the user.
func (s *CategoryService) List(ctx context.Context, userID string) ([]models.Category, error) {
	return s.repo.ListByOwner(ctx, userID)
}

// Get returns a single category of the user.
func (s *CategoryService) Get(ctx context.Context, userID, id string) (*models.Category, error) {
	return s.repo.GetByOwner(ctx, userID, id)
}

// Update applies the patch to the user's category, re-validates the result,
// and stores it.
func (s *CategoryService) Update(ctx context.Context, userID, id string, patch CategoryPatch) (*models.Category, error) {
	c, err := s.repo.GetByOwner(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Type != nil {
		c.Type = *patch.Type
	}
	if err := validateCategory(c); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateByOwner(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the user's category.
func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.DeleteByOwner(ctx, userID, id)
}
