package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"finbook/internal/middleware"
	"finbook/internal/models"
	"finbook/internal/service"
)

// CategoryService defines the category operations required by the HTTP
// handlers. Every operation is scoped to the authenticated user.
type CategoryService interface {
	Create(ctx context.Context, userID, name string, ctype models.CategoryType) (*models.Category, error)
	List(ctx context.Context, userID string) ([]models.Category, error)
	Get(ctx context.Context, userID, id string) (*models.Category, error)
	Update(ctx context.Context, userID, id string, patch service.CategoryPatch) (*models.Category, error)
	Delete(ctx context.Context, userID, id string) error
}

// CategoryHandler handles HTTP requests for category CRUD.
type CategoryHandler struct {
	// Categories performs the underlying category operations.
	Categories CategoryService
}

// CategoryRequest represents the JSON payload for creating or updating a
// category. Absent fields are left unchanged on update.
type CategoryRequest struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	var name string
	if req.Name != nil {
		name = *req.Name
	}
	var ctype models.CategoryType
	if req.Type != nil {
		ctype = models.CategoryType(*req.Type)
	}

	userID := middleware.GetUserIDFromContext(r.Context())
	category, err := h.Categories.Create(r.Context(), userID, name, ctype)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

// List handles GET /categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	categories, err := h.Categories.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// Get handles GET /categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	category, err := h.Categories.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// Update handles PUT /categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	patch := service.CategoryPatch{Name: req.Name}
	if req.Type != nil {
		t := models.CategoryType(*req.Type)
		patch.Type = &t
	}

	userID := middleware.GetUserIDFromContext(r.Context())
	category, err := h.Categories.Update(r.Context(), userID, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /categories/{id}.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if err := h.Categories.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
