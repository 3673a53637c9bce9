package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"finbook/internal/middleware"
	"finbook/internal/models"
	"finbook/internal/service"
)

// TransactionService defines the transaction operations required by the
// HTTP handlers. Every operation is scoped to the authenticated user.
type TransactionService interface {
	Create(ctx context.Context, userID, categoryID string, amount float64, description string, date time.Time) (*models.Transaction, error)
	List(ctx context.Context, userID string, filter models.TransactionFilter) ([]models.Transaction, error)
	Get(ctx context.Context, userID, id string) (*models.Transaction, error)
	Update(ctx context.Context, userID, id string, patch service.TransactionPatch) (*models.Transaction, error)
	Delete(ctx context.Context, userID, id string) error
	GetSummary(ctx context.Context, userID string, filter models.TransactionFilter) (*models.Summary, error)
}

// TransactionHandler handles HTTP requests for transaction CRUD and
// summaries.
type TransactionHandler struct {
	// Transactions performs the underlying transaction operations.
	Transactions TransactionService
}

// TransactionRequest represents the JSON payload for creating or updating a
// transaction. Absent fields are left unchanged on update.
type TransactionRequest struct {
	CategoryID  *string    `json:"category_id"`
	Amount      *float64   `json:"amount"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
}

// Create handles POST /transactions. category_id and amount are required;
// date defaults to now.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Amount == nil {
		writeError(w, http.StatusBadRequest, "amount is required")
		return
	}

	var categoryID string
	if req.CategoryID != nil {
		categoryID = *req.CategoryID
	}
	var description string
	if req.Description != nil {
		description = *req.Description
	}
	var date time.Time
	if req.Date != nil {
		date = *req.Date
	}

	userID := middleware.GetUserIDFromContext(r.Context())
	transaction, err := h.Transactions.Create(r.Context(), userID, categoryID, *req.Amount, description, date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, transaction)
}

// List handles GET /transactions with optional from/to/category query
// parameters.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := middleware.GetUserIDFromContext(r.Context())
	transactions, err := h.Transactions.List(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	writeJSON(w, http.StatusOK, transactions)
}

// Get handles GET /transactions/{id}.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	transaction, err := h.Transactions.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transaction)
}

// Update handles PUT /transactions/{id}.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	patch := service.TransactionPatch{
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
	}

	userID := middleware.GetUserIDFromContext(r.Context())
	transaction, err := h.Transactions.Update(r.Context(), userID, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transaction)
}

// Delete handles DELETE /transactions/{id}.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if err := h.Transactions.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
}

// Summary handles GET /transactions/summary with optional from/to/category
// query parameters.
func (h *TransactionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := middleware.GetUserIDFromContext(r.Context())
	summary, err := h.Transactions.GetSummary(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// parseFilter reads from/to/category query parameters. Dates accept
// RFC 3339 timestamps or plain YYYY-MM-DD dates.
func parseFilter(r *http.Request) (models.TransactionFilter, error) {
	var filter models.TransactionFilter

	if v := r.URL.Query().Get("from"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return filter, err
		}
		filter.From = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return filter, err
		}
		filter.To = &t
	}
	filter.CategoryID = r.URL.Query().Get("category")

	return filter, nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, models.Validationf("invalid date %q", v)
	}
	return t, nil
}
