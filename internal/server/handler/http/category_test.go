package http_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"finbook/internal/middleware"
	"finbook/internal/models"
	handler "finbook/internal/server/handler/http"
	"finbook/internal/service"
)

// fakeCategoryService implements handler.CategoryService for testing.
type fakeCategoryService struct {
	receivedUserID string

	category *models.Category
	list     []models.Category
	err      error
}

func (f *fakeCategoryService) Create(ctx context.Context, userID, name string, ctype models.CategoryType) (*models.Category, error) {
	f.receivedUserID = userID
	return f.category, f.err
}
func (f *fakeCategoryService) List(ctx context.Context, userID string) ([]models.Category, error) {
	f.receivedUserID = userID
	return f.list, f.err
}
func (f *fakeCategoryService) Get(ctx context.Context, userID, id string) (*models.Category, error) {
	f.receivedUserID = userID
	return f.category, f.err
}
func (f *fakeCategoryService) Update(ctx context.Context, userID, id string, patch service.CategoryPatch) (*models.Category, error) {
	f.receivedUserID = userID
	return f.category, f.err
}
func (f *fakeCategoryService) Delete(ctx context.Context, userID, id string) error {
	f.receivedUserID = userID
	return f.err
}

// newAuthedRequest builds a request carrying an authenticated user and a
// chi route context with an {id} URL parameter.
func newAuthedRequest(method, target, userID, id, body string) *http.Request {
	var rdr *bytes.Buffer
	if body != "" {
		rdr = bytes.NewBufferString(body)
	} else {
		rdr = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, rdr)
	ctx := middleware.WithUserID(req.Context(), userID)
	if id != "" {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	}
	return req.WithContext(ctx)
}

func TestCategoryHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        *fakeCategoryService
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "invalid JSON",
			body:           `not a json`,
			service:        &fakeCategoryService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "invalid request",
		},
		{
			name:           "invalid type",
			body:           `{"name":"Stuff","type":"savings"}`,
			service:        &fakeCategoryService{err: models.Validationf("type must be %q or %q", models.Income, models.Expense)},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "type must be",
		},
		{
			name: "success",
			body: `{"name":"Salary","type":"income"}`,
			service: &fakeCategoryService{
				category: &models.Category{ID: "c1", UserID: "u1", Name: "Salary", Type: models.Income},
			},
			expectedCode:   http.StatusCreated,
			expectedSubstr: `"name":"Salary"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := newAuthedRequest("POST", "/categories", "u1", "", tt.body)
			h := &handler.CategoryHandler{Categories: tt.service}
			h.Create(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if !bytes.Contains(rec.Body.Bytes(), []byte(tt.expectedSubstr)) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestCategoryHandler_Create_UsesContextUser(t *testing.T) {
	service := &fakeCategoryService{category: &models.Category{ID: "c1"}}
	rec := httptest.NewRecorder()
	req := newAuthedRequest("POST", "/categories", "u42", "", `{"name":"Salary","type":"income"}`)
	h := &handler.CategoryHandler{Categories: service}
	h.Create(rec, req)

	if service.receivedUserID != "u42" {
		t.Errorf("expected service to receive user u42, got %q", service.receivedUserID)
	}
}

func TestCategoryHandler_List_EmptyIsArray(t *testing.T) {
	service := &fakeCategoryService{}
	rec := httptest.NewRecorder()
	req := newAuthedRequest("GET", "/categories", "u1", "", "")
	h := &handler.CategoryHandler{Categories: service}
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("expected empty array body, got %q", body)
	}
}

func TestCategoryHandler_Get_NotFound(t *testing.T) {
	// Absent records and records of other users surface identically.
	service := &fakeCategoryService{err: models.ErrNotFound}
	rec := httptest.NewRecorder()
	req := newAuthedRequest("GET", "/categories/c1", "u2", "c1", "")
	h := &handler.CategoryHandler{Categories: service}
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("not found")) {
		t.Errorf("expected generic not found body, got %q", rec.Body.String())
	}
}

func TestCategoryHandler_Update(t *testing.T) {
	service := &fakeCategoryService{
		category: &models.Category{ID: "c1", UserID: "u1", Name: "Bonus", Type: models.Income},
	}
	rec := httptest.NewRecorder()
	req := newAuthedRequest("PUT", "/categories/c1", "u1", "c1", `{"name":"Bonus"}`)
	h := &handler.CategoryHandler{Categories: service}
	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"name":"Bonus"`)) {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestCategoryHandler_Delete(t *testing.T) {
	tests := []struct {
		name         string
		service      *fakeCategoryService
		expectedCode int
	}{
		{"success", &fakeCategoryService{}, http.StatusOK},
		{"not found", &fakeCategoryService{err: models.ErrNotFound}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := newAuthedRequest("DELETE", "/categories/c1", "u1", "c1", "")
			h := &handler.CategoryHandler{Categories: tt.service}
			h.Delete(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
		})
	}
}
