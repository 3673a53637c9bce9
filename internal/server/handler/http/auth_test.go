package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"finbook/internal/models"
	handler "finbook/internal/server/handler/http"
)

// fakeAuthService implements handler.AuthService for testing.
type fakeAuthService struct {
	user  *models.User
	token string
	err   error
}

func (f *fakeAuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	return f.user, f.token, f.err
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	return f.user, f.token, f.err
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        *fakeAuthService
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "invalid JSON",
			body:           `not a json`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "invalid request",
		},
		{
			name:           "validation failure",
			body:           `{"name":"","email":"a@x.com","password":"longenough"}`,
			service:        &fakeAuthService{err: models.Validationf("name is required")},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "name is required",
		},
		{
			name:           "duplicate email",
			body:           `{"name":"A","email":"a@x.com","password":"longenough"}`,
			service:        &fakeAuthService{err: models.ErrEmailTaken},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "email already registered",
		},
		{
			name:           "store failure",
			body:           `{"name":"A","email":"a@x.com","password":"longenough"}`,
			service:        &fakeAuthService{err: errors.New("db down")},
			expectedCode:   http.StatusInternalServerError,
			expectedSubstr: "internal error",
		},
		{
			name: "success",
			body: `{"name":"A","email":"a@x.com","password":"longenough"}`,
			service: &fakeAuthService{
				user:  &models.User{ID: "u1", Name: "A", Email: "a@x.com"},
				token: "tok-1",
			},
			expectedCode:   http.StatusCreated,
			expectedSubstr: `"token":"tok-1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/auth/register", bytes.NewBufferString(tt.body))
			h := &handler.AuthHandler{AuthService: tt.service}
			h.Register(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}

			buf := new(bytes.Buffer)
			if _, err := buf.ReadFrom(res.Body); err != nil {
				t.Fatalf("failed to read body: %v", err)
			}
			if !bytes.Contains(buf.Bytes(), []byte(tt.expectedSubstr)) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedSubstr, buf.String())
			}
		})
	}
}

func TestAuthHandler_Register_NeverEchoesPasswordHash(t *testing.T) {
	service := &fakeAuthService{
		user: &models.User{
			ID: "u1", Name: "A", Email: "a@x.com",
			PasswordHash: []byte("super-secret-hash"),
		},
		token: "tok-1",
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/register",
		bytes.NewBufferString(`{"name":"A","email":"a@x.com","password":"longenough"}`))
	h := &handler.AuthHandler{AuthService: service}
	h.Register(rec, req)

	if bytes.Contains(rec.Body.Bytes(), []byte("super-secret-hash")) {
		t.Error("response body leaked the password hash")
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        *fakeAuthService
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "invalid JSON",
			body:           `not a json`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "invalid request",
		},
		{
			name:           "bad credentials",
			body:           `{"email":"a@x.com","password":"wrong"}`,
			service:        &fakeAuthService{err: models.ErrInvalidCredentials},
			expectedCode:   http.StatusUnauthorized,
			expectedSubstr: "invalid credentials",
		},
		{
			name:           "store failure",
			body:           `{"email":"a@x.com","password":"longenough"}`,
			service:        &fakeAuthService{err: errors.New("db down")},
			expectedCode:   http.StatusInternalServerError,
			expectedSubstr: "internal error",
		},
		{
			name: "success",
			body: `{"email":"a@x.com","password":"longenough"}`,
			service: &fakeAuthService{
				user:  &models.User{ID: "u1", Email: "a@x.com"},
				token: "tok-1",
			},
			expectedCode:   http.StatusOK,
			expectedSubstr: `"token":"tok-1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/auth/login", bytes.NewBufferString(tt.body))
			h := &handler.AuthHandler{AuthService: tt.service}
			h.Login(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}

			buf := new(bytes.Buffer)
			if _, err := buf.ReadFrom(res.Body); err != nil {
				t.Fatalf("failed to read body: %v", err)
			}
			if !bytes.Contains(buf.Bytes(), []byte(tt.expectedSubstr)) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedSubstr, buf.String())
			}
		})
	}
}

func TestAuthHandler_Login_UniformMessage(t *testing.T) {
	// The body must not reveal whether the email or the password was wrong.
	service := &fakeAuthService{err: models.ErrInvalidCredentials}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login",
		bytes.NewBufferString(`{"email":"nobody@x.com","password":"whatever1"}`))
	h := &handler.AuthHandler{AuthService: service}
	h.Login(rec, req)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "invalid credentials" {
		t.Errorf("expected generic message, got %q", body["error"])
	}
}
