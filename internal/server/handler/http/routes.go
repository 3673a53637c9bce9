// Package http provides HTTP routing and middleware configuration for the
// finbook service.
package http

import (
	"net/http"

	"go.uber.org/zap"

	"finbook/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the finbook
// API. It applies JSON content-type enforcement and request logging, and
// mounts the auth endpoints publicly and the category and transaction
// endpoints behind bearer-token authentication.
//
// Routes:
//
//	POST   /auth/register             → authHandler.Register
//	POST   /auth/login                → authHandler.Login
//	POST   /categories                → categoryHandler.Create
//	GET    /categories                → categoryHandler.List
//	GET    /categories/{id}           → categoryHandler.Get
//	PUT    /categories/{id}           → categoryHandler.Update
//	DELETE /categories/{id}           → categoryHandler.Delete
//	POST   /transactions              → transactionHandler.Create
//	GET    /transactions              → transactionHandler.List
//	GET    /transactions/summary      → transactionHandler.Summary
//	GET    /transactions/{id}         → transactionHandler.Get
//	PUT    /transactions/{id}         → transactionHandler.Update
//	DELETE /transactions/{id}         → transactionHandler.Delete
func NewRouter(
	authHandler *AuthHandler,
	categoryHandler *CategoryHandler,
	transactionHandler *TransactionHandler,
	verifier middleware.TokenVerifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Public endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Protected group: requires a valid bearer token
	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(verifier))

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", categoryHandler.Create)
			r.Get("/", categoryHandler.List)
			r.Get("/{id}", categoryHandler.Get)
			r.Put("/{id}", categoryHandler.Update)
			r.Delete("/{id}", categoryHandler.Delete)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", transactionHandler.Create)
			r.Get("/", transactionHandler.List)
			r.Get("/summary", transactionHandler.Summary)
			r.Get("/{id}", transactionHandler.Get)
			r.Put("/{id}", transactionHandler.Update)
			r.Delete("/{id}", transactionHandler.Delete)
		})
	})

	return r
}
