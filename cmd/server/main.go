// Package main initializes and starts the finbook HTTP server, setting up
// configuration, logging, the database connection, repositories, services,
// and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"finbook/internal/config"
	"finbook/internal/db"
	"finbook/internal/logger"
	"finbook/internal/repository"
	"finbook/internal/server/handler/http"
	"finbook/internal/service"
	"finbook/internal/token"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// A missing signing secret is a configuration error, not something to
	// limp along without.
	if options.TokenSecret == "" {
		zapLogger.Fatal("token secret is not configured")
	}

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Purge soft-deleted categories and transactions in the background.
	db.StartSoftDeleteCleaner(context.Background(), postgresDB,
		time.Hour,
		options.Retention,
		zapLogger,
	)

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	categoryRepo := repository.NewPostgresCategoryRepository(postgresDB)
	transactionRepo := repository.NewPostgresTransactionRepository(postgresDB)

	// Credential token manager.
	tokens := token.New(options.TokenSecret, options.TokenTTL)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, tokens)
	categoryService := service.NewCategoryService(categoryRepo)
	transactionService := service.NewTransactionService(transactionRepo, categoryRepo)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService}
	categoryHandler := &http.CategoryHandler{Categories: categoryService}
	transactionHandler := &http.TransactionHandler{Transactions: transactionService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, categoryHandler, transactionHandler, tokens, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
