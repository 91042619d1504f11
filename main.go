package main

//go:generate swag init

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"contactbook/db"
	_ "contactbook/docs"
	"contactbook/handlers"
	"contactbook/store"
)

// @title           Contact Book API
// @version         1.0.0
// @description     API for managing contacts with typed contact details, bookmarks, and backup import/export.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.basic  BasicAuth

func main() {
	// Load .env if present, then configure structured logging
	_ = godotenv.Load()

	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// Open database
	database, dialect, err := db.Open()
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Run migrations
	if err := db.Migrate(database, dialect); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Set shared store for handlers
	handlers.Store = store.New(database, dialect)

	// Router setup
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// API routes with basic auth
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(handlers.BasicAuth)

		// Contacts
		r.Get("/contacts", handlers.ListContacts)
		r.Post("/contacts", handlers.CreateContact)
		r.Get("/contacts/{id}", handlers.GetContact)
		r.Put("/contacts/{id}", handlers.UpdateContact)
		r.Delete("/contacts/{id}", handlers.DeleteContact)
		r.Put("/contacts/{id}/bookmark", handlers.ToggleBookmark)

		// Backup transfer
		r.Get("/export", handlers.ExportContacts)
		r.Post("/import", handlers.ImportContacts)
	})

	// Health check, unauthenticated
	r.Get("/health", handlers.Health)

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := fmt.Sprintf(":%s", port)
	slog.Info("server starting", "address", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
