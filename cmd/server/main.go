package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/cm-analytics/eventcheck/internal/alert"
	"github.com/cm-analytics/eventcheck/internal/check"
	"github.com/cm-analytics/eventcheck/internal/config"
	"github.com/cm-analytics/eventcheck/internal/db"
	"github.com/cm-analytics/eventcheck/internal/middleware"
	"github.com/cm-analytics/eventcheck/internal/queryplan"
	"github.com/cm-analytics/eventcheck/internal/warehouse"
	"github.com/cm-analytics/eventcheck/internal/whitelist"
)

func main() {
	// Create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Whitelist source: local workbook when configured, Google Sheets
	// otherwise.
	var source whitelist.Source
	if cfg.Whitelist.WorkbookPath != "" {
		source = whitelist.NewWorkbookSource(cfg.Whitelist.WorkbookPath)
	} else {
		sheetsSource, err := whitelist.NewSheetsSource(ctx, cfg.Whitelist.CredentialsFile, cfg.Whitelist.SpreadsheetURL)
		if err != nil {
			log.Fatalf("Failed to initialize the whitelist source: %v", err)
		}
		source = sheetsSource
	}

	// Warehouse backend
	dialect, err := queryplan.DialectByName(cfg.Warehouse.Backend)
	if err != nil {
		log.Fatalf("Failed to select warehouse dialect: %v", err)
	}
	planner := queryplan.NewPlanner(dialect, cfg.Warehouse.SourceTable)

	var store warehouse.Store
	switch cfg.Warehouse.Backend {
	case "postgres":
		conn, err := db.NewConnection(ctx, cfg.Postgres)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer conn.Close()

		// Run migrations
		if err := db.RunMigrations(ctx, conn.Pool, cfg.Warehouse.MigrationsPath); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		store = warehouse.NewPostgresStore(conn)
	default:
		bqStore, err := warehouse.NewBigQueryStore(ctx, cfg.Warehouse.ProjectID, cfg.Warehouse.CredentialsFile)
		if err != nil {
			log.Fatalf("Failed to connect to BigQuery: %v", err)
		}
		defer bqStore.Close()
		store = bqStore
	}

	// Alerts are best-effort and optional.
	var alerts alert.Dispatcher
	if cfg.Slack.Token != "" && cfg.Slack.ChannelID != "" {
		alerts = alert.NewSlackDispatcher(cfg.Slack.Token, cfg.Slack.ChannelID)
	} else {
		log.Println("Slack alerting disabled: no token or channel configured")
	}

	service := check.NewService(source, planner, store, alerts, cfg.Warehouse.ResultsTable)

	// Setup CORS
	corsHandler := cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	mux := http.NewServeMux()
	mux.Handle("/check", corsHandler.Handler(middleware.LoggingMiddleware(check.NewHTTPHandler(service))))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting event-quality checker on %s", cfg.Server.Addr)
		log.Printf("Check endpoint available at http://localhost%s/check", cfg.Server.Addr)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
