package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/api"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/apperrors"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/config"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/database"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/quotes"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/repository"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)
	fxRateRepo := repository.NewFxRateRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	settingsService, err := service.NewSettingsService(settingRepo, cfg.Crypto.FernetKey)
	if err != nil {
		log.Fatalf("Failed to initialize settings service: %v", err)
	}

	quoteClient := quotes.NewClient(loadQuoteToken(settingsService))
	priceService := service.NewPriceService(quoteClient)
	fxRateService := service.NewFxRateService(fxRateRepo, cfg.FX.FallbackRate)
	consolidationService := service.NewConsolidationService(
		transactionRepo,
		snapshotRepo,
		fxRateService,
		priceService,
	)
	transactionService := service.NewTransactionService(
		transactionRepo,
		consolidationService,
	)

	// Nightly snapshot rebuild keeps the materialized equity curve honest
	// even if an in-request rebuild was skipped after a failure.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("30 3 * * *", func() {
		if err := consolidationService.RebuildEquitySnapshots(); err != nil {
			log.Printf("Scheduled snapshot rebuild failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule snapshot rebuild: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(
		systemService,
		settingsService,
		priceService,
		consolidationService,
		transactionService,
		fxRateService,
		cfg,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// loadQuoteToken reads the stored quote provider token, if any. A missing
// setting just means the free tier is used.
func loadQuoteToken(settingsService *service.SettingsService) string {
	setting, err := settingsService.GetSetting(service.QuoteProviderTokenKey)
	if err != nil {
		if !errors.Is(err, apperrors.ErrSettingNotFound) {
			log.Printf("Failed to load quote provider token: %v", err)
		}
		return ""
	}
	return setting.Value
}
