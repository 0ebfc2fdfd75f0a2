package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/api/handlers"
	custommiddleware "github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/api/middleware"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/config"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	settingsService *service.SettingsService,
	priceService *service.PriceService,
	consolidationService *service.ConsolidationService,
	transactionService *service.TransactionService,
	fxRateService *service.FxRateService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService, settingsService, priceService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.Route("/settings/{key}", func(r chi.Router) {
				r.Get("/", systemHandler.GetSetting)
				r.Put("/", systemHandler.SetSetting)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(consolidationService)
			r.Get("/", portfolioHandler.Portfolio)
			r.Get("/history", portfolioHandler.History)
			r.Get("/gains", portfolioHandler.Gains)
		})

		r.Route("/tax", func(r chi.Router) {
			taxHandler := handlers.NewTaxHandler(consolidationService)
			r.Get("/report", taxHandler.Report)
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(transactionService)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
				r.Get("/matches", transactionHandler.SellMatches)
			})
		})

		r.Route("/rates", func(r chi.Router) {
			rateHandler := handlers.NewRateHandler(fxRateService)
			r.Get("/", rateHandler.GetRate)
			r.Post("/", rateHandler.SetRate)
		})

		r.Route("/import", func(r chi.Router) {
			importHandler := handlers.NewImportHandler(transactionService)
			r.Post("/csv", importHandler.ImportCSV)
		})
	})

	return r
}
