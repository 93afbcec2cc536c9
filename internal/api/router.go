package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Wealth-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/config"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	assetService *service.AssetService,
	dashboardService *service.DashboardService,
	priceService *service.PriceService,
	cfg *config.Config,
	logger logrus.FieldLogger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/asset", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(assetService, dashboardService)
			r.Get("/", assetHandler.Assets)
			r.Post("/", assetHandler.CreateAsset)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", assetHandler.Asset)
				r.Put("/", assetHandler.UpdateAsset)
				r.Delete("/", assetHandler.DeleteAsset)
				r.Get("/roi", assetHandler.AssetROI)
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			dashboardHandler := handlers.NewDashboardHandler(dashboardService)
			r.Get("/", dashboardHandler.Dashboard)
			r.Get("/net-worth", dashboardHandler.NetWorth)
			r.Get("/yearly-income", dashboardHandler.YearlyIncome)
			r.Get("/allocation", dashboardHandler.Allocation)
		})

		r.Route("/prices", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(priceService)
			r.Get("/", priceHandler.Prices)
			r.Post("/refresh", priceHandler.RefreshPrices)
		})
	})

	return r
}
