package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/api"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/coingecko"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/config"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/database"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/ledger"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/logging"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/model"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/pricing"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/service"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/version"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/yahoo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(ctx)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Logging, os.Stdout)
	if err != nil {
		logrus.Fatalf("Failed to create logger: %v", err)
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db, logging.GooseLogger{Logger: logger}); err != nil {
		return err
	}
	logger.WithField("path", cfg.Database.Path).Info("Connected to database")

	key, err := cfg.Storage.FernetKey()
	if err != nil {
		return err
	}
	if key != nil {
		logger.Info("Ledger snapshots are encrypted at rest")
	}

	// Load the ledger; a snapshot that cannot be read stops startup
	l := ledger.New(repository.NewSnapshotRepository(db, key), cfg.Storage.Key, logger)
	if err := l.Load(ctx); err != nil {
		return err
	}

	cache := pricing.NewCache()
	refresher, err := newRefresher(cfg, cache, l, logger)
	if err != nil {
		return err
	}

	// Create services
	systemService := service.NewSystemService(db)
	assetService := service.NewAssetService(l, refresher)
	dashboardService := service.NewDashboardService(l, cache)
	priceService := service.NewPriceService(cache, refresher)

	if cfg.SeedSampleData {
		n, err := assetService.SeedSampleAssets(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			logger.WithField("assets", n).Info("Seeded sample assets")
		}
	}

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	refreshDone := make(chan struct{})
	go func() {
		defer close(refreshDone)
		refresher.Run(refreshCtx)
	}()
	defer func() {
		cancelRefresh()
		<-refreshDone
	}()

	// Create router
	router := api.NewRouter(systemService, assetService, dashboardService, priceService, cfg, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"addr":    server.Addr,
			"version": version.Version,
			"prices":  cfg.Prices.Source,
		}).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for interrupt signal for graceful shutdown
	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("Server exited")
	return nil
}

// newRefresher routes crypto tickers to CoinGecko and stock tickers to Yahoo
// Finance, or both to fixed prices when PRICES_SOURCE is static.
func newRefresher(cfg *config.Config, cache *pricing.Cache, assets pricing.AssetLister, logger *logrus.Logger) (*pricing.Refresher, error) {
	var crypto, stock pricing.Source
	switch cfg.Prices.Source {
	case config.PriceSourceStatic:
		static := pricing.NewStaticSource(nil)
		crypto, stock = static, static
	default:
		crypto = coingecko.NewClient(cfg.Prices.CoinGeckoURL, cfg.Prices.FetchTimeout)
		stock = yahoo.NewClient(cfg.Prices.YahooURL, cfg.Prices.FetchTimeout, cfg.Prices.MaxConcurrency)
	}

	return pricing.NewRefresher(cache, assets,
		pricing.WithSource(model.AssetTypeCrypto, crypto),
		pricing.WithSource(model.AssetTypeStock, stock),
		pricing.WithInterval(cfg.Prices.RefreshInterval),
		pricing.WithTimeout(cfg.Prices.FetchTimeout),
		pricing.WithLogger(logger),
	)
}
