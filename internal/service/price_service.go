package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/model"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/pricing"
)

// PriceRefresher refreshes the price cache on demand.
type PriceRefresher interface {
	Refresh(ctx context.Context) (map[string]float64, error)
}

// PriceService exposes the price cache and on-demand refreshes.
type PriceService struct {
	cache     *pricing.Cache
	refresher PriceRefresher
}

// NewPriceService creates a new PriceService
func NewPriceService(cache *pricing.Cache, refresher PriceRefresher) *PriceService {
	return &PriceService{
		cache:     cache,
		refresher: refresher,
	}
}

// GetPrices returns a copy of the cached prices and when they were last replaced.
func (s *PriceService) GetPrices() model.PriceSnapshot {
	snap := model.PriceSnapshot{Prices: s.cache.Snapshot()}
	if t := s.cache.UpdatedAt(); !t.IsZero() {
		snap.UpdatedAt = &t
	}
	return snap
}

// RefreshPrices fetches prices for the ledger's tickers now. When every source
// fails the error wraps apperrors.ErrPriceSourceUnavailable and the cache keeps
// its previous content.
func (s *PriceService) RefreshPrices(ctx context.Context) (model.PriceSnapshot, error) {
	if _, err := s.refresher.Refresh(ctx); err != nil {
		return model.PriceSnapshot{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRefreshPrices, err)
	}
	return s.GetPrices(), nil
}
