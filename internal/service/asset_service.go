package service

import (
	"context"
	"time"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/ledger"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/model"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/validation"
)

// PriceTrigger schedules an asynchronous price refresh.
type PriceTrigger interface {
	Trigger()
}

// AssetService handles ledger operations for the API.
// Mutations that add, change or drop a ticker trigger a price refresh so the
// dashboard picks up new tickers without waiting for the next interval.
type AssetService struct {
	ledger *ledger.Ledger
	prices PriceTrigger
}

// NewAssetService creates a new AssetService. prices may be nil.
func NewAssetService(l *ledger.Ledger, prices PriceTrigger) *AssetService {
	return &AssetService{
		ledger: l,
		prices: prices,
	}
}

// GetAssets returns every asset in insertion order.
func (s *AssetService) GetAssets() []model.Asset {
	return s.ledger.List()
}

// GetAsset returns a single asset, or apperrors.ErrAssetNotFound.
func (s *AssetService) GetAsset(id string) (model.Asset, error) {
	return s.ledger.Get(id)
}

// CreateAsset adds a validated asset and returns it with its new id.
func (s *AssetService) CreateAsset(ctx context.Context, req request.CreateAssetRequest) (model.Asset, error) {
	id, err := s.ledger.Add(ctx, req.ToFields())
	if err != nil {
		return model.Asset{}, err
	}

	asset, err := s.ledger.Get(id)
	if err != nil {
		return model.Asset{}, err
	}

	if asset.Type.IsTradeable() {
		s.triggerRefresh()
	}
	return asset, nil
}

// UpdateAsset merges the provided fields into an existing asset. The merged
// record is validated as a whole, so a type change must bring the fields the
// new type requires.
func (s *AssetService) UpdateAsset(ctx context.Context, id string, req request.UpdateAssetRequest, now time.Time) (model.Asset, error) {
	before, err := s.ledger.Get(id)
	if err != nil {
		return model.Asset{}, err
	}

	asset, err := s.ledger.Update(ctx, id, req.ToFields(), func(f model.AssetFields) error {
		return validation.ValidateAsset(f, now)
	})
	if err != nil {
		return model.Asset{}, err
	}

	if before.Ticker() != asset.Ticker() {
		s.triggerRefresh()
	}
	return asset, nil
}

// DeleteAsset removes an asset. It reports whether the asset existed.
func (s *AssetService) DeleteAsset(ctx context.Context, id string) (bool, error) {
	before, err := s.ledger.Get(id)
	if err != nil {
		return false, nil
	}

	removed, err := s.ledger.Remove(ctx, id)
	if err != nil {
		return false, err
	}

	if removed && before.Type.IsTradeable() {
		s.triggerRefresh()
	}
	return removed, nil
}

// SeedSampleAssets loads the sample portfolio into an empty ledger.
func (s *AssetService) SeedSampleAssets(ctx context.Context) (int, error) {
	n, err := s.ledger.Seed(ctx, SampleAssets()...)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.triggerRefresh()
	}
	return n, nil
}

func (s *AssetService) triggerRefresh() {
	if s.prices != nil {
		s.prices.Trigger()
	}
}
