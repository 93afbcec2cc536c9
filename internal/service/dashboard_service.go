package service

import (
	"time"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/model"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/pricing"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/valuation"
)

// AssetReader provides read access to the ledger.
type AssetReader interface {
	List() []model.Asset
	Get(id string) (model.Asset, error)
}

// DashboardService derives the dashboard figures from the ledger and the price cache.
// Every call reads one copy of each, so the figures of a single response are
// computed against the same prices even while a refresh lands.
type DashboardService struct {
	assets AssetReader
	prices *pricing.Cache
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(assets AssetReader, prices *pricing.Cache) *DashboardService {
	return &DashboardService{
		assets: assets,
		prices: prices,
	}
}

// GetSummary returns every dashboard figure plus a valuation row per asset.
func (s *DashboardService) GetSummary(now time.Time) model.DashboardSummary {
	assets := s.assets.List()
	prices := valuation.Prices(s.prices.Snapshot())

	allocation := valuation.Allocation(assets, prices)
	rows := make([]model.AssetValuation, len(assets))
	for i, a := range assets {
		rows[i] = valuate(a, prices, now)
	}

	return model.DashboardSummary{
		NetWorth:     valuation.NetWorth(assets, prices),
		YearlyIncome: valuation.YearlyIncome(assets),
		Allocation:   allocation,
		Shares:       valuation.Shares(allocation),
		Assets:       rows,
		PricesAsOf:   s.pricesAsOf(),
	}
}

// GetNetWorth returns assets minus credit balances at current prices.
func (s *DashboardService) GetNetWorth() float64 {
	return valuation.NetWorth(s.assets.List(), valuation.Prices(s.prices.Snapshot()))
}

// GetYearlyIncome returns the sum of every asset's yearly yield.
func (s *DashboardService) GetYearlyIncome() float64 {
	return valuation.YearlyIncome(s.assets.List())
}

// GetAllocation returns the allocation breakdown and each item's share of the total.
func (s *DashboardService) GetAllocation() ([]model.AllocationItem, []float64) {
	items := valuation.Allocation(s.assets.List(), valuation.Prices(s.prices.Snapshot()))
	return items, valuation.Shares(items)
}

// GetAssetValuation returns one asset with its current value and annualized ROI.
func (s *DashboardService) GetAssetValuation(id string, now time.Time) (model.AssetValuation, error) {
	a, err := s.assets.Get(id)
	if err != nil {
		return model.AssetValuation{}, err
	}
	return valuate(a, s.prices, now), nil
}

func (s *DashboardService) pricesAsOf() *time.Time {
	t := s.prices.UpdatedAt()
	if t.IsZero() {
		return nil
	}
	return &t
}

// priceTable is a price lookup that also reports whether a ticker is known.
type priceTable interface {
	Lookup(ticker string) (float64, bool)
}

func valuate(a model.Asset, prices priceTable, now time.Time) model.AssetValuation {
	price, known := 0.0, true
	if a.Type.IsTradeable() {
		price, known = prices.Lookup(a.Ticker())
	}
	return model.AssetValuation{
		Asset:        a,
		Price:        price,
		CurrentValue: valuation.AssetValue(a, price),
		ROI:          valuation.ROI(a, price, now),
		PriceMissing: !known,
	}
}
