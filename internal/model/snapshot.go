package model

import "time"

// LedgerSnapshot is the persisted form of the whole ledger: { "assets": [...] }.
type LedgerSnapshot struct {
	Assets []AssetFields `json:"assets"`
}

// AllocationItem is one slice of the allocation breakdown. It is derived on
// read and never stored.
type AllocationItem struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	ColorTag string  `json:"colorTag"`
}

// PriceSnapshot is a point-in-time copy of the price cache.
type PriceSnapshot struct {
	Prices    map[string]float64 `json:"prices"`
	UpdatedAt *time.Time         `json:"updatedAt"`
}

// AssetValuation is a ledger record together with its derived figures.
type AssetValuation struct {
	Asset        Asset   `json:"asset"`
	Price        float64 `json:"price"`        // zero for balances
	CurrentValue float64 `json:"currentValue"` // unsigned value of the holding
	ROI          float64 `json:"roi"`          // annualized percent, 0 when not applicable
	PriceMissing bool    `json:"priceMissing"` // tradeable asset whose ticker has no cached price
}

// DashboardSummary collects every derived view the UI renders on the dashboard.
type DashboardSummary struct {
	NetWorth     float64          `json:"netWorth"`
	YearlyIncome float64          `json:"yearlyIncome"`
	Allocation   []AllocationItem `json:"allocation"`
	Shares       []float64        `json:"shares"`
	Assets       []AssetValuation `json:"assets"`
	PricesAsOf   *time.Time       `json:"pricesAsOf"`
}
