// Package valuation derives net worth, yearly income, allocation and ROI from a
// ledger snapshot and a price snapshot. Every function is pure: the same inputs
// always produce the same outputs.
package valuation

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/model"
)

// PriceLookup resolves a lower-case ticker to its spot price. Unknown tickers resolve to 0.
type PriceLookup interface {
	Get(ticker string) float64
}

// Prices is a plain map PriceLookup, handy for callers that already hold a snapshot.
type Prices map[string]float64

// Get returns the price for ticker, or 0 when it is unknown.
func (p Prices) Get(ticker string) float64 {
	return p[model.NormalizeTicker(ticker)]
}

// Lookup is Get with an explicit presence flag.
func (p Prices) Lookup(ticker string) (float64, bool) {
	v, ok := p[model.NormalizeTicker(ticker)]
	return v, ok
}

// Allocation colors, one per asset type.
const (
	ColorBank     = "#00C49F"
	ColorCredit   = "#FF8042"
	ColorCrypto   = "#FFBB28"
	ColorStock    = "#0088FE"
	ColorFallback = "#888888"
)

// ColorFor returns the allocation color for an asset type, or ColorFallback for anything unknown.
func ColorFor(t model.AssetType) string {
	switch t {
	case model.AssetTypeBank:
		return ColorBank
	case model.AssetTypeCredit:
		return ColorCredit
	case model.AssetTypeCrypto:
		return ColorCrypto
	case model.AssetTypeStock:
		return ColorStock
	default:
		return ColorFallback
	}
}

// AssetValue returns qty × price for positions and the stored value for balances.
// The sign of its contribution to net worth is decided by the caller.
func AssetValue(a model.Asset, price float64) float64 {
	return assetValue(a, price).InexactFloat64()
}

func assetValue(a model.Asset, price float64) decimal.Decimal {
	switch h := a.Holding.(type) {
	case model.Position:
		return decimal.NewFromFloat(h.Qty).Mul(decimal.NewFromFloat(price))
	case model.Balance:
		return decimal.NewFromFloat(h.Value)
	default:
		return decimal.Zero
	}
}

func priceOf(a model.Asset, prices PriceLookup) float64 {
	t := a.Ticker()
	if t == "" || prices == nil {
		return 0
	}
	return prices.Get(t)
}

// NetWorth sums every asset value, subtracting credit balances since they are liabilities.
func NetWorth(assets []model.Asset, prices PriceLookup) float64 {
	total := decimal.Zero
	for _, a := range assets {
		v := assetValue(a, priceOf(a, prices))
		if a.Type == model.AssetTypeCredit {
			total = total.Sub(v)
		} else {
			total = total.Add(v)
		}
	}
	return total.InexactFloat64()
}

// YearlyIncome sums the yearly yield of every asset. Negative yields reduce the total
// regardless of asset type.
func YearlyIncome(assets []model.Asset) float64 {
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(decimal.NewFromFloat(a.YearlyYield))
	}
	return total.InexactFloat64()
}

// Allocation returns one item per asset with a nonzero absolute value, in ledger order.
func Allocation(assets []model.Asset, prices PriceLookup) []model.AllocationItem {
	items := make([]model.AllocationItem, 0, len(assets))
	for _, a := range assets {
		v := assetValue(a, priceOf(a, prices)).Abs()
		if v.IsZero() {
			continue
		}
		items = append(items, model.AllocationItem{
			Name:     a.Name,
			Value:    v.InexactFloat64(),
			ColorTag: ColorFor(a.Type),
		})
	}
	return items
}

// Shares returns each item's fraction of the allocation total. All shares are 0
// when the total is 0.
func Shares(items []model.AllocationItem) []float64 {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.Value))
	}
	shares := make([]float64, len(items))
	if total.IsZero() {
		return shares
	}
	for i, it := range items {
		shares[i] = decimal.NewFromFloat(it.Value).Div(total).InexactFloat64()
	}
	return shares
}

const secondsPerDay = 24 * 60 * 60

// DaysHeld returns the whole UTC days between purchase and now, never less than 1.
func DaysHeld(purchase, now time.Time) int {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	p := purchase.UTC()
	start := time.Date(p.Year(), p.Month(), p.Day(), 0, 0, 0, 0, time.UTC)

	// time.Duration overflows past ~292 years, so count from Unix seconds
	days := int((today.Unix() - start.Unix()) / secondsPerDay)
	if days < 1 {
		return 1
	}
	return days
}

// ROI returns the linearly annualized return of a tradeable asset in percent:
//
//	((currentValue - basis) / basis) × (365 / daysHeld) × 100
//
// It is 0 for balances, for assets without a purchase date, and whenever the
// result is not finite (zero cost basis).
func ROI(a model.Asset, currentPrice float64, now time.Time) float64 {
	if a.PurchaseDate == nil {
		return 0
	}
	pos, ok := a.Holding.(model.Position)
	if !ok {
		return 0
	}

	basis := a.CostBasis()
	current := pos.Qty * currentPrice
	days := float64(DaysHeld(*a.PurchaseDate, now))

	roi := ((current - basis) / basis) * (365 / days) * 100
	if math.IsNaN(roi) || math.IsInf(roi, 0) {
		return 0
	}
	return roi
}
