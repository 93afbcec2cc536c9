package service

import "github.com/ndewijer/Wealth-Tracker-Backend/internal/model"

// SampleAssets returns a demo portfolio: two bank accounts, a credit card,
// two crypto positions and two stock positions. Yields are yearly amounts.
func SampleAssets() []model.AssetFields {
	return []model.AssetFields{
		sample(model.AssetTypeBank, "Chase High-Yield Savings", func(f *model.AssetFields) {
			f.Value = ptr(75000.0)
			f.YearlyYield = ptr(1200.0)
			f.PurchaseDate = ptr("2025-01-15")
			f.PurchaseValue = ptr(75000.0)
		}),
		sample(model.AssetTypeBank, "Ally Checking", func(f *model.AssetFields) {
			f.Value = ptr(25000.0)
		}),
		sample(model.AssetTypeCredit, "Amex Platinum", func(f *model.AssetFields) {
			f.Value = ptr(8000.0)
			f.YearlyYield = ptr(-480.0)
		}),
		sample(model.AssetTypeCrypto, "Bitcoin Holding", func(f *model.AssetFields) {
			f.Ticker = ptr("bitcoin")
			f.Qty = ptr(0.25)
			f.PurchaseDate = ptr("2025-01-20")
			f.PurchaseValue = ptr(12000.0)
		}),
		sample(model.AssetTypeCrypto, "Ethereum Stake", func(f *model.AssetFields) {
			f.Ticker = ptr("ethereum")
			f.Qty = ptr(2.5)
			f.PurchaseDate = ptr("2025-03-10")
			f.PurchaseValue = ptr(7500.0)
			f.YearlyYield = ptr(450.0)
		}),
		sample(model.AssetTypeStock, "VTI ETF (Total Market)", func(f *model.AssetFields) {
			f.Ticker = ptr("vti")
			f.Qty = ptr(50.0)
			f.PurchaseDate = ptr("2025-02-05")
			f.PurchaseValue = ptr(12500.0)
			f.YearlyYield = ptr(300.0)
		}),
		sample(model.AssetTypeStock, "AAPL Shares", func(f *model.AssetFields) {
			f.Ticker = ptr("aapl")
			f.Qty = ptr(20.0)
			f.PurchaseDate = ptr("2025-06-01")
			f.PurchaseValue = ptr(3500.0)
			f.YearlyYield = ptr(10.0)
		}),
	}
}

func sample(t model.AssetType, name string, fill func(*model.AssetFields)) model.AssetFields {
	f := model.AssetFields{Type: &t, Name: &name}
	fill(&f)
	return f
}

func ptr[T any](v T) *T {
	return &v
}
