package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/model"
)

// AssetBuilder provides a fluent interface for creating test assets.
//
// Example usage:
//
//	// Bank balance with defaults
//	a := testutil.NewAsset().Bank(1000).Build(t)
//
//	// Tradeable asset with ROI inputs
//	a := testutil.NewAsset().
//	    WithName("Bitcoin Holding").
//	    Crypto("bitcoin", 0.25).
//	    PurchasedOn("2025-01-20").
//	    WithPurchaseValue(12000).
//	    Build(t)
type AssetBuilder struct {
	ID     string
	fields model.AssetFields
}

// NewAsset creates an AssetBuilder for a bank balance of 100 with a unique name.
func NewAsset() *AssetBuilder {
	t := model.AssetTypeBank
	name := MakeAssetName("Test Asset")
	value := 100.0
	return &AssetBuilder{
		ID: MakeID(),
		fields: model.AssetFields{
			Type:  &t,
			Name:  &name,
			Value: &value,
		},
	}
}

// WithID sets a custom ID.
func (b *AssetBuilder) WithID(id string) *AssetBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.fields.Name = &name
	return b
}

// Bank turns the asset into a bank balance.
func (b *AssetBuilder) Bank(value float64) *AssetBuilder {
	return b.balance(model.AssetTypeBank, value)
}

// Credit turns the asset into a credit card balance owed.
func (b *AssetBuilder) Credit(value float64) *AssetBuilder {
	return b.balance(model.AssetTypeCredit, value)
}

// Crypto turns the asset into a crypto position.
func (b *AssetBuilder) Crypto(ticker string, qty float64) *AssetBuilder {
	return b.position(model.AssetTypeCrypto, ticker, qty)
}

// Stock turns the asset into a stock position.
func (b *AssetBuilder) Stock(ticker string, qty float64) *AssetBuilder {
	return b.position(model.AssetTypeStock, ticker, qty)
}

func (b *AssetBuilder) balance(t model.AssetType, value float64) *AssetBuilder {
	b.fields.Type = &t
	b.fields.Value = &value
	b.fields.Qty = nil
	b.fields.Ticker = nil
	return b
}

func (b *AssetBuilder) position(t model.AssetType, ticker string, qty float64) *AssetBuilder {
	b.fields.Type = &t
	b.fields.Value = nil
	b.fields.Qty = &qty
	b.fields.Ticker = &ticker
	return b
}

// WithYield sets the yearly yield.
func (b *AssetBuilder) WithYield(y float64) *AssetBuilder {
	b.fields.YearlyYield = &y
	return b
}

// PurchasedOn sets the purchase date (YYYY-MM-DD).
func (b *AssetBuilder) PurchasedOn(date string) *AssetBuilder {
	b.fields.PurchaseDate = &date
	return b
}

// WithPurchaseValue sets the cost basis.
func (b *AssetBuilder) WithPurchaseValue(v float64) *AssetBuilder {
	b.fields.PurchaseValue = &v
	return b
}

// Fields returns the flat fields without an ID, as a create request would carry them.
func (b *AssetBuilder) Fields() model.AssetFields {
	f := b.fields
	f.ID = nil
	return f
}

// Build constructs the asset, failing the test if the fields are inconsistent.
func (b *AssetBuilder) Build(t *testing.T) model.Asset {
	t.Helper()

	a, err := b.fields.Build(b.ID)
	if err != nil {
		t.Fatalf("Failed to build test asset: %v", err)
	}
	return a
}

// MakeID returns a fresh UUID string.
func MakeID() string {
	return uuid.New().String()
}

// MakeAssetName returns prefix with a short unique suffix.
func MakeAssetName(prefix string) string {
	return fmt.Sprintf("%s %s", prefix, uuid.New().String()[:8])
}
