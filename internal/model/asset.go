package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// AssetType is the closed set of holding kinds tracked by the ledger.
type AssetType string

const (
	AssetTypeBank   AssetType = "bank"
	AssetTypeCredit AssetType = "credit"
	AssetTypeCrypto AssetType = "crypto"
	AssetTypeStock  AssetType = "stock"
)

// AssetTypes lists every valid AssetType in display order.
var AssetTypes = []AssetType{AssetTypeBank, AssetTypeCredit, AssetTypeCrypto, AssetTypeStock}

// Valid reports whether t is one of the known asset types.
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeBank, AssetTypeCredit, AssetTypeCrypto, AssetTypeStock:
		return true
	}
	return false
}

// IsTradeable reports whether assets of this type are valued as quantity times market price.
func (t AssetType) IsTradeable() bool {
	return t == AssetTypeCrypto || t == AssetTypeStock
}

// DateFormat is the layout used for purchase dates on the wire and in storage.
const DateFormat = "2006-01-02"

// Holding is the type-specific payload of an Asset. It is sealed: only Balance and
// Position implement it.
type Holding interface {
	holding()
}

// Balance is the payload of bank and credit assets: a face value in USD.
// For credit assets the value is the amount owed.
type Balance struct {
	Value float64
}

// Position is the payload of crypto and stock assets: a quantity of a ticker
// whose price comes from the price cache.
type Position struct {
	Qty    float64
	Ticker string
}

func (Balance) holding()  {}
func (Position) holding() {}

// Asset is one financial holding in the ledger.
//
// The Holding variant always matches Type: bank/credit carry a Balance and
// crypto/stock carry a Position. Use NewAsset or AssetFields.Build to construct
// values that respect this.
type Asset struct {
	ID            string
	Type          AssetType
	Name          string
	Holding       Holding
	YearlyYield   float64    // positive for income, negative for cost
	PurchaseDate  *time.Time // nil disables ROI
	PurchaseValue *float64   // cost basis; nil falls back to the face value
}

// NewAsset builds an Asset and checks that the holding variant matches the type.
func NewAsset(id string, assetType AssetType, name string, h Holding) (Asset, error) {
	a := Asset{ID: id, Type: assetType, Name: name, Holding: h}
	if err := a.checkHolding(); err != nil {
		return Asset{}, err
	}
	if p, ok := h.(Position); ok {
		p.Ticker = NormalizeTicker(p.Ticker)
		a.Holding = p
	}
	return a, nil
}

func (a Asset) checkHolding() error {
	switch a.Holding.(type) {
	case Balance:
		if a.Type != AssetTypeBank && a.Type != AssetTypeCredit {
			return fmt.Errorf("asset type %q cannot hold a balance", a.Type)
		}
	case Position:
		if !a.Type.IsTradeable() {
			return fmt.Errorf("asset type %q cannot hold a position", a.Type)
		}
	case nil:
		return fmt.Errorf("asset %q has no holding", a.Name)
	default:
		return fmt.Errorf("unknown holding %T", a.Holding)
	}
	return nil
}

// Ticker returns the normalized ticker of a tradeable asset, or "" for balances.
func (a Asset) Ticker() string {
	if p, ok := a.Holding.(Position); ok {
		return p.Ticker
	}
	return ""
}

// FaceValue returns the stored value of a Balance, or 0 for positions.
func (a Asset) FaceValue() float64 {
	if b, ok := a.Holding.(Balance); ok {
		return b.Value
	}
	return 0
}

// CostBasis returns PurchaseValue when set, otherwise the face value.
// Positions carry no face value, so a position without PurchaseValue has basis 0
// even if an older snapshot stored a value for it.
func (a Asset) CostBasis() float64 {
	if a.PurchaseValue != nil {
		return *a.PurchaseValue
	}
	return a.FaceValue()
}

// NormalizeTicker trims and lower-cases a ticker symbol.
func NormalizeTicker(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

// MarshalJSON encodes the asset in its flat wire shape.
func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(FieldsOf(a))
}

// UnmarshalJSON decodes the flat wire shape and rebuilds the holding variant.
func (a *Asset) UnmarshalJSON(data []byte) error {
	var f AssetFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	id := ""
	if f.ID != nil {
		id = *f.ID
	}
	built, err := f.Build(id)
	if err != nil {
		return err
	}
	*a = built
	return nil
}
