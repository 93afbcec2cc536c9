package model

import (
	"fmt"
	"time"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/apperrors"
)

// AssetFields is the flat representation of an Asset used on the wire and in the
// persisted snapshot. Every field is optional so the same shape serves full
// records and partial updates.
type AssetFields struct {
	ID            *string    `json:"id,omitempty"`
	Type          *AssetType `json:"type,omitempty"`
	Name          *string    `json:"name,omitempty"`
	Value         *float64   `json:"value,omitempty"`
	Qty           *float64   `json:"qty,omitempty"`
	Ticker        *string    `json:"ticker,omitempty"`
	YearlyYield   *float64   `json:"yearlyYield,omitempty"`
	PurchaseDate  *string    `json:"purchaseDate,omitempty"`
	PurchaseValue *float64   `json:"purchaseValue,omitempty"`
}

// Merge returns a copy of f with every non-nil field of patch applied on top.
// The ID is never taken from the patch.
func (f AssetFields) Merge(patch AssetFields) AssetFields {
	out := f
	if patch.Type != nil {
		out.Type = patch.Type
	}
	if patch.Name != nil {
		out.Name = patch.Name
	}
	if patch.Value != nil {
		out.Value = patch.Value
	}
	if patch.Qty != nil {
		out.Qty = patch.Qty
	}
	if patch.Ticker != nil {
		out.Ticker = patch.Ticker
	}
	if patch.YearlyYield != nil {
		out.YearlyYield = patch.YearlyYield
	}
	if patch.PurchaseDate != nil {
		out.PurchaseDate = patch.PurchaseDate
	}
	if patch.PurchaseValue != nil {
		out.PurchaseValue = patch.PurchaseValue
	}
	return out
}

// Build turns the flat fields into an Asset with the given id. Fields that are
// not meaningful for the asset type are dropped, so a bank record never carries
// a ticker. An empty purchase date is treated as absent.
func (f AssetFields) Build(id string) (Asset, error) {
	if f.Type == nil || !f.Type.Valid() {
		got := ""
		if f.Type != nil {
			got = string(*f.Type)
		}
		return Asset{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidAssetType, got)
	}

	var h Holding
	if f.Type.IsTradeable() {
		h = Position{Qty: deref(f.Qty), Ticker: derefString(f.Ticker)}
	} else {
		h = Balance{Value: deref(f.Value)}
	}

	a, err := NewAsset(id, *f.Type, derefString(f.Name), h)
	if err != nil {
		return Asset{}, err
	}
	a.YearlyYield = deref(f.YearlyYield)

	if f.PurchaseDate != nil && *f.PurchaseDate != "" {
		d, err := ParseDate(*f.PurchaseDate)
		if err != nil {
			return Asset{}, err
		}
		a.PurchaseDate = &d
	}
	if f.PurchaseValue != nil {
		v := *f.PurchaseValue
		a.PurchaseValue = &v
	}
	return a, nil
}

// FieldsOf converts an Asset back into its flat representation.
func FieldsOf(a Asset) AssetFields {
	id := a.ID
	t := a.Type
	name := a.Name
	f := AssetFields{ID: &id, Type: &t, Name: &name}

	switch h := a.Holding.(type) {
	case Balance:
		v := h.Value
		f.Value = &v
	case Position:
		q, tk := h.Qty, h.Ticker
		f.Qty = &q
		f.Ticker = &tk
	}

	if a.YearlyYield != 0 {
		y := a.YearlyYield
		f.YearlyYield = &y
	}
	if a.PurchaseDate != nil {
		d := a.PurchaseDate.Format(DateFormat)
		f.PurchaseDate = &d
	}
	if a.PurchaseValue != nil {
		pv := *a.PurchaseValue
		f.PurchaseValue = &pv
	}
	return f
}

// ParseDate parses a date in "2006-01-02" or RFC3339 format and returns midnight UTC of that day.
func ParseDate(str string) (time.Time, error) {
	t, err := time.Parse(DateFormat, str)
	if err != nil {
		t, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidDate, str)
		}
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
