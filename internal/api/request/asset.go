package request

import "github.com/ndewijer/Wealth-Tracker-Backend/internal/model"

// CreateAssetRequest represents the request body for adding an asset to the ledger.
// Which of value or qty/ticker is required depends on type.
type CreateAssetRequest struct {
	Type          string   `json:"type"`
	Name          string   `json:"name"`
	Value         *float64 `json:"value,omitempty"`
	Qty           *float64 `json:"qty,omitempty"`
	Ticker        *string  `json:"ticker,omitempty"`
	YearlyYield   *float64 `json:"yearlyYield,omitempty"`
	PurchaseDate  *string  `json:"purchaseDate,omitempty"`
	PurchaseValue *float64 `json:"purchaseValue,omitempty"`
}

// ToFields converts the request into the ledger's flat record shape.
func (r CreateAssetRequest) ToFields() model.AssetFields {
	t := model.AssetType(r.Type)
	name := r.Name
	return model.AssetFields{
		Type:          &t,
		Name:          &name,
		Value:         r.Value,
		Qty:           r.Qty,
		Ticker:        r.Ticker,
		YearlyYield:   r.YearlyYield,
		PurchaseDate:  r.PurchaseDate,
		PurchaseValue: r.PurchaseValue,
	}
}

// UpdateAssetRequest is a partial update; absent fields keep their stored value.
// ID is accepted so clients can echo whole records back, but it is never applied.
type UpdateAssetRequest struct {
	ID            *string  `json:"id,omitempty"`
	Type          *string  `json:"type,omitempty"`
	Name          *string  `json:"name,omitempty"`
	Value         *float64 `json:"value,omitempty"`
	Qty           *float64 `json:"qty,omitempty"`
	Ticker        *string  `json:"ticker,omitempty"`
	YearlyYield   *float64 `json:"yearlyYield,omitempty"`
	PurchaseDate  *string  `json:"purchaseDate,omitempty"`
	PurchaseValue *float64 `json:"purchaseValue,omitempty"`
}

// ToFields converts the request into a patch for model.AssetFields.Merge.
func (r UpdateAssetRequest) ToFields() model.AssetFields {
	f := model.AssetFields{
		Name:          r.Name,
		Value:         r.Value,
		Qty:           r.Qty,
		Ticker:        r.Ticker,
		YearlyYield:   r.YearlyYield,
		PurchaseDate:  r.PurchaseDate,
		PurchaseValue: r.PurchaseValue,
	}
	if r.Type != nil {
		t := model.AssetType(*r.Type)
		f.Type = &t
	}
	return f
}
