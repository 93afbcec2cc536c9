package validation

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/model"
)

const maxNameLength = 100

// ValidateCreateAsset checks a new record. now bounds the purchase date.
func ValidateCreateAsset(req request.CreateAssetRequest, now time.Time) error {
	return ValidateAsset(req.ToFields(), now)
}

// ValidateUpdateAsset checks only the fields a partial update provides.
// The merged record is checked again with ValidateAsset before it is stored.
func ValidateUpdateAsset(req request.UpdateAssetRequest, now time.Time) error {
	errors := make(map[string]string)

	if req.Name != nil {
		validateName(*req.Name, errors)
	}
	if req.Type != nil && !model.AssetType(*req.Type).Valid() {
		errors["type"] = typeMessage()
	}
	if req.Value != nil && !(*req.Value > 0) {
		errors["value"] = "value must be greater than 0"
	}
	if req.Qty != nil && !(*req.Qty > 0) {
		errors["qty"] = "qty must be greater than 0"
	}
	if req.Ticker != nil && strings.TrimSpace(*req.Ticker) == "" {
		errors["ticker"] = "ticker cannot be empty"
	}
	validateOptional(req.YearlyYield, req.PurchaseDate, req.PurchaseValue, now, errors)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateAsset checks a complete record: the fields its type requires and
// the optional fields it carries.
func ValidateAsset(f model.AssetFields, now time.Time) error {
	errors := make(map[string]string)

	name := ""
	if f.Name != nil {
		name = *f.Name
	}
	validateName(name, errors)

	switch {
	case f.Type == nil || !f.Type.Valid():
		errors["type"] = typeMessage()
	case f.Type.IsTradeable():
		if f.Ticker == nil || strings.TrimSpace(*f.Ticker) == "" {
			errors["ticker"] = fmt.Sprintf("ticker is required for %s assets", *f.Type)
		}
		if f.Qty == nil || !(*f.Qty > 0) {
			errors["qty"] = "qty must be greater than 0"
		}
	default:
		if f.Value == nil || !(*f.Value > 0) {
			errors["value"] = "value must be greater than 0"
		}
	}

	validateOptional(f.YearlyYield, f.PurchaseDate, f.PurchaseValue, now, errors)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func validateName(name string, errors map[string]string) {
	if strings.TrimSpace(name) == "" {
		errors["name"] = "name is required"
	} else if utf8.RuneCountInString(name) > maxNameLength {
		errors["name"] = fmt.Sprintf("name must be %d characters or less", maxNameLength)
	}
}

func validateOptional(yield *float64, purchaseDate *string, purchaseValue *float64, now time.Time, errors map[string]string) {
	if yield != nil && (math.IsNaN(*yield) || math.IsInf(*yield, 0)) {
		errors["yearlyYield"] = "yearlyYield must be a number"
	}

	// An empty date clears it
	if purchaseDate != nil && *purchaseDate != "" {
		d, err := model.ParseDate(*purchaseDate)
		if err != nil {
			errors["purchaseDate"] = "purchaseDate must be YYYY-MM-DD or RFC3339"
		} else if d.After(now.UTC()) {
			errors["purchaseDate"] = "purchaseDate cannot be in the future"
		}
	}

	if purchaseValue != nil && *purchaseValue < 0 {
		errors["purchaseValue"] = "purchaseValue cannot be negative"
	}
}

func typeMessage() string {
	kinds := make([]string, len(model.AssetTypes))
	for i, t := range model.AssetTypes {
		kinds[i] = string(t)
	}
	return "type must be one of " + strings.Join(kinds, ", ")
}
