package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/validation"
)

// maxBodyBytes bounds request bodies; an asset record is a few hundred bytes.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("%w: %w", apperrors.ErrInvalidRequestBody, err)
	}
	return v, nil
}

// respondValidationError writes a 400 with per-field details when err is a
// validation failure and reports whether it did.
func respondValidationError(w http.ResponseWriter, err error) bool {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return false
	}
	response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
	return true
}

// formatUSD renders an amount as US dollars rounded to the cent, e.g.
// "$67,000.00" or "-$8,000.00". Amounts beyond int64 cents fall back to a
// plain decimal string.
func formatUSD(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	cents := decimal.NewFromFloat(amount).Shift(2).Round(0)
	if !cents.BigInt().IsInt64() {
		d := decimal.NewFromFloat(amount)
		if d.IsNegative() {
			return "-$" + d.Neg().StringFixed(2)
		}
		return "$" + d.StringFixed(2)
	}
	return money.New(cents.IntPart(), money.USD).Display()
}

// formatPercent renders an annualized ROI, e.g. "12.34%".
func formatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

// utcNow is the handlers' clock.
func utcNow() time.Time {
	return time.Now().UTC()
}
