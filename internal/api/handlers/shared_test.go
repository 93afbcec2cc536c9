package handlers

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/validation"
)

func TestParseJSON(t *testing.T) {
	t.Run("decodes a valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/asset",
			strings.NewReader(`{"type":"bank","name":"Ally","value":25000}`))

		got, err := parseJSON[request.CreateAssetRequest](req)

		require.NoError(t, err)
		assert.Equal(t, "bank", got.Type)
		require.NotNil(t, got.Value)
		assert.Equal(t, 25000.0, *got.Value)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/asset", strings.NewReader(`{"type":`))

		_, err := parseJSON[request.CreateAssetRequest](req)

		assert.ErrorIs(t, err, apperrors.ErrInvalidRequestBody)
	})

	t.Run("rejects wrong field types", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/asset", strings.NewReader(`{"value":"lots"}`))

		_, err := parseJSON[request.CreateAssetRequest](req)

		assert.ErrorIs(t, err, apperrors.ErrInvalidRequestBody)
	})
}

func TestRespondValidationError(t *testing.T) {
	t.Run("writes field details", func(t *testing.T) {
		w := httptest.NewRecorder()

		ok := respondValidationError(w, &validation.Error{Fields: map[string]string{"name": "name is required"}})

		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"validation failed","details":{"name":"name is required"}}`, w.Body.String())
	})

	t.Run("ignores other errors", func(t *testing.T) {
		w := httptest.NewRecorder()

		assert.False(t, respondValidationError(w, errors.New("boom")))
		assert.Empty(t, w.Body.String())
	})
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"whole dollars", 67000, "$67,000.00"},
		{"negative", -8000, "-$8,000.00"},
		{"zero", 0, "$0.00"},
		{"half dollar", 17000.5, "$17,000.50"},
		{"cents are rounded not truncated", 0.29, "$0.29"},
		{"binary fraction below the cent", 1.13, "$1.13"},
		{"four thirty five", 4.35, "$4.35"},
		{"rounds half away from zero", 2.005, "$2.01"},
		{"negative cents", -4.35, "-$4.35"},
		{"beyond int64 cents", 1e17, "$100000000000000000.00"},
		{"negative beyond int64 cents", -1e17, "-$100000000000000000.00"},
		{"not a number", math.NaN(), "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatUSD(tt.amount))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "41.67%", formatPercent(41.6666))
	assert.Equal(t, "-5.00%", formatPercent(-5))
}
