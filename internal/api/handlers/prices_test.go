package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/ledger"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/model"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/pricing"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/testutil"
)

type priceFixture struct {
	handler *PriceHandler
	ledger  *ledger.Ledger
	cache   *pricing.Cache
	crypto  *testutil.MockPriceSource
	stock   *testutil.MockPriceSource
}

func setupPriceHandler(t *testing.T) *priceFixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	f := &priceFixture{
		ledger: testutil.NewTestLedger(t, db),
		cache:  pricing.NewCache(),
		crypto: testutil.NewMockPriceSource(map[string]float64{"bitcoin": 68000}),
		stock:  testutil.NewMockPriceSource(map[string]float64{"vti": 280}),
	}
	f.handler = NewPriceHandler(testutil.NewTestPriceService(t, f.ledger, f.cache, f.crypto, f.stock))
	return f
}

func TestPriceHandler_Prices(t *testing.T) {
	t.Run("empty cache", func(t *testing.T) {
		f := setupPriceHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/prices", nil)
		w := httptest.NewRecorder()

		f.handler.Prices(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"prices":{},"updatedAt":null}`, w.Body.String())
	})

	t.Run("returns cached prices", func(t *testing.T) {
		f := setupPriceHandler(t)
		f.cache.Replace(map[string]float64{"bitcoin": 68000})

		req := httptest.NewRequest(http.MethodGet, "/api/prices", nil)
		w := httptest.NewRecorder()

		f.handler.Prices(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var got model.PriceSnapshot
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, map[string]float64{"bitcoin": 68000}, got.Prices)
		assert.NotNil(t, got.UpdatedAt)
	})
}

func TestPriceHandler_RefreshPrices(t *testing.T) {
	t.Run("refreshes the ledger tickers", func(t *testing.T) {
		f := setupPriceHandler(t)
		testutil.CreateAssets(t, f.ledger,
			testutil.NewAsset().Crypto("bitcoin", 1),
			testutil.NewAsset().Stock("VTI", 1),
		)

		req := httptest.NewRequest(http.MethodPost, "/api/prices/refresh", nil)
		w := httptest.NewRecorder()

		f.handler.RefreshPrices(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got model.PriceSnapshot
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, map[string]float64{"bitcoin": 68000, "vti": 280}, got.Prices)
		assert.Equal(t, 280.0, f.cache.Get("vti"))
	})

	t.Run("returns 502 when every source fails", func(t *testing.T) {
		f := setupPriceHandler(t)
		testutil.CreateAssets(t, f.ledger, testutil.NewAsset().Crypto("bitcoin", 1))
		f.crypto.WithError(errors.New("rate limited"))

		req := httptest.NewRequest(http.MethodPost, "/api/prices/refresh", nil)
		w := httptest.NewRecorder()

		f.handler.RefreshPrices(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "price source unavailable", decodeError(t, w).Error)
		assert.True(t, f.cache.UpdatedAt().IsZero())
	})
}
