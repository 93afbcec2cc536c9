package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/pricing"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/testutil"
)

func TestPriceService(t *testing.T) {
	setup := func(t *testing.T) (*pricing.Cache, *testutil.MockPriceSource, *testutil.MockPriceSource, func() error) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		l := testutil.NewTestLedger(t, db)
		testutil.CreateAssets(t, l,
			testutil.NewAsset().Crypto("bitcoin", 0.25),
			testutil.NewAsset().Stock("vti", 50),
		)
		cache := pricing.NewCache()
		crypto := testutil.NewMockPriceSource(map[string]float64{"bitcoin": 68000})
		stock := testutil.NewMockPriceSource(map[string]float64{"vti": 280})
		svc := testutil.NewTestPriceService(t, l, cache, crypto, stock)
		return cache, crypto, stock, func() error {
			_, err := svc.RefreshPrices(t.Context())
			return err
		}
	}

	t.Run("empty before the first refresh", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		l := testutil.NewTestLedger(t, db)
		svc := testutil.NewTestPriceService(t, l, pricing.NewCache(),
			testutil.NewMockPriceSource(nil), testutil.NewMockPriceSource(nil))

		snap := svc.GetPrices()

		assert.Empty(t, snap.Prices)
		assert.Nil(t, snap.UpdatedAt)
	})

	t.Run("refresh fills the cache", func(t *testing.T) {
		cache, _, _, refresh := setup(t)

		require.NoError(t, refresh())

		assert.Equal(t, 68000.0, cache.Get("bitcoin"))
		assert.Equal(t, 280.0, cache.Get("vti"))
	})

	t.Run("refresh reports total failure", func(t *testing.T) {
		cache, crypto, stock, refresh := setup(t)
		require.NoError(t, refresh())
		crypto.WithError(errors.New("down"))
		stock.WithError(errors.New("down"))

		err := refresh()

		assert.ErrorIs(t, err, apperrors.ErrFailedToRefreshPrices)
		assert.ErrorIs(t, err, apperrors.ErrPriceSourceUnavailable)
		assert.Equal(t, 68000.0, cache.Get("bitcoin"))
	})
}
