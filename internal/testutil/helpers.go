package testutil

import (
	"database/sql"
	"sync/atomic"
	"testing"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/ledger"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/model"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/pricing"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/service"
)

// StorageKey is the snapshot key used by test ledgers.
const StorageKey = "wealth-tracker-storage"

// NewTestLedger creates an empty, loaded ledger persisting to db.
func NewTestLedger(t *testing.T, db *sql.DB) *ledger.Ledger {
	t.Helper()

	logger, _ := NewTestLogger(t)
	l := ledger.New(repository.NewSnapshotRepository(db, nil), StorageKey, logger)
	if err := l.Load(t.Context()); err != nil {
		t.Fatalf("Failed to load test ledger: %v", err)
	}
	return l
}

// CreateAssets adds the given assets to the ledger and returns them with their ids.
func CreateAssets(t *testing.T, l *ledger.Ledger, builders ...*AssetBuilder) []model.Asset {
	t.Helper()

	out := make([]model.Asset, len(builders))
	for i, b := range builders {
		id, err := l.Add(t.Context(), b.Fields())
		if err != nil {
			t.Fatalf("Failed to create test asset: %v", err)
		}
		a, err := l.Get(id)
		if err != nil {
			t.Fatalf("Failed to read back test asset: %v", err)
		}
		out[i] = a
	}
	return out
}

// MockTrigger counts price refresh triggers.
type MockTrigger struct {
	calls atomic.Int32
}

func (m *MockTrigger) Trigger() {
	m.calls.Add(1)
}

// Calls returns how many times Trigger was called.
func (m *MockTrigger) Calls() int {
	return int(m.calls.Load())
}

func NewTestAssetService(t *testing.T, l *ledger.Ledger, trigger service.PriceTrigger) *service.AssetService {
	t.Helper()
	return service.NewAssetService(l, trigger)
}

func NewTestDashboardService(t *testing.T, l *ledger.Ledger, cache *pricing.Cache) *service.DashboardService {
	t.Helper()
	return service.NewDashboardService(l, cache)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db)
}

// NewTestPriceService wires a price service whose refresher routes crypto and
// stock tickers to the given sources.
func NewTestPriceService(t *testing.T, l *ledger.Ledger, cache *pricing.Cache, crypto, stock pricing.Source) *service.PriceService {
	t.Helper()

	logger, _ := NewTestLogger(t)
	r, err := pricing.NewRefresher(cache, l,
		pricing.WithSource(model.AssetTypeCrypto, crypto),
		pricing.WithSource(model.AssetTypeStock, stock),
		pricing.WithLogger(logger),
	)
	if err != nil {
		t.Fatalf("Failed to create refresher: %v", err)
	}
	return service.NewPriceService(cache, r)
}
