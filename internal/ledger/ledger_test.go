package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/ledger"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/model"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/testutil"
)

const storageKey = "wealth-tracker-storage"

type memStore struct {
	mu     sync.Mutex
	snaps  map[string]model.LedgerSnapshot
	getErr error
	putErr error
	puts   int
}

func newMemStore() *memStore {
	return &memStore{snaps: make(map[string]model.LedgerSnapshot)}
}

func (s *memStore) Get(_ context.Context, key string) (model.LedgerSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return model.LedgerSnapshot{}, s.getErr
	}
	snap, ok := s.snaps[key]
	if !ok {
		return model.LedgerSnapshot{}, apperrors.ErrSnapshotNotFound
	}
	return snap, nil
}

func (s *memStore) Put(_ context.Context, key string, snap model.LedgerSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.puts++
	s.snaps[key] = snap
	return nil
}

func (s *memStore) stored(key string) model.LedgerSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snaps[key]
}

func (s *memStore) failPuts(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putErr = err
}

func newLedger(t *testing.T, store ledger.Store) (*ledger.Ledger, *logrus.Logger) {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	return ledger.New(store, storageKey, logger), logger
}

func TestLedger_LoadMissingSnapshotIsEmpty(t *testing.T) {
	l, _ := newLedger(t, newMemStore())

	require.NoError(t, l.Load(t.Context()))

	assert.Equal(t, 0, l.Len())
	assert.NotNil(t, l.List())
}

func TestLedger_LoadStoreFailure(t *testing.T) {
	store := newMemStore()
	store.getErr = apperrors.ErrCorruptSnapshot
	l, _ := newLedger(t, store)

	err := l.Load(t.Context())

	assert.ErrorIs(t, err, apperrors.ErrCorruptSnapshot)
}

func TestLedger_LoadIsDefensive(t *testing.T) {
	store := newMemStore()
	bad := model.AssetType("savings")
	blank := "  "
	good := testutil.NewAsset().WithName("Ally Checking").Bank(25000).Build(t)
	noID := testutil.NewAsset().WithName("No Id").Crypto("bitcoin", 1).Fields()
	dup := model.FieldsOf(testutil.NewAsset().WithID(good.ID).WithName("Duplicate").Bank(1).Build(t))
	unknownType := testutil.NewAsset().WithName("Mystery").Fields()
	unknownType.Type = &bad
	id := testutil.MakeID()
	unknownType.ID = &id
	blankName := model.FieldsOf(testutil.NewAsset().Bank(5).Build(t))
	blankName.Name = &blank
	badDate := model.FieldsOf(testutil.NewAsset().WithName("Bad Date").Build(t))
	notADate := "yesterday"
	badDate.PurchaseDate = &notADate

	store.snaps[storageKey] = model.LedgerSnapshot{Assets: []model.AssetFields{
		model.FieldsOf(good), noID, dup, unknownType, blankName, badDate,
	}}

	logger, hook := testutil.NewTestLogger(t)
	l := ledger.New(store, storageKey, logger)

	require.NoError(t, l.Load(t.Context()))

	assets := l.List()
	require.Len(t, assets, 2)
	assert.Equal(t, good, assets[0])
	assert.Equal(t, "No Id", assets[1].Name)
	assert.NotEmpty(t, assets[1].ID)
	assert.NotEqual(t, good.ID, assets[1].ID)

	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	assert.Equal(t, 5, warnings)
}

func TestLedger_AddAssignsUniqueIDs(t *testing.T) {
	store := newMemStore()
	l, _ := newLedger(t, store)

	ids := make(map[string]struct{})
	for range 200 {
		id, err := l.Add(t.Context(), testutil.NewAsset().Bank(10).Fields())
		require.NoError(t, err)
		ids[id] = struct{}{}
	}

	assert.Len(t, ids, 200)
	assert.Equal(t, 200, l.Len())
	assert.Len(t, store.stored(storageKey).Assets, 200)
}

func TestLedger_AddKeepsInsertionOrder(t *testing.T) {
	l, _ := newLedger(t, newMemStore())

	var ids []string
	for _, name := range []string{"first", "second", "third"} {
		id, err := l.Add(t.Context(), testutil.NewAsset().WithName(name).Fields())
		require.NoError(t, err)
		ids = append(ids, id)
	}

	list := l.List()
	require.Len(t, list, 3)
	for i, a := range list {
		assert.Equal(t, ids[i], a.ID)
	}
}

func TestLedger_AddRejectsInvalidType(t *testing.T) {
	l, _ := newLedger(t, newMemStore())
	f := testutil.NewAsset().Fields()
	bad := model.AssetType("savings")
	f.Type = &bad

	_, err := l.Add(t.Context(), f)

	assert.ErrorIs(t, err, apperrors.ErrInvalidAssetType)
	assert.Equal(t, 0, l.Len())
}

func TestLedger_UpdatePreservesID(t *testing.T) {
	l, _ := newLedger(t, newMemStore())
	id, err := l.Add(t.Context(), testutil.NewAsset().WithName("Chase").Bank(75000).WithYield(1200).Fields())
	require.NoError(t, err)

	otherID := testutil.MakeID()
	name := "Chase High-Yield Savings"
	updated, err := l.Update(t.Context(), id, model.AssetFields{ID: &otherID, Name: &name}, nil)

	require.NoError(t, err)
	assert.Equal(t, id, updated.ID)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, model.Balance{Value: 75000}, updated.Holding)
	assert.Equal(t, 1200.0, updated.YearlyYield)

	_, err = l.Get(otherID)
	assert.ErrorIs(t, err, apperrors.ErrAssetNotFound)
	got, err := l.Get(id)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestLedger_UpdateChangesType(t *testing.T) {
	l, _ := newLedger(t, newMemStore())
	id, err := l.Add(t.Context(), testutil.NewAsset().Bank(500).Fields())
	require.NoError(t, err)

	patch := testutil.NewAsset().Stock("VTI", 10).Fields()
	patch.Name = nil

	updated, err := l.Update(t.Context(), id, patch, nil)

	require.NoError(t, err)
	assert.Equal(t, model.AssetTypeStock, updated.Type)
	assert.Equal(t, model.Position{Qty: 10, Ticker: "vti"}, updated.Holding)
	assert.Equal(t, "vti", updated.Ticker())
}

func TestLedger_UpdateNotFound(t *testing.T) {
	l, _ := newLedger(t, newMemStore())

	_, err := l.Update(t.Context(), testutil.MakeID(), model.AssetFields{}, nil)

	assert.ErrorIs(t, err, apperrors.ErrAssetNotFound)
}

func TestLedger_UpdateValidatorSeesMergedRecord(t *testing.T) {
	store := newMemStore()
	l, _ := newLedger(t, store)
	id, err := l.Add(t.Context(), testutil.NewAsset().WithName("Ally").Bank(100).Fields())
	require.NoError(t, err)
	puts := store.puts

	rejected := errors.New("rejected")
	value := 200.0
	_, err = l.Update(t.Context(), id, model.AssetFields{Value: &value}, func(f model.AssetFields) error {
		assert.Equal(t, "Ally", *f.Name)
		assert.Equal(t, 200.0, *f.Value)
		return rejected
	})

	assert.ErrorIs(t, err, rejected)
	got, _ := l.Get(id)
	assert.Equal(t, model.Balance{Value: 100}, got.Holding)
	assert.Equal(t, puts, store.puts)
}

func TestLedger_Remove(t *testing.T) {
	l, _ := newLedger(t, newMemStore())
	keep, err := l.Add(t.Context(), testutil.NewAsset().Fields())
	require.NoError(t, err)
	drop, err := l.Add(t.Context(), testutil.NewAsset().Fields())
	require.NoError(t, err)

	removed, err := l.Remove(t.Context(), drop)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = l.Remove(t.Context(), drop)
	require.NoError(t, err)
	assert.False(t, removed)

	list := l.List()
	require.Len(t, list, 1)
	assert.Equal(t, keep, list[0].ID)
}

func TestLedger_FailedPersistRollsBack(t *testing.T) {
	store := newMemStore()
	l, _ := newLedger(t, store)
	id, err := l.Add(t.Context(), testutil.NewAsset().WithName("Kept").Bank(100).Fields())
	require.NoError(t, err)
	before := l.List()

	store.failPuts(errors.New("disk full"))

	_, err = l.Add(t.Context(), testutil.NewAsset().Fields())
	assert.ErrorIs(t, err, apperrors.ErrFailedToPersist)

	name := "Renamed"
	_, err = l.Update(t.Context(), id, model.AssetFields{Name: &name}, nil)
	assert.ErrorIs(t, err, apperrors.ErrFailedToPersist)

	_, err = l.Remove(t.Context(), id)
	assert.ErrorIs(t, err, apperrors.ErrFailedToPersist)

	assert.Equal(t, before, l.List())
	assert.Len(t, store.stored(storageKey).Assets, 1)
}

func TestLedger_ListIsACopy(t *testing.T) {
	l, _ := newLedger(t, newMemStore())
	_, err := l.Add(t.Context(), testutil.NewAsset().WithName("Original").Fields())
	require.NoError(t, err)

	list := l.List()
	list[0].Name = "Changed"

	assert.Equal(t, "Original", l.List()[0].Name)
}

func TestLedger_SeedOnlyWhenEmpty(t *testing.T) {
	l, _ := newLedger(t, newMemStore())
	records := []model.AssetFields{
		testutil.NewAsset().WithName("Chase").Bank(75000).Fields(),
		testutil.NewAsset().WithName("Bitcoin").Crypto("bitcoin", 0.25).Fields(),
	}

	n, err := l.Seed(t.Context(), records...)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = l.Seed(t.Context(), records...)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 2, l.Len())
}

func TestLedger_RoundTripThroughRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db, nil)
	l, logger := newLedger(t, repo)
	require.NoError(t, l.Load(t.Context()))

	_, err := l.Add(t.Context(), testutil.NewAsset().WithName("Bitcoin Holding").Crypto("bitcoin", 0.25).
		PurchasedOn("2025-01-20").WithPurchaseValue(12000).Fields())
	require.NoError(t, err)
	_, err = l.Add(t.Context(), testutil.NewAsset().WithName("Amex Platinum").Credit(8000).WithYield(-480).Fields())
	require.NoError(t, err)

	reloaded := ledger.New(repo, storageKey, logger)
	require.NoError(t, reloaded.Load(t.Context()))

	assert.Equal(t, l.List(), reloaded.List())
}

func TestLedger_ConcurrentMutations(t *testing.T) {
	l, _ := newLedger(t, newMemStore())

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := l.Add(context.Background(), testutil.NewAsset().Fields())
			if assert.NoError(t, err) {
				_, _ = l.Remove(context.Background(), id)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, l.Len())
}
