package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/model"
)

// Store persists the ledger as a single snapshot under a key.
type Store interface {
	Get(ctx context.Context, key string) (model.LedgerSnapshot, error)
	Put(ctx context.Context, key string, snapshot model.LedgerSnapshot) error
}

// Validator checks a complete record before it enters the ledger.
type Validator func(fields model.AssetFields) error

// Ledger is the ordered collection of assets. Every mutation rewrites the whole
// snapshot; when that write fails the mutation is undone, so memory and storage
// stay in step.
type Ledger struct {
	store  Store
	key    string
	logger *logrus.Logger

	mu     sync.RWMutex
	assets []model.Asset
}

// New creates an empty ledger persisting under key. Call Load to read the stored snapshot.
func New(store Store, key string, logger *logrus.Logger) *Ledger {
	return &Ledger{
		store:  store,
		key:    key,
		logger: logger,
		assets: []model.Asset{},
	}
}

// Load replaces the in-memory collection with the stored snapshot. A missing
// snapshot is an empty ledger. Records that cannot be used are skipped and
// logged: unknown type, blank name, inconsistent holding, or an id already
// seen. A record without an id gets a fresh one.
func (l *Ledger) Load(ctx context.Context) error {
	snapshot, err := l.store.Get(ctx, l.key)
	if errors.Is(err, apperrors.ErrSnapshotNotFound) {
		l.mu.Lock()
		l.assets = []model.Asset{}
		l.mu.Unlock()
		l.logger.WithField("key", l.key).Info("No stored ledger, starting empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}

	assets := make([]model.Asset, 0, len(snapshot.Assets))
	seen := make(map[string]struct{}, len(snapshot.Assets))
	for i, f := range snapshot.Assets {
		entry := l.logger.WithField("index", i)

		id := ""
		if f.ID != nil {
			id = strings.TrimSpace(*f.ID)
		}
		if id == "" {
			id = uuid.New().String()
			entry.WithField("id", id).Warn("Stored asset has no id, assigned a new one")
		}
		if _, dup := seen[id]; dup {
			entry.WithField("id", id).Warn("Dropping stored asset with duplicate id")
			continue
		}
		if f.Name == nil || strings.TrimSpace(*f.Name) == "" {
			entry.WithField("id", id).Warn("Dropping stored asset without a name")
			continue
		}

		a, err := f.Build(id)
		if err != nil {
			entry.WithError(err).WithField("id", id).Warn("Dropping unreadable stored asset")
			continue
		}
		seen[id] = struct{}{}
		assets = append(assets, a)
	}

	l.mu.Lock()
	l.assets = assets
	l.mu.Unlock()

	l.logger.WithFields(logrus.Fields{
		"loaded":  len(assets),
		"dropped": len(snapshot.Assets) - len(assets),
	}).Info("Ledger loaded")
	return nil
}

// Add appends a record under a freshly generated id and returns the id.
func (l *Ledger) Add(ctx context.Context, fields model.AssetFields) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.newID()
	a, err := fields.Build(id)
	if err != nil {
		return "", err
	}

	prev := l.assets
	l.assets = append(slices.Clip(l.assets), a)
	if err := l.persist(ctx); err != nil {
		l.assets = prev
		return "", err
	}
	return id, nil
}

// Update merges patch into the record with the given id and returns the
// result. The id itself never changes. validate, when not nil, sees the merged
// record before it is stored.
func (l *Ledger) Update(ctx context.Context, id string, patch model.AssetFields, validate Validator) (model.Asset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}

	merged := model.FieldsOf(l.assets[i]).Merge(patch)
	if validate != nil {
		if err := validate(merged); err != nil {
			return model.Asset{}, err
		}
	}
	a, err := merged.Build(id)
	if err != nil {
		return model.Asset{}, err
	}

	prev := l.assets
	l.assets = slices.Clone(l.assets)
	l.assets[i] = a
	if err := l.persist(ctx); err != nil {
		l.assets = prev
		return model.Asset{}, err
	}
	return a, nil
}

// Remove deletes the record with the given id. It reports whether a record
// was removed; an unknown id is not an error.
func (l *Ledger) Remove(ctx context.Context, id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return false, nil
	}

	prev := l.assets
	l.assets = slices.Delete(slices.Clone(l.assets), i, i+1)
	if err := l.persist(ctx); err != nil {
		l.assets = prev
		return false, err
	}
	return true, nil
}

// Seed adds the given records only when the ledger is empty. It returns how
// many records were added.
func (l *Ledger) Seed(ctx context.Context, records ...model.AssetFields) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.assets) > 0 {
		return 0, nil
	}

	seeded := make([]model.Asset, 0, len(records))
	for _, f := range records {
		a, err := f.Build(l.newID())
		if err != nil {
			return 0, fmt.Errorf("invalid seed record: %w", err)
		}
		seeded = append(seeded, a)
	}

	prev := l.assets
	l.assets = seeded
	if err := l.persist(ctx); err != nil {
		l.assets = prev
		return 0, err
	}
	return len(seeded), nil
}

// List returns a copy of the records in insertion order.
func (l *Ledger) List() []model.Asset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.assets)
}

// Get returns the record with the given id.
func (l *Ledger) Get(id string) (model.Asset, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i := l.indexOf(id)
	if i < 0 {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	return l.assets[i], nil
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.assets)
}

// caller holds mu
func (l *Ledger) indexOf(id string) int {
	return slices.IndexFunc(l.assets, func(a model.Asset) bool { return a.ID == id })
}

// caller holds mu
func (l *Ledger) newID() string {
	for {
		id := uuid.New().String()
		if l.indexOf(id) < 0 {
			return id
		}
	}
}

// caller holds mu
func (l *Ledger) persist(ctx context.Context) error {
	snapshot := model.LedgerSnapshot{Assets: make([]model.AssetFields, len(l.assets))}
	for i, a := range l.assets {
		snapshot.Assets[i] = model.FieldsOf(a)
	}
	if err := l.store.Put(ctx, l.key, snapshot); err != nil {
		l.logger.WithError(err).Error("Failed to persist ledger")
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToPersist, err)
	}
	return nil
}
