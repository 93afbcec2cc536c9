package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/model"
)

// noExpiry disables the fernet token age check.
const noExpiry = -1 * time.Second

// SnapshotRepository stores ledger snapshots in the kv_store table, one row per key.
// When constructed with a key, values are fernet tokens instead of plain JSON.
type SnapshotRepository struct {
	db  *sql.DB
	key *fernet.Key
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
// A nil key stores snapshots unencrypted.
func NewSnapshotRepository(db *sql.DB, key *fernet.Key) *SnapshotRepository {
	return &SnapshotRepository{db: db, key: key}
}

// Get returns the snapshot stored under key.
// It returns apperrors.ErrSnapshotNotFound when nothing is stored and
// apperrors.ErrCorruptSnapshot when the value cannot be decrypted or decoded.
func (r *SnapshotRepository) Get(ctx context.Context, key string) (model.LedgerSnapshot, error) {
	query := `
          SELECT value
          FROM kv_store
          WHERE key = ?
      `
	var value []byte
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return model.LedgerSnapshot{}, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return model.LedgerSnapshot{}, fmt.Errorf("failed to query kv_store: %w", err)
	}

	if r.key != nil {
		value = fernet.VerifyAndDecrypt(value, noExpiry, []*fernet.Key{r.key})
		if value == nil {
			return model.LedgerSnapshot{}, fmt.Errorf("%w: token could not be verified", apperrors.ErrCorruptSnapshot)
		}
	}

	var snapshot model.LedgerSnapshot
	if err := json.Unmarshal(value, &snapshot); err != nil {
		return model.LedgerSnapshot{}, fmt.Errorf("%w: %w", apperrors.ErrCorruptSnapshot, err)
	}
	return snapshot, nil
}

// Put replaces the snapshot stored under key.
func (r *SnapshotRepository) Put(ctx context.Context, key string, snapshot model.LedgerSnapshot) error {
	value, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if r.key != nil {
		value, err = fernet.EncryptAndSign(value, r.key)
		if err != nil {
			return fmt.Errorf("failed to encrypt snapshot: %w", err)
		}
	}

	query := `
          INSERT INTO kv_store (key, value, updated_at)
          VALUES (?, ?, ?)
          ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
      `
	if _, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to write kv_store: %w", err)
	}
	return nil
}
