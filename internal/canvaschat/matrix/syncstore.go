package matrix

import (
	"context"
	"database/sql"
	"errors"

	"maunium.net/go/mautrix"
	"maunium.net/go/mautrix/id"
)

var _ mautrix.SyncStore = (*DBSyncStore)(nil)

// DBSyncStore implements mautrix.SyncStore on the audit database's
// matrix_sync_state table, so a restart resumes from the last next_batch
// token instead of replaying old chat turns.
type DBSyncStore struct {
	db *sql.DB
}

func newDBSyncStore(db *sql.DB) *DBSyncStore {
	return &DBSyncStore{db: db}
}

// SaveFilterID persists the event filter ID.
func (s *DBSyncStore) SaveFilterID(ctx context.Context, userID id.UserID, filterID string) error {
	return s.save(ctx, userID, "filter_id", filterID)
}

// LoadFilterID returns ("", nil) before the first save.
func (s *DBSyncStore) LoadFilterID(ctx context.Context, userID id.UserID) (string, error) {
	return s.load(ctx, userID, "filter_id")
}

// SaveNextBatch persists the /sync position.
func (s *DBSyncStore) SaveNextBatch(ctx context.Context, userID id.UserID, nextBatchToken string) error {
	return s.save(ctx, userID, "next_batch", nextBatchToken)
}

// LoadNextBatch returns ("", nil) on first run.
func (s *DBSyncStore) LoadNextBatch(ctx context.Context, userID id.UserID) (string, error) {
	return s.load(ctx, userID, "next_batch")
}

func (s *DBSyncStore) save(ctx context.Context, userID id.UserID, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO matrix_sync_state (user_id, key, value)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, key) DO UPDATE SET value = excluded.value
	`, userID.String(), key, value)
	return err
}

func (s *DBSyncStore) load(ctx context.Context, userID id.UserID, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM matrix_sync_state WHERE user_id = ? AND key = ?`,
		userID.String(), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}
