package registry

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"

	"figrelay/pkg/domain/interfaces"
	"figrelay/pkg/domain/model"
	"figrelay/pkg/domain/types"
)

// SQLiteStore persists sent-message records in a local SQLite database so
// retraction survives restarts.
type SQLiteStore struct {
	db *sql.DB
}

var _ interfaces.MessageRegistry = (*SQLiteStore)(nil)

// NewSQLite opens (creating if needed) the database at dbPath.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create db directory", goerr.V("dir", dir))
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database", goerr.V("path", dbPath))
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sent_messages (
			fingerprint    TEXT PRIMARY KEY,
			channel        TEXT NOT NULL,
			message_id     TEXT NOT NULL,
			destination_id TEXT NOT NULL,
			commit_type    TEXT NOT NULL,
			sent_at        INTEGER NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, goerr.Wrap(err, "failed to create sent_messages table")
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_sent_messages_sent_at ON sent_messages(sent_at)
	`); err != nil {
		db.Close()
		return nil, goerr.Wrap(err, "failed to create sent_at index")
	}

	return &SQLiteStore{db: db}, nil
}

// Record stores a sent-message record, replacing any previous entry for the
// same fingerprint.
func (s *SQLiteStore) Record(ctx context.Context, rec *model.SentMessageRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO sent_messages
			(fingerprint, channel, message_id, destination_id, commit_type, sent_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.Fingerprint, rec.Channel, rec.MessageID, rec.DestinationID, string(rec.CommitType), rec.SentAt.Unix())
	if err != nil {
		return goerr.Wrap(err, "failed to insert sent message record", goerr.V("fingerprint", rec.Fingerprint))
	}
	return nil
}

// Get returns the record for a fingerprint.
func (s *SQLiteStore) Get(ctx context.Context, fingerprint string) (*model.SentMessageRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT fingerprint, channel, message_id, destination_id, commit_type, sent_at
		FROM sent_messages
		WHERE fingerprint = ?
	`, fingerprint)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, goerr.Wrap(types.ErrRecordNotFound, "no record for fingerprint", goerr.V("fingerprint", fingerprint))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query sent message record", goerr.V("fingerprint", fingerprint))
	}
	return rec, nil
}

// List returns all records, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]*model.SentMessageRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT fingerprint, channel, message_id, destination_id, commit_type, sent_at
		FROM sent_messages
		ORDER BY sent_at DESC
	`)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list sent message records")
	}
	defer rows.Close()

	var records []*model.SentMessageRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan sent message record")
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate sent message records")
	}
	return records, nil
}

// Delete removes the record for a fingerprint.
func (s *SQLiteStore) Delete(ctx context.Context, fingerprint string) error {
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM sent_messages WHERE fingerprint = ?
	`, fingerprint); err != nil {
		return goerr.Wrap(err, "failed to delete sent message record", goerr.V("fingerprint", fingerprint))
	}
	return nil
}

// PruneOlderThan removes records sent before the cutoff.
func (s *SQLiteStore) PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM sent_messages WHERE sent_at < ?
	`, cutoff.Unix())
	if err != nil {
		return 0, goerr.Wrap(err, "failed to prune sent message records")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count pruned records")
	}
	return int(affected), nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*model.SentMessageRecord, error) {
	var rec model.SentMessageRecord
	var commitType string
	var sentAt int64
	if err := row.Scan(&rec.Fingerprint, &rec.Channel, &rec.MessageID, &rec.DestinationID, &commitType, &sentAt); err != nil {
		return nil, err
	}
	rec.CommitType = model.CommitType(commitType)
	rec.SentAt = time.Unix(sentAt, 0)
	return &rec, nil
}
