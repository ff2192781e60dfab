package interfaces

import (
	"context"
	"time"

	"figrelay/pkg/domain/model"
)

// MessageRegistry stores sent-message records keyed by event fingerprint.
type MessageRegistry interface {
	// Record stores a sent-message record.
	Record(ctx context.Context, rec *model.SentMessageRecord) error

	// Get returns the record for a fingerprint, or types.ErrRecordNotFound.
	Get(ctx context.Context, fingerprint string) (*model.SentMessageRecord, error)

	// List returns all records, newest first.
	List(ctx context.Context) ([]*model.SentMessageRecord, error)

	// Delete removes the record for a fingerprint.
	Delete(ctx context.Context, fingerprint string) error

	// PruneOlderThan removes records sent before the cutoff and returns
	// how many were removed.
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error)

	// Close releases underlying resources.
	Close() error
}
