package registry

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"figrelay/pkg/domain/interfaces"
	"figrelay/pkg/domain/model"
	"figrelay/pkg/domain/types"
)

// MemoryStore is an in-memory MessageRegistry. Used when no database path is
// configured, and by tests.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*model.SentMessageRecord
}

var _ interfaces.MessageRegistry = (*MemoryStore)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*model.SentMessageRecord),
	}
}

// Record stores a sent-message record.
func (s *MemoryStore) Record(_ context.Context, rec *model.SentMessageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *rec
	s.records[rec.Fingerprint] = &clone
	return nil
}

// Get returns the record for a fingerprint.
func (s *MemoryStore) Get(_ context.Context, fingerprint string) (*model.SentMessageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[fingerprint]
	if !ok {
		return nil, goerr.Wrap(types.ErrRecordNotFound, "no record for fingerprint", goerr.V("fingerprint", fingerprint))
	}
	clone := *rec
	return &clone, nil
}

// List returns all records, newest first.
func (s *MemoryStore) List(_ context.Context) ([]*model.SentMessageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]*model.SentMessageRecord, 0, len(s.records))
	for _, rec := range s.records {
		clone := *rec
		records = append(records, &clone)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].SentAt.After(records[j].SentAt)
	})
	return records, nil
}

// Delete removes the record for a fingerprint.
func (s *MemoryStore) Delete(_ context.Context, fingerprint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, fingerprint)
	return nil
}

// PruneOlderThan removes records sent before the cutoff.
func (s *MemoryStore) PruneOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pruned := 0
	for fp, rec := range s.records {
		if rec.SentAt.Before(cutoff) {
			delete(s.records, fp)
			pruned++
		}
	}
	return pruned, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
