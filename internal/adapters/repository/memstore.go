package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lagiland/scoreboard/internal/domain/model"
)

// MemoryStore implements Store entirely in memory. It backs unit tests and
// database-free local runs; rows are lost on process exit.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]memRow
	now  func() time.Time
}

type memRow struct {
	contestant model.Contestant
	createdAt  time.Time
}

// MemoryOption applies a configuration option to the MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the creation-instant clock, for deterministic tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		rows: make(map[string]memRow),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create assigns an id and creation instant, then stores the contestant.
func (s *MemoryStore) Create(_ context.Context, c model.Contestant) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := s.now()
	c.ID = uuid.NewString()
	c.Timestamp = created.UnixMilli()
	s.rows[c.ID] = memRow{contestant: c, createdAt: created}
	return c.ID, nil
}

// List returns a fresh slice ordered by creation instant descending.
func (s *MemoryStore) List(_ context.Context) ([]model.Contestant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]memRow, 0, len(s.rows))
	for _, row := range s.rows {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].createdAt.After(rows[j].createdAt)
	})

	out := make([]model.Contestant, len(rows))
	for i, row := range rows {
		out[i] = row.contestant
	}
	return out, nil
}

// Delete removes one contestant by id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rows[id]; !exists {
		return fmt.Errorf("delete contestant %s: %w", id, ErrNotFound)
	}
	delete(s.rows, id)
	return nil
}

// Count returns the number of stored contestants.
func (s *MemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.rows)), nil
}
