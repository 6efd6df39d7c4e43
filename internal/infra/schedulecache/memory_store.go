package schedulecache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/nap-planner/internal/domain/napschedule"
)

type scheduleRecord struct {
	payload   napschedule.Schedule
	expiresAt time.Time
}

// MemoryStore is an in-memory schedule cache for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]scheduleRecord
	now     func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]scheduleRecord),
		now:     time.Now,
	}
}

// Get implements napschedule.Cache.
func (s *MemoryStore) Get(_ context.Context, key string) (napschedule.Schedule, bool, error) {
	if key == "" {
		return napschedule.Schedule{}, false, nil
	}
	s.mu.RLock()
	record, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return napschedule.Schedule{}, false, nil
	}
	if s.hasExpired(record.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return napschedule.Schedule{}, false, nil
	}
	return record.payload, true, nil
}

// Set caches the schedule with optional TTL. Expired entries are swept on write.
func (s *MemoryStore) Set(_ context.Context, key string, schedule napschedule.Schedule, ttl time.Duration) error {
	if key == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	for k, record := range s.entries {
		if s.hasExpired(record.expiresAt) {
			delete(s.entries, k)
		}
	}
	s.entries[key] = scheduleRecord{payload: schedule, expiresAt: exp}
	return nil
}

// Len reports the number of live and not yet swept entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(s.now())
}

var _ napschedule.Cache = (*MemoryStore)(nil)
