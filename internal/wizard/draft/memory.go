package draft

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps drafts in process memory. Used when no Redis address is
// configured, and in tests.
type MemoryStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	drafts map[string]memoryEntry
}

type memoryEntry struct {
	draft     Draft
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:    ttl,
		drafts: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Load(_ context.Context, key string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.drafts[key]
	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(s.drafts, key)
		return nil, nil
	}

	d := entry.draft
	return &d, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, d Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{draft: d}
	if s.ttl > 0 {
		entry.expiresAt = time.Now().Add(s.ttl)
	}
	s.drafts[key] = entry
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, key)
	return nil
}
