package flash

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	notice    Notice
	expiresAt time.Time
}

// MemoryStore is a process-local Store for single instance setups and tests.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Put(_ context.Context, userID string, notice Notice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key(userID)] = memoryEntry{notice: notice, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Take(_ context.Context, userID string) (*Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(userID)
	entry, ok := s.entries[k]
	if !ok {
		return nil, nil
	}
	delete(s.entries, k)

	if !s.now().Before(entry.expiresAt) {
		return nil, nil
	}
	notice := entry.notice
	return &notice, nil
}
