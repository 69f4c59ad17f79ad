package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used in tests and when no Redis URL is
// configured. Entries are kept as JSON so marshal behavior matches the
// Redis-backed store.
type MemoryStore struct {
	mu    sync.RWMutex
	live  map[string]memoryEntry
	stale map[string][]byte
}

type memoryEntry struct {
	data      []byte
	key       Key
	expiresAt time.Time // zero means no expiry
}

// NewMemoryStore returns an empty in-process Store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		live:  make(map[string]memoryEntry),
		stale: make(map[string][]byte),
	}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Get(_ context.Context, key Key, dest any) error {
	s.mu.RLock()
	entry, ok := s.live[key.String()]
	s.mu.RUnlock()
	if !ok || (!entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt)) {
		return ErrMiss
	}
	return json.Unmarshal(entry.data, dest)
}

func (s *MemoryStore) GetStale(_ context.Context, key Key, dest any) error {
	s.mu.RLock()
	data, ok := s.stale[key.String()]
	s.mu.RUnlock()
	if !ok {
		return ErrMiss
	}
	return json.Unmarshal(data, dest)
}

func (s *MemoryStore) Set(_ context.Context, key Key, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := memoryEntry{data: data, key: key}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.live[key.String()] = entry
	s.stale[key.String()] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Invalidate(_ context.Context, keys ...Key) error {
	s.mu.Lock()
	for _, k := range keys {
		delete(s.live, k.String())
	}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) InvalidateMatching(_ context.Context, pred Key) error {
	s.mu.Lock()
	for name, entry := range s.live {
		if entry.key.Matches(pred) {
			delete(s.live, name)
		}
	}
	s.mu.Unlock()
	return nil
}

// Contains reports whether a live copy exists for the key. Test helper.
func (s *MemoryStore) Contains(key Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.live[key.String()]
	return ok && (entry.expiresAt.IsZero() || time.Now().Before(entry.expiresAt))
}
