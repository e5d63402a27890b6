package geocache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/uv-exposure/internal/domain/uvexposure"
)

type entry struct {
	location  uvexposure.Location
	expiresAt time.Time
}

// MemoryStore keeps geocoding results in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry), now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, key string) (uvexposure.Location, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return uvexposure.Location{}, false, nil
	}
	if !e.expiresAt.IsZero() && e.expiresAt.Before(s.now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return uvexposure.Location{}, false, nil
	}
	return e.location, true, nil
}

// Set stores loc; a non-positive ttl never expires.
func (s *MemoryStore) Set(_ context.Context, key string, loc uvexposure.Location, ttl time.Duration) error {
	var exp time.Time
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = entry{location: loc, expiresAt: exp}
	s.mu.Unlock()
	return nil
}

var _ Store = (*MemoryStore)(nil)
