package session

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	data      Data
	expiresAt time.Time
}

// MemoryStore is a process-local Store. Sessions vanish on restart.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, id string, d Data, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[id] = memoryItem{data: d, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[id]
	if !ok {
		return Data{}, ErrNotFound
	}
	if s.now().After(it.expiresAt) {
		delete(s.items, id)
		return Data{}, ErrNotFound
	}
	return it.data, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for id, it := range s.items {
		if now.After(it.expiresAt) {
			delete(s.items, id)
			n++
		}
	}
	return n
}
