package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the zero-config session store: a mutex-guarded map with
// per-entry expiry. Suitable for a single gateway instance and for tests;
// use the redis store when running more than one replica.
type MemoryStore struct {
	mu  sync.Mutex
	m   map[string]*memoryEntry
	ttl time.Duration
}

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		m:   make(map[string]*memoryEntry),
		ttl: ttl,
	}
}

func (s *MemoryStore) Create(ctx context.Context, st *State) error {
	return s.Save(ctx, st)
}

func (s *MemoryStore) Get(_ context.Context, id string) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(e.expiresAt) {
		delete(s.m, id)
		return nil, ErrNotFound
	}

	cp := e.state
	return &cp, nil
}

func (s *MemoryStore) Save(_ context.Context, st *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st.UpdatedAt = time.Now()
	s.m[st.ID] = &memoryEntry{
		state:     *st,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.m, id)
	return nil
}
