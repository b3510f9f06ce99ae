package catalog

import "sync"

// Store holds the currently loaded catalog per physical store. A fresh
// upload replaces the previous one wholesale.
type Store struct {
	mu      sync.RWMutex
	byStore map[string]map[string]Entry
}

func NewStore() *Store {
	return &Store{byStore: make(map[string]map[string]Entry)}
}

func (s *Store) Load(store string, entries []Entry) {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.SKU] = e
	}
	s.mu.Lock()
	s.byStore[store] = m
	s.mu.Unlock()
}

func (s *Store) Lookup(store, sku string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byStore[store][sku]
	return e, ok
}

func (s *Store) Count(store string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byStore[store])
}
