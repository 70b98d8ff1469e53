package offline

import (
	"sort"
	"sync"
)

// Store is the worker's cache storage: a set of named caches keyed by request URL.
// Lookups across caches visit them in name order.
type Store interface {
	Keys() ([]string, error)
	Delete(cache string) (bool, error)
	Put(cache, key string, e *Entry) error
	// PutAll stores every entry or none of them.
	PutAll(cache string, entries map[string]*Entry) error
	// Match returns nil, nil when no cache holds key.
	Match(key string) (*Entry, error)
	MatchIn(cache, key string) (*Entry, error)
	Close() error
}

type memoryStore struct {
	mu     sync.RWMutex
	caches map[string]map[string]*Entry
}

func NewMemoryStore() Store {
	return &memoryStore{caches: make(map[string]map[string]*Entry)}
}

func (m *memoryStore) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.caches))
	for name := range m.caches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *memoryStore) Delete(cache string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, found := m.caches[cache]
	delete(m.caches, cache)
	return found, nil
}

func (m *memoryStore) Put(cache, key string, e *Entry) error {
	return m.PutAll(cache, map[string]*Entry{key: e})
}

func (m *memoryStore) PutAll(cache string, entries map[string]*Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, found := m.caches[cache]
	if !found {
		c = make(map[string]*Entry)
		m.caches[cache] = c
	}
	for key, e := range entries {
		c[key] = e.clone()
	}
	return nil
}

func (m *memoryStore) Match(key string) (*Entry, error) {
	names, _ := m.Keys()

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, name := range names {
		if e, found := m.caches[name][key]; found {
			return e.clone(), nil
		}
	}
	return nil, nil
}

func (m *memoryStore) MatchIn(cache, key string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if e, found := m.caches[cache][key]; found {
		return e.clone(), nil
	}
	return nil, nil
}

func (m *memoryStore) Close() error {
	return nil
}
