package cache

import (
	"sync"
)

// Keyed cache that loads each value at most once and never invalidates. Failed loads are cached
// like successful ones, so a key that failed once keeps failing with the same error.
type Cache[V any] struct {
	lock    sync.Mutex
	entries map[string]*entry[V]
}

type entry[V any] struct {
	once  sync.Once
	value V
	err   error
}

func New[V any]() *Cache[V] {
	return &Cache[V]{entries: make(map[string]*entry[V])}
}

// Returns the value for the key, calling load if it is the first request for that key. Concurrent
// first requests for the same key wait for the same load, while other keys are not blocked.
func (cache *Cache[V]) Get(key string, load func() (V, error)) (V, error) {
	cache.lock.Lock()
	cached, ok := cache.entries[key]
	if !ok {
		cached = &entry[V]{}
		cache.entries[key] = cached
	}
	cache.lock.Unlock()

	cached.once.Do(func() {
		cached.value, cached.err = load()
	})

	return cached.value, cached.err
}

// Reports whether the key has been requested before. Does not wait for a load in progress.
func (cache *Cache[V]) Contains(key string) bool {
	cache.lock.Lock()
	defer cache.lock.Unlock()

	_, ok := cache.entries[key]
	return ok
}
