package session

import (
	"maps"
	"sync"
)

// Bag is the mutable key/value state of one session.
// Handlers and middleware share the same *Bag across requests that present
// the same session cookie. Safe for concurrent use.
type Bag struct {
	mu      sync.RWMutex
	data    map[string]any
	version uint64
}

// NewBag returns an empty bag, or one seeded with a copy of data.
func NewBag(data ...map[string]any) *Bag {
	b := &Bag{data: make(map[string]any)}
	for _, d := range data {
		maps.Copy(b.data, d)
	}
	return b
}

// Get returns the value stored under key.
func (b *Bag) Get(key string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.data[key]
	return v, ok
}

// GetString returns the value under key if it is a string.
func (b *Bag) GetString(key string) (string, bool) {
	v, ok := b.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Set stores val under key.
func (b *Bag) Set(key string, val any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = val
	b.version++
}

// Delete removes key.
func (b *Bag) Delete(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
	b.version++
}

// Has reports whether key is present.
func (b *Bag) Has(key string) bool {
	_, ok := b.Get(key)
	return ok
}

// Len returns the number of keys.
func (b *Bag) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}

// Clear removes every key.
func (b *Bag) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.data)
	b.version++
}

// Version increases on every write. Stores that keep bags outside the
// process compare it before and after a request to decide whether to save.
func (b *Bag) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// Snapshot returns a shallow copy of the bag contents.
func (b *Bag) Snapshot() map[string]any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return maps.Clone(b.data)
}
