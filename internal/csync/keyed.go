// Package csync provides keyed locking for per-owner serialization.
//
// A KeyedRWMutex hands out one read-write mutex per key. Callers holding the
// lock for one key never block callers working on another key, and a key's
// mutex is released from the registry once nobody holds or waits on it.
//
//	locks := csync.NewKeyedRWMutex[string]()
//	unlock := locks.Lock(userID)
//	defer unlock()
package csync

import "sync"

type keyedEntry struct {
	mu   sync.RWMutex
	refs int
}

// KeyedRWMutex serializes writers per key and lets readers of the same key share access.
type KeyedRWMutex[K comparable] struct {
	mu      sync.Mutex
	entries map[K]*keyedEntry
}

// NewKeyedRWMutex creates an empty lock registry.
func NewKeyedRWMutex[K comparable]() *KeyedRWMutex[K] {
	return &KeyedRWMutex[K]{
		entries: make(map[K]*keyedEntry),
	}
}

// Lock acquires the exclusive lock for key and returns its release function.
func (k *KeyedRWMutex[K]) Lock(key K) func() {
	e := k.acquire(key)
	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.release(key, e)
	}
}

// RLock acquires the shared lock for key and returns its release function.
func (k *KeyedRWMutex[K]) RLock(key K) func() {
	e := k.acquire(key)
	e.mu.RLock()
	return func() {
		e.mu.RUnlock()
		k.release(key, e)
	}
}

// Len returns the number of keys currently held or awaited.
func (k *KeyedRWMutex[K]) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}

func (k *KeyedRWMutex[K]) acquire(key K) *keyedEntry {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, ok := k.entries[key]
	if !ok {
		e = &keyedEntry{}
		k.entries[key] = e
	}
	e.refs++
	return e
}

func (k *KeyedRWMutex[K]) release(key K, e *keyedEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
}
