// Package keylock provides named mutexes so writers to the same logical
// resource, such as one restaurant's bookings on one date, are serialized
// while unrelated writers proceed concurrently.
package keylock

import (
	"strings"
	"sync"
)

type entry struct {
	mu   sync.Mutex
	refs int
}

type KeyLock struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *KeyLock {
	return &KeyLock{
		entries: make(map[string]*entry),
	}
}

// Lock acquires the mutex for the key built from the given parts, blocking
// until any other holder of the same key releases it.
func (k *KeyLock) Lock(parts ...string) {
	key := strings.Join(parts, ":")

	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for the key and drops it once nobody waits on it.
func (k *KeyLock) Unlock(parts ...string) {
	key := strings.Join(parts, ":")

	k.mu.Lock()
	e, ok := k.entries[key]
	if ok {
		e.refs--
		if e.refs == 0 {
			delete(k.entries, key)
		}
	}
	k.mu.Unlock()

	if ok {
		e.mu.Unlock()
	}
}
