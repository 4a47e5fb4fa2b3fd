// Package exclusion provides the per-resource mutual-exclusion primitive
// guarding physical devices shared between environments. Acquisition is
// strictly exclusive per key: at most one holder at any instant, verified,
// not best-effort.
package exclusion

import (
	"fmt"
	"sync"
)

// Lock is a keyed, non-blocking mutual-exclusion primitive. The zero value
// is not usable; construct with New.
type Lock struct {
	mu      sync.Mutex
	holders map[string]bool
}

// New creates an empty lock table.
func New() *Lock {
	return &Lock{holders: make(map[string]bool)}
}

// TryAcquire attempts to take the key without blocking and reports whether
// it succeeded. Callers that need to wait retry with bounded backoff rather
// than block, so starvation surfaces as a timeout instead of a hang.
func (l *Lock) TryAcquire(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.holders[key] {
		return false
	}
	l.holders[key] = true
	return true
}

// Release returns the key. Releasing a key that is not held is a programming
// error and is reported instead of silently ignored.
func (l *Lock) Release(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.holders[key] {
		return fmt.Errorf("exclusion: release of key %q that is not held", key)
	}
	delete(l.holders, key)
	return nil
}

// Held reports whether the key currently has a holder.
func (l *Lock) Held(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holders[key]
}
