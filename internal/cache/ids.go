// Package cache holds small mutex-guarded registries shared across the
// annotation stores.
package cache

import "sync"

// IDRegistry tracks every record id issued during the process lifetime,
// across all kinds, so freshly generated ids can be guaranteed unique
// even within the same millisecond.
type IDRegistry struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewIDRegistry creates an empty IDRegistry.
func NewIDRegistry() *IDRegistry {
	return &IDRegistry{ids: make(map[string]struct{})}
}

// Reserve claims id for the caller. It returns false if the id was
// already reserved, in which case the caller must generate a new one.
func (r *IDRegistry) Reserve(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.ids[id]; taken {
		return false
	}
	r.ids[id] = struct{}{}
	return true
}

// Has reports whether id has been reserved.
func (r *IDRegistry) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.ids[id]
	return ok
}

// Len returns the number of reserved ids.
func (r *IDRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}
