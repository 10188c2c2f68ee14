package identity

import (
	"sync"

	"github.com/google/uuid"
)

// Registry maps issued identifiers to the username that claimed them.
// Entries are immutable once issued and live for the process lifetime.
type Registry struct {
	mu sync.RWMutex
	m  map[uuid.UUID]string
}

func NewRegistry() *Registry {
	return &Registry{m: make(map[uuid.UUID]string)}
}

// Issue generates a fresh identifier and records it for username.
// The username is stored verbatim; empty strings are allowed.
func (r *Registry) Issue(username string) uuid.UUID {
	id := uuid.New()

	r.mu.Lock()
	r.m[id] = username
	r.mu.Unlock()

	return id
}

func (r *Registry) Lookup(id uuid.UUID) (string, bool) {
	r.mu.RLock()
	username, ok := r.m[id]
	r.mu.RUnlock()
	return username, ok
}
