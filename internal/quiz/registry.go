package quiz

import "sync"

// Registry holds the live sessions of the hosting process. The engine itself
// is stateless between calls; whoever serves multiple clients owns exactly
// one of these instead of a module-level map.
//
// Each entry carries its own mutex: Do serializes all mutation of a given
// session, which is the external synchronization the Session type requires.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	mu sync.Mutex
	s  *Session
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*registryEntry)}
}

func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[s.ID()] = &registryEntry{s: s}
}

// Do runs fn with the session locked. Callers mutate sessions only through
// here.
func (r *Registry) Do(id string, fn func(*Session) error) error {
	r.mu.Lock()
	e, ok := r.entries[id]
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.s)
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
