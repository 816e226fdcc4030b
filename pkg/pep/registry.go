package pep

import "sync"

// ContextRegistry is the transient mapping from correlation id to request
// context. Entries exist only while their owning enforcement call is
// evaluating; the gateway unregisters them on every exit path. Because ids
// are minted from a monotonic 63-bit counter, an id is never reused while
// another call could still observe it, which rules out cross-talk between
// concurrent evaluations.
type ContextRegistry struct {
	mu       sync.RWMutex
	contexts map[CorrelationID]*RequestContext
}

// NewContextRegistry creates an empty registry.
func NewContextRegistry() *ContextRegistry {
	return &ContextRegistry{
		contexts: make(map[CorrelationID]*RequestContext),
	}
}

// Register associates a request context with a correlation id.
func (r *ContextRegistry) Register(id CorrelationID, rc *RequestContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contexts[id] = rc
}

// Lookup returns the context registered under id, or false when the id is
// unknown or already unregistered.
func (r *ContextRegistry) Lookup(id CorrelationID) (*RequestContext, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rc, ok := r.contexts[id]
	return rc, ok
}

// Unregister removes the entry for id. Unregistering an unknown id is a
// no-op.
func (r *ContextRegistry) Unregister(id CorrelationID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contexts, id)
}

// Len returns the current registry population.
func (r *ContextRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.contexts)
}
