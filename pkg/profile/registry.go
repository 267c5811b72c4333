package profile

import (
	"slices"
	"sync"
)

// Listener is told when the owning Resolver has published a new Profile.
//
// Listeners are compared by interface equality, so implementations must be
// comparable; pointer receivers are the usual choice.
type Listener interface {
	OnLayoutChanged(p *Profile)
}

// Registry is an ordered, duplicate-free set of listeners. The zero value is
// ready to use.
type Registry struct {
	mu        sync.Mutex
	listeners []Listener
}

// Add registers l. Adding a listener that is already registered is a no-op
// and returns false.
func (r *Registry) Add(l Listener) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.Contains(r.listeners, l) {
		return false
	}
	r.listeners = append(r.listeners, l)
	return true
}

// Remove unregisters l and reports whether it was registered.
func (r *Registry) Remove(l Listener) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.Index(r.listeners, l)
	if i < 0 {
		return false
	}
	r.listeners = slices.Delete(r.listeners, i, i+1)
	return true
}

// Len returns the number of registered listeners.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}

// Notify calls every listener exactly once, most recently added first.
// Callers must not rely on the order. Listeners added or removed during
// Notify take effect on the next call.
func (r *Registry) Notify(p *Profile) int {
	r.mu.Lock()
	listeners := slices.Clone(r.listeners)
	r.mu.Unlock()

	for i := len(listeners) - 1; i >= 0; i-- {
		listeners[i].OnLayoutChanged(p)
	}
	return len(listeners)
}
