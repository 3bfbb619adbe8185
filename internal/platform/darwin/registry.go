//go:build darwin && cgo

package darwin

import "sync"

// registry maps the refcon token passed to AXObserverAddNotification back to
// its subscription. Tokens are never reused, so a late callback for a removed
// token finds nothing instead of a different subscription.
type registry[T any] struct {
	mu   sync.Mutex
	next uintptr
	m    map[uintptr]*T
}

func (r *registry[T]) add(v *T) uintptr {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.m == nil {
		r.m = make(map[uintptr]*T)
	}
	r.next++
	r.m[r.next] = v
	return r.next
}

func (r *registry[T]) get(token uintptr) *T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m[token]
}

func (r *registry[T]) remove(token uintptr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, token)
}
