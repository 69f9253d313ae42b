package querycache

import "sync"

// Registry keeps one Store per session id, creating stores on first use.
type Registry[ID comparable, K comparable, V any] struct {
	mu     sync.Mutex
	stores map[ID]*Store[K, V]
	newFn  func(ID) *Store[K, V]
}

func NewRegistry[ID comparable, K comparable, V any](newFn func(ID) *Store[K, V]) *Registry[ID, K, V] {
	return &Registry[ID, K, V]{
		stores: make(map[ID]*Store[K, V]),
		newFn:  newFn,
	}
}

// Session returns the store for id, creating it if needed.
func (r *Registry[ID, K, V]) Session(id ID) *Store[K, V] {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stores[id]
	if !ok {
		s = r.newFn(id)
		r.stores[id] = s
	}

	return s
}

// End closes and forgets the store for id. It reports whether one existed.
func (r *Registry[ID, K, V]) End(id ID) bool {
	r.mu.Lock()
	s, ok := r.stores[id]
	delete(r.stores, id)
	r.mu.Unlock()

	if ok {
		s.Close()
	}

	return ok
}

// Len returns the number of open sessions.
func (r *Registry[ID, K, V]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.stores)
}

// CloseAll ends every session.
func (r *Registry[ID, K, V]) CloseAll() {
	r.mu.Lock()
	stores := r.stores
	r.stores = make(map[ID]*Store[K, V])
	r.mu.Unlock()

	for _, s := range stores {
		s.Close()
	}
}
