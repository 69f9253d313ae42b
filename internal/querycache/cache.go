// Package querycache holds derived values computed from remote data, keyed by
// comparable keys, with explicit invalidation and refetch.
//
// A Store is owned by one session: create it when the session starts and Close
// it when the session ends. Nothing in this package is global except metrics.
package querycache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ErrClosed is returned by Fetch and RefetchMatching after Close.
var ErrClosed = errors.New("query cache closed")

// Fetcher computes the authoritative value for a key.
type Fetcher[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Options configure a Store. The zero value is usable.
type Options struct {
	// Name labels the store's metrics.
	Name string
	// MaxAge makes entries older than this read as absent. Zero disables expiry.
	MaxAge time.Duration
	// Concurrency bounds parallel fetches during a refetch pass. Defaults to 4.
	Concurrency int
}

type entry[V any] struct {
	value     V
	stale     bool
	updatedAt time.Time
	// version changes on every Set and Invalidate so an in-flight fetch can
	// tell whether its result is still the newest information.
	version   uint64
	observers int
}

type Store[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[V]
	version uint64
	closed  bool

	fetch Fetcher[K, V]
	group singleflight.Group
	opts  Options
	now   func() time.Time
}

func New[K comparable, V any](fetch Fetcher[K, V], opts Options) *Store[K, V] {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}

	if opts.Name == "" {
		opts.Name = "default"
	}

	return &Store[K, V]{
		entries: make(map[K]*entry[V]),
		fetch:   fetch,
		opts:    opts,
		now:     time.Now,
	}
}

// Get returns the cached value if it is present and fresh.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V

	e, ok := s.entries[key]
	if !ok || s.closed || !s.freshLocked(e) {
		misses.WithLabelValues(s.opts.Name).Inc()
		return zero, false
	}

	hits.WithLabelValues(s.opts.Name).Inc()

	return e.value, true
}

// Set stores value for key unconditionally. Once Set returns, every Get on the
// same store observes the value until it is invalidated or replaced.
func (s *Store[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.setLocked(key, value)
}

func (s *Store[K, V]) setLocked(key K, value V) {
	s.version++

	e, ok := s.entries[key]
	if !ok {
		e = &entry[V]{}
		s.entries[key] = e
	}

	e.value = value
	e.stale = false
	e.updatedAt = s.now()
	e.version = s.version

	sets.WithLabelValues(s.opts.Name).Inc()
}

// Invalidate marks every entry matching pred as stale and returns how many
// entries matched. Stale entries keep their value for refetching but are not
// returned by Get.
func (s *Store[K, V]) Invalidate(pred func(K) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0

	for k, e := range s.entries {
		if !pred(k) {
			continue
		}

		s.version++
		e.stale = true
		e.version = s.version
		n++
	}

	invalidations.WithLabelValues(s.opts.Name).Add(float64(n))

	return n
}

// Remove drops matching entries entirely.
func (s *Store[K, V]) Remove(pred func(K) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0

	for k := range s.entries {
		if pred(k) {
			delete(s.entries, k)
			n++
		}
	}

	if n > 0 {
		s.version++
	}

	return n
}

// Fetch returns the cached value when fresh and otherwise computes it.
// Concurrent fetches of the same key share one computation.
func (s *Store[K, V]) Fetch(ctx context.Context, key K) (V, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}

	return s.load(ctx, key)
}

// RefetchMatching recomputes every entry matching pred, including entries no
// reader is observing. Failures are joined; successful keys are still updated.
func (s *Store[K, V]) RefetchMatching(ctx context.Context, pred func(K) bool) error {
	return s.refetch(ctx, func(k K, _ *entry[V]) bool { return pred(k) })
}

// RefetchActive recomputes matching entries that currently have observers.
func (s *Store[K, V]) RefetchActive(ctx context.Context, pred func(K) bool) error {
	return s.refetch(ctx, func(k K, e *entry[V]) bool { return e.observers > 0 && pred(k) })
}

func (s *Store[K, V]) refetch(ctx context.Context, match func(K, *entry[V]) bool) error {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}

	var keys []K

	for k, e := range s.entries {
		if match(k, e) {
			keys = append(keys, k)
		}
	}

	s.mu.Unlock()

	var (
		mu   sync.Mutex
		errs []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for _, k := range keys {
		g.Go(func() error {
			if _, err := s.load(gctx, k); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("refetching %v: %w", k, err))
				mu.Unlock()
			}

			// Keep going on failure; every key gets its own attempt.
			return nil
		})
	}

	_ = g.Wait()

	if len(errs) > 0 {
		refetchErrors.WithLabelValues(s.opts.Name).Add(float64(len(errs)))
	}

	return errors.Join(errs...)
}

// load runs the fetcher and stores the result unless the entry was written or
// invalidated while the fetch was in flight. Calls only share a fetch with
// callers that started at the same store version, so a load never adopts the
// result of a fetch that began before the latest write or invalidation.
func (s *Store[K, V]) load(ctx context.Context, key K) (V, error) {
	var zero V

	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return zero, ErrClosed
	}

	var startVersion uint64
	if e, ok := s.entries[key]; ok {
		startVersion = e.version
	}

	call := fmt.Sprintf("%v@%d", key, s.version)

	s.mu.Unlock()

	v, err, _ := s.group.Do(call, func() (any, error) {
		return s.fetch(ctx, key)
	})
	if err != nil {
		return zero, err
	}

	value := v.(V)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return value, nil
	}

	var current uint64
	if e, ok := s.entries[key]; ok {
		current = e.version
	}

	if current == startVersion {
		s.setLocked(key, value)
	}

	return value, nil
}

// Observe registers an active reader of key until release is called.
func (s *Store[K, V]) Observe(key K) (release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &entry[V]{stale: true}
		s.entries[key] = e
	}

	e.observers++

	var once sync.Once

	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			if cur, ok := s.entries[key]; ok && cur.observers > 0 {
				cur.observers--
			}
		})
	}
}

// Len returns the number of entries, stale or not.
func (s *Store[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Close drops all entries. In-flight fetches finish but their results are discarded.
func (s *Store[K, V]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.entries = make(map[K]*entry[V])
}

func (s *Store[K, V]) freshLocked(e *entry[V]) bool {
	if e.stale {
		return false
	}

	if s.opts.MaxAge > 0 && s.now().Sub(e.updatedAt) > s.opts.MaxAge {
		return false
	}

	return true
}
