// Package stripemap provides a fixed-capacity hash map safe for concurrent
// use by many goroutines. Instead of one global lock, the bucket table is
// partitioned into stripes of consecutive buckets, each guarded by its own
// mutex, so operations on different stripes never contend. Every operation
// acquires at most one lock, which rules out deadlock by construction.
//
// The table never resizes: capacity is fixed at construction and chains grow
// as keys collide. Iteration and ordering are out of scope.
package stripemap

import (
	"hash/maphash"
	"sync"
	"sync/atomic"
)

// DefaultConcurrencyLevel is the stripe count used by New. It bounds the
// number of goroutines that can mutate the map at the same time, so it should
// track expected writer parallelism rather than capacity.
const DefaultConcurrencyLevel = 16

// Map is a fixed-capacity striped hash map. The zero value is not usable;
// construct with New, NewWithConcurrency or NewWithHasher. A Map must not be
// copied after first use (it embeds mutexes).
type Map[K comparable, V any] struct {
	capacity        int
	indicesPerMutex int
	hasher          func(K) uint64
	size            atomic.Int64
	table           []bucket[K, V]
	mutexes         []sync.Mutex
}

// New creates a Map with the given capacity, DefaultConcurrencyLevel stripes
// and the runtime's hash for K.
func New[K comparable, V any](capacity int) (*Map[K, V], error) {
	return NewWithHasher[K, V](capacity, DefaultConcurrencyLevel, defaultHasher[K]())
}

// NewWithConcurrency creates a Map with the given capacity and concurrency
// level. The effective stripe count is min(concurrencyLevel, capacity), so
// every stripe covers at least one bucket.
func NewWithConcurrency[K comparable, V any](capacity, concurrencyLevel int) (*Map[K, V], error) {
	return NewWithHasher[K, V](capacity, concurrencyLevel, defaultHasher[K]())
}

// NewWithHasher creates a Map using a caller-supplied hash function, e.g.
// util.Murmur3String for process-stable placement of string keys.
func NewWithHasher[K comparable, V any](capacity, concurrencyLevel int, hasher func(K) uint64) (*Map[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if concurrencyLevel <= 0 {
		return nil, ErrInvalidConcurrencyLevel
	}

	mutexCount := concurrencyLevel
	if mutexCount > capacity {
		mutexCount = capacity
	}

	return &Map[K, V]{
		capacity:        capacity,
		indicesPerMutex: (capacity + mutexCount - 1) / mutexCount,
		hasher:          hasher,
		table:           make([]bucket[K, V], capacity),
		mutexes:         make([]sync.Mutex, mutexCount),
	}, nil
}

// defaultHasher returns the runtime's hash for K, seeded per map so placement
// differs between instances and processes.
func defaultHasher[K comparable]() func(K) uint64 {
	seed := maphash.MakeSeed()
	return func(key K) uint64 {
		return maphash.Comparable(seed, key)
	}
}

// Capacity returns the construction-time bucket count.
func (m *Map[K, V]) Capacity() int {
	return m.capacity
}

// Size returns the number of stored keys. It reads an atomic counter without
// taking any stripe lock, so while mutators are in flight on other stripes
// the result may be transiently stale. It is exact once all mutators have
// finished.
func (m *Map[K, V]) Size() int {
	return int(m.size.Load())
}

// bucketIndex and mutexFor form the two-level index resolution. Both are pure
// and computed before any lock is acquired.
func (m *Map[K, V]) bucketIndex(key K) int {
	return int(m.hasher(key) % uint64(m.capacity))
}

func (m *Map[K, V]) mutexFor(bucketIndex int) *sync.Mutex {
	return &m.mutexes[bucketIndex/m.indicesPerMutex]
}

// Contains reports whether key is present. A true result does not guarantee
// the key still exists once Contains returns; another goroutine may erase it
// the moment the stripe lock is dropped.
func (m *Map[K, V]) Contains(key K) bool {
	index := m.bucketIndex(key)
	mu := m.mutexFor(index)
	mu.Lock()
	defer mu.Unlock()

	return m.table[index].find(key) != nil
}

// GetCopy returns a copy of the value stored under key, taken while the
// stripe lock is held. Returns ErrKeyNotFound if the key is absent.
func (m *Map[K, V]) GetCopy(key K) (V, error) {
	index := m.bucketIndex(key)
	mu := m.mutexFor(index)
	mu.Lock()
	defer mu.Unlock()

	if e := m.table[index].find(key); e != nil {
		return e.value, nil
	}
	var zero V
	return zero, ErrKeyNotFound
}

// GetRef returns the stored value by reference, without copying, together
// with the still-held stripe lock. The caller must call Release on the
// returned handle; until then the entry cannot be overwritten or erased.
// Returns ErrKeyNotFound with the lock already released if the key is absent.
func (m *Map[K, V]) GetRef(key K) (*LockedValue[V], error) {
	index := m.bucketIndex(key)
	mu := m.mutexFor(index)
	mu.Lock()

	if e := m.table[index].find(key); e != nil {
		return &LockedValue[V]{value: &e.value, mu: mu}, nil
	}
	mu.Unlock()
	return nil, ErrKeyNotFound
}

// View runs fn on the stored value under the stripe lock and unlocks when fn
// returns. It is the callback form of GetRef for callers that must not leak
// the reference past the unlock. fn must not call back into the same Map.
// Returns ErrKeyNotFound if the key is absent; fn is not called.
func (m *Map[K, V]) View(key K, fn func(value *V)) error {
	index := m.bucketIndex(key)
	mu := m.mutexFor(index)
	mu.Lock()
	defer mu.Unlock()

	e := m.table[index].find(key)
	if e == nil {
		return ErrKeyNotFound
	}
	fn(&e.value)
	return nil
}

// Insert stores value under key, overwriting in place if the key already
// exists. Only a new key changes Size.
func (m *Map[K, V]) Insert(key K, value V) {
	index := m.bucketIndex(key)
	mu := m.mutexFor(index)
	mu.Lock()
	defer mu.Unlock()

	if m.table[index].insert(key, value) {
		m.size.Add(1)
	}
}

// Erase removes key from the map. Erasing an absent key is a no-op, never an
// error.
func (m *Map[K, V]) Erase(key K) {
	index := m.bucketIndex(key)
	mu := m.mutexFor(index)
	mu.Lock()
	defer mu.Unlock()

	if m.table[index].erase(key) {
		m.size.Add(-1)
	}
}
