package stripemap

import "sync"

// LockedValue pairs a borrowed value pointer with the still-held stripe lock
// that keeps it alive. While the holder has not called Release, no other
// goroutine can mutate or erase any entry on the same stripe; other stripes
// are unaffected.
//
// The pointer returned by Value is valid only until Release. Once the lock is
// released the entry may be overwritten or erased at any moment, so the
// holder must not retain the pointer past Release.
type LockedValue[V any] struct {
	value    *V
	mu       *sync.Mutex
	released bool
}

// Value returns the borrowed pointer to the stored value. Returns nil after
// Release.
func (lv *LockedValue[V]) Value() *V {
	return lv.value
}

// Release unlocks the stripe and invalidates the borrowed pointer. Calling
// Release again is a no-op.
func (lv *LockedValue[V]) Release() {
	if lv.released {
		return
	}
	lv.released = true
	lv.value = nil
	lv.mu.Unlock()
}
