package stripemap

type entry[K comparable, V any] struct {
	key   K // immutable after creation
	value V
	next  *entry[K, V]
}

// bucket is the collision chain stored at one table slot. A bucket owns its
// entries exclusively and is only reachable through the table slot holding it.
// Callers must hold the stripe lock covering the slot for every method.
type bucket[K comparable, V any] struct {
	head *entry[K, V]
}

func (b *bucket[K, V]) find(key K) *entry[K, V] {
	e := b.head
	for e != nil && e.key != key {
		e = e.next
	}
	return e
}

// insert reports whether a new entry was linked in. If the key already exists
// only its value is overwritten and the chain is left untouched.
func (b *bucket[K, V]) insert(key K, value V) bool {
	if e := b.find(key); e != nil {
		e.value = value
		return false
	}
	b.head = &entry[K, V]{key: key, value: value, next: b.head}
	return true
}

// erase reports whether the key was present. Erasing an absent key leaves the
// chain unchanged.
func (b *bucket[K, V]) erase(key K) bool {
	if b.head == nil {
		return false
	}
	if b.head.key == key {
		b.head = b.head.next
		return true
	}

	prev := b.head
	for e := b.head.next; e != nil; e = e.next {
		if e.key == key {
			prev.next = e.next
			return true
		}
		prev = e
	}
	return false
}
