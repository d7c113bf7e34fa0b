package Buckets

import "unsafe"

type pair[K, V any] struct {
	k K
	v V
}

// HashBucket is a wait-free open-addressed hash table of fixed capacity.
// The caller owns probing: every operation takes a probe offset o and touches
// exactly one slot, index(k, o) = (hash(k)+o) & (capacity-1). Advancing o on
// collision is the caller's retry policy, which keeps each call bounded.
// At most one slot holds a given key at any instant.
type HashBucket[K, V any] struct {
	entries *Bucket[pair[K, V]]
	mask    uint
	hash    func(K) uint
	eq      func(K, K) bool
}

// NewHashBucket with capacity rounded up to the next power of two. hash and
// eq define key identity and are never called concurrently with a mutation
// of their arguments.
func NewHashBucket[K, V any](capacity uint, hash func(K) uint, eq func(K, K) bool) *HashBucket[K, V] {
	t := &HashBucket[K, V]{entries: NewBucket[pair[K, V]](capacity), hash: hash, eq: eq}
	t.mask = t.entries.Capacity() - 1
	return t
}

func (u *HashBucket[K, V]) Capacity() uint {
	return u.entries.Capacity()
}

func (u *HashBucket[K, V]) Count() uint {
	return u.entries.Count()
}

// Index of k at probe offset o.
func (u *HashBucket[K, V]) Index(k K, o uint) uint {
	return (u.hash(k) + o) & u.mask
}

// Add inserts a new entry at the single slot Index(k, o). Returns the slot
// index on success. On failure the index is -1 and collision tells the two
// cases apart: true means the slot belongs to a different key (retry with
// o+1), false means k is already present there. When two Adds of the same
// key race on the slot, exactly one of them wins.
func (u *HashBucket[K, V]) Add(k K, v V, o uint) (int, bool) {
	i := u.Index(k, o)
	p := unsafe.Pointer(&pair[K, V]{k, v})
	for {
		old := u.entries.loadPtr(i)
		if old == nil {
			if _, ok := u.entries.insertPtr(i, p); ok {
				return int(i), false
			}
			continue
		}
		if u.eq((*pair[K, V])(old).k, k) {
			return -1, false
		}
		return -1, true
	}
}

// ContainsKey returns the slot index iff slot Index(k, o) holds k, else -1.
func (u *HashBucket[K, V]) ContainsKey(k K, o uint) int {
	i := u.Index(k, o)
	if old := u.entries.loadPtr(i); old != nil && u.eq((*pair[K, V])(old).k, k) {
		return int(i)
	}
	return -1
}

// TryGetValue reads the value of k at probe offset o. The index is -1 when
// the slot is empty or holds a different key.
func (u *HashBucket[K, V]) TryGetValue(k K, o uint) (v V, index int) {
	i := u.Index(k, o)
	if old := u.entries.loadPtr(i); old != nil && u.eq((*pair[K, V])(old).k, k) {
		return (*pair[K, V])(old).v, int(i)
	}
	return v, -1
}

// Set stores (k, v) at slot Index(k, o) iff the slot is empty or already
// holds k; a slot owned by a different key returns -1. isNew reports whether
// the write created a new entry rather than replacing one.
func (u *HashBucket[K, V]) Set(k K, v V, o uint) (index int, isNew bool) {
	i := u.Index(k, o)
	p := unsafe.Pointer(&pair[K, V]{k, v})
	for {
		old := u.entries.loadPtr(i)
		if old == nil {
			if _, ok := u.entries.insertPtr(i, p); ok {
				return int(i), true
			}
			continue
		}
		if u.eq((*pair[K, V])(old).k, k) {
			if u.entries.replaceIf(i, old, p) {
				return int(i), false
			}
			continue
		}
		return -1, false
	}
}

// Remove deletes k at probe offset o. Returns the slot index, or -1 when the
// slot doesn't hold k. The delete is a no-op if the slot content changed
// between observation and removal.
func (u *HashBucket[K, V]) Remove(k K, o uint) int {
	i := u.Index(k, o)
	if old := u.entries.loadPtr(i); old != nil && u.eq((*pair[K, V])(old).k, k) {
		if u.entries.removeIf(i, old) {
			return int(i)
		}
	}
	return -1
}

// RemoveValue is Remove that also returns the deleted value.
func (u *HashBucket[K, V]) RemoveValue(k K, o uint) (v V, index int) {
	i := u.Index(k, o)
	if old := u.entries.loadPtr(i); old != nil && u.eq((*pair[K, V])(old).k, k) {
		if u.entries.removeIf(i, old) {
			return (*pair[K, V])(old).v, int(i)
		}
	}
	return v, -1
}

// Range calls f on every entry in slot order, snapshot-free.
func (u *HashBucket[K, V]) Range(f func(K, V) bool) {
	u.entries.Range(func(_ uint, e pair[K, V]) bool {
		return f(e.k, e.v)
	})
}

// Pairs returns an iterator over entries in slot order. The third result is
// false once the table is exhausted.
func (u *HashBucket[K, V]) Pairs() func() (K, V, bool) {
	i := uint(0)
	return func() (k K, v V, ok bool) {
		for ; i < u.entries.Capacity(); i++ {
			if old := u.entries.loadPtr(i); old != nil {
				e := (*pair[K, V])(old)
				i++
				return e.k, e.v, true
			}
		}
		return
	}
}

// Keys returns an iterator over keys in slot order.
func (u *HashBucket[K, V]) Keys() func() (K, bool) {
	next := u.Pairs()
	return func() (K, bool) {
		k, _, ok := next()
		return k, ok
	}
}

// Values returns an iterator over values in slot order.
func (u *HashBucket[K, V]) Values() func() (V, bool) {
	next := u.Pairs()
	return func() (V, bool) {
		_, v, ok := next()
		return v, ok
	}
}
