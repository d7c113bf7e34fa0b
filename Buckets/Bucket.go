// Package Buckets implements the fixed-capacity storage primitives shared by
// the concurrent containers in this module: a wait-free slot array and a
// wait-free open-addressed hash table built over it. All operations are
// try-style; expected negative outcomes are reported by return values and
// never retried internally.
package Buckets

import (
	"unsafe"

	Hash_Bucket "github.com/g-m-twostay/hash-bucket"
)

// Bucket is a fixed array of slots whose length is always a power of two.
// The live count lags the slot transitions by at most the in-flight
// operations; it is updated after the slot transition and before the call
// returns, and never leaves [0, Capacity].
type Bucket[V any] struct {
	entries []slot
	count   Hash_Bucket.AtomicUint
}

// NewBucket with capacity rounded up to the next power of two.
func NewBucket[V any](capacity uint) *Bucket[V] {
	return &Bucket[V]{entries: make([]slot, Hash_Bucket.NextPowerOf2(capacity))}
}

func (u *Bucket[V]) Capacity() uint {
	return uint(len(u.entries))
}

// Count of occupied slots.
func (u *Bucket[V]) Count() uint {
	return u.count.Load()
}

// Insert v at slot i iff the slot is empty.
func (u *Bucket[V]) Insert(i uint, v V) bool {
	if _, ok := u.entries[i].insert(unsafe.Pointer(&v)); ok {
		u.count.Add(1)
		return true
	}
	return false
}

// InsertGet is Insert that also reports the occupant that made it fail.
func (u *Bucket[V]) InsertGet(i uint, v V) (prev V, inserted bool) {
	if old, ok := u.entries[i].insert(unsafe.Pointer(&v)); ok {
		u.count.Add(1)
		inserted = true
	} else {
		prev = *(*V)(old)
	}
	return
}

// TryGet reads slot i without mutating it.
func (u *Bucket[V]) TryGet(i uint) (v V, ok bool) {
	if p := u.entries[i].load(); p != nil {
		v, ok = *(*V)(p), true
	}
	return
}

// Set unconditionally stores v at slot i. Reports whether the slot was empty
// before the call.
func (u *Bucket[V]) Set(i uint, v V) (wasNew bool) {
	if old := u.entries[i].set(unsafe.Pointer(&v)); old == nil {
		u.count.Add(1)
		return true
	}
	return false
}

// RemoveAt empties slot i iff it is occupied.
func (u *Bucket[V]) RemoveAt(i uint) bool {
	if _, ok := u.entries[i].remove(); ok {
		u.count.Add(^uint(0))
		return true
	}
	return false
}

// TakeAt is RemoveAt that also returns the evicted value.
func (u *Bucket[V]) TakeAt(i uint) (v V, ok bool) {
	if p, removed := u.entries[i].remove(); removed {
		u.count.Add(^uint(0))
		v, ok = *(*V)(p), true
	}
	return
}

// Range calls f on every occupied slot in index order. It takes no snapshot:
// concurrent writes may or may not be visible, and a slot is read at most
// once.
func (u *Bucket[V]) Range(f func(i uint, v V) bool) {
	for i := range u.entries {
		if p := u.entries[i].load(); p != nil {
			if !f(uint(i), *(*V)(p)) {
				return
			}
		}
	}
}

func (u *Bucket[V]) loadPtr(i uint) unsafe.Pointer {
	return u.entries[i].load()
}

func (u *Bucket[V]) insertPtr(i uint, p unsafe.Pointer) (unsafe.Pointer, bool) {
	if old, ok := u.entries[i].insert(p); ok {
		u.count.Add(1)
		return nil, true
	} else {
		return old, false
	}
}

func (u *Bucket[V]) replaceIf(i uint, old, p unsafe.Pointer) bool {
	return u.entries[i].replaceIf(old, p)
}

func (u *Bucket[V]) removeIf(i uint, old unsafe.Pointer) bool {
	if u.entries[i].removeIf(old) {
		u.count.Add(^uint(0))
		return true
	}
	return false
}
