package Buckets

import (
	"sync/atomic"
	"unsafe"
)

// slot is a single cell holding nil when empty and a pointer to the boxed
// value otherwise. The pointer word changes only through atomic operations,
// so the empty/occupied bit and the value are always observed together.
type slot struct {
	p unsafe.Pointer
}

func (u *slot) load() unsafe.Pointer {
	return atomic.LoadPointer(&u.p)
}

// insert publishes v iff the slot is empty. Returns the current occupant and
// false when the slot is already taken.
func (u *slot) insert(v unsafe.Pointer) (unsafe.Pointer, bool) {
	for {
		if old := atomic.LoadPointer(&u.p); old != nil {
			return old, false
		}
		if atomic.CompareAndSwapPointer(&u.p, nil, v) {
			return nil, true
		}
	}
}

// set unconditionally replaces the occupant and returns the previous one,
// nil if the slot was empty.
func (u *slot) set(v unsafe.Pointer) unsafe.Pointer {
	return atomic.SwapPointer(&u.p, v)
}

// remove empties the slot iff it is occupied and returns the evicted value.
func (u *slot) remove() (unsafe.Pointer, bool) {
	for {
		old := atomic.LoadPointer(&u.p)
		if old == nil {
			return nil, false
		}
		if atomic.CompareAndSwapPointer(&u.p, old, nil) {
			return old, true
		}
	}
}

// removeIf empties the slot iff it still holds exactly old; a no-op when the
// content changed since old was observed.
func (u *slot) removeIf(old unsafe.Pointer) bool {
	return atomic.CompareAndSwapPointer(&u.p, old, nil)
}

// replaceIf swaps old for v iff the slot still holds exactly old.
func (u *slot) replaceIf(old, v unsafe.Pointer) bool {
	return atomic.CompareAndSwapPointer(&u.p, old, v)
}
