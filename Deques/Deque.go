package Deques

import (
	"runtime"
	"sync/atomic"

	Hash_Bucket "github.com/g-m-twostay/hash-bucket"
	"golang.org/x/sys/cpu"
)

// Resize phases. The whole protocol is driven by CAS on the single status
// word; keep the numeric encoding.
const (
	statusStable = iota
	statusResizeRequested
	statusResizing
	statusCopying
	statusCleanup
)

// Deque is an unbounded lock-free double-ended queue. It wraps a Fixed ring
// and grows by migrating entries into a ring of twice the capacity; the
// migration is cooperative, driven by whichever threads happen to call in
// while a resize is pending. Adds never fail. FIFO order is not preserved
// across a resize, and ring positions are never stable; what is guaranteed
// is that every item added and not taken before a resize began is present
// exactly once after it completes.
type Deque[V any] struct {
	entriesNew     atomic.Pointer[Fixed[V]]
	entriesOld     atomic.Pointer[Fixed[V]]
	_              cpu.CacheLinePad
	status         Hash_Bucket.AtomicInt
	revision       Hash_Bucket.AtomicInt
	copyingThreads Hash_Bucket.AtomicInt
	count          Hash_Bucket.AtomicInt
}

// NewDeque with initial capacity rounded up to the next power of two.
func NewDeque[V any](capacity uint) *Deque[V] {
	t := new(Deque[V])
	t.entriesNew.Store(NewFixed[V](capacity))
	return t
}

// Count of items successfully added minus items successfully taken.
func (u *Deque[V]) Count() int {
	return u.count.Load()
}

// Capacity of the current ring. Grows without bound; it never shrinks.
func (u *Deque[V]) Capacity() uint {
	return u.entriesNew.Load().Capacity()
}

// isOperationSafe when no resize phase is active and no thread is migrating.
func (u *Deque[V]) isOperationSafe() bool {
	return u.status.Load() == statusStable && u.copyingThreads.Load() == 0
}

// isConfirmed re-checks safety after an attempt on entries observed at
// revision rev: any structural change in between leaves the attempt
// unconfirmed.
func (u *Deque[V]) isConfirmed(entries *Fixed[V], rev int) bool {
	return u.revision.Load() == rev && u.entriesNew.Load() == entries && u.isOperationSafe()
}

// requestGrow promotes Stable to ResizeRequested. Losing the CAS means a
// resize is already on its way.
func (u *Deque[V]) requestGrow() {
	if u.status.CompareAndSwap(statusStable, statusResizeRequested) {
		u.revision.Add(1)
	}
}

// cooperativeGrow advances the resize state machine by one phase, chosen by
// the current status. Every caller that finds the deque unsafe participates
// until the machine returns to Stable.
func (u *Deque[V]) cooperativeGrow() {
	switch u.status.Load() {
	case statusResizeRequested:
		// Single winner allocates the doubled ring and swaps it in. The
		// goroutine is pinned to its thread for the swap window so the
		// structure is unavailable for as short as possible.
		if u.status.CompareAndSwap(statusResizeRequested, statusResizing) {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			old := u.entriesNew.Load()
			u.entriesOld.Store(old)
			u.entriesNew.Store(NewFixed[V](old.Capacity() << 1))
			u.status.CompareAndSwap(statusResizing, statusCopying)
			u.revision.Add(1)
		}
	case statusResizing:
		runtime.Gosched()
	case statusCopying:
		u.revision.Add(1)
		u.copyingThreads.Add(1)
		if old := u.entriesOld.Load(); old != nil {
			// Drain into the new ring directly: migrated items aren't new
			// additions, so count must not move, and at most the old
			// capacity moves into an empty ring of twice the size. A failed
			// take still steps the front counter, walking it toward slots
			// the back counter filled, so the drain loops on the live count
			// rather than stopping at the first vacant position.
			dst := u.entriesNew.Load()
			for old.Count() > 0 {
				if v, ok := old.TryTakeFront(); ok {
					dst.AddFront(v)
				}
			}
		}
		u.status.CompareAndSwap(statusCopying, statusCleanup)
		u.copyingThreads.Add(-1)
	case statusCleanup:
		if u.status.CompareAndSwap(statusCleanup, statusResizing) {
			u.entriesOld.Store(nil)
			u.status.CompareAndSwap(statusResizing, statusStable)
		}
	}
}

// AddFront pushes v on the front. Never fails; a full ring triggers growth.
func (u *Deque[V]) AddFront(v V) {
	for {
		rev := u.revision.Load()
		if !u.isOperationSafe() {
			u.cooperativeGrow()
			continue
		}
		entries := u.entriesNew.Load()
		done := entries.AddFront(v)
		if done && u.isConfirmed(entries, rev) {
			u.count.Add(1)
			return
		}
		// An unconfirmed success is discarded and the add retried; a failure,
		// confirmed or not, asks for a bigger ring.
		if !done {
			u.requestGrow()
		}
	}
}

// AddBack pushes v on the back. Never fails; a full ring triggers growth.
func (u *Deque[V]) AddBack(v V) {
	for {
		rev := u.revision.Load()
		if !u.isOperationSafe() {
			u.cooperativeGrow()
			continue
		}
		entries := u.entriesNew.Load()
		done := entries.AddBack(v)
		if done && u.isConfirmed(entries, rev) {
			u.count.Add(1)
			return
		}
		if !done {
			u.requestGrow()
		}
	}
}

// TryTakeFront pops the front item; false when the deque is empty.
func (u *Deque[V]) TryTakeFront() (V, bool) {
	for {
		rev := u.revision.Load()
		if !u.isOperationSafe() {
			u.cooperativeGrow()
			continue
		}
		entries := u.entriesNew.Load()
		v, done := entries.TryTakeFront()
		if u.isConfirmed(entries, rev) {
			if done {
				u.count.Add(-1)
				return v, true
			}
			return *new(V), false
		}
		if done {
			u.count.Add(-1)
			return v, true
		}
	}
}

// TryTakeBack pops the back item; false when the deque is empty.
func (u *Deque[V]) TryTakeBack() (V, bool) {
	for {
		rev := u.revision.Load()
		if !u.isOperationSafe() {
			u.cooperativeGrow()
			continue
		}
		entries := u.entriesNew.Load()
		v, done := entries.TryTakeBack()
		if u.isConfirmed(entries, rev) {
			if done {
				u.count.Add(-1)
				return v, true
			}
			return *new(V), false
		}
		if done {
			u.count.Add(-1)
			return v, true
		}
	}
}

// PeekFront reads the front item without taking it.
func (u *Deque[V]) PeekFront() (V, error) {
	for {
		rev := u.revision.Load()
		if !u.isOperationSafe() {
			u.cooperativeGrow()
			continue
		}
		entries := u.entriesNew.Load()
		v, err := entries.PeekFront()
		if u.isConfirmed(entries, rev) {
			return v, err
		}
	}
}

// PeekBack reads the back item without taking it.
func (u *Deque[V]) PeekBack() (V, error) {
	for {
		rev := u.revision.Load()
		if !u.isOperationSafe() {
			u.cooperativeGrow()
			continue
		}
		entries := u.entriesNew.Load()
		v, err := entries.PeekBack()
		if u.isConfirmed(entries, rev) {
			return v, err
		}
	}
}

// TryGet reads ring position i of the current ring. Positions are not stable
// across growth.
func (u *Deque[V]) TryGet(i uint) (V, bool) {
	for {
		rev := u.revision.Load()
		if !u.isOperationSafe() {
			u.cooperativeGrow()
			continue
		}
		entries := u.entriesNew.Load()
		v, ok := entries.TryGet(i)
		if u.isConfirmed(entries, rev) {
			return v, ok
		}
	}
}

// Clear empties the deque by swapping in a fresh ring of the current
// capacity. It serializes through the status word like a resize, so it never
// races the migration phases.
func (u *Deque[V]) Clear() {
	for {
		if u.status.CompareAndSwap(statusStable, statusResizing) {
			u.entriesNew.Store(NewFixed[V](u.entriesNew.Load().Capacity()))
			u.count.Store(0)
			u.revision.Add(1)
			u.status.CompareAndSwap(statusResizing, statusStable)
			return
		}
		u.cooperativeGrow()
	}
}

// Range calls f on every occupied position of the current ring in slot
// order. No snapshot is taken: items added, taken, or migrated concurrently
// may or may not be seen.
func (u *Deque[V]) Range(f func(V) bool) {
	u.entriesNew.Load().Range(f)
}
