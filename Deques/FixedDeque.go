package Deques

import (
	Hash_Bucket "github.com/g-m-twostay/hash-bucket"
	"github.com/g-m-twostay/hash-bucket/Buckets"
	"golang.org/x/sys/cpu"
)

// Fixed is a wait-free double-ended queue of fixed power-of-two capacity.
//
// indexFront and indexBack are monotonic sequence numbers reduced modulo the
// capacity, not occupancy indices: front pushes move indexFront up, back
// pushes move indexBack down, takes move them the other way, and a counter
// step that ends in a failed slot operation is never undone. preCount is an
// upper bound on the slots in use, incremented before any insert is
// attempted; once it exceeds the capacity no insert is admitted until takes
// bring it back down. A failed AddBack leaves preCount raised, so preCount
// can drift above true occupancy; AddFront releases its reservation on every
// failure path.
type Fixed[V any] struct {
	entries    *Buckets.Bucket[V]
	mask       uint
	_          cpu.CacheLinePad
	indexFront Hash_Bucket.AtomicInt
	_          cpu.CacheLinePad
	indexBack  Hash_Bucket.AtomicInt
	_          cpu.CacheLinePad
	preCount   Hash_Bucket.AtomicInt
}

// NewFixed with capacity rounded up to the next power of two.
func NewFixed[V any](capacity uint) *Fixed[V] {
	t := &Fixed[V]{entries: Buckets.NewBucket[V](capacity)}
	t.mask = t.entries.Capacity() - 1
	t.indexBack.Store(int(t.mask))
	return t
}

func (u *Fixed[V]) Capacity() uint {
	return u.entries.Capacity()
}

// Count of items present.
func (u *Fixed[V]) Count() uint {
	return u.entries.Count()
}

// AddFront pushes v on the front. Returns false when the deque is full or
// the target slot is still in use.
func (u *Fixed[V]) AddFront(v V) bool {
	if pre := u.preCount.Add(1); pre <= int(u.mask)+1 {
		i := uint(u.indexFront.Add(1)) & u.mask
		if u.entries.Insert(i, v) {
			return true
		}
	}
	u.preCount.Add(-1)
	return false
}

// AddBack pushes v on the back. Returns false when the deque is full or the
// target slot is still in use; either failure leaves preCount raised.
func (u *Fixed[V]) AddBack(v V) bool {
	if pre := u.preCount.Add(1); pre <= int(u.mask)+1 {
		i := uint(u.indexBack.Add(-1)) & u.mask
		if u.entries.Insert(i, v) {
			return true
		}
	}
	return false
}

// TryTakeFront pops the front item. The counter is stepped whether or not a
// value is found.
func (u *Fixed[V]) TryTakeFront() (v V, ok bool) {
	i := uint(u.indexFront.Add(-1)+1) & u.mask
	if v, ok = u.entries.TakeAt(i); ok {
		u.preCount.Add(-1)
	}
	return
}

// TryTakeBack pops the back item. The counter is stepped whether or not a
// value is found.
func (u *Fixed[V]) TryTakeBack() (v V, ok bool) {
	i := uint(u.indexBack.Add(1)-1) & u.mask
	if v, ok = u.entries.TakeAt(i); ok {
		u.preCount.Add(-1)
	}
	return
}

// PeekFront reads the front item without taking it.
func (u *Fixed[V]) PeekFront() (V, error) {
	if v, ok := u.entries.TryGet(uint(u.indexFront.Load()) & u.mask); ok {
		return v, nil
	}
	return *new(V), &EmptyDequeError{}
}

// PeekBack reads the back item without taking it.
func (u *Fixed[V]) PeekBack() (V, error) {
	if v, ok := u.entries.TryGet(uint(u.indexBack.Load()) & u.mask); ok {
		return v, nil
	}
	return *new(V), &EmptyDequeError{}
}

// TryGet reads ring position i. Positions are not stable across concurrent
// operations.
func (u *Fixed[V]) TryGet(i uint) (V, bool) {
	return u.entries.TryGet(i & u.mask)
}

// Range calls f on every occupied ring position in slot order,
// snapshot-free.
func (u *Fixed[V]) Range(f func(V) bool) {
	u.entries.Range(func(_ uint, v V) bool {
		return f(v)
	})
}
