package Queues

import (
	"github.com/g-m-twostay/hash-bucket/Deques"
)

type concArrQ[T any] struct {
	d *Deques.Deque[T]
}

// MakeConcArrayQueue backed by a growable ring; initCap rounds up to a power
// of two. Pushes enter at the back, pops leave from the front. Every pushed
// item is popped exactly once, but arrival order is not preserved: the ring's
// independent end counters and capacity growth both reorder.
func MakeConcArrayQueue[T any](initCap uint) Queue[T] {
	return &concArrQ[T]{Deques.NewDeque[T](initCap)}
}

func (this *concArrQ[T]) Push(item T) {
	this.d.AddBack(item)
}

func (this *concArrQ[T]) Pop() (T, error) {
	// A vacant front position doesn't mean the queue is empty: the front
	// counter advances one ring position per take, so keep taking while
	// items remain.
	for this.d.Count() != 0 {
		if v, ok := this.d.TryTakeFront(); ok {
			return v, nil
		}
	}
	return *new(T), &EmptyQueueError{}
}

// Peek is best-effort: it reads the current front position only, so it can
// report empty while back-pushed items have not yet rotated into view.
func (this *concArrQ[T]) Peek() (T, error) {
	if v, err := this.d.PeekFront(); err == nil {
		return v, nil
	}
	return *new(T), &EmptyQueueError{}
}

func (this *concArrQ[T]) Empty() bool {
	return this.d.Count() == 0
}

func (this *concArrQ[T]) Size() uint {
	return uint(this.d.Count())
}

func (this *concArrQ[T]) Clear() {
	this.d.Clear()
}
