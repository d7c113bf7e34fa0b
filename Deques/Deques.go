// Package Deques implements double-ended queues for concurrent use: Fixed, a
// wait-free ring of immutable capacity, and Deque, its unbounded lock-free
// extension that grows through a cooperative resize protocol. Neither blocks;
// every operation completes or reports failure without waiting on a lock.
package Deques

// EmptyDequeError reports a Peek on an empty deque.
type EmptyDequeError struct {
}

func (e *EmptyDequeError) Error() string {
	return "Deque is Empty: cannot Peek."
}
