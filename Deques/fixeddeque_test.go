package Deques

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestFixed_Rounding(t *testing.T) {
	if d := NewFixed[int](5); d.Capacity() != 8 {
		t.Fatalf("capacity: %d", d.Capacity())
	}
	if d := NewFixed[int](1024); d.Capacity() != 1024 {
		t.Fatalf("capacity: %d", d.Capacity())
	}
}

func TestFixed_BothEnds(t *testing.T) {
	d := NewFixed[string](2)
	if !d.AddFront("x") {
		t.Fatal("addFront x")
	}
	if !d.AddBack("y") {
		t.Fatal("addBack y")
	}
	if d.AddFront("z") {
		t.Fatal("addFront z admitted past capacity")
	}
	if v, ok := d.TryTakeFront(); !ok || v != "x" {
		t.Fatalf("takeFront: %v %v", v, ok)
	}
	if v, ok := d.TryTakeBack(); !ok || v != "y" {
		t.Fatalf("takeBack: %v %v", v, ok)
	}
	if v, ok := d.TryTakeFront(); ok {
		t.Fatalf("takeFront on empty: %v", v)
	}
}

// A failed AddBack keeps its preCount reservation for good: a take only
// releases the reservation of the item it removes, so every failed AddBack
// lowers what the ring admits by one. AddFront hands its reservation back.
func TestFixed_PreCountLeak(t *testing.T) {
	d := NewFixed[int](2)
	if !d.AddBack(1) || !d.AddBack(2) {
		t.Fatal("fill")
	}
	if d.AddBack(3) {
		t.Fatal("overfull addBack")
	}
	if v, ok := d.TryTakeBack(); !ok || v != 2 {
		t.Fatalf("takeBack: %v %v", v, ok)
	}
	// one slot is free, but the leaked reservation still counts against it.
	if d.AddBack(4) {
		t.Fatal("addBack admitted against leaked preCount")
	}
	if v, ok := d.TryTakeBack(); !ok || v != 1 {
		t.Fatalf("takeBack: %v %v", v, ok)
	}
	// the ring is empty, but the two leaked reservations still fill it.
	if d.AddBack(5) {
		t.Fatal("addBack admitted against two leaked reservations")
	}
}

func TestFixed_AddFrontReleases(t *testing.T) {
	d := NewFixed[int](2)
	if !d.AddFront(1) || !d.AddBack(2) {
		t.Fatal("fill")
	}
	if d.AddFront(3) {
		t.Fatal("overfull addFront")
	}
	if _, ok := d.TryTakeFront(); !ok {
		t.Fatal("takeFront")
	}
	// unlike AddBack, the failed AddFront released its reservation.
	if !d.AddFront(4) {
		t.Fatal("addFront after take")
	}
}

func TestFixed_Peek(t *testing.T) {
	d := NewFixed[string](4)
	if _, err := d.PeekFront(); err == nil {
		t.Fatal("peekFront on empty")
	} else if _, ok := err.(*EmptyDequeError); !ok {
		t.Fatalf("peekFront error type: %v", err)
	}
	d.AddBack("y")
	// the back counter, not the front one, locates the back item.
	if v, err := d.PeekBack(); err != nil || v != "y" {
		t.Fatalf("peekBack: %v %v", v, err)
	}
	d.AddFront("x")
	if v, err := d.PeekFront(); err != nil || v != "x" {
		t.Fatalf("peekFront: %v %v", v, err)
	}
	if d.Count() != 2 {
		t.Fatalf("count: %d", d.Count())
	}
	if v, err := d.PeekBack(); err != nil || v != "y" {
		t.Fatalf("peekBack after addFront: %v %v", v, err)
	}
}

func TestFixed_Concurrent(t *testing.T) {
	const threads, attempts, capacity = 8, 512, 1024
	d := NewFixed[int](capacity)
	var added atomic.Int32
	wg := &sync.WaitGroup{}
	wg.Add(threads)
	for j := 0; j < threads; j++ {
		go func(l, h int) {
			defer wg.Done()
			for i := l; i < h; i++ {
				if d.AddBack(i) {
					added.Add(1)
				}
			}
		}(j*attempts, (j+1)*attempts)
	}
	wg.Wait()
	if added.Load() != capacity {
		t.Fatalf("successful adds: %d", added.Load())
	}
	if d.Count() != capacity {
		t.Fatalf("count: %d", d.Count())
	}
	for i := 0; i < capacity; i++ {
		if _, ok := d.TryTakeBack(); !ok {
			t.Fatalf("take %d failed", i)
		}
	}
	if _, ok := d.TryTakeBack(); ok {
		t.Fatal("extra take succeeded")
	}
	if d.Count() != 0 {
		t.Fatalf("count after drain: %d", d.Count())
	}
}

func TestFixed_TryGetRange(t *testing.T) {
	d := NewFixed[int](4)
	d.AddFront(1)
	d.AddFront(2)
	if v, ok := d.TryGet(1); !ok || v != 1 {
		t.Fatalf("tryGet(1): %v %v", v, ok)
	}
	sum := 0
	d.Range(func(v int) bool {
		sum += v
		return true
	})
	if sum != 3 {
		t.Fatalf("range sum: %d", sum)
	}
}
