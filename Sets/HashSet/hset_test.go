package HashSet

import (
	"sync"
	"testing"

	"github.com/emirpasic/gods/sets/hashset"
)

func TestHashSet_All(t *testing.T) {
	S := New[int](16, 7)
	for i := 0; i < 10; i++ {
		if !S.Put(i) {
			t.Error("wrong put 1")
		}
		if S.Put(i) {
			t.Error("wrong put 2")
		}
	}
	for i := 0; i < 10; i++ {
		if !S.Has(i) {
			t.Error("wrong has 1")
		}
	}
	if S.Size() != 10 {
		t.Errorf("size: %d", S.Size())
	}
	for i := 0; i < 5; i++ {
		if !S.Remove(i) {
			t.Error("wrong remove 1")
		}
		if S.Remove(i) {
			t.Error("wrong remove 2")
		}
	}
	for i := 0; i < 5; i++ {
		if S.Has(i) {
			t.Error("wrong has 2")
		}
	}
	n := 0
	S.Range(func(e int) bool {
		if e < 5 || e > 9 {
			t.Errorf("stray element %d", e)
		}
		n++
		return true
	})
	if n != 5 {
		t.Errorf("range visited %d", n)
	}
	if e := S.Take(); e < 5 || e > 9 {
		t.Errorf("take: %d", e)
	}
}

func TestHashSet_Concurrent(t *testing.T) {
	const blocks, blockSize = 16, 256
	S := New[int](blocks*blockSize, 42)
	wg := &sync.WaitGroup{}
	wg.Add(blocks)
	for j := 0; j < blocks; j++ {
		go func(l, h int) {
			defer wg.Done()
			for i := l; i < h; i++ {
				if !S.Put(i) {
					t.Errorf("not put: %v", i)
				}
			}
			for i := l; i < h; i++ {
				if !S.Has(i) {
					t.Errorf("missing: %v", i)
				}
			}
			for i := l; i < h; i++ {
				if !S.Remove(i) {
					t.Errorf("not removed: %v", i)
				}
			}
		}(j*blockSize, (j+1)*blockSize)
	}
	wg.Wait()
	if S.Size() != 0 {
		t.Fatalf("size: %d", S.Size())
	}
}

func BenchmarkHashSet_Put(b *testing.B) {
	b.StopTimer()
	wg := &sync.WaitGroup{}
	const blocks, blockSize = 8, 1024
	for a := 0; a < b.N; a++ {
		S := New[int](blocks*blockSize, 7)
		b.StartTimer()
		for j := 0; j < blocks; j++ {
			wg.Add(1)
			go func(l, h int) {
				defer wg.Done()
				for i := l; i < h; i++ {
					S.Put(i)
				}
				for i := l; i < h; i++ {
					if !S.Has(i) {
						b.Errorf("missing: %v", i)
					}
				}
			}(j*blockSize, (j+1)*blockSize)
		}
		wg.Wait()
		b.StopTimer()
	}
}

func BenchmarkGodsHashSet_Put(b *testing.B) {
	b.StopTimer()
	wg := &sync.WaitGroup{}
	const blocks, blockSize = 8, 1024
	for a := 0; a < b.N; a++ {
		S := hashset.New()
		mu := &sync.Mutex{}
		b.StartTimer()
		for j := 0; j < blocks; j++ {
			wg.Add(1)
			go func(l, h int) {
				defer wg.Done()
				for i := l; i < h; i++ {
					mu.Lock()
					S.Add(i)
					mu.Unlock()
				}
				for i := l; i < h; i++ {
					mu.Lock()
					ok := S.Contains(i)
					mu.Unlock()
					if !ok {
						b.Errorf("missing: %v", i)
					}
				}
			}(j*blockSize, (j+1)*blockSize)
		}
		wg.Wait()
		b.StopTimer()
	}
}
