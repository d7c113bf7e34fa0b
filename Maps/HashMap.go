package Maps

import (
	"sync"

	Hash_Bucket "github.com/g-m-twostay/hash-bucket"
	"github.com/g-m-twostay/hash-bucket/Buckets"
)

// HashMap resolves collisions by retrying table operations with increasing
// probe offsets. Deletions leave holes in probe chains, so lookups scan up to
// maxProbe, the largest offset any insert into the current table has needed
// (recomputed for the new table on growth), instead of
// stopping at the first miss. A table with no free offset left for a key is
// swapped for one of twice the capacity under l0; every other operation
// holds only the read side, so the wait-free slot operations still run
// concurrently with each other. Writers of the same key are not serialized
// against each other: racing Store and Delete calls on one key may leave the
// chain with a stale duplicate. Writers of distinct keys compose freely.
type HashMap[K, V any] struct {
	table    *Buckets.HashBucket[K, V]
	maxProbe Hash_Bucket.AtomicUint
	l0       sync.RWMutex
	hash     func(K) uint
	eq       func(K, K) bool
}

// New HashMap with room for about size entries before the first growth. hash
// and eq define key identity.
func New[K, V any](size uint, hash func(K) uint, eq func(K, K) bool) *HashMap[K, V] {
	return &HashMap[K, V]{table: Buckets.NewHashBucket[K, V](size, hash, eq), hash: hash, eq: eq}
}

func (u *HashMap[K, V]) raiseProbe(o uint) {
	for {
		cur := u.maxProbe.Load()
		if o <= cur || u.maxProbe.CompareAndSwap(cur, o) {
			return
		}
	}
}

// grow replaces old with a table of twice the capacity. A loser whose table
// was already replaced just returns and retries on the new one.
func (u *HashMap[K, V]) grow(old *Buckets.HashBucket[K, V]) {
	u.l0.Lock()
	if u.table == old {
		bigger := Buckets.NewHashBucket[K, V](old.Capacity()<<1, u.hash, u.eq)
		probe := uint(0)
		old.Range(func(k K, v V) bool {
			for o := uint(0); ; o++ {
				if i, _ := bigger.Add(k, v, o); i >= 0 {
					if o > probe {
						probe = o
					}
					return true
				}
			}
		})
		u.table = bigger
		u.maxProbe.Store(probe)
	}
	u.l0.Unlock()
}

func (u *HashMap[K, V]) Store(k K, v V) {
	for {
		u.l0.RLock()
		t := u.table
		// Replace in place when k is already somewhere in its probe chain;
		// inserting at an earlier hole would leave the key in two slots.
		for o, max := uint(0), u.maxProbe.Load(); o <= max; o++ {
			if t.ContainsKey(k, o) >= 0 {
				if i, _ := t.Set(k, v, o); i >= 0 {
					u.l0.RUnlock()
					return
				}
			}
		}
		for o := uint(0); o < t.Capacity(); o++ {
			if i, _ := t.Set(k, v, o); i >= 0 {
				u.raiseProbe(o)
				u.l0.RUnlock()
				return
			}
		}
		u.l0.RUnlock()
		u.grow(t)
	}
}

func (u *HashMap[K, V]) Load(k K) (V, bool) {
	u.l0.RLock()
	defer u.l0.RUnlock()
	t := u.table
	for o, max := uint(0), u.maxProbe.Load(); o <= max; o++ {
		if v, i := t.TryGetValue(k, o); i >= 0 {
			return v, true
		}
	}
	return *new(V), false
}

func (u *HashMap[K, V]) HasKey(k K) bool {
	u.l0.RLock()
	defer u.l0.RUnlock()
	t := u.table
	for o, max := uint(0), u.maxProbe.Load(); o <= max; o++ {
		if t.ContainsKey(k, o) >= 0 {
			return true
		}
	}
	return false
}

func (u *HashMap[K, V]) LoadOrStore(k K, v V) (V, bool) {
	for {
		u.l0.RLock()
		t := u.table
		for o, max := uint(0), u.maxProbe.Load(); o <= max; o++ {
			if old, i := t.TryGetValue(k, o); i >= 0 {
				u.l0.RUnlock()
				return old, true
			}
		}
		for o := uint(0); o < t.Capacity(); {
			i, collision := t.Add(k, v, o)
			if i >= 0 {
				u.raiseProbe(o)
				u.l0.RUnlock()
				return *new(V), false
			}
			if collision {
				o++
				continue
			}
			if old, j := t.TryGetValue(k, o); j >= 0 {
				u.l0.RUnlock()
				return old, true
			}
			// the duplicate was deleted between the two calls; same offset again
		}
		u.l0.RUnlock()
		u.grow(t)
	}
}

func (u *HashMap[K, V]) LoadAndDelete(k K) (V, bool) {
	u.l0.RLock()
	defer u.l0.RUnlock()
	t := u.table
	for o, max := uint(0), u.maxProbe.Load(); o <= max; o++ {
		if v, i := t.RemoveValue(k, o); i >= 0 {
			return v, true
		}
	}
	return *new(V), false
}

func (u *HashMap[K, V]) Delete(k K) {
	u.LoadAndDelete(k)
}

// Take an arbitrary entry without removing it. Zero values if the map is
// empty.
func (u *HashMap[K, V]) Take() (k K, v V) {
	u.l0.RLock()
	t := u.table
	u.l0.RUnlock()
	t.Range(func(fk K, fv V) bool {
		k, v = fk, fv
		return false
	})
	return
}

// Range over the entries without a snapshot: concurrent writes may or may
// not be visible, and a growth in the middle leaves f iterating the table it
// started on.
func (u *HashMap[K, V]) Range(f func(K, V) bool) {
	u.l0.RLock()
	t := u.table
	u.l0.RUnlock()
	t.Range(f)
}

// Pairs iterator over a table reference captured at the call.
func (u *HashMap[K, V]) Pairs() func() (K, V, bool) {
	u.l0.RLock()
	t := u.table
	u.l0.RUnlock()
	return t.Pairs()
}

func (u *HashMap[K, V]) Size() uint {
	u.l0.RLock()
	defer u.l0.RUnlock()
	return u.table.Count()
}
