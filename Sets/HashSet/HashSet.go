package HashSet

import (
	"unsafe"

	Hash_Bucket "github.com/g-m-twostay/hash-bucket"
	"github.com/g-m-twostay/hash-bucket/Maps"
)

type void struct{}

// HashSet of comparable elements, safe for concurrent use. It stores its
// elements as keys of a Maps.HashMap, hashed by their memory content with
// the given seed.
type HashSet[E comparable] struct {
	m *Maps.HashMap[E, void]
}

// New HashSet with room for about size elements before the first growth.
// seed may be any uint, ideally drawn from a source of randomness and fixed
// for the lifetime of the set.
func New[E comparable](size, seed uint) *HashSet[E] {
	h := Hash_Bucket.Hasher(seed)
	return &HashSet[E]{m: Maps.New[E, void](size, func(e E) uint {
		return h.HashMem(unsafe.Pointer(&e), unsafe.Sizeof(e))
	}, func(a, b E) bool {
		return a == b
	})}
}

// Put e into the set. Returns true if e wasn't already present.
func (u *HashSet[E]) Put(e E) bool {
	_, loaded := u.m.LoadOrStore(e, void{})
	return !loaded
}

// Has e in the set.
func (u *HashSet[E]) Has(e E) bool {
	return u.m.HasKey(e)
}

// Remove e from the set. Returns true if the removal is successful.
func (u *HashSet[E]) Remove(e E) bool {
	_, removed := u.m.LoadAndDelete(e)
	return removed
}

// Size of the set.
func (u *HashSet[E]) Size() uint {
	return u.m.Size()
}

// Take an arbitrary element from the set. Returns zero value if the set is
// empty. Doesn't guarantee which element it will return.
func (u *HashSet[E]) Take() (e E) {
	e, _ = u.m.Take()
	return
}

// Range over the elements, snapshot-free; concurrent modification during
// iteration may or may not be visible to f. Stops when f returns false.
func (u *HashSet[E]) Range(f func(E) bool) {
	u.m.Range(func(e E, _ void) bool {
		return f(e)
	})
}
