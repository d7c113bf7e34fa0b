package Hash_Bucket

import "math/bits"

// NextPowerOf2 rounds v up to the nearest power of two. 0 rounds to 1.
func NextPowerOf2(v uint) uint {
	if v <= 1 {
		return 1
	}
	return 1 << bits.Len(v-1)
}
