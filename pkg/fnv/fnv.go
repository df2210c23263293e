// Package fnv implements the case-folded 32-bit FNV-1 variant used by the
// Wwise sound engine to derive event ids from event names, together with the
// algebraic inverse that makes suffix-side precomputation possible.
package fnv

// Constants from the Wwise SDK hash definition (AkFNVHash.h).
const (
	OffsetBasis uint32 = 2166136261
	Prime       uint32 = 16777619

	// PrimeInverse is the multiplicative inverse of Prime modulo 2^32.
	// It exists because Prime is odd.
	PrimeInverse uint32 = 899433627

	hash30Mask uint32 = 0x3FFFFFFF
)

func fold(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

// Hash computes the case-folded FNV-1 hash of s: starting from the offset
// basis, multiply by the prime, then XOR in the next lowercased byte.
func Hash(s string) uint32 {
	return HashContinue(OffsetBasis, s)
}

// HashContinue runs the FNV-1 update loop seeded from a previously computed
// hash. For any p and s, HashContinue(Hash(p), s) == Hash(p + s).
func HashContinue(seed uint32, s string) uint32 {
	h := seed
	for i := 0; i < len(s); i++ {
		h *= Prime
		h ^= uint32(fold(s[i]))
	}
	return h
}

// HashInverse undoes the forward update for a known suffix, back to front.
// If Hash(p + s) == t, then HashInverse(t, s) == Hash(p).
func HashInverse(target uint32, suffix string) uint32 {
	h := target
	for i := len(suffix) - 1; i >= 0; i-- {
		h = (h ^ uint32(fold(suffix[i]))) * PrimeInverse
	}
	return h
}

// FuzzyMask projects a hash onto its upper 24 bits for cheap early rejection.
// A mask match must always be followed by an exact comparison.
func FuzzyMask(h uint32) uint32 {
	return (h * Prime) & 0xFFFFFF00
}

// Hash30 computes the 30-bit variant used by consumers of the narrower id
// space: the top 2 bits of the 32-bit hash XOR-folded into the low 30.
func Hash30(s string) uint32 {
	return Hash32To30(Hash(s))
}

// Hash32To30 folds an already computed 32-bit hash to 30 bits.
func Hash32To30(h uint32) uint32 {
	return (h >> 30) ^ (h & hash30Mask)
}
