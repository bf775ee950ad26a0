package value

// MaxSafeUint bounds the host safe-integer range spec.md §3 and the
// GLOSSARY define: [-(2^53-1), 2^53-1], the range a float64 can
// represent every integer in without loss.
const MaxSafeUint uint64 = 1<<53 - 1

// IsSafeUint reports whether u fits the host safe-integer range.
func IsSafeUint(u uint64) bool { return u <= MaxSafeUint }

// IsSafeNegative reports whether the negative integer represented as
// n = -1-u (CBOR major type 1's argument convention) fits the host safe
// range, i.e. whether -1-int64(u) >= -(2^53-1).
func IsSafeNegative(u uint64) bool { return u <= MaxSafeUint-1 }
