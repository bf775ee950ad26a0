package wire

import "unicode/utf8"

// ValidUTF8 validates UTF-8 for a text-string payload. Kept as a var,
// matching the teacher runtime package's isUTF8Valid, so an
// architecture-specific SIMD implementation could be swapped in via a
// build-tagged init without touching call sites.
var ValidUTF8 = func(b []byte) bool { return utf8.Valid(b) }
