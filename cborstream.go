// Package cborstream is a streaming codec for a restricted subset of
// CBOR (RFC 8949) suited to dynamic, schema-less data: definite-length
// items only, no tags, string-only map keys, integers bounded to the
// host's safe range. It wraps the one-shot entry points of its
// encode/decode subpackages so a single import covers the common case;
// callers needing transform hooks, key paths, or the streaming adapters
// import the value/encode/decode/stream subpackages directly.
package cborstream

import (
	"fmt"

	"github.com/cborstream/cborstream/decode"
	"github.com/cborstream/cborstream/encode"
	"github.com/cborstream/cborstream/value"
)

// Marshal encodes v to a single in-memory byte slice using default
// options.
func Marshal(v value.Value) ([]byte, error) {
	return encode.Encode(v, encode.DefaultOptions())
}

// MarshalOptions encodes v to a single in-memory byte slice using opts.
func MarshalOptions(v value.Value, opts encode.Options) ([]byte, error) {
	return encode.Encode(v, opts)
}

// Unmarshal decodes exactly one top-level value from b using default
// options.
func Unmarshal(b []byte) (value.Value, error) {
	return decodeAnnotated(b, decode.DefaultOptions())
}

// UnmarshalOptions decodes exactly one top-level value from b using
// opts.
func UnmarshalOptions(b []byte, opts decode.Options) (value.Value, error) {
	return decodeAnnotated(b, opts)
}

// decodeAnnotated runs decode.Decode and, on error, appends a diagnostic
// rendering of the offending item when one is available (e.g. a value
// that parsed but failed a semantic check, like an unsafe integer) — the
// same role the teacher runtime package's DiagBytes played for its own
// error reporting. Errors whose bytes Diag itself cannot render (most
// malformed/truncated input) are returned unannotated, and still
// unwrap via errors.As/errors.Is to the underlying cborerr.Error.
func decodeAnnotated(b []byte, opts decode.Options) (value.Value, error) {
	v, err := decode.Decode(b, opts)
	if err == nil {
		return v, nil
	}
	if snippet := decode.DiagnosticSnippet(b); snippet != "" {
		return v, fmt.Errorf("%w (item: %s)", err, snippet)
	}
	return v, err
}
