package decode

import "github.com/cborstream/cborstream/value"

// KeyThunk is the hook argument passed to OnKey: a memoized cell around
// the actual key decode, per spec.md §9's "hook thunk memoization ->
// explicit state." Calling Call more than once returns the same result
// without re-reading the stream.
type KeyThunk struct {
	d      *Decoder
	arg    uint64
	path   value.KeyPath
	called bool
	val    string
	err    error
}

// Call performs the actual decode on first invocation and returns the
// memoized result on every subsequent call.
func (t *KeyThunk) Call() (string, error) {
	if !t.called {
		t.val, t.err = t.d.decodeTextPayload(t.arg, t.path)
		t.called = true
	}
	return t.val, t.err
}

// Thunk is the hook argument passed to OnValue, mirroring KeyThunk for
// the general value case.
type Thunk struct {
	d       *Decoder
	major   uint8
	addInfo uint8
	arg     uint64
	path    value.KeyPath
	called  bool
	val     value.Value
	err     error
}

// Call performs the actual decode on first invocation and returns the
// memoized result on every subsequent call.
func (t *Thunk) Call() (value.Value, error) {
	if !t.called {
		t.val, t.err = t.d.decodePayload(t.major, t.addInfo, t.arg, t.path)
		t.called = true
	}
	return t.val, t.err
}

// OnKeyFunc is consulted between reading a map key's header and its
// payload. Returning ok=false decodes the key normally; returning a
// replacement without calling thunk.Call skips the key's bytes without
// materializing them (spec.md §4.3's skip-on-replacement rule).
type OnKeyFunc func(thunk *KeyThunk) (replacement string, ok bool, err error)

// OnValueFunc is consulted before decoding the payload of any container
// or typed scalar.
type OnValueFunc func(thunk *Thunk, length int, kind value.Kind, path value.KeyPath) (replacement value.Value, ok bool, err error)

// Options configures a Decoder, matching spec.md §6's decode option
// table.
type Options struct {
	// AllowUndefined, when false, makes decoding an undefined value an
	// error. Default true.
	AllowUndefined bool

	// MinFloatSize rejects encoded floats narrower than this width (16,
	// 32, or 64). Default 16 (accept everything).
	MinFloatSize int

	OnKey   OnKeyFunc
	OnValue OnValueFunc
}

// DefaultOptions returns the spec.md §6 decode defaults.
func DefaultOptions() Options {
	return Options{AllowUndefined: true, MinFloatSize: 16}
}

func (o Options) normalized() Options {
	if o.MinFloatSize == 0 {
		o.MinFloatSize = 16
	}
	return o
}
