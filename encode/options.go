package encode

import "github.com/cborstream/cborstream/value"

// OnKeyFunc validates or remaps a string map key before it is encoded.
// Returning ok=false encodes key unchanged; returning an error aborts
// the traversal with a cborerr.HookError.
type OnKeyFunc func(key string) (replacement string, ok bool, err error)

// OnValueFunc validates or transforms a value before it is encoded, at
// the given key path. Returning ok=false encodes v unchanged; returning
// an error aborts the traversal with a cborerr.HookError.
type OnValueFunc func(v value.Value, path value.KeyPath) (replacement value.Value, ok bool, err error)

// Options configures an Encoder, matching spec.md §6's encode option
// table.
type Options struct {
	// AllowUndefined, when false, makes encoding an undefined value an
	// error. Default true.
	AllowUndefined bool

	// ChunkRecycling, when true, reuses one backing buffer across
	// emitted chunks; the consumer must copy before the next emit.
	// Default false.
	ChunkRecycling bool

	// ChunkSize bounds each emitted chunk's capacity in bytes. Default
	// 4096.
	ChunkSize int

	// MinFloatSize is the narrowest float width this encoder is
	// allowed to emit (16, 32, or 64); wider is used automatically when
	// needed to round-trip exactly. Default 16.
	MinFloatSize int

	OnKey   OnKeyFunc
	OnValue OnValueFunc
}

// DefaultOptions returns the spec.md §6 encode defaults.
func DefaultOptions() Options {
	return Options{
		AllowUndefined: true,
		ChunkRecycling: false,
		ChunkSize:      4096,
		MinFloatSize:   16,
	}
}

func (o Options) normalized() Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = 4096
	}
	if o.MinFloatSize == 0 {
		o.MinFloatSize = 16
	}
	return o
}
