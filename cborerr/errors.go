// Package cborerr defines the error taxonomy shared by the encode, decode,
// and stream packages. Every error this module creates satisfies Error,
// the way the teacher runtime package's errors satisfy its own
// Error/Resumable contract. Errors from a chunk source or a context are
// passed through as they are, and the root package's Unmarshal wraps
// decode errors with fmt.Errorf, so callers reach the Error value with
// errors.As.
package cborerr

import (
	"errors"
	"math/big"
)

// Error is satisfied by every error this module returns from the codec
// core. Resumable reports whether the byte position after the failed item
// is well-defined enough that a caller could, in principle, skip past it
// and keep decoding the rest of the stream.
type Error interface {
	error
	Resumable() bool
}

var (
	// ErrPrematureEnd is returned when the input is exhausted in the
	// middle of an item, whether that input is a single in-memory slice
	// or a chunk rope waiting on more chunks from its source.
	ErrPrematureEnd error = errPrematureEnd{}

	// ErrInvalidUTF8 is returned when a text string's bytes are not
	// valid UTF-8.
	ErrInvalidUTF8 error = invalidEncoding{"invalid UTF-8 in text string"}

	// ErrDuplicateMapKey is returned when a map contains the same text
	// key twice. Rejected unconditionally per spec (no canonical/strict
	// toggle): the streaming and in-memory decoders agree.
	ErrDuplicateMapKey error = invalidEncoding{"duplicate map key"}

	// ErrNonStringMapKey is returned when a map key is not a text
	// string.
	ErrNonStringMapKey error = invalidEncoding{"map key is not a text string"}

	// ErrMalformedArgument is returned when an initial byte's additional
	// info selects a reserved or otherwise invalid argument form.
	ErrMalformedArgument error = invalidEncoding{"malformed CBOR argument"}

	// ErrFloatBelowMinSize is returned when a decoded float uses a
	// narrower width than MinFloatSize allows.
	ErrFloatBelowMinSize error = invalidEncoding{"float encoded narrower than MinFloatSize"}

	// ErrStreamClosed is returned by a push adapter's write side once
	// the stream has been closed or aborted.
	ErrStreamClosed error = streamClosed{}

	// ErrMaxDepthExceeded is returned when a value's array/map nesting
	// exceeds the decoder's recursion limit, guarding against stack
	// exhaustion on adversarial input. The encoder has no nesting limit.
	ErrMaxDepthExceeded error = invalidEncoding{"max nesting depth exceeded"}
)

type errPrematureEnd struct{}

func (errPrematureEnd) Error() string   { return "cbor: input ended in the middle of an item" }
func (errPrematureEnd) Resumable() bool { return false }

type invalidEncoding struct{ reason string }

func (e invalidEncoding) Error() string   { return "cbor: " + e.reason }
func (e invalidEncoding) Resumable() bool { return false }

type streamClosed struct{}

func (streamClosed) Error() string   { return "cbor: write after close" }
func (streamClosed) Resumable() bool { return true }

// UnsafeIntegerError is returned when a decoded integer's magnitude
// exceeds the host safe-integer range [-(2^53-1), 2^53-1]. It carries the
// exact value rather than silently promoting to an arbitrary-precision
// type.
type UnsafeIntegerError struct {
	Raw *big.Int
}

func (e UnsafeIntegerError) Error() string {
	return "cbor: integer " + e.Raw.String() + " exceeds the safe integer range"
}

func (e UnsafeIntegerError) Resumable() bool { return true }

// UnsupportedFeatureError is returned for well-formed CBOR this subset
// deliberately does not implement: tagged items, indefinite-length
// items, and unassigned simple values.
type UnsupportedFeatureError struct {
	Feature string
}

func (e UnsupportedFeatureError) Error() string { return "cbor: unsupported feature: " + e.Feature }

// Resumable is false: decoding never reached far enough to know the
// byte length of an item it doesn't understand (a tag's payload, an
// indefinite item's terminating break) so the stream position cannot be
// trusted.
func (e UnsupportedFeatureError) Resumable() bool { return false }

// UndefinedDisallowedError is returned when an undefined value is
// encountered (encode or decode) while AllowUndefined is false.
type UndefinedDisallowedError struct{}

func (UndefinedDisallowedError) Error() string   { return "cbor: undefined value not allowed" }
func (UndefinedDisallowedError) Resumable() bool { return true }

// HookError wraps an error returned by a user-supplied OnKey/OnValue
// hook, propagated unchanged to the caller.
type HookError struct {
	Cause error
}

func (e HookError) Error() string { return "cbor: hook error: " + e.Cause.Error() }

func (e HookError) Resumable() bool {
	var inner Error
	if errors.As(e.Cause, &inner) {
		return inner.Resumable()
	}
	return true
}

func (e HookError) Unwrap() error { return e.Cause }

// PathError attaches the key path active when err occurred, the way the
// teacher's WrapError/withContext attaches a dotted context string
// without mutating the original error.
type PathError struct {
	Cause error
	Path  string
}

func (e PathError) Error() string { return e.Cause.Error() + " at " + e.Path }

func (e PathError) Resumable() bool {
	var inner Error
	if errors.As(e.Cause, &inner) {
		return inner.Resumable()
	}
	return false
}

func (e PathError) Unwrap() error { return e.Cause }

// WrapPath attaches path to err for diagnostics. If path is empty, err is
// returned unchanged. err is never mutated; a new value is always
// returned (mirrors the teacher's WrapError contract).
func WrapPath(err error, path string) error {
	if err == nil || path == "" {
		return err
	}
	return PathError{Cause: err, Path: path}
}

// Resumable reports whether err means the underlying stream can, in
// principle, be resynchronized and decoding continued. Errors that do
// not implement Error are treated as resumable, matching the teacher's
// resumableDefault.
func Resumable(err error) bool {
	var e Error
	if errors.As(err, &e) {
		return e.Resumable()
	}
	return true
}
