// Package errs defines the sentinel and typed errors surfaced by the
// signal, history, and waveform layers.
//
// Construction-time contract violations (a bit-width that overflows the tag
// field, a byte slice whose length does not match the declared width) are
// not modeled here: those are fatal and reported via panic, never via a
// returned error, per the package's error-handling design.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below wrap these so callers can match with
// errors.Is(err, errs.ErrXxx) without caring about the concrete type.
var (
	// ErrDecreasingTimestamp is returned when a timestamp inserted into a
	// waveform is strictly less than the last one seen.
	ErrDecreasingTimestamp = errors.New("timestamp decreases relative to the last inserted timestamp")

	// ErrInvalidID is returned when a signal ID does not refer to a
	// registered signal.
	ErrInvalidID = errors.New("invalid signal id")

	// ErrInvalidWidth is returned when a value's bit width exceeds a
	// signal's declared width.
	ErrInvalidWidth = errors.New("invalid bit-vector width for signal")

	// ErrMismatchedTimestamps is returned when shards being merged do not
	// share the same timestamp array.
	ErrMismatchedTimestamps = errors.New("shards have mismatched timestamp arrays")

	// ErrDuplicateTimestamp is the sentinel wrapped by the panic raised on
	// a duplicate timestamp index appended to a History. It is exported so
	// tests can assert on it with errors.Is after recovering the panic.
	ErrDuplicateTimestamp = errors.New("duplicate timestamp index appended to history")

	// ErrUnsupportedCodec is returned by the compact package's codec
	// factory when asked for a compression type it does not implement.
	ErrUnsupportedCodec = errors.New("unsupported compaction codec")

	// ErrDuplicateSignalName is returned when a signal name is registered
	// twice against the same waveform.
	ErrDuplicateSignalName = errors.New("signal name already registered")
)

// DecreasingTimestampError reports the offending timestamp alongside
// ErrDecreasingTimestamp.
type DecreasingTimestampError struct {
	Timestamp uint64
}

func (e *DecreasingTimestampError) Error() string {
	return fmt.Sprintf("%s: %d", ErrDecreasingTimestamp, e.Timestamp)
}

func (e *DecreasingTimestampError) Unwrap() error { return ErrDecreasingTimestamp }

// InvalidIDError reports the offending signal id alongside ErrInvalidID.
type InvalidIDError struct {
	ID uint64
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("%s: %d", ErrInvalidID, e.ID)
}

func (e *InvalidIDError) Unwrap() error { return ErrInvalidID }

// InvalidWidthError reports the signal id and the expected/actual widths
// alongside ErrInvalidWidth.
type InvalidWidthError struct {
	ID       uint64
	Expected int
	Actual   int
}

func (e *InvalidWidthError) Error() string {
	return fmt.Sprintf("%s: id %d, expected <= %d bits, got %d bits", ErrInvalidWidth, e.ID, e.Expected, e.Actual)
}

func (e *InvalidWidthError) Unwrap() error { return ErrInvalidWidth }

// MismatchedTimestampsError wraps ErrMismatchedTimestamps. It carries no
// extra fields; shards either match or they don't.
type MismatchedTimestampsError struct{}

func (e *MismatchedTimestampsError) Error() string { return ErrMismatchedTimestamps.Error() }

func (e *MismatchedTimestampsError) Unwrap() error { return ErrMismatchedTimestamps }
