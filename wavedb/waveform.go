// Package wavedb provides the Waveform façade: a registry of named signals
// sharing one global, strictly increasing timestamp array, with search
// and sharding on top of the signal and history packages.
package wavedb

import (
	"errors"
	"fmt"

	"github.com/waveformdb/wavedb/bitvector"
	"github.com/waveformdb/wavedb/errs"
	"github.com/waveformdb/wavedb/internal/collision"
	"github.com/waveformdb/wavedb/internal/hash"
	"github.com/waveformdb/wavedb/internal/options"
	"github.com/waveformdb/wavedb/signal"
)

// SignalID derives a signal's 64-bit handle from its name.
func SignalID(name string) uint64 { return hash.ID(name) }

// ValueResult is the outcome of a value search: either a bit-vector entry or
// a real entry, alongside the timestamp index it was found at.
type ValueResult struct {
	Vector         *bitvector.BitVector
	Real           float64
	IsReal         bool
	TimestampIndex uint64
}

// IsUnknown reports whether a vector result carries any unknown bit. Always
// false for real results.
func (r ValueResult) IsUnknown() bool {
	return !r.IsReal && r.Vector != nil && r.Vector.IsUnknown()
}

// IsHighImpedance reports whether a vector result carries any high-impedance
// bit. Always false for real results.
func (r ValueResult) IsHighImpedance() bool {
	return !r.IsReal && r.Vector != nil && r.Vector.IsHighImpedance()
}

// Waveform is a registry of vector and real signals sharing one global
// timestamp array.
//
// Waveform is not safe for concurrent use; callers driving disjoint
// Waveforms (e.g. one per Shard) may run on separate goroutines freely.
type Waveform struct {
	config        *Config
	timestamps    []uint64
	vectorSignals map[uint64]*signal.Vector
	realSignals   map[uint64]*signal.Real
	names         *collision.Tracker
}

// New returns an empty Waveform configured by opts.
func New(opts ...Option) (*Waveform, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Waveform{
		config:        cfg,
		vectorSignals: make(map[uint64]*signal.Vector),
		realSignals:   make(map[uint64]*signal.Real),
		names:         collision.NewTracker(),
	}, nil
}

// RegisterVector registers a new bit-vector signal under name at the given
// width, returning its id. It returns errs.ErrDuplicateSignalName if name
// was already registered.
func (w *Waveform) RegisterVector(name string, width uint32) (uint64, error) {
	id := SignalID(name)
	if err := w.names.Track(name, id); err != nil {
		return 0, err
	}

	w.vectorSignals[id] = signal.NewVector(width)

	return id, nil
}

// RegisterReal registers a new real-valued signal under name, returning its
// id. It returns errs.ErrDuplicateSignalName if name was already registered.
func (w *Waveform) RegisterReal(name string) (uint64, error) {
	id := SignalID(name)
	if err := w.names.Track(name, id); err != nil {
		return 0, err
	}

	w.realSignals[id] = signal.NewReal()

	return id, nil
}

// GetVectorSignal returns the vector signal registered under id, if any.
func (w *Waveform) GetVectorSignal(id uint64) (*signal.Vector, bool) {
	s, ok := w.vectorSignals[id]
	return s, ok
}

// GetRealSignal returns the real signal registered under id, if any.
func (w *Waveform) GetRealSignal(id uint64) (*signal.Real, bool) {
	s, ok := w.realSignals[id]
	return s, ok
}

// Timestamps returns the global timestamp array, in insertion order.
func (w *Waveform) Timestamps() []uint64 { return w.timestamps }

// TimestampsCount returns the number of distinct timestamps recorded.
func (w *Waveform) TimestampsCount() int { return len(w.timestamps) }

// InsertTimestamp appends timestamp to the global array. A timestamp equal
// to the last one inserted is silently dropped (a signal update at the same
// tick as the prior one); a timestamp strictly less than the last one
// returns errs.ErrDecreasingTimestamp.
func (w *Waveform) InsertTimestamp(timestamp uint64) error {
	if len(w.timestamps) == 0 {
		w.timestamps = append(w.timestamps, timestamp)
		return nil
	}

	last := w.timestamps[len(w.timestamps)-1]
	switch {
	case timestamp < last:
		return &errs.DecreasingTimestampError{Timestamp: timestamp}
	case timestamp > last:
		w.timestamps = append(w.timestamps, timestamp)
	}

	return nil
}

// UpdateVector records value for the signal id at the current (latest)
// timestamp index. It returns errs.ErrInvalidID if id is not registered, or
// errs.ErrInvalidWidth if value is wider than the signal's declared width.
func (w *Waveform) UpdateVector(id uint64, value *bitvector.BitVector) error {
	s, ok := w.vectorSignals[id]
	if !ok {
		return &errs.InvalidIDError{ID: id}
	}

	err := s.Update(w.lastTimestampIndex(), value)

	var widthErr *errs.InvalidWidthError
	if errors.As(err, &widthErr) {
		widthErr.ID = id
	}

	return err
}

// UpdateReal records value for the signal id at the current (latest)
// timestamp index. It returns errs.ErrInvalidID if id is not registered.
func (w *Waveform) UpdateReal(id uint64, value float64) error {
	s, ok := w.realSignals[id]
	if !ok {
		return &errs.InvalidIDError{ID: id}
	}

	return s.Update(w.lastTimestampIndex(), value)
}

func (w *Waveform) lastTimestampIndex() uint64 {
	if len(w.timestamps) == 0 {
		return 0
	}

	return uint64(len(w.timestamps) - 1)
}

// Shard splits w into n Waveforms sharing the same timestamp array, with
// each signal assigned to shard id % n.
func (w *Waveform) Shard(n int) []*Waveform {
	shards := make([]*Waveform, n)
	for i := range shards {
		shards[i] = &Waveform{
			config:        w.config,
			timestamps:    w.timestamps,
			vectorSignals: make(map[uint64]*signal.Vector),
			realSignals:   make(map[uint64]*signal.Real),
			names:         collision.NewTracker(),
		}
	}

	for id, s := range w.vectorSignals {
		shards[int(id%uint64(n))].vectorSignals[id] = s
	}

	for id, s := range w.realSignals {
		shards[int(id%uint64(n))].realSignals[id] = s
	}

	return shards
}

// Unshard merges shards produced by Shard back into one Waveform. It
// returns errs.ErrMismatchedTimestamps if the shards do not share the same
// timestamp array.
func Unshard(shards []*Waveform) (*Waveform, error) {
	merged := &Waveform{
		vectorSignals: make(map[uint64]*signal.Vector),
		realSignals:   make(map[uint64]*signal.Real),
		names:         collision.NewTracker(),
	}

	if len(shards) > 0 {
		merged.timestamps = shards[0].timestamps
		merged.config = shards[0].config
	} else {
		merged.config = defaultConfig()
	}

	for _, shard := range shards {
		if !timestampsEqual(shard.timestamps, merged.timestamps) {
			return nil, &errs.MismatchedTimestampsError{}
		}
	}

	for _, shard := range shards {
		for id, s := range shard.vectorSignals {
			merged.vectorSignals[id] = s
		}

		for id, s := range shard.realSignals {
			merged.realSignals[id] = s
		}
	}

	return merged, nil
}

func timestampsEqual(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// BlockBytes returns the total byte size of every signal's history blocks.
func (w *Waveform) BlockBytes() int {
	total := 0
	for _, s := range w.vectorSignals {
		total += s.History().GetBlockSize()
	}

	for _, s := range w.realSignals {
		total += s.History().GetBlockSize()
	}

	return total
}

// PayloadBytes returns the total byte size of every signal's packed payload
// array.
func (w *Waveform) PayloadBytes() int {
	total := 0
	for _, s := range w.vectorSignals {
		total += s.GetVectorSize()
	}

	for _, s := range w.realSignals {
		total += s.GetVectorSize()
	}

	return total
}

// CountEmpty returns the number of registered signals with no entries.
func (w *Waveform) CountEmpty() int {
	count := 0
	for _, s := range w.vectorSignals {
		if s.IsEmpty() {
			count++
		}
	}

	for _, s := range w.realSignals {
		if s.IsEmpty() {
			count++
		}
	}

	return count
}

// CountSingle returns the number of registered signals with exactly one
// entry.
func (w *Waveform) CountSingle() int {
	count := 0
	for _, s := range w.vectorSignals {
		if s.Len() == 1 {
			count++
		}
	}

	for _, s := range w.realSignals {
		if s.Len() == 1 {
			count++
		}
	}

	return count
}

// TimestampRange returns the first and last timestamps (both inclusive)
// present in w, or (0, 0) if w has no timestamps.
func (w *Waveform) TimestampRange() (start, end uint64) {
	if len(w.timestamps) == 0 {
		return 0, 0
	}

	return w.timestamps[0], w.timestamps[len(w.timestamps)-1]
}

func (w *Waveform) String() string {
	return fmt.Sprintf("Waveform{timestamps=%d, vectors=%d, reals=%d}",
		len(w.timestamps), len(w.vectorSignals), len(w.realSignals))
}
