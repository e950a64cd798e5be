package signal

import (
	"math"

	"github.com/waveformdb/wavedb/endian"
	"github.com/waveformdb/wavedb/history"
	"github.com/waveformdb/wavedb/internal/pool"
)

var realEndian = endian.GetBigEndianEngine()

// Real owns a history.History and a dense array of 8-byte big-endian
// IEEE-754 doubles.
type Real struct {
	history     *history.History
	vectors     *pool.ByteBuffer
	vectorIndex uint64
}

// NewReal returns an empty Real signal.
func NewReal() *Real {
	return &Real{
		history: history.New(),
		vectors: pool.NewByteBuffer(pool.SignalBufferDefaultSize),
	}
}

// History returns the change history backing r.
func (r *Real) History() *history.History { return r.history }

// Update appends value as the next entry at timestampIndex. It always
// succeeds; the error return exists so callers can treat Vector and Real
// signals uniformly.
func (r *Real) Update(timestampIndex uint64, value float64) error {
	r.history.AddChange(timestampIndex, r.vectorIndex)

	var b [8]byte
	realEndian.PutUint64(b[:], math.Float64bits(value))
	r.vectors.MustWrite(b[:])

	r.vectorIndex++

	return nil
}

// GetReal reads the entry at index.
func (r *Real) GetReal(index uint64) float64 {
	offset := int(index) * 8
	bits := realEndian.Uint64(r.vectors.Bytes()[offset : offset+8])

	return math.Float64frombits(bits)
}

// Bytes returns the raw backing byte slices of r's history and packed
// payload array, suitable for compaction with the compact package.
func (r *Real) Bytes() (historyBytes, payloadBytes []byte) {
	return r.history.Bytes(), r.vectors.Bytes()
}

// RealFromBytes reconstructs a Real from a prior Bytes snapshot (restored,
// if compacted, through a compact.Codec first).
func RealFromBytes(historyBytes, payloadBytes []byte) *Real {
	return &Real{
		history:     history.FromBytes(historyBytes),
		vectors:     &pool.ByteBuffer{B: payloadBytes},
		vectorIndex: uint64(len(payloadBytes) / 8),
	}
}

// GetVectorSize returns the byte length of the packed payload array.
func (r *Real) GetVectorSize() int { return r.vectors.Len() }

// GetWidth always returns 64: every Real entry is a 64-bit double.
func (r *Real) GetWidth() uint32 { return 64 }

// Len returns the number of entries appended so far.
func (r *Real) Len() uint64 { return r.vectorIndex }

// IsEmpty reports whether no entry has been appended yet.
func (r *Real) IsEmpty() bool { return r.vectorIndex == 0 }
