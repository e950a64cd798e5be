package signal

import (
	"github.com/waveformdb/wavedb/bitvector"
	"github.com/waveformdb/wavedb/errs"
	"github.com/waveformdb/wavedb/history"
	"github.com/waveformdb/wavedb/internal/pool"
)

// Vector owns a history.History and a packed byte array of four-state
// bit-vector entries, all sharing one declared bit width.
type Vector struct {
	width       uint32
	packing     packing
	history     *history.History
	vectors     *pool.ByteBuffer
	vectorIndex uint64
	bitsUnused  int
}

// NewVector returns an empty Vector for signals of the given bit width.
func NewVector(width uint32) *Vector {
	return &Vector{
		width:   width,
		packing: newPacking(width),
		history: history.New(),
		vectors: pool.NewByteBuffer(pool.SignalBufferDefaultSize),
	}
}

// History returns the change history backing v.
func (v *Vector) History() *history.History { return v.history }

// Update appends bv as the next entry at timestampIndex. bv.BitWidth() must
// not exceed v.GetWidth(); a narrower incoming vector is right-justified,
// its missing high bits treated as zero.
func (v *Vector) Update(timestampIndex uint64, bv *bitvector.BitVector) error {
	if bv.BitWidth() > v.width {
		return &errs.InvalidWidthError{Expected: int(v.width), Actual: int(bv.BitWidth())}
	}

	v.history.AddChange(timestampIndex, v.vectorIndex)

	if v.packing.isBits() {
		v.updateBits(bv)
	} else {
		v.updateBytes(bv)
	}

	v.vectorIndex++

	return nil
}

func (v *Vector) updateBits(bv *bitvector.BitVector) {
	bits := v.packing.bits
	combinedMask := uint8((1 << (bits / 2)) - 1)

	value, mask, _ := bitvector.ToBitsFourState[uint8](bv)
	combined := (value & combinedMask) | ((mask & combinedMask) << (bits / 2))

	if v.bitsUnused == 0 {
		v.vectors.MustWrite([]byte{combined})
		v.bitsUnused = 8
	} else {
		shift := 8 - v.bitsUnused
		last := v.vectors.Len() - 1
		v.vectors.Bytes()[last] |= combined << uint(shift)
	}

	v.bitsUnused -= bits
}

func (v *Vector) updateBytes(bv *bitvector.BitVector) {
	bytes := v.packing.bytes
	byteWidth := int((bv.BitWidth()-1)/8 + 1)

	offset := v.vectors.Len()
	v.vectors.ExtendOrGrow(bytes)

	valueBytes, maskBytes := bv.ToBEBytesFourState()
	region := v.vectors.Bytes()[offset : offset+bytes]
	half := bytes / 2

	copy(region[half-byteWidth:half], valueBytes)
	copy(region[bytes-byteWidth:bytes], maskBytes)
}

// GetBitVector reconstructs the entry at index, at the signal's declared
// width.
func (v *Vector) GetBitVector(index uint64) *bitvector.BitVector {
	if v.packing.isBits() {
		return v.getBitVectorBits(index)
	}

	return v.getBitVectorBytes(index)
}

func (v *Vector) getBitVectorBits(index uint64) *bitvector.BitVector {
	bits := v.packing.bits
	bitMask := uint8((1 << (bits / 2)) - 1)
	vectorsPerByte := 8 / bits

	byteIndex := int(index) / vectorsPerByte
	bitIndex := (int(index) % vectorsPerByte) * bits

	b := v.vectors.Bytes()[byteIndex]
	value := (b >> uint(bitIndex)) & bitMask
	mask := (b >> uint(bitIndex+bits/2)) & bitMask

	return bitvector.FromBitsFourState(v.width, value, mask)
}

func (v *Vector) getBitVectorBytes(index uint64) *bitvector.BitVector {
	bytes := v.packing.bytes
	offset := int(index) * bytes
	region := v.vectors.Bytes()[offset : offset+bytes]
	half := bytes / 2

	return bitvector.FromBEBytesFourState(v.width, region[:half], region[half:])
}

// Bytes returns the raw backing byte slices of v's history and packed
// payload array, suitable for compaction with the compact package.
func (v *Vector) Bytes() (historyBytes, payloadBytes []byte) {
	return v.history.Bytes(), v.vectors.Bytes()
}

// FromBytes reconstructs a Vector of the given width from a prior Bytes
// snapshot (restored, if compacted, through a compact.Codec first).
// entryCount must be the Len() of the Vector the bytes were taken from: the
// packed payload's byte length alone does not determine it for widths that
// pack multiple entries per byte.
func FromBytes(width uint32, historyBytes, payloadBytes []byte, entryCount uint64) *Vector {
	v := &Vector{
		width:       width,
		packing:     newPacking(width),
		history:     history.FromBytes(historyBytes),
		vectors:     &pool.ByteBuffer{B: payloadBytes},
		vectorIndex: entryCount,
	}

	if v.packing.isBits() {
		perByte := uint64(8 / v.packing.bits)
		if r := entryCount % perByte; r != 0 {
			v.bitsUnused = 8 - int(r)*v.packing.bits
		}
	}

	return v
}

// GetVectorSize returns the byte length of the packed payload array.
func (v *Vector) GetVectorSize() int { return v.vectors.Len() }

// GetWidth returns the signal's declared bit width.
func (v *Vector) GetWidth() uint32 { return v.width }

// Len returns the number of entries appended so far.
func (v *Vector) Len() uint64 { return v.vectorIndex }

// IsEmpty reports whether no entry has been appended yet.
func (v *Vector) IsEmpty() bool { return v.vectorIndex == 0 }
