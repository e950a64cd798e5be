package bitvector

import "fmt"

func byteLen(width uint32) int {
	return int((width + 7) / 8)
}

func checkByteLen(width uint32, got int, who string) {
	want := byteLen(width)
	if got != want {
		panic(fmt.Sprintf("bitvector: %s: width %d needs %d bytes, got %d", who, width, want, got))
	}
}

// decodeBEBytes writes the big-endian byte string b into the vector's
// storage so that bit index 0 is the LSB of the last byte: decoded bytes
// fill words least-significant-byte first within the rightmost word, then
// the next word to its left, and so on.
func decodeBEBytes(inline *uint64, heap []uint64, width uint32, b []byte) {
	n := len(b)
	for i := 0; i < n; i++ {
		byteVal := b[n-1-i]
		base := i * 8

		for bit := 0; bit < 8; bit++ {
			idx := base + bit
			if idx >= int(width) {
				continue
			}

			setBit(inline, heap, idx, byteVal&(1<<uint(bit)) != 0)
		}
	}
}

func encodeBEBytes(inline uint64, heap []uint64, width uint32, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		var byteVal byte

		base := i * 8
		for bit := 0; bit < 8; bit++ {
			idx := base + bit
			if idx >= int(width) {
				continue
			}

			if getBit(inline, heap, idx) {
				byteVal |= 1 << uint(bit)
			}
		}

		out[n-1-i] = byteVal
	}

	return out
}

// FromBEBytesTwoState builds a two-state BitVector from a big-endian byte
// string. len(b) must equal ceil(width/8); a mismatch is a construction-time
// contract violation and panics.
func FromBEBytesTwoState(width uint32, b []byte) *BitVector {
	checkByteLen(width, len(b), "from_be_bytes_two_state")

	bv := New(width, false)
	decodeBEBytes(&bv.value, bv.heapValue, width, b)

	return bv
}

// FromBEBytesFourState builds a four-state BitVector from big-endian value
// and mask byte strings of equal length, each equal to ceil(width/8).
func FromBEBytesFourState(width uint32, valueBytes, maskBytes []byte) *BitVector {
	checkByteLen(width, len(valueBytes), "from_be_bytes_four_state value")
	checkByteLen(width, len(maskBytes), "from_be_bytes_four_state mask")

	bv := New(width, true)
	decodeBEBytes(&bv.value, bv.heapValue, width, valueBytes)
	decodeBEBytes(&bv.mask, bv.heapMask, width, maskBytes)

	return bv
}

// ToBEBytesTwoState is the inverse of FromBEBytesTwoState.
func (v *BitVector) ToBEBytesTwoState() []byte {
	return encodeBEBytes(v.value, v.heapValue, v.bitWidth, byteLen(v.bitWidth))
}

// ToBEBytesFourState is the inverse of FromBEBytesFourState.
func (v *BitVector) ToBEBytesFourState() (valueBytes, maskBytes []byte) {
	n := byteLen(v.bitWidth)

	return encodeBEBytes(v.value, v.heapValue, v.bitWidth, n), encodeBEBytes(v.mask, v.heapMask, v.bitWidth, n)
}
