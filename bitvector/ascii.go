package bitvector

import "github.com/waveformdb/wavedb/logic"

// FromASCII builds a two-state BitVector from a string of '0'/'1'
// characters. Byte index 0 is the most significant bit; width = len(b).
func FromASCII(b []byte) *BitVector {
	width := uint32(len(b))
	bv := New(width, false)

	for i, c := range b {
		idx := int(width) - 1 - i
		setBit(&bv.value, bv.heapValue, idx, c == '1')
	}

	return bv
}

// FromASCIIFourState builds a four-state BitVector from a string accepting
// '0', '1', 'X'/'x', and 'Z'/'z'; any other byte is treated as '0'. Byte
// index 0 is the most significant bit; width = len(b).
func FromASCIIFourState(b []byte) *BitVector {
	width := uint32(len(b))
	bv := New(width, true)

	for i, c := range b {
		idx := int(width) - 1 - i

		var l logic.Logic
		switch c {
		case '1':
			l = logic.One
		case 'X', 'x':
			l = logic.Unknown
		case 'Z', 'z':
			l = logic.HighImpedance
		default:
			l = logic.Zero
		}

		value, mask := l.ToBoolPair()
		setBit(&bv.value, bv.heapValue, idx, value)
		setBit(&bv.mask, bv.heapMask, idx, mask)
	}

	return bv
}
