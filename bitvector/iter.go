package bitvector

import (
	"iter"

	"github.com/waveformdb/wavedb/logic"
)

// Iter yields the Logic value at every index from 0 to bit_width-1.
func (v *BitVector) Iter() iter.Seq[logic.Logic] {
	return func(yield func(logic.Logic) bool) {
		for i := 0; i < int(v.bitWidth); i++ {
			if !yield(v.GetBit(i)) {
				return
			}
		}
	}
}
