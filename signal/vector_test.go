package signal

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/waveformdb/wavedb/bitvector"
	"github.com/waveformdb/wavedb/history"
)

func TestVectorUpdateGetBitsMode(t *testing.T) {
	for _, width := range []uint32{1, 2, 3, 4} {
		v := NewVector(width)

		inputs := []*bitvector.BitVector{
			bitvector.FromBitsFourState(width, uint8(0), uint8(0)),
			bitvector.FromBitsFourState(width, uint8(1), uint8(0)),
			bitvector.NewUnknownBit(),
		}

		for i, in := range inputs {
			err := v.Update(uint64(i+1), in.Clone())
			require.NoError(t, err)
		}

		require.Equal(t, uint64(len(inputs)), v.Len())

		for i, in := range inputs {
			got := v.GetBitVector(uint64(i))
			require.True(t, in.Equal(got), "width=%d entry=%d", width, i)
		}
	}
}

func TestVectorUpdateGetBytesMode(t *testing.T) {
	for _, width := range []uint32{5, 8, 9, 16, 17} {
		v := NewVector(width)

		in := bitvector.FromASCIIFourState([]byte("1Z0X1"))
		err := v.Update(10, in)
		require.NoError(t, err)

		got := v.GetBitVector(0)
		require.True(t, in.Equal(got), "width=%d", width)
	}
}

func TestVectorUpdateWidthTooWide(t *testing.T) {
	v := NewVector(4)
	wide := bitvector.New(9, true)

	err := v.Update(1, wide)
	require.Error(t, err)
}

func TestVectorHistoryTracksTimestamps(t *testing.T) {
	v := NewVector(4)

	_ = v.Update(5, bitvector.NewZeroBit())
	_ = v.Update(9, bitvector.NewOneBit())

	idx, ok := v.History().SearchTimestampIndex(9, history.Exact)
	require.True(t, ok)
	require.Equal(t, uint64(1), idx.ValueIndex)
}
