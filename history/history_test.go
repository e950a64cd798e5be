package history

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchTimestampIndex_S4(t *testing.T) {
	h := New()
	for i, ts := range []uint64{5, 10, 15, 25} {
		h.AddChange(ts, uint64(i))
	}

	idx, ok := h.SearchTimestampIndex(7, Before)
	require.True(t, ok)
	require.Equal(t, Index{5, 0}, idx)

	idx, ok = h.SearchTimestampIndex(7, After)
	require.True(t, ok)
	require.Equal(t, Index{10, 1}, idx)

	idx, ok = h.SearchTimestampIndex(7, Closest)
	require.True(t, ok)
	require.Equal(t, Index{5, 0}, idx)

	idx, ok = h.SearchTimestampIndex(10, Exact)
	require.True(t, ok)
	require.Equal(t, Index{10, 1}, idx)

	_, ok = h.SearchTimestampIndex(30, After)
	require.False(t, ok)

	idx, ok = h.SearchTimestampIndex(30, Closest)
	require.True(t, ok)
	require.Equal(t, Index{25, 3}, idx)
}

func TestAppendThenIterateRoundTrip(t *testing.T) {
	h := New()

	var want []Index

	ts := uint64(1)
	for i := 0; i < 5000; i++ {
		ts += uint64(1 + rand.Intn(50))
		want = append(want, Index{TimestampIndex: ts, ValueIndex: uint64(i)})
		h.AddChange(ts, uint64(i))
	}

	var got []Index
	for idx := range h.All() {
		got = append(got, idx)
	}

	require.Equal(t, want, got)
}

func bruteForceSearch(seq []Index, t uint64, mode SearchMode) (Index, bool) {
	var before, after Index

	haveBefore, haveAfter := false, false

	for _, idx := range seq {
		if idx.TimestampIndex <= t {
			before = idx
			haveBefore = true
		} else if !haveAfter {
			after = idx
			haveAfter = true
		}
	}

	switch mode {
	case Exact:
		if haveBefore && before.TimestampIndex == t {
			return before, true
		}

		return Index{}, false
	case Before:
		return before, haveBefore
	case After:
		return after, haveAfter
	default: // Closest
		if !haveBefore {
			if haveAfter {
				return after, true
			}

			return Index{}, false
		}

		if !haveAfter {
			return before, true
		}

		if after.TimestampIndex-t < t-before.TimestampIndex {
			return after, true
		}

		return before, true
	}
}

func TestSearchExhaustiveness(t *testing.T) {
	h := New()

	var seq []Index

	ts := uint64(0)
	for i := 0; i < 2000; i++ {
		ts += uint64(1 + rand.Intn(20))
		seq = append(seq, Index{TimestampIndex: ts, ValueIndex: uint64(i)})
		h.AddChange(ts, uint64(i))
	}

	modes := []SearchMode{Before, After, Closest, Exact}

	for q := 0; q < 500; q++ {
		query := uint64(rand.Intn(int(ts) + 40))

		for _, mode := range modes {
			want, wantOK := bruteForceSearch(seq, query, mode)
			got, gotOK := h.SearchTimestampIndex(query, mode)

			require.Equal(t, wantOK, gotOK, "query=%d mode=%d", query, mode)
			if wantOK {
				require.Equal(t, want, got, "query=%d mode=%d", query, mode)
			}
		}
	}
}

func TestBlockSizeBoundary(t *testing.T) {
	h := New()

	const changes = 65536

	for i := 0; i < changes; i++ {
		h.AddChange(uint64(i+1), uint64(i))
	}

	count := 0
	for idx := range h.All() {
		require.Equal(t, uint64(count+1), idx.TimestampIndex)
		require.Equal(t, uint64(count), idx.ValueIndex)
		count++
	}

	require.Equal(t, changes, count)
	// A single dense run of consecutive timestamps packs 128 changes per
	// change-byte, so 65536 changes fit in a handful of blocks, not 65536.
	require.LessOrEqual(t, h.GetBlockCount(), 5)
}
