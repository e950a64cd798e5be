package wavedb

import (
	"github.com/waveformdb/wavedb/bitvector"
	"github.com/waveformdb/wavedb/history"
)

// searchTimestampRecursive mirrors the original binary search: narrowing a
// half-open index range against w.timestamps until it collapses to a single
// index, or reporting not-found if timestamp falls outside the array
// entirely. after selects whether ties resolve to the index at or after
// timestamp (true) or at or before it (false).
func (w *Waveform) searchTimestampRecursive(timestamp uint64, start, end int, after bool) (int, bool) {
	for {
		var notFound bool
		if after {
			notFound = w.timestamps[end-1] < timestamp
		} else {
			notFound = timestamp < w.timestamps[start]
		}

		if notFound {
			return 0, false
		}

		if end-start <= 1 {
			return start, true
		}

		mid := (start + end) / 2

		var lookBefore bool
		if after {
			lookBefore = timestamp <= w.timestamps[mid-1]
		} else {
			lookBefore = timestamp < w.timestamps[mid]
		}

		if lookBefore {
			end = mid
		} else {
			start = mid
		}
	}
}

// SearchTimestamp returns the index of timestamp in the global array, or
// the index immediately before it if timestamp is not present.
func (w *Waveform) SearchTimestamp(timestamp uint64) (int, bool) {
	if len(w.timestamps) == 0 {
		return 0, false
	}

	return w.searchTimestampRecursive(timestamp, 0, len(w.timestamps), false)
}

// SearchTimestampAfter returns the index of timestamp in the global array,
// or the index immediately after it if timestamp is not present.
func (w *Waveform) SearchTimestampAfter(timestamp uint64) (int, bool) {
	if len(w.timestamps) == 0 {
		return 0, false
	}

	return w.searchTimestampRecursive(timestamp, 0, len(w.timestamps), true)
}

// SearchTimestampRange returns an index range [start, end], both ends
// inclusive, for the timestamps between rangeStart and rangeEnd. With
// greedy=false, start is the first index whose timestamp is >= rangeStart
// and end is the last index whose timestamp is < rangeEnd (or == rangeEnd
// when no earlier timestamp exists). With greedy=true, start is the last
// index at or before rangeStart and end is the first index at or after
// rangeEnd, where those exist.
func (w *Waveform) SearchTimestampRange(rangeStart, rangeEnd uint64, greedy bool) (start, end int, ok bool) {
	s, sOK := w.SearchTimestampAfter(rangeStart)
	e, eOK := w.SearchTimestamp(rangeEnd)

	if greedy {
		if gs, gsOK := w.SearchTimestamp(rangeStart); gsOK {
			s, sOK = gs, true
		}

		if ge, geOK := w.SearchTimestampAfter(rangeEnd); geOK {
			e, eOK = ge, true
		}
	} else if eOK && rangeEnd > 0 && w.timestamps[e] == rangeEnd {
		if se, seOK := w.SearchTimestamp(rangeEnd - 1); seOK {
			e, eOK = se, true
		}
	}

	if !sOK || !eOK {
		return 0, 0, false
	}

	return s, e, true
}

// SearchValueBitIndex looks up the signal id's value nearest timestampIndex,
// using history.Closest semantics, optionally re-sliced to a single bit of
// a vector result. timestampIndex is the ordinal position in the global
// timestamp array (as returned by SearchTimestamp/SearchTimestampAfter, or
// tracked by the caller directly), not a raw clock value. It returns
// ok=false if id is not registered or the signal has no entry at or near
// timestampIndex.
func (w *Waveform) SearchValueBitIndex(id uint64, timestampIndex uint64, bitIndex *int) (ValueResult, bool) {
	if s, ok := w.vectorSignals[id]; ok {
		pos, found := s.History().SearchTimestampIndex(timestampIndex, history.Closest)
		if !found {
			return ValueResult{}, false
		}

		bv := s.GetBitVector(pos.ValueIndex)
		if bitIndex != nil {
			bv = bitvector.FromLogic(bv.GetBit(*bitIndex))
		}

		return ValueResult{Vector: bv, TimestampIndex: pos.TimestampIndex}, true
	}

	if s, ok := w.realSignals[id]; ok {
		pos, found := s.History().SearchTimestampIndex(timestampIndex, history.Closest)
		if !found {
			return ValueResult{}, false
		}

		return ValueResult{Real: s.GetReal(pos.ValueIndex), IsReal: true, TimestampIndex: pos.TimestampIndex}, true
	}

	return ValueResult{}, false
}

// SearchValue is SearchValueBitIndex with no bit re-slicing.
func (w *Waveform) SearchValue(id uint64, timestampIndex uint64) (ValueResult, bool) {
	return w.SearchValueBitIndex(id, timestampIndex, nil)
}
