package history

import (
	"fmt"

	"github.com/waveformdb/wavedb/errs"
	"github.com/waveformdb/wavedb/internal/pool"
)

// History is an append-only log of fixed-size blocks. Appending a change is
// amortized O(1); looking up a timestamp is O(log blocks) plus a short
// linear scan inside the selected block.
//
// History is not safe for concurrent use; callers owning disjoint History
// values may run on separate goroutines freely.
type History struct {
	buf                *pool.ByteBuffer
	timestampIndexLast int64 // -1 means "no changes appended yet"
	blockOffset        int   // write offset within the last block
}

// New returns an empty History.
func New() *History {
	return &History{
		buf:                 pool.NewByteBuffer(pool.HistoryBufferDefaultSize),
		timestampIndexLast:  -1,
		blockOffset:         headerSize,
	}
}

// GetBlockCount returns the number of blocks appended so far.
func (h *History) GetBlockCount() int {
	return h.buf.Len() / BlockSize
}

// GetBlockSize returns the total byte size of all blocks appended so far.
func (h *History) GetBlockSize() int {
	return h.buf.Len()
}

// Bytes returns the raw backing byte slice of every block appended so far,
// block-size-aligned. It is the unit a compact.Codec compresses: a sealed
// History's block bytes can be compressed for storage and restored later
// with FromBytes.
func (h *History) Bytes() []byte {
	return h.buf.Bytes()
}

// FromBytes reconstructs a History over an already-encoded, block-aligned
// byte slice, such as one decompressed by a compact.Codec. Lookup and
// iteration behave exactly as on the original History. The write offset
// inside the last block is not recovered (it is set to the end of the
// block), so AddChange on the result is not well defined: FromBytes targets
// sealed histories that are read, not appended to, again.
func FromBytes(b []byte) *History {
	h := &History{buf: &pool.ByteBuffer{B: b}}

	if len(b) == 0 {
		h.timestampIndexLast = -1
		h.blockOffset = headerSize

		return h
	}

	h.blockOffset = BlockSize

	last := h.getBlock(h.lastBlockIndex())
	lastIndex := last.index()

	it := newBlockIter(last)
	for {
		idx, ok := it.next()
		if !ok {
			break
		}

		lastIndex = idx
	}

	h.timestampIndexLast = int64(lastIndex.TimestampIndex)

	return h
}

func (h *History) getBlock(i int) block {
	return block{bytes: h.buf.Bytes()[i*BlockSize : (i+1)*BlockSize]}
}

func (h *History) lastBlockIndex() int {
	return h.GetBlockCount() - 1
}

func (h *History) appendBlock(timestampIndex, valueIndex uint64) {
	h.buf.ExtendOrGrow(BlockSize)

	blockStart := h.lastBlockIndex() * BlockSize
	b := h.buf.Bytes()[blockStart : blockStart+BlockSize]
	putBEUint64(b[0:8], timestampIndex)
	putBEUint64(b[8:16], valueIndex)
	b[16] = 0x80
	h.blockOffset = headerSize + 1
}

// insertChangeByte tries to extend or open a change run in the current
// block for a delta of exactly 1 tick. Returns false if the block is full.
func (h *History) insertChangeByte() bool {
	blockStart := h.lastBlockIndex() * BlockSize
	b := h.buf.Bytes()[blockStart : blockStart+BlockSize]

	if b[h.blockOffset-1] < 0xFF {
		b[h.blockOffset-1]++

		return true
	}

	if h.blockOffset < BlockSize {
		b[h.blockOffset] = 0x80
		h.blockOffset++

		return true
	}

	return false
}

// insertSkipAndChange encodes skips = delta-1 as base-128 big-endian
// skip-bytes followed by a single change-byte, if the current block has
// room for all of it. Returns false if it does not fit.
func (h *History) insertSkipAndChange(delta uint64) bool {
	skips := delta - 1

	skipBytes := 1
	for v := skips >> 7; v != 0; v >>= 7 {
		skipBytes++
	}

	if BlockSize-h.blockOffset < skipBytes+1 {
		return false
	}

	blockStart := h.lastBlockIndex() * BlockSize
	b := h.buf.Bytes()[blockStart : blockStart+BlockSize]

	for i := skipBytes - 1; i >= 0; i-- {
		b[h.blockOffset+i] = byte(skips & 0x7F)
		skips >>= 7
	}

	h.blockOffset += skipBytes
	b[h.blockOffset] = 0x80
	h.blockOffset++

	return true
}

// AddChange appends a (timestampIndex, valueIndex) change. timestampIndex
// must be strictly greater than the last one appended to this History;
// equal or lesser is a contract violation for the append to be well
// defined, so it panics rather than returning an error.
func (h *History) AddChange(timestampIndex, valueIndex uint64) {
	if h.timestampIndexLast >= 0 {
		last := uint64(h.timestampIndexLast)
		if timestampIndex == last {
			panic(fmt.Errorf("history: %w: %d", errs.ErrDuplicateTimestamp, timestampIndex))
		}

		if timestampIndex < last {
			panic(fmt.Sprintf("history: decreasing timestamp index %d after %d", timestampIndex, last))
		}

		delta := timestampIndex - last

		var ok bool
		if delta == 1 {
			ok = h.insertChangeByte()
		} else {
			ok = h.insertSkipAndChange(delta)
		}

		if !ok {
			h.appendBlock(timestampIndex, valueIndex)
		}
	} else {
		h.appendBlock(timestampIndex, valueIndex)
	}

	h.timestampIndexLast = int64(timestampIndex)
}

// searchBlockIndex performs the block-header binary search described by
// SearchTimestampIndex, returning the selected block index and whether a
// result exists for the given mode.
func (h *History) searchBlockIndex(timestampIndex uint64, mode SearchMode) (int, bool) {
	if h.GetBlockCount() == 0 {
		return 0, false
	}

	start, end := 0, h.lastBlockIndex()

	if timestampIndex < h.getBlock(start).timestampIndex() {
		switch mode {
		case Exact, Before:
			return 0, false
		default:
			return start, true
		}
	}

	if h.getBlock(end).timestampIndex()+MaxBlockChanges < timestampIndex {
		switch mode {
		case Exact, After:
			return 0, false
		default:
			return end, true
		}
	}

	for start <= end {
		mid := (start + end) / 2
		midValue := h.getBlock(mid).timestampIndex()

		switch {
		case timestampIndex < midValue:
			end = mid - 1
		case timestampIndex > midValue:
			start = mid + 1
		default:
			return mid, true
		}
	}

	// Within range with no exact block-header match: resolve to the block
	// with the greatest header <= timestampIndex, regardless of mode. The
	// requested mode is applied once the in-block scan has produced both
	// the before and after candidates.
	return end, true
}

// SearchTimestampIndex looks up the change at, before, after, or closest to
// timestampIndex, depending on mode. It returns ok=false when no Index
// satisfies the requested mode.
func (h *History) SearchTimestampIndex(timestampIndex uint64, mode SearchMode) (Index, bool) {
	blockIndex, ok := h.searchBlockIndex(timestampIndex, mode)
	if !ok {
		return Index{}, false
	}

	it := newBlockIter(h.getBlock(blockIndex))

	indexBefore, ok := it.seek(timestampIndex)
	if !ok {
		if mode == After || mode == Closest {
			first := newBlockIter(h.getBlock(0))
			return first.next()
		}

		return Index{}, false
	}

	if indexBefore.TimestampIndex == timestampIndex {
		return indexBefore, true
	}

	indexAfter, haveAfter := it.next()
	if !haveAfter && blockIndex+1 < h.GetBlockCount() {
		nextIt := newBlockIter(h.getBlock(blockIndex + 1))
		indexAfter, haveAfter = nextIt.next()
	}

	switch mode {
	case Before:
		return indexBefore, true
	case After:
		if haveAfter {
			return indexAfter, true
		}

		return Index{}, false
	case Exact:
		return Index{}, false
	default: // Closest
		if !haveAfter {
			return indexBefore, true
		}

		if indexAfter.TimestampIndex-timestampIndex < timestampIndex-indexBefore.TimestampIndex {
			return indexAfter, true
		}

		return indexBefore, true
	}
}
