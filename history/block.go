package history

import "github.com/waveformdb/wavedb/endian"

// blockEndian is the fixed wire endianness of block headers. The format has
// no concept of host endianness; it is always big-endian on disk and in
// memory.
var blockEndian = endian.GetBigEndianEngine()

// block is a read-only view over one BlockSize-byte record: an 8-byte
// big-endian timestamp_index, an 8-byte big-endian value_index, and a
// 496-byte token stream of change-bytes and skip-bytes.
type block struct {
	bytes []byte
}

func (b block) timestampIndex() uint64 {
	return blockEndian.Uint64(b.bytes[0:8])
}

func (b block) valueIndex() uint64 {
	return blockEndian.Uint64(b.bytes[8:16])
}

func (b block) index() Index {
	return Index{TimestampIndex: b.timestampIndex(), ValueIndex: b.valueIndex()}
}

func putBEUint64(b []byte, v uint64) {
	blockEndian.PutUint64(b, v)
}

// getSkips decodes the run of skip-bytes starting at offset, returning how
// many bytes were consumed and the total timestamp skip they encode. It
// flushes the 7-bit partial accumulator into the running total every 8
// skip-bytes to keep the accumulator from overflowing a 56-bit shift
// register, per the block token grammar.
func (b block) getSkips(offset int) (skipBytes int, skips uint64) {
	var partial uint64

	n := 0
	for i := offset; i < BlockSize; i++ {
		if b.bytes[i]&0x80 == 0x80 {
			break
		}

		partial <<= 7
		partial |= uint64(b.bytes[i])
		n++

		if n&0b111 == 0 {
			skips += partial
			partial = 0
		}
	}

	skips += partial

	return n, skips
}

// blockIter decodes one block's token stream into a sequence of Index
// values, tracking running (timestamp_index, value_index) state.
type blockIter struct {
	blk             block
	index           Index
	offset          int
	consumedChanges uint8
}

func newBlockIter(blk block) blockIter {
	return blockIter{blk: blk, index: blk.index(), offset: headerSize}
}

// next decodes and returns the next Index in the block, or ok=false when
// the block's token stream is exhausted.
func (it *blockIter) next() (Index, bool) {
	for {
		skipBytes, skips := it.blk.getSkips(it.offset)
		it.offset += skipBytes
		it.index.TimestampIndex += skips

		if it.offset >= BlockSize {
			return Index{}, false
		}

		totalChanges := (it.blk.bytes[it.offset] & 0x7F) + 1
		if it.consumedChanges < totalChanges {
			current := it.index
			it.index.ValueIndex++
			it.index.TimestampIndex++
			it.consumedChanges++

			return current, true
		}

		it.consumedChanges = 0
		it.offset++
	}
}

// seek advances it to the Index at or immediately before timestampIndex,
// restoring state and returning the last such Index found if decoding runs
// past it (or ok=false if no Index in the block is <= timestampIndex).
func (it *blockIter) seek(timestampIndex uint64) (Index, bool) {
	var (
		last     Index
		haveLast bool
	)

	for {
		savedIndex, savedOffset, savedConsumed := it.index, it.offset, it.consumedChanges

		next, ok := it.next()
		if !ok {
			it.index, it.offset, it.consumedChanges = savedIndex, savedOffset, savedConsumed

			return last, haveLast
		}

		switch {
		case next.TimestampIndex > timestampIndex:
			it.index, it.offset, it.consumedChanges = savedIndex, savedOffset, savedConsumed

			return last, haveLast
		case next.TimestampIndex == timestampIndex:
			return next, true
		default:
			last, haveLast = next, true
		}
	}
}
