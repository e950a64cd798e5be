package history

const (
	// BlockSize is the fixed byte size of every history block: a 16-byte
	// header followed by a 496-byte token stream.
	BlockSize = 512

	// headerSize is the size in bytes of the (timestamp_index, value_index)
	// header at the start of every block.
	headerSize = 16

	// MaxBlockChanges bounds the number of changes a single block can
	// encode: BlockSize bytes times the 128 changes one change-byte can
	// hold. Only BlockSize-headerSize bytes carry tokens, so this is an
	// upper bound rather than an exact count. SearchTimestampIndex uses it
	// as the timestamp window past the last block's header.
	MaxBlockChanges = BlockSize * 128
)
