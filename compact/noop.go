package compact

// NoOpCodec bypasses compression entirely. Useful for hot ranges that are
// still being appended to and not yet worth spending cycles compacting.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

func NewNoOpCodec() NoOpCodec { return NoOpCodec{} }

func (c NoOpCodec) Compress(data []byte) ([]byte, error) { return data, nil }

func (c NoOpCodec) Decompress(data []byte) ([]byte, error) { return data, nil }
