package compact

import "github.com/klauspost/compress/s2"

// S2Codec trades compression ratio for speed: useful for ranges that are
// compacted often but still read back on the hot path.
type S2Codec struct{}

var _ Codec = (*S2Codec)(nil)

func NewS2Codec() S2Codec { return S2Codec{} }

func (c S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

func (c S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
