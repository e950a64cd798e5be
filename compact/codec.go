// Package compact provides optional in-memory compression for sealed byte
// ranges of a History's block array or a Vector/Real's packed payload.
// Codecs operate on plain []byte and know nothing about the waveform data
// model above them: callers own deciding when a range is cold enough to be
// worth compacting and how to track whether a given range currently is.
package compact

import (
	"fmt"

	"github.com/waveformdb/wavedb/errs"
)

// Kind identifies a compaction codec.
type Kind uint8

const (
	None Kind = iota
	Zstd
	S2
	LZ4
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case S2:
		return "s2"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Compressor compresses a byte range into an independently-owned output
// slice, leaving the input untouched.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte range previously produced by the
// matching Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines Compressor and Decompressor.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[Kind]Codec{
	None: NewNoOpCodec(),
	Zstd: NewZstdCodec(),
	S2:   NewS2Codec(),
	LZ4:  NewLZ4Codec(),
}

// New returns the built-in Codec for kind.
func New(kind Kind) (Codec, error) {
	if codec, ok := builtinCodecs[kind]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCodec, kind)
}
