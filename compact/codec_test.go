package compact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodecsRoundTrip(t *testing.T) {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i % 251)
	}

	for _, kind := range []Kind{None, Zstd, S2, LZ4} {
		codec, err := New(kind)
		require.NoError(t, err, kind)

		compressed, err := codec.Compress(data)
		require.NoError(t, err, kind)

		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err, kind)

		require.Equal(t, data, decompressed, kind)
	}
}

func TestNewUnsupportedKind(t *testing.T) {
	_, err := New(Kind(200))
	require.Error(t, err)
}
