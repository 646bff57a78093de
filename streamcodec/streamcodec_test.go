package streamcodec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lispwire/conspack/errs"
	"github.com/lispwire/conspack/streamcodec"
)

func TestCreateCodecUnknownAlgorithm(t *testing.T) {
	_, err := streamcodec.CreateCodec(streamcodec.Algorithm(99), "test")
	require.ErrorIs(t, err, errs.ErrUnknownAlgorithm)
}

func TestRoundTripAllAlgorithms(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog, repeated: the quick brown fox jumps over the lazy dog")

	for _, alg := range []streamcodec.Algorithm{streamcodec.None, streamcodec.Zstd, streamcodec.S2, streamcodec.LZ4} {
		t.Run(alg.String(), func(t *testing.T) {
			codec, err := streamcodec.CreateCodec(alg, "test")
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)

			assert.Equal(t, payload, decompressed)
		})
	}
}

func TestNoOpCodecIsIdentity(t *testing.T) {
	data := []byte("passthrough")
	codec := streamcodec.NoOpCodec{}

	out, err := codec.Compress(data)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestEmptyInputRoundTrips(t *testing.T) {
	for _, alg := range []streamcodec.Algorithm{streamcodec.Zstd, streamcodec.S2, streamcodec.LZ4} {
		codec, err := streamcodec.CreateCodec(alg, "test")
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		_, err = codec.Decompress(compressed)
		require.NoError(t, err)
	}
}
