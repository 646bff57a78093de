package conspack_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lispwire/conspack"
	"github.com/lispwire/conspack/streamcodec"
	"github.com/lispwire/conspack/value"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	v := &value.List{Items: []any{int8(1), "two", true, nil}}

	b, err := conspack.Encode(v)
	require.NoError(t, err)

	got, err := conspack.Decode(b)
	require.NoError(t, err)

	gl, ok := got.(*value.List)
	require.True(t, ok)
	assert.Equal(t, []any{int8(1), "two", true, nil}, gl.Items)
}

func TestEncodeDecodeFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "value.cspk")

	require.NoError(t, conspack.EncodeFile(path, "round-trip me"))

	got, err := conspack.DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "round-trip me", got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestEncodeDecodeCompressedRoundTrip(t *testing.T) {
	v := &value.Vector{Items: []any{"a", "b", "c", int8(1), int8(2), int8(3)}}

	for _, algo := range []streamcodec.Algorithm{streamcodec.None, streamcodec.S2, streamcodec.LZ4, streamcodec.Zstd} {
		t.Run(algo.String(), func(t *testing.T) {
			b, err := conspack.EncodeCompressed(v, algo)
			require.NoError(t, err)

			got, err := conspack.DecodeCompressed(b)
			require.NoError(t, err)

			gv, ok := got.(*value.Vector)
			require.True(t, ok)
			assert.Equal(t, v.Items, gv.Items)
		})
	}
}

type coord struct {
	X, Y int
}

func TestRegisterDeregisterRoundTrip(t *testing.T) {
	sym := conspack.Symbol("COORD", "GEOM")

	conspack.Register(coord{}, sym,
		func(v any) ([]value.MapEntry, error) {
			c := v.(coord)
			return []value.MapEntry{{Key: "x", Value: c.X}, {Key: "y", Value: c.Y}}, nil
		},
		func(entries []value.MapEntry) (any, error) {
			m := value.Map{Entries: entries}
			x, _ := m.Get(conspack.Symbol("x", "GEOM"))
			y, _ := m.Get(conspack.Symbol("y", "GEOM"))
			return coord{X: int(x.(int8)), Y: int(y.(int8))}, nil
		},
	)
	defer conspack.Deregister(coord{})

	b, err := conspack.Encode(coord{X: 3, Y: 4})
	require.NoError(t, err)

	got, err := conspack.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, coord{X: 3, Y: 4}, got)
}
