package decoding_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lispwire/conspack/decoding"
	"github.com/lispwire/conspack/encoding"
	"github.com/lispwire/conspack/idxtable"
	"github.com/lispwire/conspack/registry"
	"github.com/lispwire/conspack/symtab"
	"github.com/lispwire/conspack/value"
)

func roundTrip(t *testing.T, v any, opts ...encoding.Option) any {
	t.Helper()

	enc := encoding.New(opts...)
	require.NoError(t, enc.Encode(v))
	b := append([]byte(nil), enc.Bytes()...)
	enc.Release()

	got, err := decoding.New().Decode(b)
	require.NoError(t, err)

	return got
}

func TestDecodeNil(t *testing.T) {
	got, err := decoding.New().Decode([]byte{0x00})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDecodeTrue(t *testing.T) {
	got, err := decoding.New().Decode([]byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, true, got)
}

func TestDecodeSmallInt(t *testing.T) {
	got, err := decoding.New().Decode([]byte{0x10, 0x2A})
	require.NoError(t, err)
	assert.Equal(t, int8(42), got)
}

func TestDecodeWidenedInt(t *testing.T) {
	got, err := decoding.New().Decode([]byte{0x11, 0x01, 0x2C})
	require.NoError(t, err)
	assert.Equal(t, int16(300), got)
}

func TestDecodeCharacter(t *testing.T) {
	got, err := decoding.New().Decode([]byte{0x84, 0x41})
	require.NoError(t, err)
	assert.Equal(t, "A", got)
}

func TestRoundTripString(t *testing.T) {
	assert.Equal(t, "hello, world", roundTrip(t, "hello, world"))
}

func TestRoundTripSingleCharStringsOption(t *testing.T) {
	got := roundTrip(t, "A", encoding.WithSingleCharStrings())
	assert.Equal(t, "A", got)
}

func TestRoundTripInt128(t *testing.T) {
	big128, ok := new(big.Int).SetString("170141183460469231731687303715884105727", 10) // 2^127-1
	require.True(t, ok)

	got := roundTrip(t, big128)
	assert.Equal(t, 0, big128.Cmp(got.(*big.Int)))
}

func TestRoundTripNegativeInt128(t *testing.T) {
	neg, ok := new(big.Int).SetString("-170141183460469231731687303715884105728", 10) // -2^127
	require.True(t, ok)

	got := roundTrip(t, neg)
	assert.Equal(t, 0, neg.Cmp(got.(*big.Int)))
}

func TestRoundTripFixedVector(t *testing.T) {
	v := []int32{1, 2, 3, -4, 1 << 20}
	got := roundTrip(t, v)
	assert.Equal(t, v, got)
}

func TestRoundTripFixedByteSlice(t *testing.T) {
	v := []byte{0, 1, 2, 255}
	got := roundTrip(t, v)
	assert.Equal(t, v, got)
}

func TestRoundTripGeneralVector(t *testing.T) {
	v := &value.Vector{Items: []any{"a", 1, true, nil}}
	got := roundTrip(t, v)

	gv, ok := got.(*value.Vector)
	require.True(t, ok)
	assert.Equal(t, []any{"a", int8(1), true, nil}, gv.Items)
}

func TestRoundTripDottedList(t *testing.T) {
	v := &value.List{Items: []any{int8(1), int8(2), int8(3)}, Dotted: true}
	got := roundTrip(t, v)

	gl, ok := got.(*value.List)
	require.True(t, ok)
	assert.True(t, gl.Dotted)
	assert.Equal(t, []any{int8(1), int8(2), int8(3)}, gl.Items)
}

func TestRoundTripProperList(t *testing.T) {
	v := &value.List{Items: []any{int8(1), int8(2), int8(3)}}
	got := roundTrip(t, v)

	gl, ok := got.(*value.List)
	require.True(t, ok)
	assert.False(t, gl.Dotted)
	assert.Equal(t, []any{int8(1), int8(2), int8(3)}, gl.Items)
}

func TestRoundTripSharedSymbolBecomesSamePointer(t *testing.T) {
	reg := symtab.NewRegistry()
	sym := reg.Intern("FOO", "CL-USER", false)
	list := &value.List{Items: []any{sym, sym}}

	enc := encoding.New(encoding.WithSymbolRegistry(reg))
	require.NoError(t, enc.Encode(list))
	b := append([]byte(nil), enc.Bytes()...)
	enc.Release()

	dreg := symtab.NewRegistry()
	got, err := decoding.New(decoding.WithSymbolRegistry(dreg)).Decode(b)
	require.NoError(t, err)

	gl := got.(*value.List)
	s0 := gl.Items[0].(*symtab.Symbol)
	s1 := gl.Items[1].(*symtab.Symbol)
	assert.Same(t, s0, s1)
	assert.Equal(t, "FOO", s0.Name)
	assert.Equal(t, "CL-USER", s0.Package.Name)
}

func TestRoundTripCyclicList(t *testing.T) {
	v := &value.List{Items: make([]any, 1)}
	v.Items[0] = v

	enc := encoding.New()
	require.NoError(t, enc.Encode(v))
	b := append([]byte(nil), enc.Bytes()...)
	enc.Release()

	got, err := decoding.New().Decode(b)
	require.NoError(t, err)

	gl := got.(*value.List)
	assert.Same(t, gl, gl.Items[0])
}

type widget struct {
	Foo int
}

func TestRoundTripTaggedMap(t *testing.T) {
	reg := registry.New()
	sym := symtab.Intern("SOME-CLASS", "CL-USER", false)

	reg.Register(widget{}, sym,
		func(v any) ([]value.MapEntry, error) {
			w := v.(widget)
			return []value.MapEntry{{Key: "foo", Value: w.Foo}}, nil
		},
		func(entries []value.MapEntry) (any, error) {
			w := widget{}
			for _, e := range entries {
				if sym, ok := e.Key.(*symtab.Symbol); ok && sym.Name == "FOO" {
					w.Foo = int(e.Value.(int8)) // Encoder narrows 42 to INT8
				}
			}
			return w, nil
		},
	)

	enc := encoding.New(encoding.WithRegistry(reg))
	require.NoError(t, enc.Encode(widget{Foo: 42}))
	b := append([]byte(nil), enc.Bytes()...)
	enc.Release()

	got, err := decoding.New(decoding.WithRegistry(reg)).Decode(b)
	require.NoError(t, err)
	assert.Equal(t, widget{Foo: 42}, got)
}

func TestDecodeUnknownTmapFails(t *testing.T) {
	reg := registry.New()
	sym := symtab.Intern("MYSTERY", "CL-USER", false)
	reg.Register(widget{}, sym,
		func(v any) ([]value.MapEntry, error) { return nil, nil },
		func(entries []value.MapEntry) (any, error) { return nil, nil },
	)

	enc := encoding.New(encoding.WithRegistry(reg))
	require.NoError(t, enc.Encode(widget{}))
	b := append([]byte(nil), enc.Bytes()...)
	enc.Release()

	_, err := decoding.New(decoding.WithRegistry(registry.New())).Decode(b)
	assert.Error(t, err)
}

func TestDecodeBadHeaderForProperties(t *testing.T) {
	_, err := decoding.New().Decode([]byte{0x88})
	assert.Error(t, err)
}

func TestDecodeTruncatedStream(t *testing.T) {
	_, err := decoding.New().Decode([]byte{0x11, 0x01}) // INT16 header, missing second payload byte
	assert.Error(t, err)
}

func TestRoundTripWithoutIndexTable(t *testing.T) {
	reg := symtab.NewRegistry()
	sym := reg.KeywordSym("FOO", false)

	enc := encoding.New(encoding.WithSymbolRegistry(reg))
	require.NoError(t, enc.Encode(sym))
	b := append([]byte(nil), enc.Bytes()...)
	enc.Release()

	// A fresh symbol encoding (no index table) is a SYMBOL header, not an
	// INDEX header, so decoding without a table yields the symbol back.
	got, err := decoding.New(decoding.WithSymbolRegistry(reg)).Decode(b)
	require.NoError(t, err)
	assert.Same(t, sym, got)
}

func TestRoundTripWithIndexTable(t *testing.T) {
	reg := symtab.NewRegistry()
	sym := reg.KeywordSym("FOO", false)
	tbl := idxtable.NewWithRegistry(reg, "foo", "bar")

	enc := encoding.New(encoding.WithSymbolRegistry(reg), encoding.WithIndexTable(tbl))
	require.NoError(t, enc.Encode(sym))
	b := append([]byte(nil), enc.Bytes()...)
	enc.Release()

	// With the index table attached, the symbol is emitted as a one-byte
	// inline Index (index<16) rather than a full SYMBOL encoding.
	require.Len(t, b, 1)
	assert.Equal(t, byte(0xB0), b[0])

	got, err := decoding.New(decoding.WithSymbolRegistry(reg), decoding.WithIndexTable(tbl)).Decode(b)
	require.NoError(t, err)
	assert.Same(t, sym, got)
}
