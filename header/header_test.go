package header_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lispwire/conspack/header"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		h    byte
		want header.Group
	}{
		{"nil", 0x00, header.GroupBool},
		{"true", 0x01, header.GroupBool},
		{"int8", 0x10, header.GroupNumber},
		{"uint64", 0x17, header.GroupNumber},
		{"vector", 0x20, header.GroupContainer},
		{"fixed list", 0x2C, header.GroupContainer},
		{"string", 0x40, header.GroupString},
		{"ref inline", 0x70, header.GroupRef},
		{"ref long", 0x60, header.GroupRef},
		{"remote ref", 0x64, header.GroupRemoteRef},
		{"pointer", 0x68, header.GroupPointer},
		{"cons", 0x80, header.GroupCons},
		{"package", 0x81, header.GroupPackage},
		{"symbol", 0x82, header.GroupSymbol},
		{"keyword", 0x83, header.GroupSymbol},
		{"character", 0x85, header.GroupCharacter},
		{"properties", 0x88, header.GroupProperties},
		{"index inline", 0xB3, header.GroupIndex},
		{"index long", 0xA1, header.GroupIndex},
		{"tag inline", 0xFF, header.GroupTag},
		{"tag long", 0xE1, header.GroupTag},
		{"unknown", 0x89, header.GroupUnknown},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, header.Classify(c.h))
		})
	}
}

func TestIsKeyword(t *testing.T) {
	assert.False(t, header.IsKeyword(header.Symbol))
	assert.True(t, header.IsKeyword(header.Symbol|header.SymbolKeyword))
}

func TestSizeClassMinimality(t *testing.T) {
	cases := []struct {
		n     uint64
		class byte
		width int
	}{
		{0, header.Size8, 1},
		{255, header.Size8, 1},
		{256, header.Size16, 2},
		{1 << 16, header.Size32, 4},
		{1 << 32, header.Size64, 8},
	}

	for _, c := range cases {
		class, width := header.SizeClassFor(c.n)
		assert.Equal(t, c.class, class)
		assert.Equal(t, c.width, width)
	}
}

func TestGuessIntNarrowing(t *testing.T) {
	cases := []struct {
		v        int64
		negative bool
		code     int
		width    int
	}{
		{42, false, header.Int8, 1},
		{-1, true, header.Int8, 1},
		{200, false, header.Uint8, 1},
		{300, false, header.Int16, 2},
		{40000, false, header.Uint16, 2},
		{-40000, true, header.Int32, 4},
	}

	for _, c := range cases {
		code, width := header.GuessInt(c.v, c.negative)
		assert.Equal(t, c.code, code)
		assert.Equal(t, c.width, width)
	}
}

func TestFixedTypeFormat(t *testing.T) {
	width, code, err := header.FixedTypeFormat(header.Number | header.Uint64)
	require.NoError(t, err)
	assert.Equal(t, 8, width)
	assert.Equal(t, header.Uint64, code)

	_, _, err = header.FixedTypeFormat(header.Number | header.Complex)
	require.Error(t, err)

	_, _, err = header.FixedTypeFormat(header.Cons)
	require.Error(t, err)
}
