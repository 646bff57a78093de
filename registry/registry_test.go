package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lispwire/conspack/registry"
	"github.com/lispwire/conspack/symtab"
	"github.com/lispwire/conspack/value"
)

type point struct {
	X, Y int
}

func TestRegisterRoundTrip(t *testing.T) {
	reg := registry.New()
	sym := symtab.Intern("POINT", "GEOM", false)

	reg.Register(point{}, sym,
		func(v any) ([]value.MapEntry, error) {
			p := v.(point)
			return []value.MapEntry{
				{Key: "x", Value: p.X},
				{Key: "y", Value: p.Y},
			}, nil
		},
		func(entries []value.MapEntry) (any, error) {
			p := point{}
			for _, e := range entries {
				switch e.Key {
				case "x":
					p.X = e.Value.(int)
				case "y":
					p.Y = e.Value.(int)
				}
			}
			return p, nil
		},
	)

	gotSym, hook, ok := reg.EncoderFor(point{3, 4})
	require.True(t, ok)
	assert.Same(t, sym, gotSym)

	entries, err := hook(point{3, 4})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	decodeHook, ok := reg.DecoderFor(sym)
	require.True(t, ok)

	got, err := decodeHook(entries)
	require.NoError(t, err)
	assert.Equal(t, point{3, 4}, got)
}

func TestEncoderForUnregisteredType(t *testing.T) {
	reg := registry.New()
	_, _, ok := reg.EncoderFor(point{})
	assert.False(t, ok)
}

func TestDeregisterRemovesBothDirections(t *testing.T) {
	reg := registry.New()
	sym := symtab.Intern("POINT", "GEOM", false)

	reg.Register(point{}, sym,
		func(v any) ([]value.MapEntry, error) { return nil, nil },
		func(entries []value.MapEntry) (any, error) { return point{}, nil },
	)

	reg.Deregister(point{})

	_, _, ok := reg.EncoderFor(point{})
	assert.False(t, ok)

	_, ok = reg.DecoderFor(sym)
	assert.False(t, ok)
}
