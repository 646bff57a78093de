package idxtable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lispwire/conspack/idxtable"
	"github.com/lispwire/conspack/symtab"
)

func TestNewPromotesStringsToKeywords(t *testing.T) {
	reg := symtab.NewRegistry()
	tbl := idxtable.NewWithRegistry(reg, "foo", "bar")

	require.Equal(t, 2, tbl.Len())

	fooSym := reg.KeywordSym("foo", false)
	idx, ok := tbl.IndexOf(fooSym)
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	val, ok := tbl.ValueAt(1)
	require.True(t, ok)
	assert.Equal(t, reg.KeywordSym("bar", false), val)
}

func TestContainsAndBounds(t *testing.T) {
	tbl := idxtable.New("alpha")
	assert.True(t, tbl.Contains(symtab.Keyword("alpha", false)))

	_, ok := tbl.ValueAt(5)
	assert.False(t, ok)
}

func TestTrainBuildsTableFromCorpus(t *testing.T) {
	reg := symtab.NewRegistry()
	samples := []string{
		"cpu.usage", "cpu.usage", "cpu.usage",
		"memory.usage", "memory.usage",
		"disk.io",
	}

	tbl := idxtable.TrainWithRegistry(reg, samples, 2)
	require.Equal(t, 2, tbl.Len())

	_, topOK := tbl.ValueAt(0)
	require.True(t, topOK)
}

func TestTrainEmptyCorpus(t *testing.T) {
	tbl := idxtable.Train(nil, 10)
	assert.Equal(t, 0, tbl.Len())
}
