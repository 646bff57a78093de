// Package idxtable implements the index-substitution table: a caller-supplied
// ordered list of symbols/strings whose occurrences on the wire are replaced
// by a small integer position instead of a full symbol or string encoding.
package idxtable

import (
	"sort"

	"github.com/lispwire/conspack/symtab"
)

// Table is an ordered, bidirectional mapping between values (symbols, or
// strings auto-promoted to keyword symbols) and their wire index.
type Table struct {
	vals  []any
	index map[any]int
}

func maybeKeyword(reg *symtab.Registry, x any) any {
	if s, ok := x.(string); ok {
		return reg.KeywordSym(s, false)
	}

	return x
}

// New builds a Table from an ordered list of items, using the default
// symbol registry to promote string items to keyword symbols.
func New(items ...any) *Table {
	return NewWithRegistry(symtab.Default(), items...)
}

// NewWithRegistry builds a Table the way New does, but interns any string
// items through reg rather than the process-wide default registry.
func NewWithRegistry(reg *symtab.Registry, items ...any) *Table {
	t := &Table{
		vals:  make([]any, len(items)),
		index: make(map[any]int, len(items)),
	}

	for i, item := range items {
		v := maybeKeyword(reg, item)
		t.vals[i] = v
		t.index[v] = i
	}

	return t
}

// Contains reports whether x has an assigned index.
func (t *Table) Contains(x any) bool {
	_, ok := t.index[x]
	return ok
}

// IndexOf returns x's assigned index.
func (t *Table) IndexOf(x any) (int, bool) {
	i, ok := t.index[x]
	return i, ok
}

// ValueAt returns the value stored at index i.
func (t *Table) ValueAt(i int) (any, bool) {
	if i < 0 || i >= len(t.vals) {
		return nil, false
	}

	return t.vals[i], true
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.vals)
}

// rankedToken is a candidate string scored by how well an FSST table trained
// on the sample corpus compresses it — a proxy for how well-represented that
// token is in the corpus's vocabulary of repeated substrings.
type rankedToken struct {
	token string
	count int
	ratio float64
}

// Train builds an index Table automatically from a corpus of sample strings
// (tag names, metric names, map keys — anything repeated across many
// encoded values), using github.com/axiomhq/fsst to learn the corpus's
// common substrings and scoring each distinct sample by how well the
// learned table compresses it. The maxSymbols best-compressing, most
// frequent samples become the table's entries, in descending score order,
// so the caller gets an index table tuned to their own data without having
// to hand-curate one.
func Train(samples []string, maxSymbols int) *Table {
	return TrainWithRegistry(symtab.Default(), samples, maxSymbols)
}

// TrainWithRegistry is Train, but interns the resulting keyword symbols
// through reg instead of the process-wide default registry.
func TrainWithRegistry(reg *symtab.Registry, samples []string, maxSymbols int) *Table {
	counts := make(map[string]int, len(samples))
	order := make([]string, 0, len(samples))
	for _, s := range samples {
		if s == "" {
			continue
		}
		if _, seen := counts[s]; !seen {
			order = append(order, s)
		}
		counts[s]++
	}

	if len(order) == 0 {
		return NewWithRegistry(reg)
	}

	tbl := fsstTrainStrings(order)

	ranked := make([]rankedToken, 0, len(order))
	for _, tok := range order {
		compressed := fsstEncodeAll(tbl, tok)
		ratio := float64(len(compressed)) / float64(len(tok))
		ranked = append(ranked, rankedToken{token: tok, count: counts[tok], ratio: ratio})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].ratio != ranked[j].ratio {
			return ranked[i].ratio < ranked[j].ratio
		}

		return ranked[i].count > ranked[j].count
	})

	if maxSymbols > 0 && maxSymbols < len(ranked) {
		ranked = ranked[:maxSymbols]
	}

	items := make([]any, len(ranked))
	for i, r := range ranked {
		items[i] = r.token
	}

	return NewWithRegistry(reg, items...)
}
