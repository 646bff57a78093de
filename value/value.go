// Package value defines the value universe the codec encodes and decodes:
// booleans, every numeric width, strings and characters, the four container
// shapes, cons cells and dotted lists, symbols and packages, pointers,
// remote references, and the index-substitution wrapper.
//
// Go has no single dynamic "object" type, so values travel as `any` and the
// encoder/decoder dispatch on a type switch, the same way the reference
// implementation dispatches on a Python value's class.
package value

import "github.com/lispwire/conspack/symtab"

// Float32 marks a value as IEEE single-precision, distinguishing it from a
// plain Go float64 (always double-precision on the wire).
type Float32 float32

// Char is a single UTF-8 scalar that always encodes as CHARACTER, even when
// the encoder's single_char_strings option would otherwise force a one-rune
// string to stay a STRING.
type Char rune

// Pointer is an opaque unsigned address, size-classed like a length.
type Pointer uint64

// IndexRef is the bare wrapper returned by the decoder when a decoded Index
// has no index table, or the table does not cover that slot.
type IndexRef int

// RemoteRef wraps an arbitrary inner value as a sender-controlled remote
// reference. Decoding may route its payload through a user-supplied hook
// instead of returning a RemoteRef.
type RemoteRef struct {
	Value any
}

// Cons is a two-slot cell. A Cons whose Cdr is nil degenerates to a
// one-element list on decode; otherwise, when Cdr is a non-nil, non-Cons
// value, the pair is a dotted list.
type Cons struct {
	Car, Cdr any
}

// Vector is a general (non-fixed-width) ordered container. Unlike List, a
// Vector never gets a trailing nil sentinel or a length+1 bump on encode.
type Vector struct {
	Items []any
}

// List is an ordered container that collapses the Lisp way: a 0-length List
// encodes as nil, a 1-element (or 2-element dotted) List encodes as a Cons,
// and anything longer encodes as a list container.
//
// When Dotted is true, the final element of Items is the list's improper
// tail rather than a proper member, matching the source's DottedList.
type List struct {
	Items  []any
	Dotted bool
}

// MapEntry is one key/value pair of a Map, preserving insertion order the
// way the reference implementation's dict-backed maps do.
type MapEntry struct {
	Key, Value any
}

// Map is an ordered association list standing in for an opaque key/value
// container. String keys are interned as keyword symbols (or, inside a
// TaggedMap, as symbols in the tagged type's own package) on encode.
type Map struct {
	Entries []MapEntry
}

// Get returns the value stored under key and whether it was present.
func (m *Map) Get(key any) (any, bool) {
	for _, e := range m.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}

	return nil, false
}

// Set inserts or updates the entry for key, preserving first-insertion order.
func (m *Map) Set(key, val any) {
	for i, e := range m.Entries {
		if e.Key == key {
			m.Entries[i].Value = val
			return
		}
	}

	m.Entries = append(m.Entries, MapEntry{Key: key, Value: val})
}

// TaggedMap is a Map whose wire payload is preceded by a type symbol; it is
// the encoded form of a registered user object ("tmap").
type TaggedMap struct {
	Type    *symtab.Symbol
	Entries []MapEntry
}
