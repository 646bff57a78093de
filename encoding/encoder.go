// Package encoding implements the conspack write side: a two-pass encoder
// that notices shared/cyclic structure before writing a single depth-first
// pass of headers and payloads.
package encoding

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/lispwire/conspack/errs"
	"github.com/lispwire/conspack/idxtable"
	"github.com/lispwire/conspack/internal/options"
	"github.com/lispwire/conspack/internal/pool"
	"github.com/lispwire/conspack/registry"
	"github.com/lispwire/conspack/symtab"
	"github.com/lispwire/conspack/value"
)

// noFixed marks a write as not occurring inside a fixed-type container; any
// other value is the container's shared element-prototype header byte.
const noFixed = -1

// Encoder turns a single root value into its conspack wire form. An Encoder
// is single-use: construct one with New, call Encode once, then read Bytes.
type Encoder struct {
	buf    *pool.ByteBuffer
	reg    *registry.Registry
	symReg *symtab.Registry
	index  *idxtable.Table
	opts   encFlags

	seen      map[uintptr]bool
	tags      map[uintptr]int
	written   map[uintptr]bool
	tmapCache map[uintptr]*value.TaggedMap
	nextTag   int
}

// New constructs an Encoder with the given options applied.
func New(opts ...Option) *Encoder {
	e := &Encoder{
		buf:       pool.Get(),
		reg:       registry.Global,
		symReg:    symtab.Default(),
		seen:      make(map[uintptr]bool),
		tags:      make(map[uintptr]int),
		written:   make(map[uintptr]bool),
		tmapCache: make(map[uintptr]*value.TaggedMap),
	}

	options.Apply(e, opts...) //nolint: errcheck // every Option built by this package is NoError

	return e
}

// Bytes returns the bytes written so far.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Release returns the Encoder's internal buffer to the pool. Call it once
// Bytes's contents have been copied out or written elsewhere; the Encoder
// must not be used again afterward.
func (e *Encoder) Release() {
	pool.Put(e.buf)
	e.buf = nil
}

// Encode writes root's conspack form. Shared or cyclic structure within root
// is noticed in a first pass (unless WithNoRefs was given) and emitted as a
// tagged value on first occurrence, then as a compact ref on every repeat.
func (e *Encoder) Encode(root any) error {
	if !e.opts.noRefs {
		if err := e.notice(root); err != nil {
			return err
		}
	}

	return e.write(root, noFixed)
}

// identity returns a stable key for values whose sharing is observable: Go
// pointers. Non-pointer values (including Go strings, which have no stable
// reference identity the way Python str objects do) are never ref-tracked;
// callers who want cycle/sharing detection on a List, Vector, Map, Cons, or
// registered user type must pass a pointer to it.
func identity(v any) (uintptr, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return 0, false
	}

	return rv.Pointer(), true
}

// notice walks v, recording every pointer-identity it has already seen as a
// tagged (to-be-ref'd) value the second time that identity reappears.
func (e *Encoder) notice(v any) error {
	key, ok := identity(v)
	if !ok {
		return e.noticeChildren(v)
	}

	if e.seen[key] {
		if _, tagged := e.tags[key]; !tagged {
			e.tags[key] = e.nextTag
			e.nextTag++
		}

		return nil
	}

	e.seen[key] = true

	return e.noticeChildren(v)
}

func (e *Encoder) noticeAll(items []any) error {
	for _, it := range items {
		if err := e.notice(it); err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) noticeMapEntries(entries []value.MapEntry) error {
	for _, ent := range entries {
		if _, isStr := ent.Key.(string); !isStr {
			if err := e.notice(ent.Key); err != nil {
				return err
			}
		}
		if err := e.notice(ent.Value); err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) noticeChildren(v any) error {
	switch t := v.(type) {
	case nil, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float64, value.Float32, value.Char, value.Pointer, value.IndexRef,
		string:
		return nil
	case []int8, []uint8, []int16, []uint16, []int32, []uint32, []int64, []uint64, []float32, []float64:
		return nil
	case value.Vector:
		return e.noticeAll(t.Items)
	case *value.Vector:
		return e.noticeAll(t.Items)
	case value.List:
		return e.noticeAll(t.Items)
	case *value.List:
		return e.noticeAll(t.Items)
	case value.Cons:
		if err := e.notice(t.Car); err != nil {
			return err
		}
		return e.notice(t.Cdr)
	case *value.Cons:
		if err := e.notice(t.Car); err != nil {
			return err
		}
		return e.notice(t.Cdr)
	case value.Map:
		return e.noticeMapEntries(t.Entries)
	case *value.Map:
		return e.noticeMapEntries(t.Entries)
	case value.TaggedMap:
		return e.noticeTaggedMap(t)
	case *value.TaggedMap:
		return e.noticeTaggedMap(*t)
	case *symtab.Symbol:
		if t.Package != nil {
			return e.notice(t.Package)
		}
		return nil
	case *symtab.Package:
		return nil
	case value.RemoteRef:
		return e.notice(t.Value)
	case *value.RemoteRef:
		return e.notice(t.Value)
	case *big.Int:
		return nil
	default:
		return e.noticeUserObject(v)
	}
}

func (e *Encoder) noticeTaggedMap(tm value.TaggedMap) error {
	if err := e.notice(tm.Type); err != nil {
		return err
	}

	return e.noticeMapEntries(tm.Entries)
}

func (e *Encoder) noticeUserObject(v any) error {
	tm, err := e.tmapFor(v)
	if err != nil {
		return err
	}

	return e.noticeTaggedMap(*tm)
}

// tmapFor projects v through its registered encode hook, caching the result
// by v's pointer identity (when it has one) so a value shared across the
// graph is hooked exactly once and subsequently tagged/ref'd like any other
// repeated value.
func (e *Encoder) tmapFor(v any) (*value.TaggedMap, error) {
	if key, ok := identity(v); ok {
		if tm, cached := e.tmapCache[key]; cached {
			return tm, nil
		}
	}

	sym, hook, ok := e.reg.EncoderFor(v)
	if !ok {
		return nil, fmt.Errorf("%w: %T", errs.ErrNoEncoder, v)
	}

	entries, err := hook(v)
	if err != nil {
		return nil, err
	}

	tm := &value.TaggedMap{Type: sym, Entries: entries}

	if key, ok := identity(v); ok {
		e.tmapCache[key] = tm
	}

	return tm, nil
}

// write dispatches v's header/payload, consulting the tag/ref tables built
// by notice so a repeat occurrence emits a ref instead of the full value.
func (e *Encoder) write(v any, fixed int) error {
	key, ok := identity(v)
	if ok {
		if tag, tagged := e.tags[key]; tagged {
			if e.written[key] {
				return e.writeRefHeader(tag, fixed)
			}

			if err := e.writeTagHeader(tag, fixed); err != nil {
				return err
			}

			e.written[key] = true
		}
	}

	return e.writeBody(v, fixed)
}
