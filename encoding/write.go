package encoding

import (
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/lispwire/conspack/errs"
	"github.com/lispwire/conspack/header"
	"github.com/lispwire/conspack/symtab"
	"github.com/lispwire/conspack/value"
)

// writeBody dispatches v's payload (and, unless fixed names a shared
// prototype, its own header byte) by its concrete Go type, the same role a
// Python value's __class__ plays in the reference encoder's dispatch table.
func (e *Encoder) writeBody(v any, fixed int) error {
	switch t := v.(type) {
	case nil:
		return e.writeBool(false, fixed)
	case bool:
		return e.writeBool(t, fixed)
	case int:
		return e.writeSignedInt(int64(t), fixed)
	case int8:
		return e.writeSignedInt(int64(t), fixed)
	case int16:
		return e.writeSignedInt(int64(t), fixed)
	case int32:
		return e.writeSignedInt(int64(t), fixed)
	case int64:
		return e.writeSignedInt(t, fixed)
	case uint:
		return e.writeUnsignedInt(uint64(t), fixed)
	case uint8:
		return e.writeUnsignedInt(uint64(t), fixed)
	case uint16:
		return e.writeUnsignedInt(uint64(t), fixed)
	case uint32:
		return e.writeUnsignedInt(uint64(t), fixed)
	case uint64:
		return e.writeUnsignedInt(t, fixed)
	case *big.Int:
		return e.writeBigInt(t, fixed)
	case float64:
		return e.writeDouble(t, fixed)
	case value.Float32:
		return e.writeSingle(t, fixed)
	case value.Char:
		return e.writeChar(t, fixed)
	case string:
		return e.writeString(t, fixed)
	case []int8:
		return e.writeFixedInt8Slice(t, fixed)
	case []uint8:
		return e.writeFixedUint8Slice(t, fixed)
	case []int16:
		return e.writeFixedInt16Slice(t, fixed)
	case []uint16:
		return e.writeFixedUint16Slice(t, fixed)
	case []int32:
		return e.writeFixedInt32Slice(t, fixed)
	case []uint32:
		return e.writeFixedUint32Slice(t, fixed)
	case []int64:
		return e.writeFixedInt64Slice(t, fixed)
	case []uint64:
		return e.writeFixedUint64Slice(t, fixed)
	case []float32:
		return e.writeFixedFloat32Slice(t, fixed)
	case []float64:
		return e.writeFixedFloat64Slice(t, fixed)
	case value.Vector:
		return e.writeVector(t, fixed)
	case *value.Vector:
		return e.writeVector(*t, fixed)
	case value.List:
		return e.writeList(t, fixed)
	case *value.List:
		return e.writeList(*t, fixed)
	case value.Cons:
		return e.writeCons(t, fixed)
	case *value.Cons:
		return e.writeCons(*t, fixed)
	case value.Map:
		return e.writeMap(t.Entries, fixed, false, nil)
	case *value.Map:
		return e.writeMap(t.Entries, fixed, false, nil)
	case value.TaggedMap:
		return e.writeMap(t.Entries, fixed, true, t.Type)
	case *value.TaggedMap:
		return e.writeMap(t.Entries, fixed, true, t.Type)
	case *symtab.Symbol:
		return e.writeSymbol(t, fixed)
	case *symtab.Package:
		return e.writePackage(t, fixed)
	case value.Pointer:
		return e.writePointer(t, fixed)
	case value.RemoteRef:
		return e.writeRemoteRef(t, fixed)
	case *value.RemoteRef:
		return e.writeRemoteRef(*t, fixed)
	case value.IndexRef:
		return e.writeIndexValue(int(t), fixed)
	default:
		return e.writeUserObject(v, fixed)
	}
}

func (e *Encoder) writeUserObject(v any, fixed int) error {
	tm, err := e.tmapFor(v)
	if err != nil {
		return err
	}

	return e.writeMap(tm.Entries, fixed, true, tm.Type)
}

func (e *Encoder) writeString(s string, fixed int) error {
	if !e.opts.singleCharStrings && utf8.RuneCountInString(s) == 1 {
		return e.writeCharBytes([]byte(s), fixed)
	}

	data := []byte(s)
	class, width := header.SizeClassFor(uint64(len(data)))

	if fixed == noFixed {
		if err := e.putByte(header.String | class); err != nil {
			return err
		}
	}

	if err := e.putUint(uint64(len(data)), width); err != nil {
		return err
	}

	return e.putBytes(data)
}

func (e *Encoder) writeChar(c value.Char, fixed int) error {
	r := rune(c)
	if r < 0 || !utf8.ValidRune(r) {
		return errs.ErrBadValue
	}

	buf := make([]byte, utf8.RuneLen(r))
	utf8.EncodeRune(buf, r)

	return e.writeCharBytes(buf, fixed)
}

func (e *Encoder) writeCharBytes(data []byte, fixed int) error {
	if fixed == noFixed {
		if err := e.putByte(header.Character | byte(len(data)-1)); err != nil {
			return err
		}
	}

	return e.putBytes(data)
}

// writeList encodes List per its collapse rules: empty becomes nil, a
// singleton (or 2-element dotted pair) becomes a Cons, everything else
// becomes a list container advertising length+1 unless Dotted.
func (e *Encoder) writeList(t value.List, fixed int) error {
	if e.opts.listsAreVectors && !t.Dotted {
		return e.writeVector(value.Vector{Items: t.Items}, fixed)
	}

	items := t.Items
	l := len(items)

	if l == 0 {
		return e.writeBool(false, fixed)
	}

	if l == 1 || (l == 2 && t.Dotted) {
		var car, cdr any
		car = items[0]
		if l > 1 {
			cdr = items[1]
		}
		return e.writeCons(value.Cons{Car: car, Cdr: cdr}, fixed)
	}

	length := l
	if !t.Dotted {
		length++
	}

	class, width := header.SizeClassFor(uint64(length))
	if fixed == noFixed {
		if err := e.putByte(header.Container | header.ContainerList | class); err != nil {
			return err
		}
	}
	if err := e.putUint(uint64(length), width); err != nil {
		return err
	}

	for _, it := range items {
		if err := e.write(it, noFixed); err != nil {
			return err
		}
	}

	if !t.Dotted {
		if err := e.write(nil, noFixed); err != nil {
			return err
		}
	}

	return nil
}

// writeVector encodes Vector: a uniform numeric element type is promoted to
// a fixed container; otherwise every element gets its own header.
func (e *Encoder) writeVector(t value.Vector, fixed int) error {
	if code, ok := uniformNumericCode(t.Items, e.opts.allFloatsSingle); ok {
		return e.writeFixedVectorAny(t.Items, code, fixed)
	}

	l := len(t.Items)
	class, width := header.SizeClassFor(uint64(l))

	if fixed == noFixed {
		if err := e.putByte(header.Container | header.ContainerVector | class); err != nil {
			return err
		}
	}
	if err := e.putUint(uint64(l), width); err != nil {
		return err
	}

	for _, it := range t.Items {
		if err := e.write(it, noFixed); err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) writeCons(c value.Cons, fixed int) error {
	if fixed == noFixed {
		if err := e.putByte(header.Cons); err != nil {
			return err
		}
	}

	if err := e.write(c.Car, noFixed); err != nil {
		return err
	}

	return e.write(c.Cdr, noFixed)
}

// writeMap encodes a Map or, when isTmap, a TaggedMap: the type symbol (for
// tmaps) followed by key/value pairs. String keys are rewritten
// underscore-to-hyphen (unless no_sub_underscores or a leading underscore)
// and interned as keywords, or as symbols in the tagged type's own package.
func (e *Encoder) writeMap(entries []value.MapEntry, fixed int, isTmap bool, typeSym *symtab.Symbol) error {
	l := len(entries)
	class, width := header.SizeClassFor(uint64(l))

	if fixed == noFixed {
		groupByte := byte(header.ContainerMap)
		if isTmap {
			groupByte = header.ContainerTMap
		}
		if err := e.putByte(header.Container | groupByte | class); err != nil {
			return err
		}
	}
	if err := e.putUint(uint64(l), width); err != nil {
		return err
	}

	if isTmap {
		if err := e.write(typeSym, noFixed); err != nil {
			return err
		}
	}

	for _, ent := range entries {
		key, err := e.projectKey(ent.Key, isTmap, typeSym)
		if err != nil {
			return err
		}
		if err := e.write(key, noFixed); err != nil {
			return err
		}
		if err := e.write(ent.Value, noFixed); err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) projectKey(key any, isTmap bool, typeSym *symtab.Symbol) (any, error) {
	s, isStr := key.(string)
	if !isStr {
		return key, nil
	}

	newKey := s
	if !e.opts.noSubUnderscores && !strings.HasPrefix(s, "_") {
		newKey = strings.ReplaceAll(s, "_", "-")
	}

	if isTmap {
		return e.symReg.Intern(newKey, typeSym.Package.Name, false), nil
	}

	return e.symReg.KeywordSym(newKey, false), nil
}

func (e *Encoder) writeSymbol(s *symtab.Symbol, fixed int) error {
	if e.index != nil {
		if idx, ok := e.index.IndexOf(s); ok {
			return e.writeIndexValue(idx, fixed)
		}
	}

	if s.IsKeyword() {
		if fixed == noFixed {
			if err := e.putByte(header.Symbol | header.SymbolKeyword); err != nil {
				return err
			}
		}
		return e.write(s.Name, noFixed)
	}

	if fixed == noFixed {
		if err := e.putByte(header.Symbol); err != nil {
			return err
		}
	}

	if err := e.write(s.Name, noFixed); err != nil {
		return err
	}

	if s.Package == nil {
		return e.write(nil, noFixed)
	}

	return e.write(s.Package, noFixed)
}

func (e *Encoder) writePackage(p *symtab.Package, fixed int) error {
	if fixed == noFixed {
		if err := e.putByte(header.Package); err != nil {
			return err
		}
	}

	return e.write(p.Name, noFixed)
}

func (e *Encoder) writePointer(p value.Pointer, fixed int) error {
	class, width := header.SizeClassFor(uint64(p))

	if fixed == noFixed {
		if err := e.putByte(header.Pointer | class); err != nil {
			return err
		}
	}

	return e.putUint(uint64(p), width)
}

func (e *Encoder) writeRemoteRef(r value.RemoteRef, fixed int) error {
	if fixed == noFixed {
		if err := e.putByte(header.RemoteRef); err != nil {
			return err
		}
	}

	return e.write(r.Value, noFixed)
}

func (e *Encoder) writeIndexValue(idx int, fixed int) error {
	if idx < 0 {
		return errs.ErrOutOfBounds
	}
	if fixed != noFixed {
		return errs.ErrBadValue
	}

	if idx < 16 {
		return e.putByte(header.Index | header.RefTagInline | byte(idx))
	}

	class, width := header.SizeClassFor(uint64(idx))
	if err := e.putByte(header.Index | class); err != nil {
		return err
	}

	return e.putUint(uint64(idx), width)
}

func (e *Encoder) writeTagHeader(tag int, fixed int) error {
	if fixed != noFixed {
		return nil
	}

	if tag < 16 {
		return e.putByte(header.Tag | header.RefTagInline | byte(tag))
	}

	class, width := header.SizeClassFor(uint64(tag))
	if err := e.putByte(header.Tag | class); err != nil {
		return err
	}

	return e.putUint(uint64(tag), width)
}

func (e *Encoder) writeRefHeader(tag int, fixed int) error {
	if fixed != noFixed {
		return nil
	}

	if tag < 16 {
		return e.putByte(header.Ref | header.RefTagInline | byte(tag))
	}

	class, width := header.SizeClassFor(uint64(tag))
	if err := e.putByte(header.Ref | class); err != nil {
		return err
	}

	return e.putUint(uint64(tag), width)
}
