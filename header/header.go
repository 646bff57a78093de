// Package header implements the one-byte header grammar that discriminates
// every value the codec can encode.
//
// Bytes are partitioned into groups by a prefix mask; most groups carry a
// low-bit "size class" selecting how many trailing bytes hold a length, tag,
// or index value. The constants below give the full bit layout of each
// group.
package header

import "github.com/lispwire/conspack/errs"

// Byte-value masks and fixed header bytes for the grammar groups.
const (
	Bool      = 0x00
	BoolMask  = 0xFE
	False     = 0x00
	True      = 0x01

	Number         = 0x10
	NumberMask     = 0xF0
	NumberTypeMask = 0x0F

	Container          = 0x20
	ContainerMask      = 0xE0
	ContainerTypeMask  = 0x18
	ContainerFixedBit  = 0x04
	ContainerVector    = 0x00
	ContainerList      = 0x08
	ContainerMap       = 0x10
	ContainerTMap      = 0x18

	String     = 0x40
	StringMask = 0xFC

	Ref           = 0x60
	RefMask       = 0xFC
	RefInlineMask = 0xF0

	RemoteRef     = 0x64
	RemoteRefMask = 0xFF

	Pointer     = 0x68
	PointerMask = 0xFC

	Tag           = 0xE0
	TagMask       = 0xFC
	TagInlineMask = 0xF0

	Cons     = 0x80
	ConsMask = 0xFF

	Package     = 0x81
	PackageMask = 0xFF

	Symbol        = 0x82
	SymbolMask    = 0xFE
	SymbolKeyword = 0x01

	Character     = 0x84
	CharacterMask = 0xFC

	Properties     = 0x88
	PropertiesMask = 0xFF

	Index     = 0xA0
	IndexMask = 0xE0

	// RefTagInline marks a tag/ref/index header as carrying its value inline
	// in the low 4 bits, rather than in a size-classed tail.
	RefTagInline      = 0x10
	RefTagInlineValue = 0x0F
)

// Size classes select how many bytes hold a trailing length/tag/index value.
const (
	Size8  = 0x00 // 1-byte length
	Size16 = 0x01 // 2-byte length
	Size32 = 0x02 // 4-byte length
	Size64 = 0x03 // 8-byte length
	SizeMask = 0x03
)

// Numeric type codes, packed into the low 4 bits of a Number header.
const (
	Int8 = iota
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	SingleFloat
	DoubleFloat
	Int128
	Uint128
	Complex  // reserved, unimplemented
	_        // 0xD reserved
	_        // 0xE reserved
	Rational // reserved, unimplemented
)

// Group identifies which grammar row a header byte belongs to.
type Group int

// The grammar groups a header byte can classify as.
const (
	GroupUnknown Group = iota
	GroupBool
	GroupNumber
	GroupContainer
	GroupString
	GroupRef
	GroupRemoteRef
	GroupPointer
	GroupTag
	GroupCons
	GroupPackage
	GroupSymbol
	GroupCharacter
	GroupProperties
	GroupIndex
)

// Classify returns which grammar group a header byte belongs to.
//
// Order matters: more specific masks (RemoteRef, Pointer) are checked before
// the broader Ref mask they nest inside, exactly as the grammar table implies.
func Classify(h byte) Group {
	switch {
	case h&BoolMask == Bool:
		return GroupBool
	case h&NumberMask == Number:
		return GroupNumber
	case h&ContainerMask == Container:
		return GroupContainer
	case h&RemoteRefMask == RemoteRef:
		return GroupRemoteRef
	case h&PointerMask == Pointer:
		return GroupPointer
	case h&StringMask == String:
		return GroupString
	case h&RefMask == Ref, h&RefInlineMask == (Ref | RefTagInline):
		return GroupRef
	case h&ConsMask == Cons:
		return GroupCons
	case h&PackageMask == Package:
		return GroupPackage
	case h&SymbolMask == Symbol:
		return GroupSymbol
	case h&CharacterMask == Character:
		return GroupCharacter
	case h&PropertiesMask == Properties:
		return GroupProperties
	case h&IndexMask == Index:
		return GroupIndex
	case h&TagMask == Tag, h&TagInlineMask == (Tag | RefTagInline):
		return GroupTag
	default:
		return GroupUnknown
	}
}

// IsKeyword reports whether a symbol header has the keyword flag set.
func IsKeyword(h byte) bool {
	return Classify(h) == GroupSymbol && h&SymbolKeyword == SymbolKeyword
}

// SizeClassFor returns the smallest size class able to hold n and the byte
// width it corresponds to.
func SizeClassFor(n uint64) (class byte, width int) {
	switch {
	case n < 1<<8:
		return Size8, 1
	case n < 1<<16:
		return Size16, 2
	case n < 1<<32:
		return Size32, 4
	default:
		return Size64, 8
	}
}

// WidthForClass returns the byte width a size class encodes.
func WidthForClass(class byte) int {
	switch class & SizeMask {
	case Size8:
		return 1
	case Size16:
		return 2
	case Size32:
		return 4
	default:
		return 8
	}
}

// GuessInt returns the narrowest numeric type code and byte width that can
// hold v, following the fixed ladder: int8, uint8, int16, uint16, int32,
// uint32, then int64 for anything wider. It never returns uint64 or a
// 128-bit code; the encoder picks those on its unsigned and big-integer
// paths.
//
// This mirrors header.py's guess_int: signed ranges are tried before the
// same-width unsigned range, so e.g. 200 (too large for int8, fits uint8)
// picks UINT8 rather than widening to INT16.
func GuessInt(v int64, negative bool) (code int, width int) {
	switch {
	case v >= -(1<<7) && v <= 1<<7-1:
		return Int8, 1
	case !negative && v >= 0 && v <= 1<<8-1:
		return Uint8, 1
	case v >= -(1<<15) && v <= 1<<15-1:
		return Int16, 2
	case !negative && v >= 0 && v <= 1<<16-1:
		return Uint16, 2
	case v >= -(1<<31) && v <= 1<<31-1:
		return Int32, 4
	case !negative && v >= 0 && v <= 1<<32-1:
		return Uint32, 4
	default:
		return Int64, 8
	}
}

// FixedTypeFormat returns the byte width and numeric type code carried by a
// fixed-container element prototype header, or an error if it is not a
// fixed-width numeric form.
func FixedTypeFormat(h byte) (width int, code int, err error) {
	if Classify(h) != GroupNumber {
		return 0, 0, errs.ErrNotFixedNumeric
	}

	code = int(h & NumberTypeMask)
	switch code {
	case Int8, Uint8:
		return 1, code, nil
	case Int16, Uint16:
		return 2, code, nil
	case Int32, Uint32, SingleFloat:
		return 4, code, nil
	case Int64, Uint64, DoubleFloat:
		return 8, code, nil
	case Int128, Uint128:
		return 16, code, nil
	default:
		return 0, 0, errs.ErrNotFixedNumeric
	}
}

// FixedNumberHeader builds the Number header byte for a given numeric type code.
func FixedNumberHeader(code int) byte {
	return Number | byte(code)
}
