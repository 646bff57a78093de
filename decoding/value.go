package decoding

import (
	"fmt"
	"unicode/utf8"

	"github.com/lispwire/conspack/errs"
	"github.com/lispwire/conspack/header"
	"github.com/lispwire/conspack/symtab"
	"github.com/lispwire/conspack/value"
)

// decodeValue reads one value from r: its own header byte, unless fixed
// names a shared element prototype inherited from an enclosing fixed
// container, in which case fixed itself is used as the header and no byte
// is consumed for it.
func (d *Decoder) decodeValue(r *Reader, fixed int) (any, error) {
	var h byte
	if fixed == noFixed {
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		h = b
	} else {
		h = byte(fixed)
	}

	switch header.Classify(h) {
	case header.GroupBool:
		return d.decodeBool(h), nil
	case header.GroupNumber:
		return d.decodeNumber(h, r)
	case header.GroupContainer:
		return d.decodeContainer(h, r)
	case header.GroupString:
		return d.decodeString(h, r)
	case header.GroupCharacter:
		return d.decodeCharacter(h, r)
	case header.GroupCons:
		return d.decodeCons(h, r)
	case header.GroupPackage:
		return d.decodePackage(h, r)
	case header.GroupSymbol:
		return d.decodeSymbol(h, r)
	case header.GroupRemoteRef:
		return d.decodeRemoteRef(h, r)
	case header.GroupPointer:
		return d.decodePointer(h, r)
	case header.GroupTag:
		return d.decodeTag(h, r)
	case header.GroupRef:
		return d.decodeRef(h, r)
	case header.GroupIndex:
		return d.decodeIndex(h, r)
	case header.GroupProperties:
		return nil, fmt.Errorf("%w: properties header 0x%02x", errs.ErrBadHeader, h)
	default:
		return nil, fmt.Errorf("%w: 0x%02x", errs.ErrBadHeader, h)
	}
}

func (d *Decoder) decodeBool(h byte) any {
	if h == header.True {
		return true
	}

	return nil
}

// readLen reads the size-classed length/tag/index/address trailing a
// header whose low 2 bits are its size class.
func (d *Decoder) readLen(h byte, r *Reader) (uint64, error) {
	width := header.WidthForClass(h)

	b, err := r.Read(width)
	if err != nil {
		return 0, err
	}

	var n uint64
	for _, x := range b {
		n = n<<8 | uint64(x)
	}

	return n, nil
}

func (d *Decoder) decodeString(h byte, r *Reader) (any, error) {
	n, err := d.readLen(h, r)
	if err != nil {
		return nil, err
	}

	b, err := r.Read(int(n))
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("%w: invalid utf-8 string", errs.ErrBadValue)
	}

	return string(b), nil
}

func (d *Decoder) decodeCharacter(h byte, r *Reader) (any, error) {
	n := int(h&header.SizeMask) + 1

	b, err := r.Read(n)
	if err != nil {
		return nil, err
	}

	s := string(b)
	if utf8.RuneCountInString(s) != 1 {
		return nil, fmt.Errorf("%w: character is not a single scalar", errs.ErrBadValue)
	}

	return s, nil
}

func (d *Decoder) decodeCons(h byte, r *Reader) (any, error) {
	car, err := d.decodeValue(r, noFixed)
	if err != nil {
		return nil, err
	}

	cdr, err := d.decodeValue(r, noFixed)
	if err != nil {
		return nil, err
	}

	if cdr == nil {
		items := []any{car}
		list := &value.List{Items: items}
		d.registerFref(car, func(resolved any) { items[0] = resolved })

		return list, nil
	}

	items := []any{car, cdr}
	list := &value.List{Items: items, Dotted: true}
	d.registerFref(car, func(resolved any) { items[0] = resolved })
	d.registerFref(cdr, func(resolved any) { items[1] = resolved })

	return list, nil
}

func (d *Decoder) decodePackage(h byte, r *Reader) (any, error) {
	nameVal, err := d.decodeValue(r, noFixed)
	if err != nil {
		return nil, err
	}

	name, ok := nameVal.(string)
	if !ok {
		return nil, fmt.Errorf("%w: package name is not a string", errs.ErrInvalidSymbol)
	}

	return d.symReg.Package(name, true), nil
}

func (d *Decoder) decodeSymbol(h byte, r *Reader) (any, error) {
	nameVal, err := d.decodeValue(r, noFixed)
	if err != nil {
		return nil, err
	}

	name, ok := nameVal.(string)
	if !ok {
		return nil, fmt.Errorf("%w: symbol name is not a string", errs.ErrInvalidSymbol)
	}

	if header.IsKeyword(h) {
		return d.symReg.KeywordSym(name, true), nil
	}

	pkgVal, err := d.decodeValue(r, noFixed)
	if err != nil {
		return nil, err
	}
	if pkgVal == nil {
		return &symtab.Symbol{Name: name}, nil
	}

	pkg, ok := pkgVal.(*symtab.Package)
	if !ok {
		return nil, fmt.Errorf("%w: symbol package is not a package", errs.ErrInvalidSymbol)
	}

	return d.symReg.Intern(name, pkg.Name, true), nil
}

func (d *Decoder) decodeRemoteRef(h byte, r *Reader) (any, error) {
	inner, err := d.decodeValue(r, noFixed)
	if err != nil {
		return nil, err
	}

	if d.rref != nil {
		return d.rref(inner)
	}

	return value.RemoteRef{Value: inner}, nil
}

func (d *Decoder) decodePointer(h byte, r *Reader) (any, error) {
	addr, err := d.readLen(h, r)
	if err != nil {
		return nil, err
	}

	if d.pointer != nil {
		return d.pointer(addr)
	}

	return value.Pointer(addr), nil
}

func (d *Decoder) decodeIndex(h byte, r *Reader) (any, error) {
	var idx int

	if h&header.RefTagInline != 0 {
		idx = int(h & header.RefTagInlineValue)
	} else {
		n, err := d.readLen(h, r)
		if err != nil {
			return nil, err
		}
		idx = int(n)
	}

	if d.index != nil {
		if v, ok := d.index.ValueAt(idx); ok {
			return v, nil
		}
	}

	return value.IndexRef(idx), nil
}

func (d *Decoder) decodeTag(h byte, r *Reader) (any, error) {
	tag, err := d.readTagOrRef(h, r)
	if err != nil {
		return nil, err
	}

	val, err := d.decodeValue(r, noFixed)
	if err != nil {
		return nil, err
	}

	d.tags[tag] = val

	if patches, ok := d.frefs[tag]; ok {
		for _, p := range patches {
			p(val)
		}
		delete(d.frefs, tag)
	}

	return val, nil
}

func (d *Decoder) decodeRef(h byte, r *Reader) (any, error) {
	tag, err := d.readTagOrRef(h, r)
	if err != nil {
		return nil, err
	}

	if val, ok := d.tags[tag]; ok {
		return val, nil
	}

	return &forwardRef{tag: tag}, nil
}

func (d *Decoder) readTagOrRef(h byte, r *Reader) (int, error) {
	if h&header.RefTagInline != 0 {
		return int(h & header.RefTagInlineValue), nil
	}

	n, err := d.readLen(h, r)
	if err != nil {
		return 0, err
	}

	return int(n), nil
}
