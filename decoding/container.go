package decoding

import (
	"fmt"

	"github.com/lispwire/conspack/errs"
	"github.com/lispwire/conspack/header"
	"github.com/lispwire/conspack/symtab"
	"github.com/lispwire/conspack/value"
)

func (d *Decoder) decodeContainer(h byte, r *Reader) (any, error) {
	switch h & header.ContainerTypeMask {
	case header.ContainerVector:
		return d.decodeVector(h, r)
	case header.ContainerList:
		return d.decodeList(h, r)
	case header.ContainerMap:
		return d.decodeMap(h, r, false)
	case header.ContainerTMap:
		return d.decodeMap(h, r, true)
	default:
		return nil, fmt.Errorf("%w: container type 0x%02x", errs.ErrBadHeader, h)
	}
}

// fixedProtoOf reads the shared element-prototype byte when h's fixed bit
// is set, else returns noFixed.
func (d *Decoder) fixedProtoOf(h byte, r *Reader) (int, error) {
	if h&header.ContainerFixedBit == 0 {
		return noFixed, nil
	}

	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}

	return int(b), nil
}

// decodeList reads a CONTAINER_LIST body: a length-prefixed run of elements
// whose final member is either the nil sentinel (a proper list of the
// preceding size-1 elements) or an improper tail (a dotted list advertising
// the raw size).
func (d *Decoder) decodeList(h byte, r *Reader) (any, error) {
	size, err := d.readLen(h, r)
	if err != nil {
		return nil, err
	}

	fixed, err := d.fixedProtoOf(h, r)
	if err != nil {
		return nil, err
	}

	n := int(size)
	if n == 0 {
		return &value.List{}, nil
	}

	items := make([]any, n)
	for i := 0; i < n-1; i++ {
		v, err := d.decodeValue(r, fixed)
		if err != nil {
			return nil, err
		}

		items[i] = v
		idx := i
		d.registerFref(v, func(resolved any) { items[idx] = resolved })
	}

	final, err := d.decodeValue(r, fixed)
	if err != nil {
		return nil, err
	}

	if final == nil {
		return &value.List{Items: items[:n-1]}, nil
	}

	items[n-1] = final
	d.registerFref(final, func(resolved any) { items[n-1] = resolved })

	return &value.List{Items: items, Dotted: true}, nil
}

// decodeVector reads a CONTAINER_VECTOR body: identical framing to a list,
// but never length+1-padded and never collapsed to a dotted pair, per
// spec's Open Question (b). A fixed vector instead carries a shared numeric
// element prototype and raw, header-less payloads.
func (d *Decoder) decodeVector(h byte, r *Reader) (any, error) {
	size, err := d.readLen(h, r)
	if err != nil {
		return nil, err
	}

	if h&header.ContainerFixedBit == 0 {
		items := make([]any, size)
		for i := range items {
			v, err := d.decodeValue(r, noFixed)
			if err != nil {
				return nil, err
			}

			items[i] = v
			idx := i
			d.registerFref(v, func(resolved any) { items[idx] = resolved })
		}

		return &value.Vector{Items: items}, nil
	}

	proto, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	width, code, err := header.FixedTypeFormat(proto)
	if err != nil {
		return nil, err
	}

	return d.decodeFixedVector(r, int(size), width, code)
}

// decodeMap reads a CONTAINER_MAP or CONTAINER_TMAP body: a length-prefixed
// run of key/value pairs, preceded by a type symbol for a tmap. A tmap's
// entries are handed to the type symbol's registered decode hook; a plain
// map is returned as a value.Map.
func (d *Decoder) decodeMap(h byte, r *Reader, isTMap bool) (any, error) {
	size, err := d.readLen(h, r)
	if err != nil {
		return nil, err
	}

	fixed, err := d.fixedProtoOf(h, r)
	if err != nil {
		return nil, err
	}

	var typeSym *symtab.Symbol
	if isTMap {
		tv, err := d.decodeValue(r, noFixed)
		if err != nil {
			return nil, err
		}

		sym, ok := tv.(*symtab.Symbol)
		if !ok {
			return nil, fmt.Errorf("%w: tmap type is not a symbol", errs.ErrInvalidSymbol)
		}
		typeSym = sym
	}

	entries := make([]value.MapEntry, size)
	for i := range entries {
		k, err := d.decodeValue(r, fixed)
		if err != nil {
			return nil, err
		}

		v, err := d.decodeValue(r, noFixed)
		if err != nil {
			return nil, err
		}

		entries[i] = value.MapEntry{Key: k, Value: v}

		idx := i
		d.registerFref(k, func(resolved any) { entries[idx].Key = resolved })
		d.registerFref(v, func(resolved any) { entries[idx].Value = resolved })
	}

	if !isTMap {
		return &value.Map{Entries: entries}, nil
	}

	hook, ok := d.reg.DecoderFor(typeSym)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrNoDecoder, typeSym.String())
	}

	return hook(entries)
}
