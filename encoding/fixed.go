package encoding

import (
	"fmt"

	"github.com/lispwire/conspack/errs"
	"github.com/lispwire/conspack/header"
)

// writeFixedHeader writes a fixed-container's length and single shared
// element-prototype byte: Container|Vector|FixedBit|class, length, then the
// Number header carrying code. The leading container byte is skipped when
// fixed != noFixed, since that means this fixed vector is itself an element
// of an outer fixed container whose prototype already stands in for it; the
// length and Number header are always written.
func (e *Encoder) writeFixedHeader(n int, code int, fixed int) error {
	class, width := header.SizeClassFor(uint64(n))

	if fixed == noFixed {
		if err := e.putByte(header.Container | header.ContainerVector | header.ContainerFixedBit | class); err != nil {
			return err
		}
	}

	if err := e.putUint(uint64(n), width); err != nil {
		return err
	}

	return e.putByte(header.FixedNumberHeader(code))
}

func (e *Encoder) writeFixedInt8Slice(v []int8, fixed int) error {
	if err := e.writeFixedHeader(len(v), header.Int8, fixed); err != nil {
		return err
	}
	for _, x := range v {
		if err := e.putByte(byte(x)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeFixedUint8Slice(v []uint8, fixed int) error {
	if err := e.writeFixedHeader(len(v), header.Uint8, fixed); err != nil {
		return err
	}
	return e.putBytes(v)
}

func (e *Encoder) writeFixedInt16Slice(v []int16, fixed int) error {
	if err := e.writeFixedHeader(len(v), header.Int16, fixed); err != nil {
		return err
	}
	for _, x := range v {
		if err := e.putIntBytes(uint64(uint16(x)), 2); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeFixedUint16Slice(v []uint16, fixed int) error {
	if err := e.writeFixedHeader(len(v), header.Uint16, fixed); err != nil {
		return err
	}
	for _, x := range v {
		if err := e.putIntBytes(uint64(x), 2); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeFixedInt32Slice(v []int32, fixed int) error {
	if err := e.writeFixedHeader(len(v), header.Int32, fixed); err != nil {
		return err
	}
	for _, x := range v {
		if err := e.putIntBytes(uint64(uint32(x)), 4); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeFixedUint32Slice(v []uint32, fixed int) error {
	if err := e.writeFixedHeader(len(v), header.Uint32, fixed); err != nil {
		return err
	}
	for _, x := range v {
		if err := e.putIntBytes(uint64(x), 4); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeFixedInt64Slice(v []int64, fixed int) error {
	if err := e.writeFixedHeader(len(v), header.Int64, fixed); err != nil {
		return err
	}
	for _, x := range v {
		if err := e.putIntBytes(uint64(x), 8); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeFixedUint64Slice(v []uint64, fixed int) error {
	if err := e.writeFixedHeader(len(v), header.Uint64, fixed); err != nil {
		return err
	}
	for _, x := range v {
		if err := e.putIntBytes(x, 8); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeFixedFloat32Slice(v []float32, fixed int) error {
	code := header.SingleFloat
	if err := e.writeFixedHeader(len(v), code, fixed); err != nil {
		return err
	}
	for _, x := range v {
		if err := e.putFloat32Bytes(x); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeFixedFloat64Slice(v []float64, fixed int) error {
	code := header.DoubleFloat
	if e.opts.allFloatsSingle {
		code = header.SingleFloat
	}
	if err := e.writeFixedHeader(len(v), code, fixed); err != nil {
		return err
	}
	for _, x := range v {
		if code == header.SingleFloat {
			if err := e.putFloat32Bytes(float32(x)); err != nil {
				return err
			}
			continue
		}
		if err := e.putFloat64Bytes(x); err != nil {
			return err
		}
	}
	return nil
}

// uniformNumericCode reports the fixed numeric type code shared by every
// element of items, if they are all the same concrete Go numeric type.
func uniformNumericCode(items []any, singleOnly bool) (int, bool) {
	if len(items) == 0 {
		return 0, false
	}

	check := func(pred func(any) bool) bool {
		for _, it := range items[1:] {
			if !pred(it) {
				return false
			}
		}
		return true
	}

	switch items[0].(type) {
	case int8:
		if check(func(x any) bool { _, ok := x.(int8); return ok }) {
			return header.Int8, true
		}
	case uint8:
		if check(func(x any) bool { _, ok := x.(uint8); return ok }) {
			return header.Uint8, true
		}
	case int16:
		if check(func(x any) bool { _, ok := x.(int16); return ok }) {
			return header.Int16, true
		}
	case uint16:
		if check(func(x any) bool { _, ok := x.(uint16); return ok }) {
			return header.Uint16, true
		}
	case int32:
		if check(func(x any) bool { _, ok := x.(int32); return ok }) {
			return header.Int32, true
		}
	case uint32:
		if check(func(x any) bool { _, ok := x.(uint32); return ok }) {
			return header.Uint32, true
		}
	case int64:
		if check(func(x any) bool { _, ok := x.(int64); return ok }) {
			return header.Int64, true
		}
	case uint64:
		if check(func(x any) bool { _, ok := x.(uint64); return ok }) {
			return header.Uint64, true
		}
	case float32:
		if check(func(x any) bool { _, ok := x.(float32); return ok }) {
			return header.SingleFloat, true
		}
	case float64:
		if check(func(x any) bool { _, ok := x.(float64); return ok }) {
			if singleOnly {
				return header.SingleFloat, true
			}
			return header.DoubleFloat, true
		}
	}

	return 0, false
}

func (e *Encoder) writeFixedVectorAny(items []any, code int, fixed int) error {
	if err := e.writeFixedHeader(len(items), code, fixed); err != nil {
		return err
	}

	for _, it := range items {
		if err := e.writeFixedElem(it, code); err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) writeFixedElem(it any, code int) error {
	switch code {
	case header.Int8:
		return e.putByte(byte(it.(int8)))
	case header.Uint8:
		return e.putByte(it.(uint8))
	case header.Int16:
		return e.putIntBytes(uint64(uint16(it.(int16))), 2)
	case header.Uint16:
		return e.putIntBytes(uint64(it.(uint16)), 2)
	case header.Int32:
		return e.putIntBytes(uint64(uint32(it.(int32))), 4)
	case header.Uint32:
		return e.putIntBytes(uint64(it.(uint32)), 4)
	case header.Int64:
		return e.putIntBytes(uint64(it.(int64)), 8)
	case header.Uint64:
		return e.putIntBytes(it.(uint64), 8)
	case header.SingleFloat:
		if f, ok := it.(float32); ok {
			return e.putFloat32Bytes(f)
		}
		return e.putFloat32Bytes(float32(it.(float64)))
	case header.DoubleFloat:
		return e.putFloat64Bytes(it.(float64))
	default:
		return fmt.Errorf("%w: code %d", errs.ErrNotFixedNumeric, code)
	}
}
