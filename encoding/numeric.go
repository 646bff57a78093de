package encoding

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"

	"github.com/lispwire/conspack/errs"
	"github.com/lispwire/conspack/header"
	"github.com/lispwire/conspack/value"
)

func (e *Encoder) putByte(b byte) error {
	return e.buf.WriteByte(b)
}

func (e *Encoder) putBytes(b []byte) error {
	e.buf.MustWrite(b)
	return nil
}

// putIntBytes writes the low width bytes of v, big-endian.
func (e *Encoder) putIntBytes(v uint64, width int) error {
	var buf [8]byte
	switch width {
	case 1:
		buf[0] = byte(v)
	case 2:
		binary.BigEndian.PutUint16(buf[:2], uint16(v))
	case 4:
		binary.BigEndian.PutUint32(buf[:4], uint32(v))
	default:
		binary.BigEndian.PutUint64(buf[:8], v)
	}

	return e.putBytes(buf[:width])
}

func (e *Encoder) putFloat32Bytes(f float32) error {
	return e.putIntBytes(uint64(math.Float32bits(f)), 4)
}

func (e *Encoder) putFloat64Bytes(f float64) error {
	return e.putIntBytes(math.Float64bits(f), 8)
}

func (e *Encoder) putUint(v uint64, width int) error {
	return e.putIntBytes(v, width)
}

// writeSignedInt writes v using the narrowest fitting numeric code, or, if
// fixed names a container element prototype, v's raw bytes at that width.
func (e *Encoder) writeSignedInt(v int64, fixed int) error {
	if fixed != noFixed {
		width, _, err := header.FixedTypeFormat(byte(fixed))
		if err != nil {
			return err
		}

		return e.putIntBytes(uint64(v), width)
	}

	code, width := header.GuessInt(v, v < 0)
	if err := e.putByte(header.FixedNumberHeader(code)); err != nil {
		return err
	}

	return e.putIntBytes(uint64(v), width)
}

// writeUnsignedInt writes v the way writeSignedInt does, except values past
// int64's range (only reachable from a genuinely unsigned 64-bit source)
// fall straight to UINT64, the widest native form available.
func (e *Encoder) writeUnsignedInt(v uint64, fixed int) error {
	if fixed != noFixed {
		width, _, err := header.FixedTypeFormat(byte(fixed))
		if err != nil {
			return err
		}

		return e.putIntBytes(v, width)
	}

	if v <= math.MaxInt64 {
		return e.writeSignedInt(int64(v), noFixed)
	}

	if err := e.putByte(header.FixedNumberHeader(header.Uint64)); err != nil {
		return err
	}

	return e.putIntBytes(v, 8)
}

var (
	two128  = new(big.Int).Lsh(big.NewInt(1), 128)
	min128  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	max128u = new(big.Int).Sub(two128, big.NewInt(1))
)

// writeBigInt resolves spec's Open Question on 128-bit integers: any integer
// that overflows int64/uint64 is written as a 16-byte big-endian two's
// complement INT128 (if negative) or UINT128 (if non-negative), the
// narrowest wire form left once the native ladder is exhausted.
func (e *Encoder) writeBigInt(v *big.Int, fixed int) error {
	if v.IsInt64() {
		return e.writeSignedInt(v.Int64(), fixed)
	}
	if v.Sign() >= 0 && v.IsUint64() {
		return e.writeUnsignedInt(v.Uint64(), fixed)
	}

	if v.Sign() < 0 {
		if v.Cmp(min128) < 0 {
			return fmt.Errorf("%w: %s", errs.ErrOutOfRange, v.String())
		}
		return e.writeFixed128(v, header.Int128, fixed)
	}

	if v.Cmp(max128u) > 0 {
		return fmt.Errorf("%w: %s", errs.ErrOutOfRange, v.String())
	}

	return e.writeFixed128(v, header.Uint128, fixed)
}

func (e *Encoder) writeFixed128(v *big.Int, code int, fixed int) error {
	var buf [16]byte

	val := new(big.Int).Set(v)
	if val.Sign() < 0 {
		val.Add(val, two128)
	}

	b := val.Bytes()
	if len(b) > 16 {
		return fmt.Errorf("%w: %s", errs.ErrOutOfRange, v.String())
	}
	copy(buf[16-len(b):], b)

	if fixed == noFixed {
		if err := e.putByte(header.FixedNumberHeader(code)); err != nil {
			return err
		}
	}

	return e.putBytes(buf[:])
}

func (e *Encoder) writeDouble(v float64, fixed int) error {
	if e.opts.allFloatsSingle {
		return e.writeSingle(value.Float32(v), fixed)
	}

	if fixed != noFixed {
		_, code, err := header.FixedTypeFormat(byte(fixed))
		if err != nil {
			return err
		}
		if code == header.SingleFloat {
			return e.putFloat32Bytes(float32(v))
		}
		return e.putFloat64Bytes(v)
	}

	if err := e.putByte(header.FixedNumberHeader(header.DoubleFloat)); err != nil {
		return err
	}

	return e.putFloat64Bytes(v)
}

func (e *Encoder) writeSingle(v value.Float32, fixed int) error {
	if fixed == noFixed {
		if err := e.putByte(header.FixedNumberHeader(header.SingleFloat)); err != nil {
			return err
		}
	}

	return e.putFloat32Bytes(float32(v))
}

func (e *Encoder) writeBool(b bool, fixed int) error {
	if fixed != noFixed {
		return nil
	}

	if b {
		return e.putByte(header.Bool | header.True)
	}

	return e.putByte(header.Bool | header.False)
}
