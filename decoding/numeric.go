package decoding

import (
	"fmt"
	"math"
	"math/big"

	"github.com/lispwire/conspack/errs"
	"github.com/lispwire/conspack/header"
	"github.com/lispwire/conspack/value"
)

var two128 = new(big.Int).Lsh(big.NewInt(1), 128)

// decodeNumber reads a Number header's fixed-width payload, per spec's
// Open Question (a): INT128/UINT128 are 16 big-endian bytes, signed
// two's-complement for INT128 and unsigned for UINT128, represented as
// *big.Int since Go has no native 128-bit integer.
func (d *Decoder) decodeNumber(h byte, r *Reader) (any, error) {
	width, code, err := header.FixedTypeFormat(h)
	if err != nil {
		return nil, err
	}

	if code == header.Int128 || code == header.Uint128 {
		b, err := r.Read(width)
		if err != nil {
			return nil, err
		}

		n := new(big.Int).SetBytes(b)
		if code == header.Int128 && n.Cmp(new(big.Int).Lsh(big.NewInt(1), 127)) >= 0 {
			n.Sub(n, two128)
		}

		return n, nil
	}

	b, err := r.Read(width)
	if err != nil {
		return nil, err
	}

	var u uint64
	for _, x := range b {
		u = u<<8 | uint64(x)
	}

	switch code {
	case header.Int8:
		return int8(u), nil
	case header.Int16:
		return int16(u), nil
	case header.Int32:
		return int32(u), nil
	case header.Int64:
		return int64(u), nil
	case header.Uint8:
		return uint8(u), nil
	case header.Uint16:
		return uint16(u), nil
	case header.Uint32:
		return uint32(u), nil
	case header.Uint64:
		return u, nil
	case header.SingleFloat:
		return value.Float32(math.Float32frombits(uint32(u))), nil
	case header.DoubleFloat:
		return math.Float64frombits(u), nil
	default:
		return nil, fmt.Errorf("%w: numeric code %d", errs.ErrNotFixedNumeric, code)
	}
}
