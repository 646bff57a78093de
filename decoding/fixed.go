package decoding

import (
	"fmt"
	"math"
	"math/big"

	"github.com/lispwire/conspack/errs"
	"github.com/lispwire/conspack/header"
)

// decodeFixedVector reads n raw, header-less elements of the numeric form
// named by code, returning the narrowest native Go slice type that matches
// what encoding.writeFixedVectorAny/writeFixed*Slice would have produced.
func (d *Decoder) decodeFixedVector(r *Reader, n int, width int, code int) (any, error) {
	readUint := func() (uint64, error) {
		b, err := r.Read(width)
		if err != nil {
			return 0, err
		}

		var u uint64
		for _, x := range b {
			u = u<<8 | uint64(x)
		}

		return u, nil
	}

	switch code {
	case header.Int8:
		out := make([]int8, n)
		for i := range out {
			u, err := readUint()
			if err != nil {
				return nil, err
			}
			out[i] = int8(u)
		}
		return out, nil
	case header.Uint8:
		b, err := r.Read(n)
		if err != nil {
			return nil, err
		}

		out := make([]byte, n)
		copy(out, b)

		return out, nil
	case header.Int16:
		out := make([]int16, n)
		for i := range out {
			u, err := readUint()
			if err != nil {
				return nil, err
			}
			out[i] = int16(u)
		}
		return out, nil
	case header.Uint16:
		out := make([]uint16, n)
		for i := range out {
			u, err := readUint()
			if err != nil {
				return nil, err
			}
			out[i] = uint16(u)
		}
		return out, nil
	case header.Int32:
		out := make([]int32, n)
		for i := range out {
			u, err := readUint()
			if err != nil {
				return nil, err
			}
			out[i] = int32(u)
		}
		return out, nil
	case header.Uint32:
		out := make([]uint32, n)
		for i := range out {
			u, err := readUint()
			if err != nil {
				return nil, err
			}
			out[i] = uint32(u)
		}
		return out, nil
	case header.Int64:
		out := make([]int64, n)
		for i := range out {
			u, err := readUint()
			if err != nil {
				return nil, err
			}
			out[i] = int64(u)
		}
		return out, nil
	case header.Uint64:
		out := make([]uint64, n)
		for i := range out {
			u, err := readUint()
			if err != nil {
				return nil, err
			}
			out[i] = u
		}
		return out, nil
	case header.SingleFloat:
		out := make([]float32, n)
		for i := range out {
			u, err := readUint()
			if err != nil {
				return nil, err
			}
			out[i] = math.Float32frombits(uint32(u))
		}
		return out, nil
	case header.DoubleFloat:
		out := make([]float64, n)
		for i := range out {
			u, err := readUint()
			if err != nil {
				return nil, err
			}
			out[i] = math.Float64frombits(u)
		}
		return out, nil
	case header.Int128, header.Uint128:
		out := make([]*big.Int, n)
		for i := range out {
			b, err := r.Read(width)
			if err != nil {
				return nil, err
			}

			v := new(big.Int).SetBytes(b)
			if code == header.Int128 && v.Cmp(new(big.Int).Lsh(big.NewInt(1), 127)) >= 0 {
				v.Sub(v, two128)
			}
			out[i] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: code %d", errs.ErrNotFixedNumeric, code)
	}
}
