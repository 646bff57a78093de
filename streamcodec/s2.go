package streamcodec

import "github.com/klauspost/compress/s2"

// S2Codec compresses with klauspost/compress/s2, a Snappy-compatible format
// tuned for speed over ratio — a reasonable default for compressing an
// already-compact conspack buffer before it goes over the wire.
type S2Codec struct{}

var _ Codec = S2Codec{}

func (S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

func (S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
