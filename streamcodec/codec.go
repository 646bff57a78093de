// Package streamcodec provides pluggable whole-buffer compression for
// conspack's optional compressed stream framing: a compressed blob is a
// one-byte Algorithm tag followed by the algorithm's native compressed
// output, with the decompressed size recovered from the codec itself
// rather than carried on the wire.
package streamcodec

import (
	"fmt"

	"github.com/lispwire/conspack/errs"
)

// Compressor compresses a complete conspack-encoded buffer.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a buffer produced by the matching Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one compression algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// Algorithm identifies a stream compression algorithm.
type Algorithm uint8

// The compression algorithms CreateCodec can build.
const (
	None Algorithm = iota + 1
	Zstd
	S2
	LZ4
)

func (a Algorithm) String() string {
	switch a {
	case None:
		return "None"
	case Zstd:
		return "Zstd"
	case S2:
		return "S2"
	case LZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// CreateCodec builds the Codec for the given Algorithm. target names the
// caller's usage for error messages (e.g. "EncodeCompressed").
func CreateCodec(algorithm Algorithm, target string) (Codec, error) {
	switch algorithm {
	case None:
		return NoOpCodec{}, nil
	case Zstd:
		return ZstdCodec{}, nil
	case S2:
		return S2Codec{}, nil
	case LZ4:
		return LZ4Codec{}, nil
	default:
		if target == "" {
			target = "streamcodec"
		}
		return nil, fmt.Errorf("%w: %s: %d", errs.ErrUnknownAlgorithm, target, algorithm)
	}
}
