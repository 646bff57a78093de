// Package conspack is a self-describing binary codec for a Lisp-family
// value universe: booleans, every numeric width, strings and characters,
// vectors/lists/maps/tmaps, cons cells and dotted lists, interned symbols
// and packages, opaque pointers, remote references, and an index
// substitution table. The wire format is fixed big-endian with one
// self-describing header byte per value; decoding is all-or-nothing.
//
// # Basic usage
//
//	b, err := conspack.Encode(&value.List{Items: []any{1, "two", 3.0}})
//	v, err := conspack.Decode(b)
//
// Encode and Decode build a fresh encoding.Encoder/decoding.Decoder per
// call, per the codec's single-use-per-root-value contract; callers who
// need to reuse collaborators (a shared registry, an index table) across
// many calls should construct encoding.Encoder/decoding.Decoder directly.
package conspack

import (
	"fmt"
	"os"

	"github.com/lispwire/conspack/decoding"
	"github.com/lispwire/conspack/encoding"
	"github.com/lispwire/conspack/registry"
	"github.com/lispwire/conspack/streamcodec"
	"github.com/lispwire/conspack/symtab"
)

// Encode writes root's conspack form and returns the resulting bytes.
func Encode(root any, opts ...encoding.Option) ([]byte, error) {
	enc := encoding.New(opts...)
	defer enc.Release()

	if err := enc.Encode(root); err != nil {
		return nil, err
	}

	return append([]byte(nil), enc.Bytes()...), nil
}

// Decode reads a single root value from b.
func Decode(b []byte, opts ...decoding.Option) (any, error) {
	return decoding.New(opts...).Decode(b)
}

// EncodeFile encodes root and writes it to the file at path, truncating
// any existing contents.
func EncodeFile(path string, root any, opts ...encoding.Option) error {
	b, err := Encode(root, opts...)
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, 0o644)
}

// DecodeFile reads and decodes the conspack value stored at path.
func DecodeFile(path string, opts ...decoding.Option) (any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Decode(b, opts...)
}

// EncodeCompressed is Encode, with the resulting buffer passed through the
// given stream compression algorithm before it is returned. The inner
// conspack wire form is unaffected; compression wraps the whole envelope.
func EncodeCompressed(root any, algo streamcodec.Algorithm, opts ...encoding.Option) ([]byte, error) {
	b, err := Encode(root, opts...)
	if err != nil {
		return nil, err
	}

	codec, err := streamcodec.CreateCodec(algo, "EncodeCompressed")
	if err != nil {
		return nil, err
	}

	compressed, err := codec.Compress(b)
	if err != nil {
		return nil, fmt.Errorf("conspack: compress: %w", err)
	}

	out := make([]byte, 0, len(compressed)+1)
	out = append(out, byte(algo))
	out = append(out, compressed...)

	return out, nil
}

// DecodeCompressed is the inverse of EncodeCompressed: it reads the leading
// algorithm tag, decompresses the remainder, and decodes the result.
func DecodeCompressed(b []byte, opts ...decoding.Option) (any, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("conspack: decompress: %w", os.ErrInvalid)
	}

	algo := streamcodec.Algorithm(b[0])

	codec, err := streamcodec.CreateCodec(algo, "DecodeCompressed")
	if err != nil {
		return nil, err
	}

	plain, err := codec.Decompress(b[1:])
	if err != nil {
		return nil, fmt.Errorf("conspack: decompress: %w", err)
	}

	return Decode(plain, opts...)
}

// Register associates the Go type of sample with typeSym in the process-
// wide registry, so future Encode/Decode calls project values of that type
// through encodeHook/decodeHook as a tmap.
func Register(sample any, typeSym *symtab.Symbol, encodeHook registry.EncodeHook, decodeHook registry.DecodeHook) {
	registry.Global.Register(sample, typeSym, encodeHook, decodeHook)
}

// Deregister removes the process-wide registration for the Go type of sample.
func Deregister(sample any) {
	registry.Global.Deregister(sample)
}

// Keyword interns name into the default registry's keyword package, a
// convenience re-export of symtab.Keyword for callers building value.Map
// keys or tmap hooks without importing symtab directly.
func Keyword(name string) *symtab.Symbol {
	return symtab.Keyword(name, false)
}

// Symbol interns name into pkgName using the default symbol registry.
func Symbol(name, pkgName string) *symtab.Symbol {
	return symtab.Intern(name, pkgName, false)
}
