// Package errs defines the sentinel errors returned by the conspack codec.
//
// Callers should use errors.Is against these sentinels; call sites wrap them
// with fmt.Errorf("%w: ...") to attach the offending value or position.
package errs

import "errors"

var (
	// ErrBadHeader indicates a header byte does not match any grammar group,
	// or matches a reserved group (e.g. Properties) that decode refuses.
	ErrBadHeader = errors.New("conspack: bad header byte")

	// ErrBadValue indicates a value fails an encoder invariant, such as a
	// Char carrying more than one scalar.
	ErrBadValue = errors.New("conspack: bad value")

	// ErrOutOfRange indicates an integer exceeds 128 bits, or a length
	// exceeds the 64-bit size-class ceiling.
	ErrOutOfRange = errors.New("conspack: value out of range")

	// ErrOutOfBounds indicates a negative value was given where only
	// non-negative values are legal (e.g. an Index).
	ErrOutOfBounds = errors.New("conspack: value out of bounds")

	// ErrNoEncoder indicates a value's Go type has no registered encode hook.
	ErrNoEncoder = errors.New("conspack: no encoder registered for type")

	// ErrNoDecoder indicates a tmap's type symbol has no registered decode hook.
	ErrNoDecoder = errors.New("conspack: no decoder registered for symbol")

	// ErrPackageExists indicates an attempt to create a package name that is
	// already registered.
	ErrPackageExists = errors.New("conspack: package already exists")

	// ErrTruncated indicates the input stream ended before a value's
	// encoding was fully read.
	ErrTruncated = errors.New("conspack: truncated stream")

	// ErrNotFixedNumeric indicates a fixed-container element prototype byte
	// does not describe a fixed-width numeric form.
	ErrNotFixedNumeric = errors.New("conspack: fixed element header is not numeric")

	// ErrInvalidSymbol indicates a symbol name or package name failed to parse.
	ErrInvalidSymbol = errors.New("conspack: invalid symbol")

	// ErrUnknownAlgorithm indicates an unrecognized stream compression algorithm.
	ErrUnknownAlgorithm = errors.New("conspack: unknown compression algorithm")
)
