// Package decoding implements the conspack read side: a byte-driven
// recursive-descent reader keyed on the header grammar, with a
// forward-reference patch table that reconstructs shared and cyclic
// structure from a single forward pass over the stream.
package decoding

import (
	"github.com/lispwire/conspack/idxtable"
	"github.com/lispwire/conspack/internal/options"
	"github.com/lispwire/conspack/registry"
	"github.com/lispwire/conspack/symtab"
)

// noFixed marks a read as not occurring inside a fixed-type container; any
// other value is the container's shared element-prototype header byte.
const noFixed = -1

// RRefDecoder converts a decoded RemoteRef payload into a caller value.
type RRefDecoder func(inner any) (any, error)

// PointerDecoder converts a decoded Pointer's raw address into a caller value.
type PointerDecoder func(addr uint64) (any, error)

// patch overwrites a container slot once its forward-referenced tag resolves.
type patch func(resolved any)

// forwardRef is the placeholder returned for a Ref whose tag has not yet
// been resolved. Every container slot that receives one registers a patch
// via registerFref, and the Tag that later resolves it overwrites the slot.
// A placeholder held anywhere else (for example in the entries handed to a
// tmap decode hook before the tag resolves) is not replaced.
type forwardRef struct {
	tag int
}

// Decoder turns conspack wire bytes back into a value graph. A Decoder is
// single-use: construct one with New, call Decode once.
type Decoder struct {
	reg     *registry.Registry
	symReg  *symtab.Registry
	index   *idxtable.Table
	rref    RRefDecoder
	pointer PointerDecoder

	tags  map[int]any
	frefs map[int][]patch
}

// New constructs a Decoder with the given options applied.
func New(opts ...Option) *Decoder {
	d := &Decoder{
		reg:    registry.Global,
		symReg: symtab.Default(),
		tags:   make(map[int]any),
		frefs:  make(map[int][]patch),
	}

	options.Apply(d, opts...) //nolint: errcheck // every Option built by this package is NoError

	return d
}

// Decode reads a single root value from data and returns it. The transitive
// closure of the root's tagged values and refs is consumed; any bytes past
// the root are left unread.
func (d *Decoder) Decode(data []byte) (any, error) {
	r := NewReader(data)
	return d.decodeValue(r, noFixed)
}

// DecodeReader is Decode over an already-constructed Reader, letting a
// caller decode several back-to-back root values from one buffer by reusing
// the Reader's cursor across Decoder instances (a fresh Decoder is still
// required per root, per the codec's single-use-per-root contract).
func (d *Decoder) DecodeReader(r *Reader) (any, error) {
	return d.decodeValue(r, noFixed)
}

// registerFref records patch against val's forward-ref tag, if val is one.
// Every decoded slot (list/vector element, map key/value, cons car/cdr,
// tmap entry) must pass through this so a later Tag can patch it in place.
func (d *Decoder) registerFref(val any, p patch) {
	fr, ok := val.(*forwardRef)
	if !ok {
		return
	}

	d.frefs[fr.tag] = append(d.frefs[fr.tag], p)
}
