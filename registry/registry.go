// Package registry maps Go types to a type symbol and an encode/decode hook
// pair, the mechanism the tmap projection uses to carry opaque user objects
// across the wire.
//
// A Registry instance is owned by a single Encoder/Decoder pair via the
// encoding/decoding option constructors; Global is the process-wide table
// mutated only at setup time, mirroring the reference implementation's
// class-level Encoder.class_encoders/Decoder.class_decoders.
package registry

import (
	"reflect"
	"sync"

	"github.com/lispwire/conspack/symtab"
	"github.com/lispwire/conspack/value"
)

// EncodeHook converts a native Go value into the ordered key/value pairs of
// its tmap projection.
type EncodeHook func(v any) ([]value.MapEntry, error)

// DecodeHook reconstructs a native Go value from a fully-decoded tmap payload.
type DecodeHook func(entries []value.MapEntry) (any, error)

// entry bundles the type symbol and encode hook registered for a Go type;
// decode hooks are kept separately, keyed by symbol.
type entry struct {
	symbol *symtab.Symbol
	encode EncodeHook
}

// Registry is a type ↔ symbol ↔ hook table. The zero value is not usable;
// construct with New.
type Registry struct {
	mu       sync.RWMutex
	byType   map[reflect.Type]entry
	bySymbol map[*symtab.Symbol]DecodeHook
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		byType:   make(map[reflect.Type]entry),
		bySymbol: make(map[*symtab.Symbol]DecodeHook),
	}
}

// Register associates the Go type of sample with typeSym, encodeHook, and
// decodeHook. sample is used only to obtain its reflect.Type; pass a zero
// value of the type being registered.
func (r *Registry) Register(sample any, typeSym *symtab.Symbol, encodeHook EncodeHook, decodeHook DecodeHook) {
	t := reflect.TypeOf(sample)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byType[t] = entry{symbol: typeSym, encode: encodeHook}
	r.bySymbol[typeSym] = decodeHook
}

// Deregister removes the registration for the Go type of sample.
func (r *Registry) Deregister(sample any) {
	t := reflect.TypeOf(sample)

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byType[t]
	if !ok {
		return
	}

	delete(r.byType, t)
	delete(r.bySymbol, e.symbol)
}

// EncoderFor returns the type symbol and encode hook registered for v's Go
// type, if any.
func (r *Registry) EncoderFor(v any) (*symtab.Symbol, EncodeHook, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byType[reflect.TypeOf(v)]
	if !ok {
		return nil, nil, false
	}

	return e.symbol, e.encode, true
}

// DecoderFor returns the decode hook registered for typeSym, if any.
func (r *Registry) DecoderFor(typeSym *symtab.Symbol) (DecodeHook, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.bySymbol[typeSym]
	return h, ok
}

// Global is the process-wide registry, mutated only at setup time and read
// on the codec's hot path; concurrent mutation while codecs run is undefined,
// matching spec's concurrency model for the user-type registry.
var Global = New()
