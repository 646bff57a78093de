package decoding

import (
	"github.com/lispwire/conspack/idxtable"
	"github.com/lispwire/conspack/internal/options"
	"github.com/lispwire/conspack/registry"
	"github.com/lispwire/conspack/symtab"
)

// Option configures a Decoder at construction time.
type Option = options.Option[*Decoder]

// WithIndexTable attaches an index-substitution table; a decoded Index
// resolves to the table's entry at that position when one is attached.
func WithIndexTable(t *idxtable.Table) Option {
	return options.NoError(func(d *Decoder) { d.index = t })
}

// WithRegistry overrides the user-type decode-hook table, normally
// registry.Global.
func WithRegistry(r *registry.Registry) Option {
	return options.NoError(func(d *Decoder) { d.reg = r })
}

// WithSymbolRegistry overrides the registry used to intern decoded symbols
// and packages, normally symtab.Default().
func WithSymbolRegistry(r *symtab.Registry) Option {
	return options.NoError(func(d *Decoder) { d.symReg = r })
}

// WithRRefDecoder routes a decoded RemoteRef's inner value through fn
// instead of returning a bare value.RemoteRef.
func WithRRefDecoder(fn RRefDecoder) Option {
	return options.NoError(func(d *Decoder) { d.rref = fn })
}

// WithPointerDecoder routes a decoded Pointer's raw address through fn
// instead of returning a bare value.Pointer.
func WithPointerDecoder(fn PointerDecoder) Option {
	return options.NoError(func(d *Decoder) { d.pointer = fn })
}
