package encoding

import (
	"github.com/lispwire/conspack/idxtable"
	"github.com/lispwire/conspack/internal/options"
	"github.com/lispwire/conspack/registry"
	"github.com/lispwire/conspack/symtab"
)

// encFlags holds the five encoder flags spec.md names: single_char_strings,
// lists_are_vectors, all_floats_single, no_sub_underscores, and norefs.
type encFlags struct {
	singleCharStrings bool
	listsAreVectors   bool
	allFloatsSingle   bool
	noSubUnderscores  bool
	noRefs            bool
}

// Option configures an Encoder at construction time.
type Option = options.Option[*Encoder]

// WithIndexTable attaches an index-substitution table; symbols present in
// the table are emitted as Index entries instead of full symbol encodings.
func WithIndexTable(t *idxtable.Table) Option {
	return options.NoError(func(e *Encoder) { e.index = t })
}

// WithRegistry overrides the user-type encode-hook table, normally
// registry.Global.
func WithRegistry(r *registry.Registry) Option {
	return options.NoError(func(e *Encoder) { e.reg = r })
}

// WithSymbolRegistry overrides the registry used to intern map keys,
// normally symtab.Default().
func WithSymbolRegistry(r *symtab.Registry) Option {
	return options.NoError(func(e *Encoder) { e.symReg = r })
}

// WithSingleCharStrings disables the default collapse of one-rune strings
// into CHARACTER, so they stay STRING on the wire.
func WithSingleCharStrings() Option {
	return options.NoError(func(e *Encoder) { e.opts.singleCharStrings = true })
}

// WithListsAreVectors routes plain (non-dotted) lists through the vector
// encoder instead of the list encoder.
func WithListsAreVectors() Option {
	return options.NoError(func(e *Encoder) { e.opts.listsAreVectors = true })
}

// WithAllFloatsSingle downcasts every float64 to single precision on write.
func WithAllFloatsSingle() Option {
	return options.NoError(func(e *Encoder) { e.opts.allFloatsSingle = true })
}

// WithNoSubUnderscores disables the default underscore-to-hyphen rewrite of
// map string keys.
func WithNoSubUnderscores() Option {
	return options.NoError(func(e *Encoder) { e.opts.noSubUnderscores = true })
}

// WithNoRefs skips the identity scan entirely: no value is ever tagged or
// ref'd, even if it is shared or cyclic (a cyclic graph will recurse forever
// under this option, exactly as it would in the reference implementation).
func WithNoRefs() Option {
	return options.NoError(func(e *Encoder) { e.opts.noRefs = true })
}
