package symtab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lispwire/conspack/errs"
	"github.com/lispwire/conspack/symtab"
)

func TestInternIdempotent(t *testing.T) {
	r := symtab.NewRegistry()

	a := r.Intern("foo", "CL-USER", false)
	b := r.Intern("foo", "CL-USER", false)
	assert.Same(t, a, b)
	assert.Equal(t, "FOO", a.Name)
}

func TestKeywordIsCanonical(t *testing.T) {
	r := symtab.NewRegistry()

	k := r.KeywordSym("foo", false)
	assert.True(t, k.IsKeyword())
	assert.Equal(t, ":FOO", k.String())

	pkg, ok := r.FindPackage("keyword", false)
	require.True(t, ok)
	assert.Same(t, pkg, r.Keyword())
}

func TestKeepCase(t *testing.T) {
	r := symtab.NewRegistry()

	s := r.Intern("MixedCase", "cl-user", true)
	assert.Equal(t, "MixedCase", s.Name)
	assert.Equal(t, "cl-user", s.Package.Name)
}

func TestNewPackageExists(t *testing.T) {
	r := symtab.NewRegistry()

	_, err := r.NewPackage("FOO", false)
	require.NoError(t, err)

	_, err = r.NewPackage("foo", false)
	require.ErrorIs(t, err, errs.ErrPackageExists)
}

func TestSymbolStringForms(t *testing.T) {
	r := symtab.NewRegistry()

	named := r.Intern("bar", "CL-USER", false)
	assert.Equal(t, "CL-USER::BAR", named.String())

	uninterned := &symtab.Symbol{Name: "BAZ"}
	assert.Equal(t, "#:BAZ", uninterned.String())
}
