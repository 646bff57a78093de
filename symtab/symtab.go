// Package symtab implements the interned symbol/package registry: a process
// of calling Intern(name, pkg) twice with the same (package, uppercased
// name) pair always returns the same *Symbol, the way two reads of the same
// Lisp symbol are identical objects.
//
// A scoped *Registry can be constructed explicitly for callers who want
// isolation; Default returns the lazily-built, process-wide instance most
// callers use implicitly through the package-level Intern/Keyword/Find/Of
// helpers.
package symtab

import (
	"strings"
	"sync"

	"github.com/lispwire/conspack/errs"
	"github.com/lispwire/conspack/internal/hash"
)

// KeywordPackageName is the canonical name of the keyword package.
const KeywordPackageName = "KEYWORD"

// Package is a named container for symbols. Only its name is carried on the wire.
type Package struct {
	Name string

	mu      sync.Mutex
	symbols map[string]*Symbol
}

// Symbol is an identifier interned in a package. An uninterned symbol (one
// never passed through a Package.Intern) carries a nil Package.
type Symbol struct {
	Name    string
	Package *Package
}

// IsKeyword reports whether s is interned in the keyword package.
func (s *Symbol) IsKeyword() bool {
	return s.Package != nil && s.Package.Name == KeywordPackageName
}

// String renders s the way the reference implementation's __str__ does:
// ":NAME" for keywords, "#:NAME" for uninterned symbols, "PKG::NAME" otherwise.
func (s *Symbol) String() string {
	switch {
	case s.IsKeyword():
		return ":" + s.Name
	case s.Package == nil:
		return "#:" + s.Name
	default:
		return s.Package.Name + "::" + s.Name
	}
}

// find returns the existing symbol named name, if any. Caller holds p.mu.
func (p *Package) find(name string) *Symbol {
	return p.symbols[name]
}

// Intern returns the package's existing symbol of that name, creating and
// inserting one if absent.
func (p *Package) Intern(name string) *Symbol {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s := p.find(name); s != nil {
		return s
	}

	s := &Symbol{Name: name, Package: p}
	p.symbols[name] = s

	return s
}

// FindSymbol looks up name without creating it.
func (p *Package) FindSymbol(name string) (*Symbol, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.find(name)
	return s, s != nil
}

// Unintern removes name from the package, if present.
func (p *Package) Unintern(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.symbols, name)
}

// stripeCount is the number of lock stripes the Registry shards its package
// table across. Sharding by a fast hash of the package name (rather than one
// mutex for the whole table) keeps unrelated packages from contending when
// many goroutines intern concurrently, the same role a high-speed hash plays
// elsewhere in the corpus for sharded lookup tables.
const stripeCount = 16

type stripe struct {
	mu       sync.Mutex
	packages map[string]*Package
}

// Registry maps package names to Packages. Interning into two different
// packages shares a lock only briefly, when both names hash to the same
// stripe during package lookup; interning twice into the same package
// serializes on that Package's own mutex.
type Registry struct {
	stripes  [stripeCount]*stripe
	keywords *Package
}

// NewRegistry creates an empty Registry whose keyword package is created
// along with it, not on first keyword use.
func NewRegistry() *Registry {
	r := &Registry{}
	for i := range r.stripes {
		r.stripes[i] = &stripe{packages: make(map[string]*Package)}
	}

	r.keywords = r.newPackageLocked(KeywordPackageName)

	return r
}

func (r *Registry) stripeFor(name string) *stripe {
	return r.stripes[hash.ID(name)%stripeCount]
}

func (r *Registry) newPackageLocked(name string) *Package {
	s := r.stripeFor(name)
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &Package{Name: name, symbols: make(map[string]*Symbol)}
	s.packages[name] = p

	return p
}

// FindPackage returns the package named name (case-insensitive unless
// keepCase), without creating it.
func (r *Registry) FindPackage(name string, keepCase bool) (*Package, bool) {
	if name == "" {
		return nil, false
	}
	if !keepCase {
		name = strings.ToUpper(name)
	}

	s := r.stripeFor(name)
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.packages[name]
	return p, ok
}

// Package returns the package named name, creating it if it does not exist.
func (r *Registry) Package(name string, keepCase bool) *Package {
	if name == "" {
		return nil
	}
	if !keepCase {
		name = strings.ToUpper(name)
	}

	if p, ok := r.FindPackage(name, true); ok {
		return p
	}

	return r.newPackageLocked(name)
}

// NewPackage creates a package named name, failing with errs.ErrPackageExists
// if one by that name is already registered.
func (r *Registry) NewPackage(name string, keepCase bool) (*Package, error) {
	if !keepCase {
		name = strings.ToUpper(name)
	}

	if _, ok := r.FindPackage(name, true); ok {
		return nil, errs.ErrPackageExists
	}

	return r.newPackageLocked(name), nil
}

// Keyword returns the package's keyword package.
func (r *Registry) Keyword() *Package {
	return r.keywords
}

// Intern interns name into the package named pkgName (creating the package
// if needed), returning the resulting Symbol. An empty pkgName produces an
// uninterned symbol.
func (r *Registry) Intern(name, pkgName string, keepCase bool) *Symbol {
	symName := name
	if !keepCase {
		symName = strings.ToUpper(name)
	}

	if pkgName == "" {
		return &Symbol{Name: symName}
	}

	return r.Package(pkgName, keepCase).Intern(symName)
}

// KeywordSym interns name into the keyword package.
func (r *Registry) KeywordSym(name string, keepCase bool) *Symbol {
	symName := name
	if !keepCase {
		symName = strings.ToUpper(name)
	}

	return r.keywords.Intern(symName)
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the lazily-constructed, process-wide Registry.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry()
	})

	return defaultReg
}

// Intern interns name into pkgName using the default registry.
func Intern(name, pkgName string, keepCase bool) *Symbol {
	return Default().Intern(name, pkgName, keepCase)
}

// Keyword interns name into the default registry's keyword package.
func Keyword(name string, keepCase bool) *Symbol {
	return Default().KeywordSym(name, keepCase)
}

// Find returns the default registry's package named name, without creating it.
func Find(name string, keepCase bool) (*Package, bool) {
	return Default().FindPackage(name, keepCase)
}

// Of returns (creating if needed) the default registry's package named name.
func Of(name string, keepCase bool) *Package {
	return Default().Package(name, keepCase)
}
