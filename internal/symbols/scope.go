package symbols

import (
	"velab/internal/source"
	"velab/internal/syntax"
)

// ScopeKind enumerates the categories of scope-owning symbols.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeCompilationUnit
	ScopeDefinition // module/interface/program body
	ScopeInstanceBody
	ScopePackage
	ScopeGenerateBlock
	ScopeSubroutine
	ScopeBlock // procedural begin/end etc.
	ScopeRoot
	ScopeStdPackage
)

// DeferredKind tags what kind of syntax a deferred member wraps.
type DeferredKind uint8

const (
	DeferredGenerateBlock DeferredKind = iota
	DeferredPort
	DeferredNestedDefinition
	DeferredInstance
)

// DeferredMember is a syntax fragment whose elaboration is postponed until
// the owning scope is first fully examined.
type DeferredMember struct {
	Kind DeferredKind
	Item syntax.ItemID
}

// WildcardImport is a `pkg::*`-style sideband entry.
type WildcardImport struct {
	Package SymbolID
	At      Index // visible only to lookups at index >= At
	Span    source.Span
}

// Scope is a symbol whose role is to contain other symbols.
type Scope struct {
	Kind   ScopeKind
	Parent ScopeID
	Self   SymbolID // the symbol this scope belongs to (NoSymbolID for compilation-unit/root)

	members   []SymbolID // declaration order; index into this slice + 1 == Index
	nameIndex map[source.StringID][]SymbolID
	indexed   bool // nameIndex built lazily, on first Lookup

	deferred        []DeferredMember
	deferredRealized bool

	wildcardImports []WildcardImport
	explicitImports map[source.StringID]SymbolID
}

func newScope(kind ScopeKind, parent ScopeID, self SymbolID) *Scope {
	return &Scope{
		Kind:            kind,
		Parent:          parent,
		Self:            self,
		explicitImports: make(map[source.StringID]SymbolID),
	}
}

// Members returns the scope's direct members in declaration order.
func (s *Scope) Members() []SymbolID { return s.members }

// AddDeferred registers a syntax fragment for postponed elaboration.
func (s *Scope) AddDeferred(kind DeferredKind, item syntax.ItemID) {
	s.deferred = append(s.deferred, DeferredMember{Kind: kind, Item: item})
	s.deferredRealized = false
}

// Deferred returns the sideband list of not-yet-realized syntax fragments.
func (s *Scope) Deferred() []DeferredMember { return s.deferred }

// AddWildcardImport registers a `pkg::*` import visible from index at onward.
func (s *Scope) AddWildcardImport(pkg SymbolID, at Index, span source.Span) {
	s.wildcardImports = append(s.wildcardImports, WildcardImport{Package: pkg, At: at, Span: span})
}

// AddExplicitImport registers a `pkg::name` import.
func (s *Scope) AddExplicitImport(name source.StringID, sym SymbolID) {
	s.explicitImports[name] = sym
}

// nextIndex returns the Index the next appended member will receive.
func (s *Scope) nextIndex() Index { return Index(len(s.members) + 1) }
