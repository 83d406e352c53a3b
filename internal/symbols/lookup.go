package symbols

import (
	"sort"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"velab/internal/diag"
	"velab/internal/source"
)

// suggestionCollator breaks same-distance typo-correction ties in a
// deterministic, locale-aware order rather than plain byte comparison, so
// the suggested name doesn't depend on build platform collation quirks.
var suggestionCollator = collate.New(language.English)

// Flags modifies a lookup operation.
type Flags uint8

const (
	FlagNone Flags = 0
	// FlagConstant forbids resolving to a hierarchical path.
	FlagConstant Flags = 1 << (iota - 1)
	// FlagType marks a lookup for a type name. Lookup does not check the
	// found symbol's kind; the caller does (BindType rejects a non-typedef).
	FlagType
	// FlagAllowDeclaredAfter removes the "declared before location" restriction.
	FlagAllowDeclaredAfter
	// FlagDisallowWildcardImport skips step 4 of the precedence order.
	FlagDisallowWildcardImport
)

// Selector is a lookup post-processing step captured for re-application
// against an expression once the binder knows whether the head resolved to
// a value or a type.
type Selector struct {
	IsElement bool
	Name      source.StringID
	Dot       source.Span
	NameRange source.Span
}

// Result carries everything a lookup resolves: the symbol found, how it
type Result struct {
	Found          SymbolID
	WasImported    bool
	IsHierarchical bool
	SawBadImport   bool
	Selectors      []Selector
	diags          []diag.Diagnostic
}

// AddDiag appends a local diagnostic to the result without touching the
// compilation's shared diagnostic bag until the caller decides to keep it
// (mirrors slang's LookupResult owning its own Diagnostics).
func (r *Result) AddDiag(d diag.Diagnostic) { r.diags = append(r.diags, d) }

// Diagnostics returns the diagnostics accumulated during this lookup.
func (r *Result) Diagnostics() []diag.Diagnostic { return r.diags }

// HasError reports whether any recorded diagnostic is an error.
func (r *Result) HasError() bool {
	for _, d := range r.diags {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

// Clear resets r for reuse.
func (r *Result) Clear() { *r = Result{} }

// Realizer elaborates a scope's deferred members on demand; the compilation driver
// implements this so that symbols has no dependency on it.
type Realizer interface {
	Realize(scope ScopeID, member DeferredMember)
}

// Context bundles everything Lookup needs beyond the name and location:
// the owning table, a realizer for deferred members, the top-level
// definition table, and the std package scope.
type Context struct {
	Table            *Table
	Strings          *source.Interner
	Realizer         Realizer
	Definitions      func(name source.StringID) SymbolID
	StdPackage       ScopeID
	TypoLimit        int
	typoBudgetUsed   int
}

func (c *Context) realize(scope ScopeID) {
	sc := c.Table.Scope(scope)
	if sc == nil || sc.deferredRealized || c.Realizer == nil {
		return
	}
	sc.deferredRealized = true
	for _, m := range sc.deferred {
		c.Realizer.Realize(scope, m)
	}
}

func (c *Context) ensureIndexed(scope ScopeID) {
	sc := c.Table.Scope(scope)
	if sc == nil || sc.indexed {
		return
	}
	sc.nameIndex = make(map[source.StringID][]SymbolID, len(sc.members))
	for _, id := range sc.members {
		sym := c.Table.Symbol(id)
		if sym == nil || sym.Name == source.NoStringID {
			continue
		}
		sc.nameIndex[sym.Name] = append(sc.nameIndex[sym.Name], id)
	}
	sc.indexed = true
}

// Lookup resolves name visible at loc, applying the six-step precedence
// order. It never follows a hierarchical dot chain itself (the caller does
// that with the returned Selectors); Lookup only resolves the head
// identifier.
func Lookup(c *Context, name source.StringID, loc LookupLocation, flags Flags) Result {
	var res Result

	if sym := lookupDirectAndEnclosing(c, name, loc, flags, &res); sym.IsValid() {
		res.Found = sym
		return res
	}

	// Step 3: explicit imports.
	if sym := lookupExplicitImports(c, name, loc); sym.IsValid() {
		res.Found = sym
		res.WasImported = true
		return res
	}

	// Step 4: wildcard imports.
	if flags&FlagDisallowWildcardImport == 0 {
		sym, ambiguous, sawBad := lookupWildcardImports(c, name, loc)
		if ambiguous {
			res.SawBadImport = true
			res.AddDiag(diag.New(diag.NameAmbiguousWildcard, source.Span{}, c.Strings.MustLookup(name)))
			return res
		}
		if sawBad {
			res.SawBadImport = true
		}
		if sym.IsValid() {
			res.Found = sym
			res.WasImported = true
			return res
		}
	}

	// Step 5: top-level definition table.
	if c.Definitions != nil {
		if sym := c.Definitions(name); sym.IsValid() {
			res.Found = sym
			return res
		}
	}

	// Step 6: std built-in package.
	if c.StdPackage.IsValid() {
		c.realize(c.StdPackage)
		c.ensureIndexed(c.StdPackage)
		if syms := c.Table.Scope(c.StdPackage).nameIndex[name]; len(syms) > 0 {
			res.Found = syms[0]
			return res
		}
	}

	res.AddDiag(unresolvedDiag(c, name, &res))
	return res
}

// lookupDirectAndEnclosing implements precedence steps 1-2: direct members
// of loc.Scope visible at loc.Index, then enclosing scopes outward.
func lookupDirectAndEnclosing(c *Context, name source.StringID, loc LookupLocation, flags Flags, res *Result) SymbolID {
	scope := loc.Scope
	for scope.IsValid() {
		c.realize(scope)
		c.ensureIndexed(scope)
		sc := c.Table.Scope(scope)
		if candidates, ok := sc.nameIndex[name]; ok {
			for _, id := range candidates {
				sym := c.Table.Symbol(id)
				if sym == nil {
					continue
				}
				if flags&FlagAllowDeclaredAfter == 0 && scope == loc.Scope {
					if Compare(c.Table, LookupLocation{Scope: scope, Index: sym.Index}, loc) > 0 {
						continue
					}
				}
				return id
			}
		}
		loc = LookupLocation{Scope: sc.Parent, Index: parentIndexOf(c.Table, scope)}
		scope = sc.Parent
	}
	return NoSymbolID
}

func parentIndexOf(t *Table, scope ScopeID) Index {
	sc := t.Scope(scope)
	if sc == nil || !sc.Self.IsValid() {
		return Index(^uint32(0))
	}
	return t.Symbol(sc.Self).Index
}

func lookupExplicitImports(c *Context, name source.StringID, loc LookupLocation) SymbolID {
	scope := loc.Scope
	for scope.IsValid() {
		sc := c.Table.Scope(scope)
		if sym, ok := sc.explicitImports[name]; ok {
			return sym
		}
		scope = sc.Parent
	}
	return NoSymbolID
}

func lookupWildcardImports(c *Context, name source.StringID, loc LookupLocation) (found SymbolID, ambiguous bool, sawBad bool) {
	scope := loc.Scope
	for scope.IsValid() {
		sc := c.Table.Scope(scope)
		var matches []SymbolID
		for _, wi := range sc.wildcardImports {
			if scope == loc.Scope && wi.At > loc.Index {
				continue
			}
			pkgSym := c.Table.Symbol(wi.Package)
			if pkgSym == nil || !pkgSym.OwnScope.IsValid() {
				continue
			}
			c.realize(pkgSym.OwnScope)
			c.ensureIndexed(pkgSym.OwnScope)
			if cands, ok := c.Table.Scope(pkgSym.OwnScope).nameIndex[name]; ok && len(cands) > 0 {
				matches = append(matches, cands[0])
			}
		}
		if len(matches) > 1 {
			return NoSymbolID, true, true
		}
		if len(matches) == 1 {
			return matches[0], false, false
		}
		scope = sc.Parent
	}
	return NoSymbolID, false, false
}

// unresolvedDiag reports an unknown identifier, appending a typo-correction
// suggestion when one is found within TypoLimit attempts.
func unresolvedDiag(c *Context, name source.StringID, res *Result) diag.Diagnostic {
	nameStr := c.Strings.MustLookup(name)
	d := diag.New(diag.NameUnknownIdentifier, source.Span{}, nameStr)
	if suggestion, ok := suggestCorrection(c, nameStr); ok {
		d.Args = append(d.Args, "did you mean '"+suggestion+"'?")
	}
	_ = res
	return d
}

func suggestCorrection(c *Context, name string) (string, bool) {
	if c.typoBudgetUsed >= c.TypoLimit && c.TypoLimit > 0 {
		return "", false
	}
	c.typoBudgetUsed++
	type cand struct {
		name string
		dist int
	}
	var best []cand
	for _, s := range c.Strings.Snapshot() {
		if s == "" || s == name {
			continue
		}
		d := levenshtein.ComputeDistance(name, s)
		if d <= 2 {
			best = append(best, cand{s, d})
		}
	}
	if len(best) == 0 {
		return "", false
	}
	sort.Slice(best, func(i, j int) bool {
		if best[i].dist != best[j].dist {
			return best[i].dist < best[j].dist
		}
		return suggestionCollator.CompareString(best[i].name, best[j].name) < 0
	})
	return best[0].name, true
}
