package symbols

import (
	"velab/internal/diag"
	"velab/internal/source"
	"velab/internal/syntax"
)

// Resolver walks syntax in declaration order, maintaining a scope stack and
// declaring symbols as it goes.
type Resolver struct {
	table *Table
	stack []ScopeID
	diags *diag.Bag
}

// NewResolver creates a resolver rooted at root, ready to descend into it.
func NewResolver(t *Table, root ScopeID, diags *diag.Bag) *Resolver {
	return &Resolver{table: t, stack: []ScopeID{root}, diags: diags}
}

// Current returns the innermost scope on the stack.
func (r *Resolver) Current() ScopeID { return r.stack[len(r.stack)-1] }

// Enter pushes scope as the new innermost scope.
func (r *Resolver) Enter(scope ScopeID) { r.stack = append(r.stack, scope) }

// Leave pops the innermost scope. Panics on stack underflow, since it
// signals a resolver bug rather than malformed input.
func (r *Resolver) Leave() {
	if len(r.stack) <= 1 {
		panic("symbols: Leave without matching Enter")
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// EnterNew allocates a fresh child scope of kind under Current, pushes it,
// and returns its id. Used for unnamed scopes (begin/end blocks) that have
// no owning symbol.
func (r *Resolver) EnterNew(kind ScopeKind) ScopeID {
	id := r.table.NewScope(kind, r.Current())
	r.Enter(id)
	return id
}

// Declare adds sym as a member of Current, reporting (but not rejecting) a
// same-name redeclaration within the same scope — duplicate detection is a
// diagnostic, not a structural error, so the duplicate still gets a slot and
// later lookups see the first declaration.
func (r *Resolver) Declare(sym Symbol, ownScopeKind ScopeKind) (SymbolID, ScopeID) {
	scope := r.Current()
	if sym.Name != source.NoStringID {
		if prior := r.findDirect(scope, sym.Name); prior.IsValid() {
			r.diags.Report(diag.New(diag.NameInfo, sym.Span, "redeclaration").WithSeverity(diag.SevWarning))
		}
	}
	return r.table.AddSymbol(scope, sym, ownScopeKind)
}

func (r *Resolver) findDirect(scope ScopeID, name source.StringID) SymbolID {
	sc := r.table.Scope(scope)
	for _, id := range sc.members {
		if s := r.table.Symbol(id); s != nil && s.Name == name {
			return id
		}
	}
	return NoSymbolID
}

// Defer registers item for postponed elaboration in Current.
func (r *Resolver) Defer(kind DeferredKind, item syntax.ItemID) {
	r.table.Scope(r.Current()).AddDeferred(kind, item)
}

// RealizeAll walks every scope under root and forces deferred-member
// realization via rz, used by the compilation driver once it is ready to
// observe a stable view of every scope.
func RealizeAll(t *Table, rz Realizer, root ScopeID) {
	realizeRec(t, rz, root, map[ScopeID]bool{})
}

func realizeRec(t *Table, rz Realizer, scope ScopeID, seen map[ScopeID]bool) {
	if seen[scope] {
		return
	}
	seen[scope] = true
	sc := t.Scope(scope)
	if sc == nil {
		return
	}
	if !sc.deferredRealized && rz != nil {
		sc.deferredRealized = true
		for _, m := range sc.deferred {
			rz.Realize(scope, m)
		}
	}
	for _, id := range sc.members {
		sym := t.Symbol(id)
		if sym != nil && sym.OwnScope.IsValid() {
			realizeRec(t, rz, sym.OwnScope, seen)
		}
	}
}
