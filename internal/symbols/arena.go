package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// Table is the compilation's arena for scopes and symbols.
type Table struct {
	scopes  []*Scope
	symbols []Symbol
}

// NewTable creates an empty arena with sentinel index 0 reserved in both tables.
func NewTable() *Table {
	t := &Table{}
	t.scopes = append(t.scopes, nil)          // NoScopeID
	t.symbols = append(t.symbols, Symbol{})   // NoSymbolID
	return t
}

// NewScope allocates a scope with no owning symbol yet (compilation-unit,
// root) and returns its ID.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID) ScopeID {
	return t.newScope(kind, parent, NoSymbolID)
}

func (t *Table) newScope(kind ScopeKind, parent ScopeID, self SymbolID) ScopeID {
	n, err := safecast.Conv[uint32](len(t.scopes))
	if err != nil {
		panic(fmt.Errorf("symbols: scope arena overflow: %w", err))
	}
	id := ScopeID(n)
	t.scopes = append(t.scopes, newScope(kind, parent, self))
	return id
}

// Scope returns the scope for id, or nil if id is invalid.
func (t *Table) Scope(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(t.scopes) {
		return nil
	}
	return t.scopes[id]
}

// AddSymbol allocates sym into the given scope, assigns its monotonic Index,
// and appends it to the scope's member list. If sym.OwnScope is requested via
// ownScopeKind != ScopeInvalid, a matching scope is allocated and linked
// back.
func (t *Table) AddSymbol(scope ScopeID, sym Symbol, ownScopeKind ScopeKind) (SymbolID, ScopeID) {
	sc := t.Scope(scope)
	if sc == nil {
		panic("symbols: AddSymbol into invalid scope")
	}
	sym.Parent = scope
	sym.Index = sc.nextIndex()

	n, err := safecast.Conv[uint32](len(t.symbols))
	if err != nil {
		panic(fmt.Errorf("symbols: symbol arena overflow: %w", err))
	}
	id := SymbolID(n)

	var own ScopeID
	if ownScopeKind != ScopeInvalid {
		own = t.newScope(ownScopeKind, scope, id)
		sym.OwnScope = own
	}

	t.symbols = append(t.symbols, sym)
	sc.members = append(sc.members, id)
	sc.indexed = false // invalidate lazy name index
	return id, own
}

// Symbol returns the symbol for id, or nil if id is invalid.
func (t *Table) Symbol(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) >= len(t.symbols) {
		return nil
	}
	return &t.symbols[id]
}

// Len reports the number of allocated symbols, excluding the sentinel.
func (t *Table) Len() int { return len(t.symbols) - 1 }
