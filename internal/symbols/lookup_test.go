package symbols

import (
	"testing"

	"velab/internal/source"
)

func newLookupFixture() (*Table, *source.Interner, ScopeID) {
	tb := NewTable()
	strs := source.NewInterner()
	root := tb.NewScope(ScopeRoot, NoScopeID)
	return tb, strs, root
}

func TestLookupFindsDirectMember(t *testing.T) {
	tb, strs, root := newLookupFixture()
	name := strs.Intern("clk")
	id, _ := tb.AddSymbol(root, Symbol{Kind: KindVariable, Name: name}, ScopeInvalid)

	ctx := &Context{Table: tb, Strings: strs}
	res := Lookup(ctx, name, After(tb.Symbol(id)), FlagNone)
	if res.Found != id {
		t.Fatalf("expected to find %d, got %d (diags=%v)", id, res.Found, res.Diagnostics())
	}
}

func TestLookupRespectsDeclaredBeforeRestriction(t *testing.T) {
	tb, strs, root := newLookupFixture()
	name := strs.Intern("late")
	id, _ := tb.AddSymbol(root, Symbol{Kind: KindVariable, Name: name}, ScopeInvalid)
	sym := tb.Symbol(id)

	ctx := &Context{Table: tb, Strings: strs}
	res := Lookup(ctx, name, Before(sym), FlagNone)
	if res.Found.IsValid() {
		t.Fatalf("expected lookup before declaration to fail, got %d", res.Found)
	}
	if !res.HasError() {
		t.Fatalf("expected an unresolved-identifier diagnostic")
	}
}

func TestLookupAllowDeclaredAfterBypassesOrdering(t *testing.T) {
	tb, strs, root := newLookupFixture()
	name := strs.Intern("fwd")
	id, _ := tb.AddSymbol(root, Symbol{Kind: KindVariable, Name: name}, ScopeInvalid)
	sym := tb.Symbol(id)

	ctx := &Context{Table: tb, Strings: strs}
	res := Lookup(ctx, name, Before(sym), FlagAllowDeclaredAfter)
	if res.Found != id {
		t.Fatalf("expected FlagAllowDeclaredAfter to find %d, got %d", id, res.Found)
	}
}

func TestLookupWalksEnclosingScopes(t *testing.T) {
	tb, strs, root := newLookupFixture()
	name := strs.Intern("outer")
	outerID, _ := tb.AddSymbol(root, Symbol{Kind: KindVariable, Name: name}, ScopeInvalid)

	inner := tb.NewScope(ScopeBlock, root)
	ctx := &Context{Table: tb, Strings: strs}
	res := Lookup(ctx, name, LookupLocation{Scope: inner, Index: 1}, FlagAllowDeclaredAfter)
	if res.Found != outerID {
		t.Fatalf("expected to find the outer-scope symbol %d, got %d", outerID, res.Found)
	}
}

func TestLookupUnresolvedSuggestsTypoCorrection(t *testing.T) {
	tb, strs, root := newLookupFixture()
	existing := strs.Intern("counter")
	tb.AddSymbol(root, Symbol{Kind: KindVariable, Name: existing}, ScopeInvalid)
	typo := strs.Intern("countr")

	ctx := &Context{Table: tb, Strings: strs, TypoLimit: 5}
	res := Lookup(ctx, typo, EndOf(tb, root), FlagNone)
	if res.Found.IsValid() {
		t.Fatalf("expected unresolved lookup, got %d", res.Found)
	}
	diags := res.Diagnostics()
	if len(diags) != 1 || len(diags[0].Args) < 2 {
		t.Fatalf("expected a suggestion argument attached, got %+v", diags)
	}
}

func TestLookupFallsThroughToDefinitions(t *testing.T) {
	tb, strs, root := newLookupFixture()
	name := strs.Intern("top")
	defSym, _ := tb.AddSymbol(root, Symbol{Kind: KindModuleDef, Name: name}, ScopeInvalid)

	otherScope := tb.NewScope(ScopeBlock, NoScopeID)
	ctx := &Context{
		Table:   tb,
		Strings: strs,
		Definitions: func(n source.StringID) SymbolID {
			if n == name {
				return defSym
			}
			return NoSymbolID
		},
	}
	res := Lookup(ctx, name, LookupLocation{Scope: otherScope, Index: 1}, FlagNone)
	if res.Found != defSym {
		t.Fatalf("expected definition-table fallback to find %d, got %d", defSym, res.Found)
	}
}
