package symbols

import (
	"testing"

	"velab/internal/diag"
	"velab/internal/source"
)

func TestResolverDeclareAndEnter(t *testing.T) {
	tb := NewTable()
	root := tb.NewScope(ScopeRoot, NoScopeID)
	bag := diag.NewBag(0)
	r := NewResolver(tb, root, bag)

	strs := source.NewInterner()
	name := strs.Intern("top")
	id, own := r.Declare(Symbol{Kind: KindModuleDef, Name: name}, ScopeDefinition)
	if !own.IsValid() {
		t.Fatalf("expected an own scope for a module definition")
	}
	r.Enter(own)
	if r.Current() != own {
		t.Fatalf("expected Current to be the entered scope")
	}
	r.Leave()
	if r.Current() != root {
		t.Fatalf("expected Leave to restore root as current")
	}
	if tb.Symbol(id).Name != name {
		t.Fatalf("expected declared symbol to carry its name")
	}
}

func TestResolverDeclareReportsRedeclaration(t *testing.T) {
	tb := NewTable()
	root := tb.NewScope(ScopeRoot, NoScopeID)
	bag := diag.NewBag(0)
	r := NewResolver(tb, root, bag)
	strs := source.NewInterner()
	name := strs.Intern("dup")

	r.Declare(Symbol{Kind: KindVariable, Name: name}, ScopeInvalid)
	r.Declare(Symbol{Kind: KindVariable, Name: name}, ScopeInvalid)

	if len(bag.Entries()) == 0 {
		t.Fatalf("expected a redeclaration diagnostic to be reported")
	}
}

func TestResolverLeaveWithoutEnterPanics(t *testing.T) {
	tb := NewTable()
	root := tb.NewScope(ScopeRoot, NoScopeID)
	r := NewResolver(tb, root, diag.NewBag(0))

	defer func() {
		if recover() == nil {
			t.Fatalf("expected Leave on an empty stack to panic")
		}
	}()
	r.Leave()
}

func TestRealizeAllVisitsNestedScopesOnce(t *testing.T) {
	tb := NewTable()
	root := tb.NewScope(ScopeRoot, NoScopeID)
	modID, modScope := tb.AddSymbol(root, Symbol{Kind: KindModuleDef}, ScopeDefinition)
	_ = modID

	rz := &countingRealizer{}
	tb.Scope(modScope).AddDeferred(DeferredGenerateBlock, 1)
	RealizeAll(tb, rz, root)
	RealizeAll(tb, rz, root) // idempotent: second call must not re-realize

	if rz.calls != 1 {
		t.Fatalf("expected exactly one Realize call, got %d", rz.calls)
	}
}

type countingRealizer struct{ calls int }

func (c *countingRealizer) Realize(scope ScopeID, member DeferredMember) { c.calls++ }
