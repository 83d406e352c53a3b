package compilation

import (
	"testing"

	"velab/internal/source"
	"velab/internal/symbols"
	"velab/internal/syntax"
)

func TestApplyBindsByTargetDefinitionReachesEveryInstance(t *testing.T) {
	c := New(DefaultOptions())
	sb := syntax.NewBuilder()
	leafName := c.Strings.Intern("leaf")
	leafItem := sb.AddItem(syntax.Item{Kind: syntax.ItemModule, Name: leafName})

	u1 := sb.AddItem(syntax.Item{Kind: syntax.ItemInstance, DefName: leafName, InstName: c.Strings.Intern("u1")})
	u2 := sb.AddItem(syntax.Item{Kind: syntax.ItemInstance, DefName: leafName, InstName: c.Strings.Intern("u2")})
	topName := c.Strings.Intern("top")
	topItem := sb.AddItem(syntax.Item{Kind: syntax.ItemModule, Name: topName, Body: []syntax.ItemID{u1, u2}})

	monName := c.Strings.Intern("mon")
	monItem := sb.AddItem(syntax.Item{Kind: syntax.ItemModule, Name: monName})
	bindInst := sb.AddItem(syntax.Item{Kind: syntax.ItemInstance, DefName: monName, InstName: c.Strings.Intern("u_mon")})
	bindItem := sb.AddItem(syntax.Item{Kind: syntax.ItemBind, BindTargetDef: leafName, BindInstance: bindInst})

	tree := syntax.NewTree(1, 1, "", []syntax.ItemID{leafItem, topItem, monItem}, sb)
	if err := c.AddSyntaxTree(tree); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.pendingBinds = append(c.pendingBinds, pendingBind{tree: tree, item: bindItem, scope: c.rootScope})

	c.ensureFinalized()

	leafDefID := c.Defs.ByName(leafName)
	var bodiesWithMon int
	for _, b := range c.instanceBodiesOf(leafDefID) {
		sc := c.Syms.Scope(b.Scope)
		for _, id := range sc.Members() {
			if sym := c.Syms.Symbol(id); sym != nil && sym.Kind == symbols.KindInstance && sym.Name == c.Strings.Intern("u_mon") {
				bodiesWithMon++
			}
		}
	}
	if bodiesWithMon != 1 {
		t.Fatalf("expected the bind to reach the single shared leaf InstanceBody once, got %d", bodiesWithMon)
	}
}

func TestResolveHierPathWalksInstanceChain(t *testing.T) {
	c := New(DefaultOptions())
	topName := c.Strings.Intern("top")
	subName := c.Strings.Intern("sub")

	rootSym, hierScope := c.Syms.AddSymbol(c.rootScope, symbols.Symbol{Kind: symbols.KindRoot}, symbols.ScopeRoot)
	c.root = rootSym
	_, topScope := c.Syms.AddSymbol(hierScope, symbols.Symbol{Kind: symbols.KindInstance, Name: topName}, symbols.ScopeInstanceBody)
	subID, _ := c.Syms.AddSymbol(topScope, symbols.Symbol{Kind: symbols.KindInstance, Name: subName}, symbols.ScopeInstanceBody)

	got := c.resolveHierPath([]source.StringID{topName, subName})
	if got != subID {
		t.Fatalf("expected resolveHierPath to find 'sub' under 'top', got %v want %v", got, subID)
	}
}

func TestResolveHierPathMissingSegmentReturnsNoSymbol(t *testing.T) {
	c := New(DefaultOptions())
	rootSym, hierScope := c.Syms.AddSymbol(c.rootScope, symbols.Symbol{Kind: symbols.KindRoot}, symbols.ScopeRoot)
	c.root = rootSym
	_ = hierScope

	got := c.resolveHierPath([]source.StringID{c.Strings.Intern("nope")})
	if got != symbols.NoSymbolID {
		t.Fatalf("expected a missing path segment to resolve to NoSymbolID, got %v", got)
	}
}
