package eval

import (
	"testing"

	"velab/internal/binder"
	"velab/internal/constval"
	"velab/internal/symbols"
)

func TestResolveLValueNamedValue(t *testing.T) {
	ctx, tree := newEvalFixture()
	root := ctx.Syms.NewScope(symbols.ScopeRoot, symbols.NoScopeID)
	symID, _ := ctx.Syms.AddSymbol(root, symbols.Symbol{Kind: symbols.KindVariable}, symbols.ScopeInvalid)
	id := tree.Add(binder.Expr{Kind: binder.NamedValue, Sym: symID})

	lv, ok := ctx.resolveLValue(id)
	if !ok || lv.Sym != symID {
		t.Fatalf("expected to resolve to symbol %d, got %+v ok=%v", symID, lv, ok)
	}
}

func TestResolveLValueThroughElementSelect(t *testing.T) {
	ctx, tree := newEvalFixture()
	root := ctx.Syms.NewScope(symbols.ScopeRoot, symbols.NoScopeID)
	symID, _ := ctx.Syms.AddSymbol(root, symbols.Symbol{Kind: symbols.KindVariable}, symbols.ScopeInvalid)
	base := tree.Add(binder.Expr{Kind: binder.NamedValue, Sym: symID})
	idx := intLit(tree, 32, false, 2)
	id := tree.Add(binder.Expr{Kind: binder.ElementSelect, Base: base, Index: idx})

	lv, ok := ctx.resolveLValue(id)
	if !ok || len(lv.Path) != 1 || !lv.Path[0].isIndex || lv.Path[0].index != 2 {
		t.Fatalf("expected a single index-2 path step, got %+v ok=%v", lv, ok)
	}
}

func TestResolveLValueRejectsNonLValueShape(t *testing.T) {
	ctx, tree := newEvalFixture()
	id := intLit(tree, 8, false, 1)
	_, ok := ctx.resolveLValue(id)
	if ok {
		t.Fatalf("expected a plain literal to not resolve as an lvalue")
	}
}

func TestLoadReadsSymbolStoredValue(t *testing.T) {
	ctx, _ := newEvalFixture()
	root := ctx.Syms.NewScope(symbols.ScopeRoot, symbols.NoScopeID)
	value := constval.FromInteger(constval.FromInt64(8, false, 42))
	symID, _ := ctx.Syms.AddSymbol(root, symbols.Symbol{Kind: symbols.KindVariable, Value: value, ValueValid: true}, symbols.ScopeInvalid)

	got := ctx.Load(LValue{Sym: symID})
	n, ok := got.Int.AsInt64()
	if !ok || n != 42 {
		t.Fatalf("expected 42, got %+v", got)
	}
}

func TestStoreThenLoadRoundTripsThroughGlobals(t *testing.T) {
	ctx, _ := newEvalFixture()
	root := ctx.Syms.NewScope(symbols.ScopeRoot, symbols.NoScopeID)
	symID, _ := ctx.Syms.AddSymbol(root, symbols.Symbol{Kind: symbols.KindVariable}, symbols.ScopeInvalid)

	ctx.Store(LValue{Sym: symID}, constval.FromInteger(constval.FromInt64(8, false, 7)))
	got := ctx.Load(LValue{Sym: symID})
	n, ok := got.Int.AsInt64()
	if !ok || n != 7 {
		t.Fatalf("expected 7, got %+v", got)
	}
}

func TestResolveLValueThroughRangeSelect(t *testing.T) {
	ctx, tree := newEvalFixture()
	root := ctx.Syms.NewScope(symbols.ScopeRoot, symbols.NoScopeID)
	symID, _ := ctx.Syms.AddSymbol(root, symbols.Symbol{Kind: symbols.KindVariable}, symbols.ScopeInvalid)
	base := tree.Add(binder.Expr{Kind: binder.NamedValue, Sym: symID})
	left := intLit(tree, 32, false, 3)
	right := intLit(tree, 32, false, 0)
	id := tree.Add(binder.Expr{Kind: binder.RangeSelect, Base: base, RangeLeft: left, RangeRight: right})

	lv, ok := ctx.resolveLValue(id)
	if !ok || len(lv.Path) != 1 || !lv.Path[0].isRange || lv.Path[0].hi != 3 || lv.Path[0].lo != 0 {
		t.Fatalf("expected a single range[3:0] path step, got %+v ok=%v", lv, ok)
	}
}

func TestStoreScalarBitSelectPreservesOtherBits(t *testing.T) {
	ctx, _ := newEvalFixture()
	root := ctx.Syms.NewScope(symbols.ScopeRoot, symbols.NoScopeID)
	symID, _ := ctx.Syms.AddSymbol(root, symbols.Symbol{Kind: symbols.KindVariable}, symbols.ScopeInvalid)
	ctx.storeBase(symID, constval.FromInteger(constval.FromInt64(8, false, 0)))

	ctx.Store(LValue{Sym: symID, Path: []step{{isIndex: true, index: 1}}}, constval.FromBool(true))
	got := ctx.Load(LValue{Sym: symID})
	n, ok := got.Int.AsInt64()
	if !ok || n != 2 {
		t.Fatalf("expected bit 1 set (value 2), got %+v ok=%v", got, ok)
	}
}

func TestStoreScalarRangeSelectPreservesOutsideBits(t *testing.T) {
	ctx, _ := newEvalFixture()
	root := ctx.Syms.NewScope(symbols.ScopeRoot, symbols.NoScopeID)
	symID, _ := ctx.Syms.AddSymbol(root, symbols.Symbol{Kind: symbols.KindVariable}, symbols.ScopeInvalid)
	ctx.storeBase(symID, constval.FromInteger(constval.FromInt64(8, false, 0xF0)))

	ctx.Store(LValue{Sym: symID, Path: []step{{isRange: true, hi: 3, lo: 0}}}, constval.FromInteger(constval.FromInt64(4, false, 0xA)))
	got := ctx.Load(LValue{Sym: symID})
	n, ok := got.Int.AsInt64()
	if !ok || n != 0xFA {
		t.Fatalf("expected 0xFA (high nibble preserved, low nibble overwritten), got %#x ok=%v", n, ok)
	}
}

func TestStorePreservesUntouchedArrayElements(t *testing.T) {
	ctx, _ := newEvalFixture()
	root := ctx.Syms.NewScope(symbols.ScopeRoot, symbols.NoScopeID)
	symID, _ := ctx.Syms.AddSymbol(root, symbols.Symbol{Kind: symbols.KindVariable}, symbols.ScopeInvalid)
	initial := constval.Value{Kind: constval.KindArray, Elems: []constval.Value{
		constval.FromInteger(constval.FromInt64(8, false, 1)),
		constval.FromInteger(constval.FromInt64(8, false, 2)),
	}}
	ctx.storeBase(symID, initial)

	ctx.Store(LValue{Sym: symID, Path: []step{{isIndex: true, index: 1}}}, constval.FromInteger(constval.FromInt64(8, false, 99)))
	got := ctx.Load(LValue{Sym: symID})
	n0, _ := got.Elems[0].Int.AsInt64()
	n1, _ := got.Elems[1].Int.AsInt64()
	if n0 != 1 {
		t.Fatalf("expected element 0 to remain 1, got %d", n0)
	}
	if n1 != 99 {
		t.Fatalf("expected element 1 to be overwritten to 99, got %d", n1)
	}
}
