package binder

import (
	"testing"

	"velab/internal/symbols"
	"velab/internal/syntax"
)

func TestBindConcatJoinsWidthsAndFolds(t *testing.T) {
	bd, tree, _, _, _ := newBinderFixture()
	a := addIntLiteral(tree, "3", 4, false)  // 0011
	b := addIntLiteral(tree, "1", 2, false)  // 01
	se := tree.Builder().AddExpr(syntax.Expr{Kind: syntax.ExprConcat, Elems: []syntax.ExprID{a, b}})

	out := bd.Bind(tree, se, symbols.LookupLocation{})
	e := bd.Tree().Expr(out)
	rt, ok := bd.Types.Lookup(e.Type)
	if !ok || rt.Width != 6 {
		t.Fatalf("expected a 6-bit concat result, got %+v", rt)
	}
	got, ok := e.Const.Int.AsInt64()
	if !e.ConstValid || !ok || got != 0b001101 { // 0011 ++ 01
		t.Fatalf("expected the concat to fold to 0b001101, got %+v", e.Const)
	}
}

func TestBindReplicationRepeatsValue(t *testing.T) {
	bd, tree, _, _, _ := newBinderFixture()
	count := addIntLiteral(tree, "3", 32, false)
	elem := addIntLiteral(tree, "1", 2, false) // 01
	se := tree.Builder().AddExpr(syntax.Expr{Kind: syntax.ExprReplication, Count: count, Elems: []syntax.ExprID{elem}})

	out := bd.Bind(tree, se, symbols.LookupLocation{})
	e := bd.Tree().Expr(out)
	rt, ok := bd.Types.Lookup(e.Type)
	if !ok || rt.Width != 6 {
		t.Fatalf("expected width 2*3=6, got %+v", rt)
	}
	got, ok := e.Const.Int.AsInt64()
	if !e.ConstValid || !ok || got != 0b010101 {
		t.Fatalf("expected {3{2'b01}} to fold to 0b010101, got %+v", e.Const)
	}
}

func TestBindReplicationNonConstantCountReportsDiagnostic(t *testing.T) {
	bd, tree, tb, strs, root := newBinderFixture()
	name := strs.Intern("n")
	symID, _ := tb.AddSymbol(root, symbols.Symbol{Kind: symbols.KindVariable, Name: name, Type: bd.packedType(32, false, false)}, symbols.ScopeInvalid)
	countID := tree.Builder().AddExpr(syntax.Expr{Kind: syntax.ExprIdentifier, Name: name})
	elem := addIntLiteral(tree, "1", 1, false)
	se := tree.Builder().AddExpr(syntax.Expr{Kind: syntax.ExprReplication, Count: countID, Elems: []syntax.ExprID{elem}})

	bd.Bind(tree, se, symbols.After(tb.Symbol(symID)))
	if len(bd.Diags.Entries()) == 0 {
		t.Fatalf("expected a non-constant replication count diagnostic")
	}
}

func TestBindAssignPatternArrayBuildsArrayConst(t *testing.T) {
	bd, tree, _, _, _ := newBinderFixture()
	a := addIntLiteral(tree, "1", 8, false)
	b := addIntLiteral(tree, "2", 8, false)
	se := tree.Builder().AddExpr(syntax.Expr{Kind: syntax.ExprAssignPatternPositional, Elems: []syntax.ExprID{a, b}})

	out := bd.Bind(tree, se, symbols.LookupLocation{})
	e := bd.Tree().Expr(out)
	if !e.ConstValid || len(e.Const.Elems) != 2 {
		t.Fatalf("expected a 2-element constant array, got %+v", e.Const)
	}
}

func TestBindAssignPatternStructCollectsFieldsAndKeys(t *testing.T) {
	bd, tree, _, strs, _ := newBinderFixture()
	fieldName := strs.Intern("valid")
	keyExpr := tree.Builder().AddExpr(syntax.Expr{Kind: syntax.ExprIdentifier, Name: fieldName})
	val := addIntLiteral(tree, "1", 1, false)
	se := tree.Builder().AddExpr(syntax.Expr{
		Kind: syntax.ExprAssignPatternForStruct, Elems: []syntax.ExprID{val}, Keys: []syntax.ExprID{keyExpr},
	})

	out := bd.Bind(tree, se, symbols.LookupLocation{})
	e := bd.Tree().Expr(out)
	if !e.ConstValid || len(e.Const.Fields) != 1 || e.Const.Fields[0].Name != "valid" {
		t.Fatalf("expected a struct constant keyed by 'valid', got %+v", e.Const)
	}
	if len(e.Keys) != 1 || e.Keys[0] != fieldName {
		t.Fatalf("expected the bound node to carry the field name, got %+v", e.Keys)
	}
}
