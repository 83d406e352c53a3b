package binder

import (
	"testing"

	"velab/internal/symbols"
	"velab/internal/syntax"
)

func TestBindCallResolvesSubroutineAndConvertsArgs(t *testing.T) {
	bd, tree, tb, strs, root := newBinderFixture()
	name := strs.Intern("clog2")
	paramType := bd.packedType(32, false, false)
	paramSym, _ := tb.AddSymbol(root, symbols.Symbol{Kind: symbols.KindVariable, Type: paramType}, symbols.ScopeInvalid)
	retType := bd.packedType(32, false, false)
	fnSym, _ := tb.AddSymbol(root, symbols.Symbol{
		Kind: symbols.KindSubroutine, Name: name, IsFunction: true,
		ReturnType: retType, Params: []symbols.SymbolID{paramSym},
	}, symbols.ScopeInvalid)

	arg := addIntLiteral(tree, "4", 4, false)
	se := tree.Builder().AddExpr(syntax.Expr{Kind: syntax.ExprCall, Name: name, Elems: []syntax.ExprID{arg}})

	out := bd.Bind(tree, se, symbols.After(tb.Symbol(fnSym)))
	e := bd.Tree().Expr(out)
	if e.Kind != Call {
		t.Fatalf("expected Call, got %+v", e)
	}
	if e.Target != fnSym {
		t.Fatalf("expected the call to target %d, got %d", fnSym, e.Target)
	}
	if e.Type != retType {
		t.Fatalf("expected the call's type to be the function's return type")
	}
	argExpr := bd.Tree().Expr(e.Elems[0])
	if argExpr.Type != paramType {
		t.Fatalf("expected the argument to be converted to the parameter's type, got %v", argExpr.Type)
	}
}

func TestBindCallToNonSubroutineReportsDiagnostic(t *testing.T) {
	bd, tree, tb, strs, root := newBinderFixture()
	name := strs.Intern("notafn")
	tb.AddSymbol(root, symbols.Symbol{Kind: symbols.KindVariable, Name: name}, symbols.ScopeInvalid)

	se := tree.Builder().AddExpr(syntax.Expr{Kind: syntax.ExprCall, Name: name})
	out := bd.Bind(tree, se, symbols.LookupLocation{Scope: root, Index: 1})
	e := bd.Tree().Expr(out)
	if e.Kind != Bad {
		t.Fatalf("expected Bad for a call to a non-subroutine, got %+v", e)
	}
	if len(bd.Diags.Entries()) == 0 {
		t.Fatalf("expected a diagnostic")
	}
}

func TestBindCastMarksConversionExplicit(t *testing.T) {
	bd, tree, _, _, _ := newBinderFixture()
	target := tree.Builder().AddType(syntax.TypeNode{Kind: syntax.TypeByte})
	inner := addIntLiteral(tree, "3", 4, false)
	se := tree.Builder().AddExpr(syntax.Expr{Kind: syntax.ExprCast, TargetType: target, LHS: inner})

	out := bd.Bind(tree, se, symbols.LookupLocation{})
	e := bd.Tree().Expr(out)
	if e.Kind != Conversion {
		t.Fatalf("expected Conversion, got %+v", e)
	}
	if e.Implicit {
		t.Fatalf("expected an explicit cast to clear Implicit")
	}
	got, ok := e.Const.Int.AsInt64()
	if !e.ConstValid || !ok || got != 3 {
		t.Fatalf("expected the cast to fold to 3, got %+v", e.Const)
	}
}
