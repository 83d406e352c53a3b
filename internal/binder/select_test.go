package binder

import (
	"testing"

	"velab/internal/source"
	"velab/internal/symbols"
	"velab/internal/syntax"
	"velab/internal/types"
)

func TestBindElementSelectOfVectorYieldsOneBit(t *testing.T) {
	bd, tree, _, _, _ := newBinderFixture()
	base := addIntLiteral(tree, "10", 8, false) // 0b00001010
	index := addIntLiteral(tree, "1", 4, false)
	se := tree.Builder().AddExpr(syntax.Expr{Kind: syntax.ExprElementSelect, Base: base, LHS: index})

	out := bd.Bind(tree, se, symbols.LookupLocation{})
	e := bd.Tree().Expr(out)
	rt, ok := bd.Types.Lookup(e.Type)
	if !ok || rt.Width != 1 {
		t.Fatalf("expected a 1-bit result, got %+v", rt)
	}
	got, ok := e.Const.Int.AsInt64()
	if !e.ConstValid || !ok || got != 1 { // bit 1 of 0b1010 is 1
		t.Fatalf("expected bit 1 to fold to 1, got %+v", e.Const)
	}
}

func TestBindElementSelectOfNonIndexableReportsDiagnostic(t *testing.T) {
	bd, tree, _, _, _ := newBinderFixture()
	base := tree.Builder().AddExpr(syntax.Expr{Kind: syntax.ExprStringLiteral, StrVal: "hi"})
	index := addIntLiteral(tree, "0", 4, false)
	se := tree.Builder().AddExpr(syntax.Expr{Kind: syntax.ExprElementSelect, Base: base, LHS: index})

	out := bd.Bind(tree, se, symbols.LookupLocation{})
	e := bd.Tree().Expr(out)
	if e.Type != bd.Types.Builtins().Error {
		t.Fatalf("expected the error type for an unindexable base, got %+v", e.Type)
	}
	if len(bd.Diags.Entries()) == 0 {
		t.Fatalf("expected a diagnostic")
	}
}

func TestBindRangeSelectConstantBoundsComputesWidth(t *testing.T) {
	bd, tree, _, _, _ := newBinderFixture()
	base := addIntLiteral(tree, "255", 8, false)
	left := addIntLiteral(tree, "3", 4, false)
	right := addIntLiteral(tree, "0", 4, false)
	se := tree.Builder().AddExpr(syntax.Expr{
		Kind: syntax.ExprRangeSelect, Base: base, LHS: left, Extra: right, RangeKind: syntax.RangeConstant,
	})

	out := bd.Bind(tree, se, symbols.LookupLocation{})
	e := bd.Tree().Expr(out)
	rt, ok := bd.Types.Lookup(e.Type)
	if !ok || rt.Width != 4 {
		t.Fatalf("expected a 4-bit result for [3:0], got %+v", rt)
	}
	got, ok := e.Const.Int.AsInt64()
	if !e.ConstValid || !ok || got != 15 {
		t.Fatalf("expected bits [3:0] of 255 to fold to 15, got %+v", e.Const)
	}
}

func TestBindRangeSelectIndexedPartUsesRightAsWidth(t *testing.T) {
	bd, tree, _, _, _ := newBinderFixture()
	base := addIntLiteral(tree, "255", 8, false)
	left := addIntLiteral(tree, "0", 4, false)
	right := addIntLiteral(tree, "4", 4, false)
	se := tree.Builder().AddExpr(syntax.Expr{
		Kind: syntax.ExprRangeSelect, Base: base, LHS: left, Extra: right, RangeKind: syntax.RangeIndexedUp,
	})

	out := bd.Bind(tree, se, symbols.LookupLocation{})
	e := bd.Tree().Expr(out)
	rt, ok := bd.Types.Lookup(e.Type)
	if !ok || rt.Width != 4 {
		t.Fatalf("expected the +: width operand (4) to become the result width, got %+v", rt)
	}
	if e.IndexedPart != true || e.Down {
		t.Fatalf("expected an up-indexed part-select, got IndexedPart=%v Down=%v", e.IndexedPart, e.Down)
	}
}

func TestBindMemberAccessResolvesKnownField(t *testing.T) {
	bd, _, _, strs, _ := newBinderFixture()
	fieldName := strs.Intern("valid")
	fieldType := bd.packedType(1, false, false)
	structType := bd.Types.Intern(types.Type{
		Kind:   types.KindPackedStruct,
		Width:  1,
		Fields: []types.FieldInfo{{Name: "valid", Type: fieldType}},
	})
	baseExpr := bd.b.Add(Expr{Kind: NamedValue, Type: structType})

	out := bd.memberAccessOf(baseExpr, fieldName, source.Span{})
	e := bd.Tree().Expr(out)
	if e.Type != fieldType {
		t.Fatalf("expected the resolved field's type, got %+v", e.Type)
	}
	if len(bd.Diags.Entries()) != 0 {
		t.Fatalf("expected no diagnostics for a known field, got %v", bd.Diags.Entries())
	}
}

func TestBindMemberAccessUnknownFieldReportsDiagnostic(t *testing.T) {
	bd, _, _, strs, _ := newBinderFixture()
	name := strs.Intern("nope")
	structType := bd.Types.Intern(types.Type{Kind: types.KindPackedStruct, Width: 0})
	baseExpr := bd.b.Add(Expr{Kind: NamedValue, Type: structType})

	out := bd.memberAccessOf(baseExpr, name, source.Span{})
	e := bd.Tree().Expr(out)
	if e.Type != bd.Types.Builtins().Error {
		t.Fatalf("expected the error type for an unknown field")
	}
	if len(bd.Diags.Entries()) == 0 {
		t.Fatalf("expected a diagnostic")
	}
}
