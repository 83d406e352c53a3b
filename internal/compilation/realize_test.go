package compilation

import (
	"testing"

	"velab/internal/symbols"
	"velab/internal/syntax"
)

func TestRealizeGenerateIfTakesTrueBranch(t *testing.T) {
	c := New(DefaultOptions())
	sb := syntax.NewBuilder()
	cond := intLitExpr(sb, "1", 1)
	trueVar := c.Strings.Intern("onTrue")
	falseVar := c.Strings.Intern("onFalse")
	trueItem := sb.AddItem(syntax.Item{Kind: syntax.ItemVariable, Name: trueVar})
	falseItem := sb.AddItem(syntax.Item{Kind: syntax.ItemVariable, Name: falseVar})
	genItem := &syntax.Item{Kind: syntax.ItemGenerateIf, GenCond: cond, Body: []syntax.ItemID{trueItem}, GenElse: []syntax.ItemID{falseItem}}
	tree := syntax.NewTree(1, 1, "", nil, sb)

	scope := c.Syms.NewScope(symbols.ScopeInstanceBody, c.rootScope)
	c.realizeGenerate(tree, scope, genItem)

	sc := c.Syms.Scope(scope)
	if len(sc.Members()) != 1 {
		t.Fatalf("expected exactly one generate-block child, got %d", len(sc.Members()))
	}
	blockSym := c.Syms.Symbol(sc.Members()[0])
	if blockSym.Kind != symbols.KindGenerateBlock {
		t.Fatalf("expected a KindGenerateBlock child, got %v", blockSym.Kind)
	}
	inner := c.Syms.Scope(blockSym.OwnScope)
	if len(inner.Members()) != 1 {
		t.Fatalf("expected one declared member in the taken branch, got %d", len(inner.Members()))
	}
	if c.Syms.Symbol(inner.Members()[0]).Name != trueVar {
		t.Fatalf("expected the true branch's variable to be declared, got the false branch's")
	}
}

func TestRealizeGenerateIfTakesFalseBranch(t *testing.T) {
	c := New(DefaultOptions())
	sb := syntax.NewBuilder()
	cond := intLitExpr(sb, "0", 1)
	trueVar := c.Strings.Intern("onTrue")
	falseVar := c.Strings.Intern("onFalse")
	trueItem := sb.AddItem(syntax.Item{Kind: syntax.ItemVariable, Name: trueVar})
	falseItem := sb.AddItem(syntax.Item{Kind: syntax.ItemVariable, Name: falseVar})
	genItem := &syntax.Item{Kind: syntax.ItemGenerateIf, GenCond: cond, Body: []syntax.ItemID{trueItem}, GenElse: []syntax.ItemID{falseItem}}
	tree := syntax.NewTree(1, 1, "", nil, sb)

	scope := c.Syms.NewScope(symbols.ScopeInstanceBody, c.rootScope)
	c.realizeGenerate(tree, scope, genItem)

	sc := c.Syms.Scope(scope)
	blockSym := c.Syms.Symbol(sc.Members()[0])
	inner := c.Syms.Scope(blockSym.OwnScope)
	if c.Syms.Symbol(inner.Members()[0]).Name != falseVar {
		t.Fatalf("expected the false branch's variable to be declared when the condition is 0")
	}
}

func TestRealizeGenerateForUnrollsUntilConditionFails(t *testing.T) {
	c := New(DefaultOptions())
	sb := syntax.NewBuilder()
	iName := c.Strings.Intern("i")

	zero := intLitExpr(sb, "0", 32)
	initItem := sb.AddItem(syntax.Item{Kind: syntax.ItemParam, Name: iName, ParamDefault: zero})

	iRef := sb.AddExpr(syntax.Expr{Kind: syntax.ExprIdentifier, Name: iName})
	one := intLitExpr(sb, "1", 32)
	stepExpr := sb.AddExpr(syntax.Expr{Kind: syntax.ExprBinary, Binary: syntax.BinAdd, LHS: iRef, RHS: one})
	stepItem := sb.AddItem(syntax.Item{Kind: syntax.ItemParam, Name: iName, ParamDefault: stepExpr})

	iRefForCond := sb.AddExpr(syntax.Expr{Kind: syntax.ExprIdentifier, Name: iName})
	three := intLitExpr(sb, "3", 32)
	condExpr := sb.AddExpr(syntax.Expr{Kind: syntax.ExprBinary, Binary: syntax.BinLt, LHS: iRefForCond, RHS: three})

	genItem := &syntax.Item{
		Kind: syntax.ItemGenerateFor, GenLabel: c.Strings.Intern("g"),
		GenInit: initItem, GenStep: stepItem, GenCondLoop: condExpr,
	}
	tree := syntax.NewTree(1, 1, "", nil, sb)

	scope := c.Syms.NewScope(symbols.ScopeInstanceBody, c.rootScope)
	c.realizeGenerateFor(tree, scope, genItem)

	// The loop variable's own scope is allocated before GenCondLoop is
	// checked, so the failing iteration (i=3) still leaves behind an
	// unrolled child scope even though its body is never declared.
	sc := c.Syms.Scope(scope)
	if len(sc.Members()) != 4 {
		t.Fatalf("expected 4 loop-variable scopes (0..3, the last failing the condition), got %d", len(sc.Members()))
	}
	for idx, memberID := range sc.Members() {
		block := c.Syms.Symbol(memberID)
		inner := c.Syms.Scope(block.OwnScope)
		loopVar := c.Syms.Symbol(inner.Members()[0])
		n, ok := loopVar.Value.Int.AsInt64()
		if !ok || n != int64(idx) {
			t.Fatalf("expected iteration %d's loop variable to be %d, got %+v", idx, idx, loopVar.Value)
		}
	}
}
