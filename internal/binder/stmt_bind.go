package binder

import (
	"velab/internal/diag"
	"velab/internal/source"
	"velab/internal/symbols"
	"velab/internal/syntax"
)

// BindStmt binds one statement-shaped syntax Item — a block/if/for/return/
// expression statement nested inside a function or task body — into the
// bound statement tree, visible at loc.
func (bd *Binder) BindStmt(tree *syntax.Tree, id syntax.ItemID, loc symbols.LookupLocation) StmtID {
	item := tree.Builder().Item(id)
	if item == nil {
		return NoStmtID
	}
	switch item.Kind {
	case syntax.ItemStmtBlock:
		return bd.bindStmtList(tree, item.Body, loc, item.Span)
	case syntax.ItemStmtIf:
		return bd.bindStmtIf(tree, item, loc)
	case syntax.ItemStmtFor:
		return bd.bindStmtFor(tree, item, loc)
	case syntax.ItemStmtReturn:
		return bd.bindStmtReturn(tree, item, loc)
	case syntax.ItemStmtExpr:
		return bd.bindStmtExpr(tree, item, loc)
	default:
		bd.Diags.Report(diag.New(diag.InternalPrecondition, item.Span, "unhandled statement kind"))
		return NoStmtID
	}
}

// bindStmtList binds a nested statement list (a block body, an if branch, a
// for-loop body) into a single StmtBlock node.
func (bd *Binder) bindStmtList(tree *syntax.Tree, ids []syntax.ItemID, loc symbols.LookupLocation, span source.Span) StmtID {
	stmts := make([]StmtID, 0, len(ids))
	for _, sid := range ids {
		stmts = append(stmts, bd.BindStmt(tree, sid, loc))
	}
	return bd.b.AddStmt(Stmt{Kind: StmtBlock, Span: span, Stmts: stmts})
}

func (bd *Binder) bindStmtIf(tree *syntax.Tree, item *syntax.Item, loc symbols.LookupLocation) StmtID {
	cond := bd.Bind(tree, item.GenCond, loc)
	thenID := bd.bindStmtList(tree, item.Body, loc, item.Span)
	var elseID StmtID
	if len(item.GenElse) > 0 {
		elseID = bd.bindStmtList(tree, item.GenElse, loc, item.Span)
	}
	return bd.b.AddStmt(Stmt{Kind: StmtIf, Span: item.Span, Cond: cond, Then: thenID, Else: elseID})
}

func (bd *Binder) bindStmtFor(tree *syntax.Tree, item *syntax.Item, loc symbols.LookupLocation) StmtID {
	var initID StmtID
	if item.GenInit.IsValid() {
		initID = bd.BindStmt(tree, item.GenInit, loc)
	}
	cond := bd.Bind(tree, item.GenCondLoop, loc)
	var stepID StmtID
	if item.GenStep.IsValid() {
		stepID = bd.BindStmt(tree, item.GenStep, loc)
	}
	body := bd.bindStmtList(tree, item.Body, loc, item.Span)
	return bd.b.AddStmt(Stmt{Kind: StmtFor, Span: item.Span, Init: initID, Cond: cond, Step: stepID, Body: body})
}

func (bd *Binder) bindStmtReturn(tree *syntax.Tree, item *syntax.Item, loc symbols.LookupLocation) StmtID {
	var val ExprID
	if item.VarInit.IsValid() {
		val = bd.Bind(tree, item.VarInit, loc)
	}
	return bd.b.AddStmt(Stmt{Kind: StmtReturn, Span: item.Span, Value: val})
}

func (bd *Binder) bindStmtExpr(tree *syntax.Tree, item *syntax.Item, loc symbols.LookupLocation) StmtID {
	e := bd.Bind(tree, item.VarInit, loc)
	return bd.b.AddStmt(Stmt{Kind: StmtExpr, Span: item.Span, Expr: e})
}
