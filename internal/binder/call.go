package binder

import (
	"velab/internal/diag"
	"velab/internal/symbols"
	"velab/internal/syntax"
)

// bindCall binds a subroutine call. Constant folding of the call itself is
// left to internal/eval; the binder only resolves the target and
// argument types.
func (bd *Binder) bindCall(tree *syntax.Tree, se *syntax.Expr, loc symbols.LookupLocation) ExprID {
	res := symbols.Lookup(bd.Lookup, se.Name, loc, symbols.FlagNone)
	bd.report(res.Diagnostics(), se.Span)
	if !res.Found.IsValid() {
		return bd.bad(se.Span)
	}
	target := bd.Syms.Symbol(res.Found)
	if target.Kind != symbols.KindSubroutine {
		bd.Diags.Report(diag.New(diag.TypeInvalidOperand, se.Span, "call target is not a subroutine"))
		return bd.bad(se.Span)
	}

	args := make([]ExprID, len(se.Elems))
	for i, a := range se.Elems {
		bound := bd.Bind(tree, a, loc)
		if i < len(target.Params) {
			paramType := bd.Syms.Symbol(target.Params[i]).Type
			bound = bd.convert(bound, paramType)
		}
		args[i] = bound
	}

	// internal/eval resolves the constant value for constexpr targets; the
	// bound node only records the call shape, leaving ConstValid false.
	out := Expr{Kind: Call, Type: target.ReturnType, Span: se.Span, Target: res.Found, Elems: args}
	return bd.b.Add(out)
}

// bindCast binds an explicit conversion, type'(expr).
func (bd *Binder) bindCast(tree *syntax.Tree, se *syntax.Expr, loc symbols.LookupLocation) ExprID {
	target := bd.BindType(tree, se.TargetType, loc)
	inner := bd.Bind(tree, se.LHS, loc)
	out := bd.convert(inner, target)
	if e := bd.b.Expr(out); e != nil && e.Kind == Conversion {
		e.Implicit = false
	}
	return out
}
