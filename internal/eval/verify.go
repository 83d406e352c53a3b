package eval

import (
	"velab/internal/binder"
	"velab/internal/diag"
	"velab/internal/symbols"
)

// VerifyConstant is the structural precondition check (`verify_constant`):
// every symbol the expression reaches must already be
// known immutable (a parameter, localparam, enum value, or a variable
// explicitly declared const) and every call target must be a constexpr
// subroutine. It runs before Eval so a non-constant reference is reported
// precisely, without the side effects a partial evaluation would cause.
func VerifyConstant(tree *binder.Builder, syms *symbols.Table, diags *diag.Bag, id binder.ExprID) bool {
	v := &verifier{tree: tree, syms: syms, diags: diags}
	return v.walk(id)
}

type verifier struct {
	tree  *binder.Builder
	syms  *symbols.Table
	diags *diag.Bag
}

func (v *verifier) walk(id binder.ExprID) bool {
	e := v.tree.Expr(id)
	if e == nil {
		return true
	}
	ok := true
	switch e.Kind {
	case binder.NamedValue:
		if !v.isImmutable(e.Sym) {
			v.diags.Report(diag.New(diag.TypeNonConstant, e.Span))
			ok = false
		}
	case binder.Call:
		target := v.syms.Symbol(e.Target)
		if target == nil || !target.IsConstexpr {
			v.diags.Report(diag.New(diag.TypeNonConstant, e.Span))
			ok = false
		}
	case binder.Assign:
		lhs := v.tree.Expr(e.LHS)
		if lhs != nil && lhs.Kind == binder.NamedValue && !v.isLocalToFrame(lhs.Sym) {
			v.diags.Report(diag.New(diag.TypeNonConstant, e.Span))
			ok = false
		}
	}

	for _, child := range v.children(e) {
		if child.IsValid() {
			ok = v.walk(child) && ok
		}
	}
	for _, child := range e.Elems {
		ok = v.walk(child) && ok
	}
	return ok
}

// isLocalToFrame allows assignment to plain (non-const) variables, since a
// constexpr function body freely mutates its own locals; only the read-side
// immutability rule in isImmutable applies to expressions being folded
// outside of a call.
func (v *verifier) isLocalToFrame(sym symbols.SymbolID) bool {
	s := v.syms.Symbol(sym)
	return s != nil && s.Kind == symbols.KindVariable
}

func (v *verifier) isImmutable(sym symbols.SymbolID) bool {
	s := v.syms.Symbol(sym)
	if s == nil {
		return false
	}
	switch s.Kind {
	case symbols.KindParameter, symbols.KindEnumValue:
		return true
	case symbols.KindVariable:
		return s.IsConst
	default:
		return false
	}
}

func (v *verifier) children(e *binder.Expr) []binder.ExprID {
	return []binder.ExprID{e.LHS, e.RHS, e.Cond, e.Base, e.Index, e.RangeLeft, e.RangeRight, e.Count}
}
