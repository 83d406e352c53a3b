package binder

import (
	"velab/internal/constval"
	"velab/internal/types"
)

// packedType interns the canonical packed-integer type for the given
// width/signedness/4-stateness, reusing Builtins where the shape matches a
// primitive exactly.
func (bd *Binder) packedType(width uint32, signed, fourState bool) types.TypeID {
	return bd.Types.Intern(types.Type{Kind: types.KindPacked, Width: width, Signed: signed, FourStat: fourState})
}

// convert wraps id in an implicit Conversion node targeting target, folding
// the constant value through Resize when both sides are integral and id is
// already known.
func (bd *Binder) convert(id ExprID, target types.TypeID) ExprID {
	e := bd.b.Expr(id)
	if e == nil || e.Type == target {
		return id
	}
	out := Expr{Kind: Conversion, Type: target, Span: e.Span, LHS: id, Implicit: true}
	if e.ConstValid && e.Const.Kind == constval.KindInteger {
		tt, ok := bd.Types.Lookup(target)
		if ok && tt.IsIntegral() {
			out.Const = constval.FromInteger(e.Const.Int.Resize(tt.Width, tt.Signed))
			out.ConstValid = true
		}
	}
	return bd.b.Add(out)
}

// widenBinary applies the context-determined width rule to a pair of
// integral operands, inserting implicit conversions on whichever side is
// narrower than max(lhs, rhs, ctxWidth) — ctxWidth being whatever enclosing
// context-determined context (an assignment target, an outer
// context-determined operator) requires, 0 meaning no such context — and
// returns the shared result type.
func (bd *Binder) widenBinary(lhs, rhs ExprID, ctxWidth uint32) (ExprID, ExprID, types.TypeID) {
	lt, rt := bd.b.Expr(lhs).Type, bd.b.Expr(rhs).Type
	ltype, _ := bd.Types.Lookup(lt)
	rtype, _ := bd.Types.Lookup(rt)
	if !ltype.IsIntegral() || !rtype.IsIntegral() {
		// Real-family or mixed operands: no bit-width widening, just unify
		// to real if either side is real.
		if ltype.Kind == types.KindReal || rtype.Kind == types.KindReal {
			real := bd.Types.Builtins().Real
			return bd.convert(lhs, real), bd.convert(rhs, real), real
		}
		return lhs, rhs, lt
	}
	width := ltype.Width
	if rtype.Width > width {
		width = rtype.Width
	}
	if ctxWidth > width {
		width = ctxWidth
	}
	signed := ltype.Signed && rtype.Signed
	fourState := ltype.FourStat || rtype.FourStat
	result := bd.packedType(width, signed, fourState)
	return bd.convert(lhs, result), bd.convert(rhs, result), result
}

// widenToWidth widens a single integral operand up to ctxWidth (0 is a
// no-op), the unary counterpart of widenBinary's context fold-in, used by
// bindUnary for the context-determined unary operators (+, -, ~).
func (bd *Binder) widenToWidth(id ExprID, ctxWidth uint32) ExprID {
	if ctxWidth == 0 {
		return id
	}
	e := bd.b.Expr(id)
	tt, ok := bd.Types.Lookup(e.Type)
	if !ok || !tt.IsIntegral() || tt.Width >= ctxWidth {
		return id
	}
	return bd.convert(id, bd.packedType(ctxWidth, tt.Signed, tt.FourStat))
}
