package binder

import (
	"velab/internal/constval"
	"velab/internal/diag"
	"velab/internal/symbols"
	"velab/internal/syntax"
	"velab/internal/types"
)

// bindUnary binds a unary operator. Plus/Minus/BitNot are context-determined
// (per the LRM, same family as the context-determined binary operators): the
// operand is widened to max(its own width, ctxWidth) before folding, not
// just resized after the fact. Every other unary operator (reduction,
// logical not) is self-determined, so ctxWidth has no effect on it.
func (bd *Binder) bindUnary(tree *syntax.Tree, se *syntax.Expr, loc symbols.LookupLocation, ctxWidth uint32) ExprID {
	op := types.UnaryOp(se.Unary)
	isCtxDetermined := op == types.OpPlus || op == types.OpMinus || op == types.OpBitNot

	var operand ExprID
	if isCtxDetermined {
		operand = bd.bindCtxWidth(tree, se.LHS, loc, ctxWidth)
		operand = bd.widenToWidth(operand, ctxWidth)
	} else {
		operand = bd.Bind(tree, se.LHS, loc)
	}
	oe := bd.b.Expr(operand)

	resultType := oe.Type
	if types.IsReduction(op) || op == types.OpLogNot {
		resultType = bd.Types.Builtins().Logic
	} else if op == types.OpBitNot {
		resultType = oe.Type
	}

	out := Expr{Kind: Unary, Type: resultType, Span: se.Span, UnOp: op, LHS: operand}
	if oe.ConstValid && oe.Const.Kind == constval.KindInteger {
		out.Const, out.ConstValid = foldUnary(op, oe.Const.Int)
	}
	return bd.b.Add(out)
}

func foldUnary(op types.UnaryOp, v constval.Integer) (constval.Value, bool) {
	switch op {
	case types.OpPlus:
		return constval.FromInteger(v), true
	case types.OpMinus:
		return constval.FromInteger(constval.Sub(constval.FromInt64(v.Width(), v.Signed(), 0), v)), true
	case types.OpBitNot:
		return constval.FromInteger(constval.Not(v)), true
	case types.OpReduceAnd:
		return constval.FromBool(constval.ReduceAnd(v) == constval.Bit1), true
	case types.OpReduceOr:
		return constval.FromBool(constval.ReduceOr(v) == constval.Bit1), true
	case types.OpReduceXor:
		return constval.FromBool(constval.ReduceXor(v) == constval.Bit1), true
	case types.OpReduceNand:
		return constval.FromBool(constval.ReduceAnd(v) != constval.Bit1), true
	case types.OpReduceNor:
		return constval.FromBool(constval.ReduceOr(v) != constval.Bit1), true
	case types.OpReduceXnor:
		return constval.FromBool(constval.ReduceXor(v) != constval.Bit1), true
	case types.OpLogNot:
		return constval.FromBool(!v.HasUnknown() && isZero(v)), true
	default:
		return constval.Value{}, false
	}
}

// FoldUnary exposes the binder's constant-folding table for internal/eval,
// which must re-derive values the binder couldn't fold at bind time (reads
// through a variable, results of a subroutine call) using the exact same
// per-operator rules.
func FoldUnary(op types.UnaryOp, v constval.Integer) (constval.Value, bool) { return foldUnary(op, v) }

// FoldBinary is FoldUnary's binary-operator counterpart.
func FoldBinary(op types.BinaryOp, a, b constval.Integer) (constval.Value, bool) { return foldBinary(op, a, b) }

func isZero(v constval.Integer) bool {
	n, ok := v.AsInt64()
	return ok && n == 0
}

// bindBinary binds a binary operator. For a context-determined operator
// (arithmetic/bitwise per types.Spec), ctxWidth — the width some enclosing
// context-determined context (an assignment target, an outer
// context-determined operator) requires — is folded into the operand
// widening itself: both operands are bound and widened to max(lhs, rhs,
// ctxWidth) before foldBinary ever runs, so e.g. `assign out8 = a4 + b4;`
// computes the sum at 8 bits (preserving carry) rather than folding at 4
// bits and only resizing the already-truncated result afterward.
// Self-determined operators (shifts, comparisons, logical, equality) ignore
// ctxWidth entirely, matching the LRM: their operands are always typed
// independently of the enclosing context.
func (bd *Binder) bindBinary(tree *syntax.Tree, se *syntax.Expr, loc symbols.LookupLocation, ctxWidth uint32) ExprID {
	op := types.BinaryOp(se.Binary)
	spec, ok := types.Spec(op)
	if !ok {
		bd.Diags.Report(diag.New(diag.TypeInvalidOperand, se.Span))
		return bd.bad(se.Span)
	}

	ctxDetermined := spec.Determinism == types.ContextDetermined
	var lhs, rhs ExprID
	if ctxDetermined {
		lhs = bd.bindCtxWidth(tree, se.LHS, loc, ctxWidth)
		rhs = bd.bindCtxWidth(tree, se.RHS, loc, ctxWidth)
	} else {
		lhs = bd.Bind(tree, se.LHS, loc)
		rhs = bd.Bind(tree, se.RHS, loc)
	}

	var resultType types.TypeID
	if ctxDetermined {
		var wide types.TypeID
		lhs, rhs, wide = bd.widenBinary(lhs, rhs, ctxWidth)
		resultType = wide
	}
	switch spec.Result {
	case types.ResultBool:
		resultType = bd.Types.Builtins().Logic
	case types.ResultLeftOperand:
		resultType = bd.b.Expr(lhs).Type
	}

	out := Expr{Kind: Binary, Type: resultType, Span: se.Span, BinOp: op, LHS: lhs, RHS: rhs}
	le, re := bd.b.Expr(lhs), bd.b.Expr(rhs)
	if le.ConstValid && re.ConstValid && le.Const.Kind == constval.KindInteger && re.Const.Kind == constval.KindInteger {
		out.Const, out.ConstValid = foldBinary(op, le.Const.Int, re.Const.Int)
	}
	return bd.b.Add(out)
}

func foldBinary(op types.BinaryOp, a, b constval.Integer) (constval.Value, bool) {
	switch op {
	case types.OpAdd:
		return constval.FromInteger(constval.Add(a, b)), true
	case types.OpSub:
		return constval.FromInteger(constval.Sub(a, b)), true
	case types.OpMul:
		return constval.FromInteger(constval.Mul(a, b)), true
	case types.OpDiv:
		r := constval.Div(a, b)
		return constval.FromInteger(r.Value), true
	case types.OpMod:
		r := constval.Mod(a, b)
		return constval.FromInteger(r.Value), true
	case types.OpPow:
		return constval.FromInteger(constval.Pow(a, b)), true
	case types.OpAnd:
		return constval.FromInteger(constval.And(a, b)), true
	case types.OpOr:
		return constval.FromInteger(constval.Or(a, b)), true
	case types.OpXor:
		return constval.FromInteger(constval.Xor(a, b)), true
	case types.OpXnor:
		return constval.FromInteger(constval.Xnor(a, b)), true
	case types.OpEq:
		return fourStateBool(constval.Eq(a, b)), true
	case types.OpNe:
		return fourStateBool(invert(constval.Eq(a, b))), true
	case types.OpCaseEq:
		return constval.FromBool(constval.CaseEq(a, b)), true
	case types.OpCaseNe:
		return constval.FromBool(!constval.CaseEq(a, b)), true
	case types.OpWildcardEq:
		return fourStateBool(constval.WildcardEq(a, b)), true
	case types.OpWildcardNe:
		return fourStateBool(invert(constval.WildcardEq(a, b))), true
	case types.OpLt, types.OpLe, types.OpGt, types.OpGe:
		cmp, ok := constval.Compare(a, b)
		if !ok {
			return constval.FromInteger(constval.AllX(1, false)), true
		}
		return constval.FromBool(relHolds(op, cmp)), true
	case types.OpLogAnd:
		return constval.FromBool(!isZero(a) && !isZero(b)), true
	case types.OpLogOr:
		return constval.FromBool(!isZero(a) || !isZero(b)), true
	case types.OpImpl:
		return constval.FromBool(isZero(a) || !isZero(b)), true
	case types.OpIff:
		return constval.FromBool(!isZero(a) == !isZero(b)), true
	case types.OpShl:
		return constval.FromInteger(constval.Shl(a, b)), true
	case types.OpShr:
		return constval.FromInteger(constval.Shr(a, b, false)), true
	case types.OpAShl:
		return constval.FromInteger(constval.Shl(a, b)), true
	case types.OpAShr:
		return constval.FromInteger(constval.Shr(a, b, true)), true
	default:
		return constval.Value{}, false
	}
}

func relHolds(op types.BinaryOp, cmp int) bool {
	switch op {
	case types.OpLt:
		return cmp < 0
	case types.OpLe:
		return cmp <= 0
	case types.OpGt:
		return cmp > 0
	default: // OpGe
		return cmp >= 0
	}
}

func fourStateBool(b constval.FourState) constval.Value {
	switch b {
	case constval.Bit1:
		return constval.FromBool(true)
	case constval.Bit0:
		return constval.FromBool(false)
	default:
		return constval.FromInteger(constval.AllX(1, false))
	}
}

func invert(b constval.FourState) constval.FourState {
	switch b {
	case constval.Bit0:
		return constval.Bit1
	case constval.Bit1:
		return constval.Bit0
	default:
		return b
	}
}

// bindConditional binds `cond ? lhs : rhs`. The conditional operator is
// itself context-determined, so its own true/false expressions are
// context-determined by ctxWidth exactly like a context-determined binary
// operator's operands, and the arm-merge widenBinary call folds ctxWidth in
// alongside the two arms' own widths.
func (bd *Binder) bindConditional(tree *syntax.Tree, se *syntax.Expr, loc symbols.LookupLocation, ctxWidth uint32) ExprID {
	cond := bd.Bind(tree, se.Cond, loc)
	lhs := bd.bindCtxWidth(tree, se.LHS, loc, ctxWidth)
	rhs := bd.bindCtxWidth(tree, se.RHS, loc, ctxWidth)
	lhs, rhs, result := bd.widenBinary(lhs, rhs, ctxWidth)

	out := Expr{Kind: Conditional, Type: result, Span: se.Span, Cond: cond, LHS: lhs, RHS: rhs}
	ce := bd.b.Expr(cond)
	if ce.ConstValid && ce.Const.Kind == constval.KindInteger {
		if ce.Const.Int.HasUnknown() {
			// ambiguous condition: result merges both arms' X
		} else if isZero(ce.Const.Int) {
			out.Const, out.ConstValid = bd.b.Expr(rhs).Const, bd.b.Expr(rhs).ConstValid
		} else {
			out.Const, out.ConstValid = bd.b.Expr(lhs).Const, bd.b.Expr(lhs).ConstValid
		}
	}
	return bd.b.Add(out)
}

// bindMinTypMax implements the min:typ:max ternary literal: Cond holds the
// min arm, LHS the typ arm and RHS the max arm. The node's own Const is the
// typ arm's; eval selects the arm to fold by its Context.Timing mode.
func (bd *Binder) bindMinTypMax(tree *syntax.Tree, se *syntax.Expr, loc symbols.LookupLocation) ExprID {
	min := bd.Bind(tree, se.LHS, loc)
	typ := bd.Bind(tree, se.RHS, loc)
	max := bd.Bind(tree, se.Extra, loc)
	te := bd.b.Expr(typ)
	out := Expr{Kind: MinTypMax, Type: te.Type, Span: se.Span, Cond: min, LHS: typ, RHS: max,
		Const: te.Const, ConstValid: te.ConstValid}
	return bd.b.Add(out)
}

// bindAssign binds `lhs = rhs`. The assignment target's own width is the
// context a context-determined rhs folds at: rhs is bound with ctxWidth set
// to the target's width (when integral) so a context-determined root
// operator on the right widens its operands before folding instead of
// folding narrow and only being resized afterward. convert still runs
// afterward to cover non-context-determined rhs shapes (a bare narrower
// variable, a self-determined operator's result) and any signedness/real
// conversion widenBinary itself doesn't handle.
func (bd *Binder) bindAssign(tree *syntax.Tree, se *syntax.Expr, loc symbols.LookupLocation) ExprID {
	lhs := bd.Bind(tree, se.LHS, loc)
	le := bd.b.Expr(lhs)
	if !le.IsLValue {
		bd.Diags.Report(diag.New(diag.TypeNotAnLValue, se.Span))
	}

	var ctxWidth uint32
	if tt, ok := bd.Types.Lookup(le.Type); ok && tt.IsIntegral() {
		ctxWidth = tt.Width
	}
	rhs := bd.bindCtxWidth(tree, se.RHS, loc, ctxWidth)
	rhs = bd.convert(rhs, le.Type)
	return bd.b.Add(Expr{Kind: Assign, Type: le.Type, Span: se.Span, LHS: lhs, RHS: rhs})
}
