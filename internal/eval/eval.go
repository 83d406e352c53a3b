package eval

import (
	"velab/internal/binder"
	"velab/internal/constval"
	"velab/internal/diag"
	"velab/internal/types"
)

// Eval walks the bound expression id to a constval.Value, re-deriving
// anything the binder left unresolved (named-value reads, assignments,
// subroutine calls) rather than trusting a stale Const field, since those
// three shapes can only be known once a concrete call frame and storage
// are in play.
func (c *Context) Eval(id binder.ExprID) constval.Value {
	e := c.Tree.Expr(id)
	if e == nil {
		return constval.Bad()
	}
	if !c.step(e.Span) {
		return constval.Bad()
	}

	switch e.Kind {
	case binder.IntegerLiteral, binder.RealLiteral, binder.StringLiteral, binder.NullLiteral:
		return e.Const

	case binder.NamedValue:
		if lv, ok := c.resolveLValue(id); ok {
			return c.Load(lv)
		}
		return e.Const

	case binder.Unary:
		return c.evalUnary(e)

	case binder.Binary:
		return c.evalBinary(e)

	case binder.Conditional:
		return c.evalConditional(e)

	case binder.MinTypMax:
		switch c.Timing {
		case TimingMin:
			return c.Eval(e.Cond)
		case TimingMax:
			return c.Eval(e.RHS)
		default:
			return c.Eval(e.LHS)
		}

	case binder.Assign:
		val := c.Eval(e.RHS)
		if lv, ok := c.resolveLValue(e.LHS); ok {
			c.Store(lv, val)
		}
		return val

	case binder.Concat:
		return c.evalConcat(e)

	case binder.Replication:
		return c.evalReplication(e)

	case binder.ElementSelect:
		return c.evalElementSelect(e)

	case binder.RangeSelect:
		return c.evalRangeSelect(e)

	case binder.MemberAccess:
		base := c.Eval(e.Base)
		if v, ok := base.Field(c.Strings.MustLookup(e.FieldName)); ok {
			return v
		}
		return constval.Bad()

	case binder.Call:
		return c.evalCall(e)

	case binder.Conversion:
		return c.evalConversion(e)

	case binder.AssignPatternArray:
		return c.evalAssignPatternArray(e)

	case binder.AssignPatternStruct:
		return c.evalAssignPatternStruct(e)

	case binder.Bad, binder.Invalid:
		return constval.Bad()

	default:
		return constval.Bad()
	}
}

func (c *Context) evalUnary(e *binder.Expr) constval.Value {
	v := c.Eval(e.LHS)
	if v.Kind == constval.KindReal {
		return evalUnaryReal(e.UnOp, v)
	}
	if v.Kind != constval.KindInteger {
		return constval.Bad()
	}
	out, ok := binder.FoldUnary(e.UnOp, v.Int)
	if !ok {
		return constval.Bad()
	}
	return out
}

func (c *Context) evalBinary(e *binder.Expr) constval.Value {
	lhs := c.Eval(e.LHS)
	rhs := c.Eval(e.RHS)
	if lhs.Kind == constval.KindReal || rhs.Kind == constval.KindReal {
		return evalBinaryReal(e.BinOp, lhs, rhs)
	}
	if lhs.Kind == constval.KindString && rhs.Kind == constval.KindString {
		return evalBinaryString(e.BinOp, lhs, rhs)
	}
	if lhs.Kind != constval.KindInteger || rhs.Kind != constval.KindInteger {
		return constval.Bad()
	}
	if (e.BinOp == types.OpDiv || e.BinOp == types.OpMod) && isZeroInt(rhs.Int) {
		c.Diags.Report(diag.New(diag.ConstDivByZero, e.Span))
		return constval.FromInteger(constval.AllX(lhs.Int.Width(), lhs.Int.Signed()))
	}
	out, ok := binder.FoldBinary(e.BinOp, lhs.Int, rhs.Int)
	if !ok {
		return constval.Bad()
	}
	return out
}

func evalUnaryReal(op types.UnaryOp, v constval.Value) constval.Value {
	switch op {
	case types.OpPlus:
		return v
	case types.OpMinus:
		return constval.FromReal(-v.Real)
	case types.OpLogNot:
		return constval.FromBool(v.Real == 0)
	default:
		return constval.Bad()
	}
}

func evalBinaryReal(op types.BinaryOp, lhs, rhs constval.Value) constval.Value {
	l, r := asReal(lhs), asReal(rhs)
	switch op {
	case types.OpAdd:
		return constval.FromReal(l + r)
	case types.OpSub:
		return constval.FromReal(l - r)
	case types.OpMul:
		return constval.FromReal(l * r)
	case types.OpDiv:
		return constval.FromReal(l / r)
	case types.OpEq:
		return constval.FromBool(l == r)
	case types.OpNe:
		return constval.FromBool(l != r)
	case types.OpLt:
		return constval.FromBool(l < r)
	case types.OpLe:
		return constval.FromBool(l <= r)
	case types.OpGt:
		return constval.FromBool(l > r)
	case types.OpGe:
		return constval.FromBool(l >= r)
	case types.OpLogAnd:
		return constval.FromBool(l != 0 && r != 0)
	case types.OpLogOr:
		return constval.FromBool(l != 0 || r != 0)
	default:
		return constval.Bad()
	}
}

func asReal(v constval.Value) float64 {
	if v.Kind == constval.KindReal {
		return v.Real
	}
	n, _ := v.Int.AsInt64()
	return float64(n)
}

func evalBinaryString(op types.BinaryOp, lhs, rhs constval.Value) constval.Value {
	switch op {
	case types.OpEq, types.OpCaseEq:
		return constval.FromBool(lhs.Str == rhs.Str)
	case types.OpNe, types.OpCaseNe:
		return constval.FromBool(lhs.Str != rhs.Str)
	case types.OpLt:
		return constval.FromBool(lhs.Str < rhs.Str)
	case types.OpLe:
		return constval.FromBool(lhs.Str <= rhs.Str)
	case types.OpGt:
		return constval.FromBool(lhs.Str > rhs.Str)
	case types.OpGe:
		return constval.FromBool(lhs.Str >= rhs.Str)
	default:
		return constval.Bad()
	}
}

func (c *Context) evalConditional(e *binder.Expr) constval.Value {
	cond := c.Eval(e.Cond)
	if cond.Kind != constval.KindInteger {
		return constval.Bad()
	}
	if cond.Int.HasUnknown() {
		lhs, rhs := c.Eval(e.LHS), c.Eval(e.RHS)
		return mergeUnknownArms(lhs, rhs)
	}
	if n, ok := cond.Int.AsInt64(); ok && n != 0 {
		return c.Eval(e.LHS)
	}
	return c.Eval(e.RHS)
}

func (c *Context) evalConcat(e *binder.Expr) constval.Value {
	parts := make([]constval.Integer, 0, len(e.Elems))
	for _, id := range e.Elems {
		v := c.Eval(id)
		if v.Kind != constval.KindInteger {
			return constval.Bad()
		}
		parts = append(parts, v.Int)
	}
	return constval.FromInteger(constval.Concat(parts...))
}

func (c *Context) evalReplication(e *binder.Expr) constval.Value {
	countV := c.Eval(e.Count)
	n, ok := countV.Int.AsInt64()
	if countV.Kind != constval.KindInteger || !ok || n < 0 {
		c.Diags.Report(diag.New(diag.ConstNonConstOperand, e.Span))
		return constval.Bad()
	}
	if len(e.Elems) == 0 {
		return constval.Bad()
	}
	var parts []constval.Integer
	for _, id := range e.Elems {
		v := c.Eval(id)
		if v.Kind != constval.KindInteger {
			return constval.Bad()
		}
		parts = append(parts, v.Int)
	}
	joined := constval.Concat(parts...)
	return constval.FromInteger(constval.Replicate(joined, int(n)))
}

func (c *Context) evalElementSelect(e *binder.Expr) constval.Value {
	base := c.Eval(e.Base)
	idx := c.Eval(e.Index)
	n, ok := idx.Int.AsInt64()
	if idx.Kind != constval.KindInteger || !ok {
		c.Diags.Report(diag.New(diag.ConstNonConstOperand, e.Span))
		return constval.Bad()
	}
	switch base.Kind {
	case constval.KindInteger:
		if int(n) < 0 || int(n) >= int(base.Int.Width()) {
			c.Diags.Report(diag.New(diag.ConstOutOfRangeSel, e.Span))
			return constval.FromInteger(constval.AllX(1, false))
		}
		return constval.FromInteger(constval.Slice(base.Int, int(n), int(n)))
	case constval.KindArray:
		if n < 0 || int(n) >= len(base.Elems) {
			c.Diags.Report(diag.New(diag.ConstOutOfRangeSel, e.Span))
			return constval.Bad()
		}
		return base.Elems[n]
	default:
		return constval.Bad()
	}
}

func (c *Context) evalRangeSelect(e *binder.Expr) constval.Value {
	base := c.Eval(e.Base)
	if base.Kind != constval.KindInteger {
		return constval.Bad()
	}
	hi, lo, ok := c.rangeSelectBounds(e)
	if !ok {
		c.Diags.Report(diag.New(diag.ConstNonConstOperand, e.Span))
		return constval.Bad()
	}
	if lo < 0 || hi >= int(base.Int.Width()) {
		c.Diags.Report(diag.New(diag.ConstOutOfRangeSel, e.Span))
		return constval.FromInteger(constval.AllX(uint32(hi-lo+1), false))
	}
	return constval.FromInteger(constval.Slice(base.Int, hi, lo))
}

func (c *Context) evalConversion(e *binder.Expr) constval.Value {
	v := c.Eval(e.LHS)
	tt, ok := c.Types.Lookup(e.Type)
	if !ok {
		return v
	}
	switch {
	case v.Kind == constval.KindInteger && tt.IsIntegral():
		return constval.FromInteger(v.Int.Resize(tt.Width, tt.Signed))
	case v.Kind == constval.KindInteger && tt.Kind == types.KindReal:
		f, _ := v.Int.AsInt64()
		return constval.FromReal(float64(f))
	case v.Kind == constval.KindReal && tt.IsIntegral():
		return constval.FromInteger(constval.FromInt64(tt.Width, tt.Signed, int64(v.Real)))
	default:
		return v
	}
}

func (c *Context) evalAssignPatternArray(e *binder.Expr) constval.Value {
	elems := make([]constval.Value, len(e.Elems))
	for i, id := range e.Elems {
		elems[i] = c.Eval(id)
	}
	return constval.Value{Kind: constval.KindArray, Elems: elems}
}

func (c *Context) evalAssignPatternStruct(e *binder.Expr) constval.Value {
	fields := make([]constval.Field, len(e.Elems))
	for i, id := range e.Elems {
		name := ""
		if i < len(e.Keys) {
			name = c.Strings.MustLookup(e.Keys[i])
		}
		fields[i] = constval.Field{Name: name, Value: c.Eval(id)}
	}
	return constval.Value{Kind: constval.KindStruct, Fields: fields}
}

// evalCall pushes a fresh frame, binds arguments into it, then executes the
// callee's own bound statement tree (resolved through Bodies, and bound
// through the callee's own Binder at declaration time, hence its own
// arena) to completion or an early return. Tree is swapped to the callee's
// arena for the duration of the call and restored before returning, so
// nested/recursive calls each execute against their own statement tree
// without disturbing the caller's. A constexpr function whose body never
// reaches a return bottoms out as ConstNoReturn rather than silently
// yielding zero.
func (c *Context) evalCall(e *binder.Expr) constval.Value {
	target := c.Syms.Symbol(e.Target)
	if target == nil || !target.IsConstexpr {
		c.Diags.Report(diag.New(diag.ConstNonConstOperand, e.Span))
		return constval.Bad()
	}
	if c.Bodies == nil {
		c.Diags.Report(diag.New(diag.ConstNoReturn, e.Span))
		return constval.Bad()
	}
	bodyTree, root, ok := c.Bodies(e.Target)
	if !ok {
		c.Diags.Report(diag.New(diag.ConstNoReturn, e.Span))
		return constval.Bad()
	}

	// Arguments are evaluated against the caller's own Tree/frame, before
	// either the new frame or the callee's Tree is in place.
	args := make([]constval.Value, len(e.Elems))
	for i, aid := range e.Elems {
		args[i] = c.Eval(aid)
	}

	frame, ok := c.enterCall(e.Target, e.Span)
	if !ok {
		return constval.Bad()
	}
	defer c.leaveCall()

	for i, pid := range target.Params {
		if i >= len(args) {
			break
		}
		frame.Locals[pid] = args[i]
	}

	savedTree := c.Tree
	c.Tree = bodyTree
	c.execStmt(root)
	c.Tree = savedTree

	if !frame.Returned {
		c.Diags.Report(diag.New(diag.ConstNoReturn, e.Span))
		return constval.Bad()
	}
	return frame.Return
}

func isZeroInt(v constval.Integer) bool {
	n, ok := v.AsInt64()
	return ok && n == 0
}

func mergeUnknownArms(lhs, rhs constval.Value) constval.Value {
	if lhs.Kind != constval.KindInteger || rhs.Kind != constval.KindInteger {
		return constval.Bad()
	}
	w := lhs.Int.Width()
	if rhs.Int.Width() > w {
		w = rhs.Int.Width()
	}
	return constval.FromInteger(constval.AllX(w, lhs.Int.Signed() && rhs.Int.Signed()))
}
