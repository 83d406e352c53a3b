package binder

import (
	"velab/internal/constval"
	"velab/internal/diag"
	"velab/internal/source"
	"velab/internal/symbols"
	"velab/internal/syntax"
	"velab/internal/types"
)

// Binder is the two-pass expression binder: creation
// (recursively resolve names and pick a natural type bottom-up) and
// propagation (push context-determined width requirements back down,
// inserting implicit conversions) are interleaved per-subtree here rather
// than run as two full separate tree walks, since every context-determined
// operator's context is fully known by the time its operands finish
// binding.
type Binder struct {
	Types   *types.Interner
	Syms    *symbols.Table
	Strings *source.Interner
	Diags   *diag.Bag
	Lookup  *symbols.Context

	b *Builder
}

// New creates a binder writing into a fresh arena.
func New(t *types.Interner, syms *symbols.Table, strings *source.Interner, diags *diag.Bag, lookup *symbols.Context) *Binder {
	return &Binder{Types: t, Syms: syms, Strings: strings, Diags: diags, Lookup: lookup, b: NewBuilder()}
}

// Tree returns the bound-expression arena.
func (bd *Binder) Tree() *Builder { return bd.b }

// report forwards lookup diagnostics to the shared bag, stamping the call
// site's span onto any diagnostic Lookup left unpositioned (Lookup itself
// has no syntax span to attach; only its caller does).
func (bd *Binder) report(ds []diag.Diagnostic, span source.Span) {
	for _, d := range ds {
		if d.Span == (source.Span{}) {
			d.Span = span
		}
		bd.Diags.Report(d)
	}
}

func (bd *Binder) bad(span source.Span) ExprID {
	return bd.b.Add(Expr{Kind: Bad, Type: bd.Types.Builtins().Error, Span: span})
}

// Bind resolves syntax node id from tree into a typed Expr, visible at loc.
// The result is self-determined: no enclosing context pushes a wider width
// down onto it. Use bindCtxWidth internally wherever a context-determined
// operator's own context (an assignment target, an enclosing
// context-determined operand) must propagate down into id's own folding
// width instead.
func (bd *Binder) Bind(tree *syntax.Tree, id syntax.ExprID, loc symbols.LookupLocation) ExprID {
	return bd.bindCtxWidth(tree, id, loc, 0)
}

// bindCtxWidth is Bind with an explicit context width: 0 means self-determined
// (same as Bind), nonzero means id's context-determined root operator (a
// binary arithmetic/bitwise op, a context-determined unary op, or a
// conditional operator) must widen its own operands to at least ctxWidth
// before folding, per the LRM's context-determined expression rules.
func (bd *Binder) bindCtxWidth(tree *syntax.Tree, id syntax.ExprID, loc symbols.LookupLocation, ctxWidth uint32) ExprID {
	se := tree.Builder().Expr(id)
	if se == nil {
		return NoExprID
	}
	switch se.Kind {
	case syntax.ExprIntegerLiteral:
		return bd.bindIntegerLiteral(se)
	case syntax.ExprRealLiteral:
		return bd.b.Add(Expr{Kind: RealLiteral, Type: bd.Types.Builtins().Real, Span: se.Span,
			RealVal: se.RealVal, Const: constval.FromReal(se.RealVal), ConstValid: true})
	case syntax.ExprStringLiteral:
		return bd.b.Add(Expr{Kind: StringLiteral, Type: bd.Types.Builtins().String, Span: se.Span,
			StrVal: se.StrVal, Const: constval.FromString(se.StrVal), ConstValid: true})
	case syntax.ExprNullLiteral:
		return bd.b.Add(Expr{Kind: NullLiteral, Type: bd.Types.Builtins().Null, Span: se.Span,
			Const: constval.Null(), ConstValid: true})
	case syntax.ExprUnbasedUnsizedLiteral:
		return bd.bindUnbasedUnsized(se)
	case syntax.ExprIdentifier:
		return bd.bindIdentifier(tree, se, loc, symbols.FlagNone)
	case syntax.ExprScopedName:
		return bd.bindScopedName(tree, se, loc)
	case syntax.ExprUnary:
		return bd.bindUnary(tree, se, loc, ctxWidth)
	case syntax.ExprBinary:
		return bd.bindBinary(tree, se, loc, ctxWidth)
	case syntax.ExprConditional:
		return bd.bindConditional(tree, se, loc, ctxWidth)
	case syntax.ExprMinTypMax:
		return bd.bindMinTypMax(tree, se, loc)
	case syntax.ExprAssign:
		return bd.bindAssign(tree, se, loc)
	case syntax.ExprConcat:
		return bd.bindConcat(tree, se, loc)
	case syntax.ExprReplication:
		return bd.bindReplication(tree, se, loc)
	case syntax.ExprElementSelect:
		return bd.bindElementSelect(tree, se, loc)
	case syntax.ExprRangeSelect:
		return bd.bindRangeSelect(tree, se, loc)
	case syntax.ExprMemberAccess:
		return bd.bindMemberAccess(tree, se, loc)
	case syntax.ExprCall:
		return bd.bindCall(tree, se, loc)
	case syntax.ExprCast:
		return bd.bindCast(tree, se, loc)
	case syntax.ExprDataTypeAsExpr:
		return bd.b.Add(Expr{Kind: Invalid, Type: bd.Types.Builtins().Void, Span: se.Span})
	case syntax.ExprAssignPatternPositional, syntax.ExprAssignPatternForArray:
		return bd.bindAssignPatternArray(tree, se, loc)
	case syntax.ExprAssignPatternForStruct:
		return bd.bindAssignPatternStruct(tree, se, loc)
	default:
		bd.Diags.Report(diag.New(diag.InternalPrecondition, se.Span, "unhandled expression kind"))
		return bd.bad(se.Span)
	}
}

func (bd *Binder) bindIntegerLiteral(se *syntax.Expr) ExprID {
	width := se.IntWidth
	if width == 0 {
		width = 32
	}
	v := bigIntFromString(se.IntText)
	iv := constval.FromBig(width, se.IntSigned, v)
	t := bd.packedType(width, se.IntSigned, false)
	return bd.b.Add(Expr{Kind: IntegerLiteral, Type: t, Span: se.Span, IntVal: iv,
		Const: constval.FromInteger(iv), ConstValid: true})
}

func (bd *Binder) bindUnbasedUnsized(se *syntax.Expr) ExprID {
	var iv constval.Integer
	switch se.UnbasedBit {
	case '0':
		iv = constval.FromInt64(1, false, 0)
	case '1':
		iv = constval.FromInt64(1, false, 1)
	case 'x', 'X':
		iv = constval.AllX(1, false)
	default:
		iv = constval.AllZ(1, false)
	}
	t := bd.packedType(1, false, iv.HasUnknown())
	return bd.b.Add(Expr{Kind: IntegerLiteral, Type: t, Span: se.Span, IntVal: iv,
		Const: constval.FromInteger(iv), ConstValid: true})
}

func (bd *Binder) bindIdentifier(tree *syntax.Tree, se *syntax.Expr, loc symbols.LookupLocation, flags symbols.Flags) ExprID {
	res := symbols.Lookup(bd.Lookup, se.Name, loc, flags)
	bd.report(res.Diagnostics(), se.Span)
	if !res.Found.IsValid() {
		return bd.bad(se.Span)
	}
	return bd.bindResolvedSelectors(tree, se, loc, bd.namedValue(se.Span, res.Found))
}

func (bd *Binder) bindScopedName(tree *syntax.Tree, se *syntax.Expr, loc symbols.LookupLocation) ExprID {
	pkgRes := symbols.Lookup(bd.Lookup, se.ScopePkg, loc, symbols.FlagNone)
	bd.report(pkgRes.Diagnostics(), se.Span)
	if !pkgRes.Found.IsValid() {
		return bd.bad(se.Span)
	}
	pkgSym := bd.Syms.Symbol(pkgRes.Found)
	member := bd.lookupInScope(pkgSym.OwnScope, se.Name)
	if !member.IsValid() {
		bd.Diags.Report(diag.New(diag.NameUnknownIdentifier, se.Span, bd.Strings.MustLookup(se.Name)))
		return bd.bad(se.Span)
	}
	return bd.bindResolvedSelectors(tree, se, loc, bd.namedValue(se.Span, member))
}

func (bd *Binder) namedValue(span source.Span, sym symbols.SymbolID) ExprID {
	s := bd.Syms.Symbol(sym)
	s.Used = true
	e := Expr{Kind: NamedValue, Type: s.Type, Span: span, Sym: sym,
		IsLValue: (s.Kind == symbols.KindVariable || s.Kind == symbols.KindNet) && !s.IsConst}
	if s.ValueValid {
		e.Const = s.Value
		e.ConstValid = true
	}
	return bd.b.Add(e)
}

// bindResolvedSelectors applies a trailing dotted/element-select chain
// captured on the syntax node.
func (bd *Binder) bindResolvedSelectors(tree *syntax.Tree, se *syntax.Expr, loc symbols.LookupLocation, base ExprID) ExprID {
	cur := base
	for _, sel := range se.Selectors {
		if sel.IsElement {
			index := bd.Bind(tree, sel.Index, loc)
			cur = bd.elementSelectOf(cur, index, se.Span)
		} else {
			cur = bd.memberAccessOf(cur, sel.Name, se.Span)
		}
	}
	return cur
}
