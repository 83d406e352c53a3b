package binder

import (
	"velab/internal/constval"
	"velab/internal/diag"
	"velab/internal/source"
	"velab/internal/symbols"
	"velab/internal/syntax"
	"velab/internal/types"
)

// bindElementSelect binds a[i]. Base is the array/vector being indexed; LHS
// holds the index expression.
func (bd *Binder) bindElementSelect(tree *syntax.Tree, se *syntax.Expr, loc symbols.LookupLocation) ExprID {
	base := bd.Bind(tree, se.Base, loc)
	index := bd.Bind(tree, se.LHS, loc)
	return bd.elementSelectOf(base, index, se.Span)
}

// elementSelectOf builds the bound node for base[index], where index has
// already been bound.
func (bd *Binder) elementSelectOf(base, index ExprID, span source.Span) ExprID {
	be := bd.b.Expr(base)
	bt, _ := bd.Types.Lookup(be.Type)

	var elemType types.TypeID
	switch bt.Kind {
	case types.KindUnpackedArray:
		elemType = bt.Elem
	case types.KindPacked, types.KindBit, types.KindLogic, types.KindReg:
		elemType = bd.packedType(1, false, bt.FourStat)
	default:
		bd.Diags.Report(diag.New(diag.TypeInvalidOperand, span, "indexed value is not an array or vector"))
		elemType = bd.Types.Builtins().Error
	}

	out := Expr{Kind: ElementSelect, Type: elemType, Span: span, Base: base, Index: index, IsLValue: be.IsLValue}
	ie := bd.b.Expr(index)
	if be.ConstValid && ie.ConstValid && be.Const.Kind == constval.KindInteger && ie.Const.Kind == constval.KindInteger {
		if n, ok := ie.Const.Int.AsInt64(); ok {
			out.Const = constval.FromInteger(constval.Slice(be.Const.Int, int(n), int(n)))
			out.ConstValid = true
		}
	} else if be.ConstValid && be.Const.Kind == constval.KindArray {
		if n, ok := constIndex(ie); ok && n >= 0 && n < len(be.Const.Elems) {
			out.Const = be.Const.Elems[n]
			out.ConstValid = true
		}
	}
	return bd.b.Add(out)
}

func constIndex(ie *Expr) (int, bool) {
	if !ie.ConstValid || ie.Const.Kind != constval.KindInteger {
		return 0, false
	}
	n, ok := ie.Const.Int.AsInt64()
	return int(n), ok
}

// bindRangeSelect binds a[a:b], a[a+:b], or a[a-:b]. Base is the vector;
// LHS is the left/start index; Extra is the right bound or indexed width.
func (bd *Binder) bindRangeSelect(tree *syntax.Tree, se *syntax.Expr, loc symbols.LookupLocation) ExprID {
	base := bd.Bind(tree, se.Base, loc)
	left := bd.Bind(tree, se.LHS, loc)
	right := bd.Bind(tree, se.Extra, loc)
	be := bd.b.Expr(base)
	le, re := bd.b.Expr(left), bd.b.Expr(right)

	var width uint32
	fixedBounds := se.RangeKind == syntax.RangeConstant
	lv, lok := constIndex(le)
	rv, rok := constIndex(re)
	switch {
	case fixedBounds && lok && rok:
		hi, lo := lv, rv
		if lo > hi {
			hi, lo = lo, hi
		}
		width = uint32(hi-lo) + 1
	case !fixedBounds && rok:
		width = uint32(rv)
	default:
		bt, _ := bd.Types.Lookup(be.Type)
		width = bt.BitWidth()
	}

	fourState := false
	if bt, ok := bd.Types.Lookup(be.Type); ok {
		fourState = bt.FourStat
	}
	resultType := bd.packedType(width, false, fourState)
	out := Expr{Kind: RangeSelect, Type: resultType, Span: se.Span, Base: base, RangeLeft: left, RangeRight: right,
		IndexedPart: !fixedBounds, Down: se.RangeKind == syntax.RangeIndexedDown, IsLValue: be.IsLValue}

	if be.ConstValid && be.Const.Kind == constval.KindInteger && fixedBounds && lok && rok {
		out.Const = constval.FromInteger(constval.Slice(be.Const.Int, lv, rv))
		out.ConstValid = true
	}
	return bd.b.Add(out)
}

// bindMemberAccess binds a.field. Base is the struct/union/instance value;
// se.Name is the member being selected.
func (bd *Binder) bindMemberAccess(tree *syntax.Tree, se *syntax.Expr, loc symbols.LookupLocation) ExprID {
	base := bd.Bind(tree, se.Base, loc)
	return bd.memberAccessOf(base, se.Name, se.Span)
}

func (bd *Binder) memberAccessOf(base ExprID, name source.StringID, span source.Span) ExprID {
	be := bd.b.Expr(base)
	bt, _ := bd.Types.Lookup(be.Type)

	var fieldType types.TypeID
	found := false
	for _, f := range bt.Fields {
		if f.Name == bd.Strings.MustLookup(name) {
			fieldType = f.Type
			found = true
			break
		}
	}
	if !found {
		bd.Diags.Report(diag.New(diag.NameUnknownIdentifier, span, bd.Strings.MustLookup(name)))
		fieldType = bd.Types.Builtins().Error
	}

	out := Expr{Kind: MemberAccess, Type: fieldType, Span: span, Base: base, FieldName: name, IsLValue: be.IsLValue}
	if found && be.ConstValid && be.Const.Kind == constval.KindStruct {
		if v, ok := be.Const.Field(bd.Strings.MustLookup(name)); ok {
			out.Const = v
			out.ConstValid = true
		}
	}
	return bd.b.Add(out)
}
