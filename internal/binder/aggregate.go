package binder

import (
	"velab/internal/constval"
	"velab/internal/diag"
	"velab/internal/source"
	"velab/internal/symbols"
	"velab/internal/syntax"
	"velab/internal/types"
)

func (bd *Binder) bindConcat(tree *syntax.Tree, se *syntax.Expr, loc symbols.LookupLocation) ExprID {
	elems := make([]ExprID, len(se.Elems))
	var width uint32
	fourState := false
	allConst := true
	parts := make([]constval.Integer, len(se.Elems))
	for i, sub := range se.Elems {
		elems[i] = bd.Bind(tree, sub, loc)
		et := bd.b.Expr(elems[i])
		tt, _ := bd.Types.Lookup(et.Type)
		width += tt.BitWidth()
		fourState = fourState || tt.FourStat
		if et.ConstValid && et.Const.Kind == constval.KindInteger {
			parts[i] = et.Const.Int
		} else {
			allConst = false
		}
	}
	resultType := bd.packedType(width, false, fourState)
	out := Expr{Kind: Concat, Type: resultType, Span: se.Span, Elems: elems}
	if allConst {
		out.Const = constval.FromInteger(constval.Concat(parts...))
		out.ConstValid = true
	}
	return bd.b.Add(out)
}

func (bd *Binder) bindReplication(tree *syntax.Tree, se *syntax.Expr, loc symbols.LookupLocation) ExprID {
	countID := bd.Bind(tree, se.Count, loc)
	ce := bd.b.Expr(countID)
	n, ok := 0, false
	if ce.ConstValid && ce.Const.Kind == constval.KindInteger {
		v, valid := ce.Const.Int.AsInt64()
		n, ok = int(v), valid
	}
	if !ok {
		bd.Diags.Report(diag.New(diag.ConstNonConstOperand, se.Span, "replication count"))
	}
	var elems []ExprID
	if len(se.Elems) == 1 {
		elems = []ExprID{bd.Bind(tree, se.Elems[0], loc)}
	}
	var resultType types.TypeID
	var out Expr
	if len(elems) == 1 {
		et := bd.b.Expr(elems[0])
		tt, _ := bd.Types.Lookup(et.Type)
		resultType = bd.packedType(tt.BitWidth()*uint32(max(n, 0)), false, tt.FourStat)
		out = Expr{Kind: Replication, Type: resultType, Span: se.Span, Count: countID, Elems: elems}
		if ok && et.ConstValid && et.Const.Kind == constval.KindInteger {
			out.Const = constval.FromInteger(constval.Replicate(et.Const.Int, n))
			out.ConstValid = true
		}
	} else {
		out = Expr{Kind: Bad, Type: bd.Types.Builtins().Error, Span: se.Span}
	}
	return bd.b.Add(out)
}

func (bd *Binder) bindAssignPatternArray(tree *syntax.Tree, se *syntax.Expr, loc symbols.LookupLocation) ExprID {
	elems := make([]ExprID, len(se.Elems))
	values := make([]constval.Value, len(se.Elems))
	allConst := true
	var elemType types.TypeID
	for i, sub := range se.Elems {
		elems[i] = bd.Bind(tree, sub, loc)
		e := bd.b.Expr(elems[i])
		elemType = e.Type
		if e.ConstValid {
			values[i] = e.Const
		} else {
			allConst = false
		}
	}
	resultType := bd.Types.Intern(types.Type{Kind: types.KindUnpackedArray, Elem: elemType,
		Dims: []types.Dim{{Left: int64(len(elems)) - 1, Right: 0}}})
	out := Expr{Kind: AssignPatternArray, Type: resultType, Span: se.Span, Elems: elems}
	if allConst {
		out.Const = constval.Value{Kind: constval.KindArray, Elems: values}
		out.ConstValid = true
	}
	return bd.b.Add(out)
}

func (bd *Binder) bindAssignPatternStruct(tree *syntax.Tree, se *syntax.Expr, loc symbols.LookupLocation) ExprID {
	elems := make([]ExprID, len(se.Elems))
	fields := make([]constval.Field, len(se.Elems))
	keyNames := make([]source.StringID, len(se.Elems))
	allConst := true
	var fieldInfos []types.FieldInfo
	for i, sub := range se.Elems {
		elems[i] = bd.Bind(tree, sub, loc)
		e := bd.b.Expr(elems[i])
		name := ""
		if i < len(se.Keys) {
			if keyExpr := tree.Builder().Expr(se.Keys[i]); keyExpr != nil {
				keyNames[i] = keyExpr.Name
				name = bd.Strings.MustLookup(keyExpr.Name)
			}
		}
		fieldInfos = append(fieldInfos, types.FieldInfo{Name: name, Type: e.Type})
		if e.ConstValid {
			fields[i] = constval.Field{Name: name, Value: e.Const}
		} else {
			allConst = false
		}
	}
	var width uint32
	for _, f := range fieldInfos {
		tt, _ := bd.Types.Lookup(f.Type)
		width += tt.BitWidth()
	}
	resultType := bd.Types.Intern(types.Type{Kind: types.KindPackedStruct, Width: width, Fields: fieldInfos})
	out := Expr{Kind: AssignPatternStruct, Type: resultType, Span: se.Span, Elems: elems, Keys: keyNames}
	if allConst {
		out.Const = constval.Value{Kind: constval.KindStruct, Fields: fields}
		out.ConstValid = true
	}
	return bd.b.Add(out)
}
