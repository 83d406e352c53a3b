package binder

import (
	"velab/internal/source"
	"velab/internal/symbols"
	"velab/internal/syntax"
	"velab/internal/types"
)

// BindType resolves a syntax type node into its canonical interned TypeID,
// following named-type references through Lookup.
func (bd *Binder) BindType(tree *syntax.Tree, id syntax.TypeID, loc symbols.LookupLocation) types.TypeID {
	tn := tree.Builder().Type(id)
	if tn == nil {
		return bd.Types.Builtins().Error
	}
	base := bd.bindScalarType(tree, tn, loc)
	return bd.applyDims(tree, tn, base)
}

func (bd *Binder) bindScalarType(tree *syntax.Tree, tn *syntax.TypeNode, loc symbols.LookupLocation) types.TypeID {
	bi := bd.Types.Builtins()
	switch tn.Kind {
	case syntax.TypeVoid:
		return bi.Void
	case syntax.TypeBit:
		return bd.packedType(1, tn.Signed, false)
	case syntax.TypeLogic, syntax.TypeReg:
		return bd.packedType(1, tn.Signed, true)
	case syntax.TypeByte:
		return bd.packedType(8, tn.Signed, false)
	case syntax.TypeShortint:
		return bd.packedType(16, tn.Signed, false)
	case syntax.TypeInt:
		return bd.packedType(32, tn.Signed, false)
	case syntax.TypeLongint:
		return bd.packedType(64, tn.Signed, false)
	case syntax.TypeInteger:
		return bd.packedType(32, tn.Signed, true)
	case syntax.TypeReal:
		return bi.Real
	case syntax.TypeShortreal:
		return bd.Types.Intern(types.Type{Kind: types.KindReal, RealKind: types.RealKindShortreal})
	case syntax.TypeRealtime:
		return bd.Types.Intern(types.Type{Kind: types.KindReal, RealKind: types.RealKindRealtime})
	case syntax.TypeString:
		return bi.String
	case syntax.TypeChandle:
		return bi.Chandle
	case syntax.TypeEvent:
		return bi.Event
	case syntax.TypeNamed:
		return bd.bindNamedType(tree, tn, loc)
	case syntax.TypeStructInline:
		return bd.bindInlineAggregate(tree, tn, types.KindPackedStruct)
	case syntax.TypeUnionInline:
		return bd.bindInlineAggregate(tree, tn, types.KindPackedUnion)
	default:
		return bi.Error
	}
}

func (bd *Binder) bindNamedType(tree *syntax.Tree, tn *syntax.TypeNode, loc symbols.LookupLocation) types.TypeID {
	var sym symbols.SymbolID
	if tn.ScopePkg != source.NoStringID {
		pkgRes := symbols.Lookup(bd.Lookup, tn.ScopePkg, loc, symbols.FlagNone)
		if !pkgRes.Found.IsValid() {
			return bd.Types.Builtins().Error
		}
		pkgSym := bd.Syms.Symbol(pkgRes.Found)
		sym = bd.lookupInScope(pkgSym.OwnScope, tn.Name)
	} else {
		res := symbols.Lookup(bd.Lookup, tn.Name, loc, symbols.FlagType)
		sym = res.Found
		bd.report(res.Diagnostics(), tn.Span)
	}
	s := bd.Syms.Symbol(sym)
	if s == nil || s.Kind != symbols.KindTypedef {
		return bd.Types.Builtins().Error
	}
	return s.AliasOf
}

func (bd *Binder) lookupInScope(scope symbols.ScopeID, name source.StringID) symbols.SymbolID {
	sc := bd.Syms.Scope(scope)
	if sc == nil {
		return symbols.NoSymbolID
	}
	for _, id := range sc.Members() {
		if s := bd.Syms.Symbol(id); s != nil && s.Name == name {
			return id
		}
	}
	return symbols.NoSymbolID
}

func (bd *Binder) bindInlineAggregate(tree *syntax.Tree, tn *syntax.TypeNode, kind types.Kind) types.TypeID {
	var fields []types.FieldInfo
	var width uint32
	for _, fid := range tn.Members {
		fd := tree.Builder().Field(fid)
		if fd == nil {
			continue
		}
		ft := bd.BindType(tree, fd.Type, symbols.LocMax)
		ftype, _ := bd.Types.Lookup(ft)
		fields = append(fields, types.FieldInfo{Name: bd.Strings.MustLookup(fd.Name), Type: ft})
		width += ftype.BitWidth()
	}
	return bd.Types.Intern(types.Type{Kind: kind, Width: width, Fields: fields})
}

// applyDims wraps base in unpacked-array dimensions declared on the
// declarator. Packed dimensions (TypeNode.PackedDims) are not applied here or
// anywhere else in BindType: a keyword or named type binds at its own width.
func (bd *Binder) applyDims(tree *syntax.Tree, tn *syntax.TypeNode, base types.TypeID) types.TypeID {
	if len(tn.UnpackedDims) == 0 {
		return base
	}
	elem := base
	for i := len(tn.UnpackedDims) - 1; i >= 0; i-- {
		d := tn.UnpackedDims[i]
		dim := types.Dim{Dynamic: d.Dynamic, Assoc: d.Assoc, Queue: d.Queue}
		if d.Assoc {
			dim.KeyType = bd.Types.Builtins().Int
		}
		if !d.Dynamic && !d.Assoc && !d.Queue {
			if lv, rv, ok := bd.constRangeBounds(tree, d); ok {
				dim.Left, dim.Right = lv, rv
			}
		}
		elem = bd.Types.Intern(types.Type{Kind: types.KindUnpackedArray, Elem: elem, Dims: []types.Dim{dim}})
	}
	return elem
}

func (bd *Binder) constRangeBounds(tree *syntax.Tree, d syntax.DimSyntax) (int64, int64, bool) {
	lid := bd.Bind(tree, d.Left, symbols.LocMax)
	rid := bd.Bind(tree, d.Right, symbols.LocMax)
	le, re := bd.b.Expr(lid), bd.b.Expr(rid)
	if le == nil || re == nil || !le.ConstValid || !re.ConstValid {
		return 0, 0, false
	}
	lv, ok1 := le.Const.Int.AsInt64()
	rv, ok2 := re.Const.Int.AsInt64()
	return lv, rv, ok1 && ok2
}
