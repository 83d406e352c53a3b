package eval

import (
	"velab/internal/binder"
	"velab/internal/constval"
	"velab/internal/symbols"
)

// step is one hop of an lvalue path: an array/vector bit index, a bit
// range, or a struct/union field name.
type step struct {
	isIndex bool
	index   int
	isRange bool
	hi, lo  int
	field   string
}

// LValue is a handle to a storage location reachable from a named
// variable/net/genvar through zero or more index/field selections,
// resolved without performing the final load.
type LValue struct {
	Sym  symbols.SymbolID
	Path []step
}

// resolveLValue walks a bound Expr tree looking for a chain of
// ElementSelect/MemberAccess/RangeSelect nodes rooted at a NamedValue, the
// only shapes the language allows as an assignable target.
func (c *Context) resolveLValue(id binder.ExprID) (LValue, bool) {
	e := c.Tree.Expr(id)
	if e == nil {
		return LValue{}, false
	}
	switch e.Kind {
	case binder.NamedValue:
		return LValue{Sym: e.Sym}, true
	case binder.ElementSelect:
		base, ok := c.resolveLValue(e.Base)
		if !ok {
			return LValue{}, false
		}
		idxVal := c.Eval(e.Index)
		n, ok := idxVal.Int.AsInt64()
		if !ok {
			return LValue{}, false
		}
		base.Path = append(base.Path, step{isIndex: true, index: int(n)})
		return base, true
	case binder.RangeSelect:
		base, ok := c.resolveLValue(e.Base)
		if !ok {
			return LValue{}, false
		}
		hi, lo, ok := c.rangeSelectBounds(e)
		if !ok {
			return LValue{}, false
		}
		base.Path = append(base.Path, step{isRange: true, hi: hi, lo: lo})
		return base, true
	case binder.MemberAccess:
		base, ok := c.resolveLValue(e.Base)
		if !ok {
			return LValue{}, false
		}
		base.Path = append(base.Path, step{field: c.Strings.MustLookup(e.FieldName)})
		return base, true
	default:
		return LValue{}, false
	}
}

// Load reads the current value at lv, following Path through whichever
// base value is in scope (the current call frame's locals, a global
// binding, or the symbol's own stored value).
func (c *Context) Load(lv LValue) constval.Value {
	v := c.loadBase(lv.Sym)
	for _, s := range lv.Path {
		switch {
		case s.isRange:
			v = loadRange(v, s.hi, s.lo)
		case s.isIndex:
			v = loadIndex(v, s.index)
		default:
			if fv, ok := v.Field(s.field); ok {
				v = fv
			} else {
				v = constval.Bad()
			}
		}
	}
	return v
}

// loadIndex reads element/bit index idx from v: an array indexes Elems, a
// scalar integer reads the single bit at idx off its 4-state planes.
func loadIndex(v constval.Value, idx int) constval.Value {
	switch v.Kind {
	case constval.KindArray:
		if idx >= 0 && idx < len(v.Elems) {
			return v.Elems[idx]
		}
		return constval.Bad()
	case constval.KindInteger:
		if idx < 0 || uint32(idx) >= v.Int.Width() {
			return constval.Bad()
		}
		return constval.FromInteger(constval.Slice(v.Int, idx, idx))
	default:
		return constval.Bad()
	}
}

// loadRange reads bits [lo:hi] from a scalar integer v.
func loadRange(v constval.Value, hi, lo int) constval.Value {
	if v.Kind != constval.KindInteger || lo < 0 || hi >= int(v.Int.Width()) {
		return constval.Bad()
	}
	return constval.FromInteger(constval.Slice(v.Int, hi, lo))
}

// rangeSelectBounds evaluates e's RangeLeft/RangeRight (and the +:/-:
// IndexedPart form) into inclusive bit bounds (hi, lo), the same math
// evalRangeSelect folds a constant range-select read with.
func (c *Context) rangeSelectBounds(e *binder.Expr) (hi, lo int, ok bool) {
	leftV := c.Eval(e.RangeLeft)
	rightV := c.Eval(e.RangeRight)
	lv, lok := leftV.Int.AsInt64()
	rv, rok := rightV.Int.AsInt64()
	if !lok || !rok {
		return 0, 0, false
	}
	hi, lo = int(lv), int(rv)
	if e.IndexedPart {
		width := int(rv)
		if e.Down {
			hi, lo = int(lv), int(lv)-width+1
		} else {
			hi, lo = int(lv)+width-1, int(lv)
		}
	}
	if hi < lo {
		hi, lo = lo, hi
	}
	return hi, lo, true
}

func (c *Context) loadBase(sym symbols.SymbolID) constval.Value {
	if f := c.currentFrame(); f != nil {
		if v, ok := f.Locals[sym]; ok {
			return v
		}
	}
	if v, ok := c.Globals[sym]; ok {
		return v
	}
	s := c.Syms.Symbol(sym)
	if s != nil && s.ValueValid {
		return s.Value
	}
	return constval.Bad()
}

// Store writes val at lv, rebuilding every aggregate level along Path so
// that untouched siblings keep their existing 4-state bits.
func (c *Context) Store(lv LValue, val constval.Value) {
	base := c.loadBase(lv.Sym)
	newVal := storePath(base, lv.Path, val)
	c.storeBase(lv.Sym, newVal)
}

func storePath(base constval.Value, path []step, val constval.Value) constval.Value {
	if len(path) == 0 {
		return val
	}
	head, rest := path[0], path[1:]
	switch {
	case head.isRange:
		if base.Kind != constval.KindInteger {
			return base
		}
		if len(rest) == 0 {
			return base.WithBits(head.hi, head.lo, val)
		}
		child := loadRange(base, head.hi, head.lo)
		return base.WithBits(head.hi, head.lo, storePath(child, rest, val))
	case head.isIndex:
		switch base.Kind {
		case constval.KindArray:
			var child constval.Value
			if head.index >= 0 && head.index < len(base.Elems) {
				child = base.Elems[head.index]
			}
			return base.WithElem(head.index, storePath(child, rest, val))
		case constval.KindInteger:
			if head.index < 0 || uint32(head.index) >= base.Int.Width() {
				return base
			}
			if len(rest) == 0 {
				return base.WithBits(head.index, head.index, val)
			}
			child := loadIndex(base, head.index)
			return base.WithBits(head.index, head.index, storePath(child, rest, val))
		default:
			return base
		}
	default:
		child, _ := base.Field(head.field)
		return base.WithField(head.field, storePath(child, rest, val))
	}
}

func (c *Context) storeBase(sym symbols.SymbolID, val constval.Value) {
	if f := c.currentFrame(); f != nil {
		if _, ok := f.Locals[sym]; ok {
			f.Locals[sym] = val
			return
		}
	}
	c.Globals[sym] = val
}
