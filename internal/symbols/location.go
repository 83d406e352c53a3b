package symbols

// LookupLocation is a total-order position within the scope graph, used to
// decide visibility ("before/after" comparisons).
type LookupLocation struct {
	Scope ScopeID
	Index Index
	sentinel int8 // 0 = real, -1 = Min, 1 = Max
}

// LocMin compares strictly before any real location.
var LocMin = LookupLocation{sentinel: -1}

// LocMax compares strictly after any real location.
var LocMax = LookupLocation{sentinel: 1}

// Before returns a location that sorts just before sym within its parent scope.
func Before(sym *Symbol) LookupLocation {
	return LookupLocation{Scope: sym.Parent, Index: sym.Index - 1}
}

// After returns a location that sorts just after sym within its parent scope.
func After(sym *Symbol) LookupLocation {
	return LookupLocation{Scope: sym.Parent, Index: sym.Index}
}

// EndOf returns a location after every current member of scope, used when
// binding expressions that live directly in a scope (e.g. a package's
// initial-value expressions) rather than in a specific member's slot.
func EndOf(t *Table, scope ScopeID) LookupLocation {
	sc := t.Scope(scope)
	if sc == nil {
		return LocMax
	}
	return LookupLocation{Scope: scope, Index: sc.nextIndex() - 1}
}

type locStep struct {
	scope ScopeID
	idx   Index
}

// chain walks from loc up to the root, recording at each level either the
// location's own index (deepest entry) or the index of the child scope's
// owning symbol within that level (every other entry).
func chain(t *Table, loc LookupLocation) []locStep {
	var steps []locStep
	cur := loc.Scope
	idx := loc.Index
	for cur.IsValid() {
		steps = append(steps, locStep{scope: cur, idx: idx})
		sc := t.Scope(cur)
		if sc == nil || !sc.Self.IsValid() {
			break
		}
		self := t.Symbol(sc.Self)
		idx = self.Index
		cur = sc.Parent
	}
	return steps
}

// Compare implements the LookupLocation total order: within
// one scope by index; otherwise by walking to a common ancestor.
func Compare(t *Table, a, b LookupLocation) int {
	if a.sentinel != 0 || b.sentinel != 0 {
		if a.sentinel == b.sentinel {
			return 0
		}
		if a.sentinel < b.sentinel {
			return -1
		}
		return 1
	}
	if a.Scope == b.Scope {
		return cmpIndex(a.Index, b.Index)
	}
	ca, cb := chain(t, a), chain(t, b)
	// reverse in place so both start at the root
	reverse(ca)
	reverse(cb)
	n := len(ca)
	if len(cb) < n {
		n = len(cb)
	}
	for i := 0; i < n; i++ {
		if ca[i].scope != cb[i].scope {
			// Diverged one level too late to compare directly; the previous
			// level's index (already equal) determined containment, so fall
			// back to comparing at the divergence point using each side's
			// recorded index at this depth relative to their shared parent.
			return cmpIndex(ca[i].idx, cb[i].idx)
		}
		if ca[i].idx != cb[i].idx {
			return cmpIndex(ca[i].idx, cb[i].idx)
		}
	}
	return cmpIndex(Index(len(ca)), Index(len(cb)))
}

func cmpIndex(a, b Index) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func reverse(s []locStep) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Before2 reports whether a is visible to a lookup happening at b, i.e. a <= b.
func Before2(t *Table, a, b LookupLocation) bool { return Compare(t, a, b) <= 0 }
