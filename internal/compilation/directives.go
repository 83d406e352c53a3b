package compilation

import (
	"velab/internal/constval"
	"velab/internal/diag"
	"velab/internal/source"
	"velab/internal/symbols"
)

// foldDefparams evaluates every `defparam path.to.param = expr;` the most
// recent elaboration pass collected and folds each resolved value into a
// copy of base, keyed by the same hierarchical instance-name path
// instantiate's ParamOverrideNode walk already consults (the last segment
// of DefparamPath is the parameter name, every segment before it an
// instance name from the design root). Folding a defparam this way — into
// the override tree consulted *before* a fresh instantiate, rather than
// patching sym.Value after the fact — means it participates in the
// instance cache key exactly like any other override, so instantiation,
// generate-if branch selection, and width computation all see the
// resolved value instead of a stale default.
//
// The bool return reports whether any resolved value differs from what
// base already held; elaborate's fixed-point loop re-elaborates and calls
// foldDefparams again whenever it does, bounded by MaxDefparamSteps, since
// a defparam's own value expression can depend on another defparam's
// target or on a generate branch only taken once some defparam has fired.
func (c *Compilation) foldDefparams(base *ParamOverrideNode) (*ParamOverrideNode, bool) {
	if len(c.pendingDefparams) == 0 {
		return base, false
	}
	root := cloneOverrideNode(base)
	changed := false
	for _, pd := range c.pendingDefparams {
		item := pd.tree.Builder().Item(pd.item)
		if item == nil || len(item.DefparamPath) == 0 {
			continue
		}
		instPath, paramSeg := item.DefparamPath[:len(item.DefparamPath)-1], item.DefparamPath[len(item.DefparamPath)-1]
		loc := symbols.EndOf(c.Syms, pd.scope)
		v, ok := c.bindConst(pd.tree, item.DefparamValue, loc)
		if !ok {
			continue
		}
		node := root
		for _, seg := range instPath {
			node = node.ensureChild(c.Strings.MustLookup(seg))
		}
		name := c.Strings.MustLookup(paramSeg)
		if node.Overrides == nil {
			node.Overrides = make(map[string]constval.Value)
		}
		if old, exists := node.Overrides[name]; !exists || !old.Equal(v) {
			changed = true
		}
		node.Overrides[name] = v
	}
	return root, changed
}

// reportUnresolvedDefparams diagnoses every still-pending defparam against
// the final elaborated hierarchy, once the fixed-point loop in elaborate
// has stopped folding new values. By this point every resolved defparam
// has already taken effect through the override tree instantiate
// consulted, so this pass is diagnostics-only: it never mutates a symbol.
func (c *Compilation) reportUnresolvedDefparams() {
	for _, pd := range c.pendingDefparams {
		item := pd.tree.Builder().Item(pd.item)
		if item == nil {
			continue
		}
		target := c.resolveHierPath(item.DefparamPath)
		if target == symbols.NoSymbolID {
			c.Diags.Report(diag.New(diag.ElabUnresolvedDefparam, item.Span))
			continue
		}
		if sym := c.Syms.Symbol(target); sym == nil || sym.Kind != symbols.KindParameter {
			c.Diags.Report(diag.New(diag.ElabUnresolvedDefparam, item.Span))
		}
	}
}

// applyBinds instantiates each `bind` directive's synthetic instance item
// into either the named target definition's own body scope (every existing
// instance of it) or a single hierarchical target. Binding into a definition already elaborated with cached
// InstanceBody scopes reaches every instance sharing that body, since they
// share the very same Scope.
func (c *Compilation) applyBinds() {
	for _, pb := range c.pendingBinds {
		item := pb.tree.Builder().Item(pb.item)
		if item == nil {
			continue
		}
		bindItem := pb.tree.Builder().Item(item.BindInstance)
		if bindItem == nil {
			continue
		}
		if len(item.BindTargetPath) > 0 {
			if sym := c.resolveHierPath(item.BindTargetPath); sym != symbols.NoSymbolID {
				if s := c.Syms.Symbol(sym); s != nil && s.OwnScope.IsValid() {
					c.instantiate(pb.tree, s.OwnScope, bindItem)
				}
				continue
			}
			c.Diags.Report(diag.New(diag.ElabBindTargetMissing, item.Span))
			continue
		}
		defID := c.Defs.ByName(item.BindTargetDef)
		def := c.Defs.Get(defID)
		if def == nil {
			c.Diags.Report(diag.New(diag.ElabBindTargetMissing, item.Span))
			continue
		}
		for _, body := range c.instanceBodiesOf(defID) {
			c.instantiate(pb.tree, body.Scope, bindItem)
		}
	}
}

// resolveHierPath walks a dotted hierarchical path from the elaborated
// root, one KindInstance member lookup per segment.
func (c *Compilation) resolveHierPath(path []source.StringID) symbols.SymbolID {
	scope := c.Syms.Symbol(c.root).OwnScope
	var cur symbols.SymbolID = symbols.NoSymbolID
	for i, seg := range path {
		sc := c.Syms.Scope(scope)
		if sc == nil {
			return symbols.NoSymbolID
		}
		found := symbols.NoSymbolID
		for _, id := range sc.Members() {
			if s := c.Syms.Symbol(id); s != nil && s.Name == seg {
				found = id
				break
			}
		}
		if found == symbols.NoSymbolID {
			return symbols.NoSymbolID
		}
		cur = found
		s := c.Syms.Symbol(found)
		if i < len(path)-1 {
			if !s.OwnScope.IsValid() {
				return symbols.NoSymbolID
			}
			scope = s.OwnScope
		}
	}
	return cur
}

func (c *Compilation) instanceBodiesOf(defID symbols.DefinitionID) []*symbols.InstanceBody {
	var out []*symbols.InstanceBody
	for i := 1; i <= c.Insts.Len(); i++ {
		body := c.Insts.Get(symbols.InstanceBodyID(i))
		if body != nil && body.Definition == defID {
			out = append(out, body)
		}
	}
	return out
}
