package compilation

import (
	"velab/internal/diag"
	"velab/internal/source"
	"velab/internal/symbols"
	"velab/internal/syntax"
)

// elaborate runs once, driven by ensureFinalized. defparam/override
// resolution must reach a fixed point before top-module selection and
// instance elaboration are considered final (instantiation, generate-if
// branch selection, and width computation all need the resolved values,
// not a stale default), so this repeatedly re-elaborates from scratch with
// an override tree folded from the previous pass's `defparam`s, bounded by
// MaxDefparamSteps, and only then applies `bind` directives against the
// converged hierarchy.
func (c *Compilation) elaborate() {
	overrides := c.opts.ParamOverrides
	converged := false
	for step := 0; step < c.opts.MaxDefparamSteps; step++ {
		c.elaborateOnce(overrides)

		next, changed := c.foldDefparams(overrides)
		if !changed {
			converged = true
			break
		}
		overrides = next
		if step == c.opts.MaxDefparamSteps-1 {
			// Out of steps: keep this pass's pending directives so the
			// non-convergence report and the checks below still see them.
			break
		}
		// Discard this pass's pending directives before re-elaborating:
		// the next pass's declareBodyItems walk repopulates all three from
		// scratch against the (possibly different) hierarchy the new
		// overrides produce.
		c.pendingDefparams = nil
		c.pendingBinds = nil
		c.pendingDPIExports = nil
	}
	if !converged && len(c.pendingDefparams) > 0 {
		c.Diags.Report(diag.New(diag.ElabDefparamSteps, source.Span{}))
	}
	c.reportUnresolvedDefparams()
	c.applyBinds()
	c.checkDPIExports()
	c.lintUnused()
}

// elaborateOnce instantiates every top module with overrides as the root
// of the hierarchical parameter-override tree and forces every reachable
// deferred member to realize. Each call starts a fresh root/hierarchy
// scope; only the last call's c.root/c.topBodies are kept once elaborate's
// fixed-point loop settles.
func (c *Compilation) elaborateOnce(overrides *ParamOverrideNode) {
	rootSym := symbols.Symbol{Kind: symbols.KindRoot}
	rootID, hierScope := c.Syms.AddSymbol(c.rootScope, rootSym, symbols.ScopeRoot)
	c.root = rootID
	c.scopeHierPath[hierScope] = nil
	c.overrideNodes[hierScope] = overrides
	c.topBodies = nil

	for _, defID := range c.topDefinitions() {
		def := c.Defs.Get(defID)
		if def == nil {
			continue
		}
		defTree := c.treeByFile[def.SourceFile]
		if defTree == nil {
			continue
		}
		defItem := defTree.Builder().Item(def.Body)
		if defItem == nil {
			continue
		}
		item := &syntax.Item{Kind: syntax.ItemInstance, Span: defItem.Span, DefName: def.Name, InstName: def.Name}
		_, bodyID := c.instantiate(defTree, hierScope, item)
		if bodyID.IsValid() {
			c.topBodies = append(c.topBodies, bodyID)
		}
	}

	symbols.RealizeAll(c.Syms, c, c.rootScope)
}

// topDefinitions returns every module/interface/program definition never
// named as the DefName of some other definition's instance, restricted to
// opts.TopModules when the caller set it explicitly. The scan recurses into generate bodies without
// evaluating their conditions, so a definition instantiated only inside an
// untaken generate branch is still excluded — the conservative reading for
// top-module inference.
func (c *Compilation) topDefinitions() []symbols.DefinitionID {
	if len(c.opts.TopModules) > 0 {
		var out []symbols.DefinitionID
		for _, name := range c.opts.TopModules {
			if defID := c.Defs.ByName(c.Strings.Intern(name)); defID.IsValid() {
				out = append(out, defID)
			}
		}
		return out
	}

	referenced := make(map[source.StringID]bool)
	for _, tree := range c.trees {
		b := tree.Builder()
		for _, id := range tree.Root {
			item := b.Item(id)
			if item != nil && (item.Kind == syntax.ItemModule || item.Kind == syntax.ItemInterface || item.Kind == syntax.ItemProgram) {
				collectInstanceRefs(b, item.Body, referenced)
			}
		}
	}

	var out []symbols.DefinitionID
	for _, name := range c.Defs.Names() {
		if !referenced[name] {
			out = append(out, c.Defs.ByName(name))
		}
	}
	return out
}

func collectInstanceRefs(b *syntax.Builder, body []syntax.ItemID, referenced map[source.StringID]bool) {
	for _, id := range body {
		item := b.Item(id)
		if item == nil {
			continue
		}
		switch item.Kind {
		case syntax.ItemInstance:
			referenced[item.DefName] = true
		case syntax.ItemGenerateBlock, syntax.ItemGenerateFor:
			collectInstanceRefs(b, item.Body, referenced)
		case syntax.ItemGenerateIf:
			collectInstanceRefs(b, item.Body, referenced)
			collectInstanceRefs(b, item.GenElse, referenced)
		case syntax.ItemBind:
			if b2 := b.Item(item.BindInstance); b2 != nil {
				referenced[b2.DefName] = true
			}
		}
	}
}
