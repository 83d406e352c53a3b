package compilation

import (
	"velab/internal/diag"
	"velab/internal/source"
	"velab/internal/symbols"
)

// lintUnused walks every elaborated instance body's scope reporting
// variables and parameters nothing ever referenced. It runs once, after the design is fully
// elaborated, so a symbol only ever counted as used through a realized
// deferred member is still seen correctly.
func (c *Compilation) lintUnused() {
	if !c.opts.LintMode || c.opts.SuppressUnused {
		return
	}
	seen := make(map[symbols.ScopeID]bool)
	for _, bodyID := range c.topBodies {
		c.lintScope(c.Insts.Get(bodyID), seen)
	}
}

func (c *Compilation) lintScope(body *symbols.InstanceBody, seen map[symbols.ScopeID]bool) {
	if body == nil || seen[body.Scope] {
		return
	}
	seen[body.Scope] = true
	sc := c.Syms.Scope(body.Scope)
	if sc == nil {
		return
	}
	for _, id := range sc.Members() {
		sym := c.Syms.Symbol(id)
		if sym == nil {
			continue
		}
		switch sym.Kind {
		case symbols.KindVariable, symbols.KindParameter:
			if !sym.Used && sym.Name != source.NoStringID {
				c.Diags.Report(diag.New(diag.NameUnusedSymbol, sym.Span, c.Strings.MustLookup(sym.Name)))
			}
		case symbols.KindInstance:
			c.lintScope(c.Insts.Get(sym.InstanceBody), seen)
		}
	}
}
