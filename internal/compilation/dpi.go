package compilation

import (
	"velab/internal/diag"
	"velab/internal/source"
	"velab/internal/symbols"
)

// resolveSubroutine is the scope-aware lookup checkDPIExports uses to find
// the local function/task an `export "DPI-C"` directive names, mirroring
// resolveDefinition's walk but filtered to KindSubroutine.
func (c *Compilation) resolveSubroutine(scope symbols.ScopeID, name source.StringID) symbols.SymbolID {
	loc := symbols.EndOf(c.Syms, scope)
	res := symbols.Lookup(c.lookupCtx, name, loc, symbols.FlagAllowDeclaredAfter)
	if !res.Found.IsValid() {
		return symbols.NoSymbolID
	}
	sym := c.Syms.Symbol(res.Found)
	if sym == nil || sym.Kind != symbols.KindSubroutine {
		return symbols.NoSymbolID
	}
	return res.Found
}

// checkDPIExports runs once the design is fully elaborated, after defparam
// and bind resolution: every `export "DPI-C" [c_identifier=] function/task
// name;` directive must name a subroutine that actually exists in its scope,
// and when some `import "DPI-C"` elsewhere in the design already claimed the
// same C-side linkage name, the exported local subroutine's arity and
// function/task-ness must match what that import's callers expect — a
// mismatch means the import's prototype and the export's real definition
// would disagree about the calling convention. Both failure shapes report
// ElabDPIMismatch, since a spec reader (and DPI itself) only cares that the
// two sides of the boundary agree, not which one is "more wrong".
func (c *Compilation) checkDPIExports() {
	for _, pe := range c.pendingDPIExports {
		item := pe.tree.Builder().Item(pe.item)
		if item == nil {
			continue
		}
		symID := c.resolveSubroutine(pe.scope, item.Name)
		if symID == symbols.NoSymbolID {
			c.Diags.Report(diag.New(diag.ElabDPIMismatch, item.Span))
			continue
		}
		sym := c.Syms.Symbol(symID)

		cname := item.DPICName
		if cname == source.NoStringID {
			cname = item.Name
		}
		imp, ok := c.dpiImports[cname]
		if !ok {
			continue
		}
		if imp.isFunction != sym.IsFunction || imp.paramCount != len(sym.Params) || imp.returnType != sym.ReturnType {
			c.Diags.Report(diag.New(diag.ElabDPIMismatch, item.Span))
		}
	}
}
