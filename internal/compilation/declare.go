package compilation

import (
	"velab/internal/source"
	"velab/internal/symbols"
	"velab/internal/syntax"
)

// declareTopLevel registers every module/interface/program as a Definition
// and every package as a live KindPackage symbol in
// the root scope (packages, unlike modules, are ordinary named scopes
// visible through normal Lookup rather than through the definition-table
// fallback).
func (c *Compilation) declareTopLevel(tree *syntax.Tree) {
	if c.treeByFile == nil {
		c.treeByFile = make(map[source.FileID]*syntax.Tree)
	}
	c.treeByFile[tree.SourceFile] = tree

	b := tree.Builder()
	for _, id := range tree.Root {
		item := b.Item(id)
		if item == nil {
			continue
		}
		switch item.Kind {
		case syntax.ItemModule, syntax.ItemInterface, syntax.ItemProgram:
			c.declareDefinition(tree, id, item, c.defScope)
		case syntax.ItemPackage:
			c.declarePackage(tree, item)
		}
	}
}

// declareDefinition registers item as a Definition and makes it visible as
// a KindModuleDef symbol in regScope. A top-level definition passes
// c.defScope, the flat table Lookup's step 5 fallback consults from
// anywhere; a definition nested inside another module/interface/program
// body passes that body's own scope instead, so it is only ever found
// through the ordinary enclosing-scope walk a lexically nested reference
// goes through first (nested-first shadowing, with no explicit collision
// handling needed).
func (c *Compilation) declareDefinition(tree *syntax.Tree, id syntax.ItemID, item *syntax.Item, regScope symbols.ScopeID) {
	def := symbols.Definition{
		Name:       item.Name,
		Kind:       item.Kind,
		Body:       id,
		DefaultNet: symbols.NetWire,
		TimeUnit:   item.TimeUnit,
		Ports:      item.Ports,
		SourceFile: tree.SourceFile,
		SourceLib:  tree.SourceLib,
	}
	b := tree.Builder()
	for _, pid := range item.Params {
		p := b.Item(pid)
		if p == nil {
			continue
		}
		def.Parameters = append(def.Parameters, symbols.ParamDecl{
			Name:    p.Name,
			Type:    p.ParamType,
			Default: p.ParamDefault,
			IsLocal: p.IsLocalParam,
			IsType:  p.IsTypeParam,
		})
	}
	defID := c.Defs.Add(def, regScope == c.defScope)
	c.Syms.AddSymbol(regScope, symbols.Symbol{
		Kind: symbols.KindModuleDef, Name: item.Name, Span: item.Span, Definition: defID,
	}, symbols.ScopeInvalid)
}

// declarePackage declares a package's own members eagerly into a fresh
// scope under root, since (unlike module bodies, which are only
// elaborated once instantiated) a package's contents are visible the
// moment the compilation sees it.
func (c *Compilation) declarePackage(tree *syntax.Tree, item *syntax.Item) {
	sym := symbols.Symbol{Kind: symbols.KindPackage, Name: item.Name, Span: item.Span}
	_, scope := c.Syms.AddSymbol(c.rootScope, sym, symbols.ScopePackage)
	r := symbols.NewResolver(c.Syms, c.rootScope, c.Diags)
	r.Enter(scope)
	declareBodyItems(c, tree, item.Body, r)
	r.Leave()
}
