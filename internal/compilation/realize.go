package compilation

import (
	"velab/internal/constval"
	"velab/internal/diag"
	"velab/internal/source"
	"velab/internal/symbols"
	"velab/internal/syntax"
)

// Realize implements symbols.Realizer, materializing one deferred member
// the first time its owning scope is looked into.
func (c *Compilation) Realize(scope symbols.ScopeID, member symbols.DeferredMember) {
	tree := c.deferredTree[scope]
	if tree == nil {
		return
	}
	item := tree.Builder().Item(member.Item)
	if item == nil {
		return
	}
	switch member.Kind {
	case symbols.DeferredInstance:
		c.realizeInstance(tree, scope, item)
	case symbols.DeferredGenerateBlock:
		c.realizeGenerate(tree, scope, item)
	case symbols.DeferredNestedDefinition:
		c.declareDefinition(tree, member.Item, item, scope)
	}
}

// realizeInstance elaborates one instantiation reached through deferred
// membership; it discards the returned ids since Realize's caller (the
// resolver's lazy-lookup path) has no further use for them.
func (c *Compilation) realizeInstance(instTree *syntax.Tree, scope symbols.ScopeID, item *syntax.Item) {
	c.instantiate(instTree, scope, item)
}

// instantiate resolves item's definition, its overridden parameters, and
// (on a cache miss) a fresh InstanceBody scope populated by re-running
// declareBodyItems over the definition's body. It is shared by deferred-instance
// realization and top-module elaboration, which synthesizes its own
// zero-argument ItemInstance per top definition.
func (c *Compilation) instantiate(instTree *syntax.Tree, scope symbols.ScopeID, item *syntax.Item) (symbols.SymbolID, symbols.InstanceBodyID) {
	defID := c.resolveDefinition(scope, item.DefName)
	def := c.Defs.Get(defID)
	if def == nil {
		c.Diags.Report(diag.New(diag.NameUnknownIdentifier, item.Span, c.Strings.MustLookup(item.DefName)))
		return symbols.NoSymbolID, symbols.NoInstanceBodyID
	}

	parentPath := c.scopeHierPath[scope]
	if len(parentPath)+1 > c.opts.MaxInstanceDepth {
		c.Diags.Report(diag.New(diag.ElabInstanceDepth, item.Span))
		return symbols.NoSymbolID, symbols.NoInstanceBodyID
	}

	instSym := symbols.Symbol{Kind: symbols.KindInstance, Name: item.InstName, Span: item.Span, InstanceOf: defID}
	instID, bodyScope := c.Syms.AddSymbol(scope, instSym, symbols.ScopeInstanceBody)

	hierPath := append(append([]source.StringID{}, parentPath...), item.InstName)
	c.scopeHierPath[bodyScope] = hierPath

	defTree := c.treeByFile[def.SourceFile]
	if defTree == nil {
		defTree = instTree
	}

	parentNode := c.overrideNodes[scope]
	ownNode := parentNode.child(c.Strings.MustLookup(item.InstName))
	c.overrideNodes[bodyScope] = ownNode

	params := c.resolveParams(instTree, item, defTree, def, bodyScope, ownNode)
	key := c.instanceCacheKey(defID, params, item)

	if cached := c.Insts.Lookup(key); cached.IsValid() {
		// Cache hit: the freshly allocated bodyScope above goes unused aside
		// from holding the resolved parameter symbols, which is the
		// accepted cost of resolving parameters before the cache check.
		sym := c.Syms.Symbol(instID)
		sym.InstanceBody = cached
		return instID, cached
	}

	defItem := defTree.Builder().Item(def.Body)
	if defItem != nil {
		r := symbols.NewResolver(c.Syms, bodyScope, c.Diags)
		declareBodyItems(c, defTree, defItem.Body, r)
	}

	body := symbols.InstanceBody{Definition: defID, Scope: bodyScope, Params: params, HierPath: hierPath}
	bodyID := c.Insts.Add(key, body)
	sym := c.Syms.Symbol(instID)
	sym.InstanceBody = bodyID
	return instID, bodyID
}

// realizeGenerate elaborates one generate construct: an unconditional
// block just declares its body, `if` picks a branch by evaluating GenCond,
// and `for` unrolls bounded by MaxGenerateSteps, each iteration getting its
// own nested scope; every iteration's block is named GenLabel, so the
// iterations are told apart by order rather than by name.
func (c *Compilation) realizeGenerate(tree *syntax.Tree, scope symbols.ScopeID, item *syntax.Item) {
	switch item.Kind {
	case syntax.ItemGenerateBlock:
		c.declareGenerateBody(tree, scope, item.GenLabel, item.Body)
	case syntax.ItemGenerateIf:
		loc := symbols.EndOf(c.Syms, scope)
		cond, ok := c.bindConst(tree, item.GenCond, loc)
		if !ok {
			return
		}
		if constval.IsTruthy(cond) {
			c.declareGenerateBody(tree, scope, item.GenLabel, item.Body)
		} else {
			c.declareGenerateBody(tree, scope, item.GenLabel, item.GenElse)
		}
	case syntax.ItemGenerateFor:
		c.realizeGenerateFor(tree, scope, item)
	}
}

func (c *Compilation) declareGenerateBody(tree *syntax.Tree, parent symbols.ScopeID, label source.StringID, body []syntax.ItemID) symbols.ScopeID {
	sym := symbols.Symbol{Kind: symbols.KindGenerateBlock, Name: label}
	_, scope := c.Syms.AddSymbol(parent, sym, symbols.ScopeGenerateBlock)
	r := symbols.NewResolver(c.Syms, scope, c.Diags)
	declareBodyItems(c, tree, body, r)
	return scope
}

// realizeGenerateFor unrolls a bounded genvar loop. GenInit and GenStep are
// both ItemParam nodes sharing the loop variable's name: GenInit's default
// is the starting value, GenStep's default is the next-value expression
// evaluated against the previous iteration's binding, and GenCondLoop is
// the continuation test evaluated the same way.
func (c *Compilation) realizeGenerateFor(tree *syntax.Tree, scope symbols.ScopeID, item *syntax.Item) {
	b := tree.Builder()
	initItem := b.Item(item.GenInit)
	stepItem := b.Item(item.GenStep)
	if initItem == nil {
		return
	}
	loc := symbols.EndOf(c.Syms, scope)
	cur, ok := c.bindConst(tree, initItem.ParamDefault, loc)
	if !ok {
		return
	}

	for i := 0; i < c.opts.MaxGenerateSteps; i++ {
		iterScope := c.declareLoopScope(tree, scope, item.GenLabel, initItem.Name, initItem.ParamType, cur)
		iterLoc := symbols.EndOf(c.Syms, iterScope)
		if item.GenCondLoop.IsValid() {
			keepGoing, ok := c.bindConst(tree, item.GenCondLoop, iterLoc)
			if !ok || !constval.IsTruthy(keepGoing) {
				break
			}
		}
		declareBodyItems(c, tree, item.Body, symbols.NewResolver(c.Syms, iterScope, c.Diags))

		if stepItem == nil || !stepItem.ParamDefault.IsValid() {
			break
		}
		next, ok := c.bindConst(tree, stepItem.ParamDefault, iterLoc)
		if !ok {
			break
		}
		cur = next
		if i == c.opts.MaxGenerateSteps-1 {
			c.Diags.Report(diag.New(diag.ElabGenerateSteps, item.Span))
		}
	}
}

func (c *Compilation) declareLoopScope(tree *syntax.Tree, parent symbols.ScopeID, label, varName source.StringID, varType syntax.TypeID, val constval.Value) symbols.ScopeID {
	sym := symbols.Symbol{Kind: symbols.KindGenerateBlock, Name: label}
	_, scope := c.Syms.AddSymbol(parent, sym, symbols.ScopeGenerateBlock)
	t := c.Types.Builtins().Int
	if varType.IsValid() {
		t = c.bindType(tree, varType, symbols.LocMax)
	}
	r := symbols.NewResolver(c.Syms, scope, c.Diags)
	id, _ := r.Declare(symbols.Symbol{Kind: symbols.KindParameter, Name: varName, Type: t, IsConst: true, IsLocal: true}, symbols.ScopeInvalid)
	s := c.Syms.Symbol(id)
	s.Value, s.ValueValid = val, true
	return scope
}
