package compilation

import (
	"velab/internal/binder"
	"velab/internal/constval"
	"velab/internal/eval"
	"velab/internal/source"
	"velab/internal/symbols"
	"velab/internal/syntax"
	"velab/internal/types"
)

func (c *Compilation) newBinder() *binder.Binder {
	return binder.New(c.Types, c.Syms, c.Strings, c.Diags, c.lookupCtx)
}

// bindConst binds and evaluates a syntax expression expected to be a
// constant, returning (value, true) only when both the structural check
// and evaluation itself succeed.
func (c *Compilation) bindConst(tree *syntax.Tree, id syntax.ExprID, loc symbols.LookupLocation) (constval.Value, bool) {
	if !id.IsValid() {
		return constval.Value{}, false
	}
	bd := c.newBinder()
	eid := bd.Bind(tree, id, loc)
	if !eval.VerifyConstant(bd.Tree(), c.Syms, c.Diags, eid) {
		return constval.Value{}, false
	}
	ev := eval.New(c.Types, c.Syms, c.Strings, bd.Tree(), c.Diags, c.opts.MaxConstexprSteps, c.opts.MaxConstexprDepth)
	ev.Timing = c.opts.MinTypMax
	ev.MaxBacktrace = c.opts.MaxConstexprBacktrace
	ev.Bodies = c.resolveFuncBody
	return ev.Eval(eid), true
}

func (c *Compilation) bindType(tree *syntax.Tree, id syntax.TypeID, loc symbols.LookupLocation) types.TypeID {
	bd := c.newBinder()
	return bd.BindType(tree, id, loc)
}

// declareBodyItems walks one definition/package/generate body's item list,
// declaring immediate members into r.Current() and deferring anything
// whose elaboration depends on parameter values not yet known at this
// scope (generate blocks, instances, nested definitions).
func declareBodyItems(c *Compilation, tree *syntax.Tree, body []syntax.ItemID, r *symbols.Resolver) {
	b := tree.Builder()
	scope := r.Current()
	for _, id := range body {
		item := b.Item(id)
		if item == nil {
			continue
		}
		switch item.Kind {
		case syntax.ItemParam:
			c.declareParam(tree, item, r)
		case syntax.ItemPort:
			c.declareVarLike(tree, item, r, symbols.KindVariable, item.PortType, syntax.NoExprID, false)
		case syntax.ItemNet:
			c.declareVarLike(tree, item, r, symbols.KindNet, item.VarType, item.VarInit, false)
		case syntax.ItemVariable:
			c.declareVarLike(tree, item, r, symbols.KindVariable, item.VarType, item.VarInit, item.IsConst)
		case syntax.ItemTypedef:
			c.declareTypedef(tree, item, r)
		case syntax.ItemEnumValue:
			c.declareVarLike(tree, item, r, symbols.KindEnumValue, syntax.NoTypeID, item.VarInit, true)
		case syntax.ItemFunction, syntax.ItemTask:
			c.declareSubroutine(tree, id, item, r)
		case syntax.ItemGenerateBlock, syntax.ItemGenerateIf, syntax.ItemGenerateFor, syntax.ItemInstance, syntax.ItemModule, syntax.ItemInterface, syntax.ItemProgram:
			c.deferredTree[scope] = tree
			r.Defer(deferredKindFor(item.Kind), id)
		case syntax.ItemImport:
			c.declareImport(item, r)
		case syntax.ItemBind:
			c.pendingBinds = append(c.pendingBinds, pendingBind{tree: tree, item: id, scope: scope})
		case syntax.ItemDefparam:
			c.pendingDefparams = append(c.pendingDefparams, pendingDefparam{tree: tree, item: id, scope: scope})
		case syntax.ItemDPIImport:
			c.declareDPIImport(tree, id, item, r)
		case syntax.ItemDPIExport:
			c.pendingDPIExports = append(c.pendingDPIExports, pendingDPIExport{tree: tree, item: id, scope: scope})
		}
	}
}

func deferredKindFor(k syntax.ItemKind) symbols.DeferredKind {
	switch k {
	case syntax.ItemInstance:
		return symbols.DeferredInstance
	case syntax.ItemModule, syntax.ItemInterface, syntax.ItemProgram:
		return symbols.DeferredNestedDefinition
	default:
		return symbols.DeferredGenerateBlock
	}
}

func (c *Compilation) declareParam(tree *syntax.Tree, item *syntax.Item, r *symbols.Resolver) {
	loc := symbols.EndOf(c.Syms, r.Current())
	t := c.Types.Builtins().Int
	if item.ParamType.IsValid() {
		t = c.bindType(tree, item.ParamType, loc)
	}
	sym := symbols.Symbol{
		Kind: symbols.KindParameter, Name: item.Name, Span: item.Span,
		Type: t, IsLocal: item.IsLocalParam, IsConst: true, ValueSyntax: item.ParamDefault,
	}
	id, _ := r.Declare(sym, symbols.ScopeInvalid)
	if item.ParamDefault.IsValid() {
		if v, ok := c.bindConst(tree, item.ParamDefault, loc); ok {
			s := c.Syms.Symbol(id)
			s.Value, s.ValueValid = v, true
		}
	}
}

func (c *Compilation) declareVarLike(tree *syntax.Tree, item *syntax.Item, r *symbols.Resolver, kind symbols.Kind, typeID syntax.TypeID, init syntax.ExprID, isConst bool) {
	loc := symbols.EndOf(c.Syms, r.Current())
	t := c.Types.Builtins().Logic
	if typeID.IsValid() {
		t = c.bindType(tree, typeID, loc)
	}
	sym := symbols.Symbol{Kind: kind, Name: item.Name, Span: item.Span, Type: t, IsConst: isConst, ValueSyntax: init}
	id, _ := r.Declare(sym, symbols.ScopeInvalid)
	if isConst && init.IsValid() {
		if v, ok := c.bindConst(tree, init, loc); ok {
			s := c.Syms.Symbol(id)
			s.Value, s.ValueValid = v, true
		}
	}
}

func (c *Compilation) declareTypedef(tree *syntax.Tree, item *syntax.Item, r *symbols.Resolver) {
	loc := symbols.EndOf(c.Syms, r.Current())
	alias := c.bindType(tree, item.AliasOf, loc)
	sym := symbols.Symbol{Kind: symbols.KindTypedef, Name: item.Name, Span: item.Span, AliasOf: alias}
	r.Declare(sym, symbols.ScopeInvalid)
}

func (c *Compilation) declareSubroutine(tree *syntax.Tree, id syntax.ItemID, item *syntax.Item, r *symbols.Resolver) {
	sym := symbols.Symbol{
		Kind: symbols.KindSubroutine, Name: item.Name, Span: item.Span,
		IsFunction: item.Kind == syntax.ItemFunction, IsConstexpr: item.Kind == syntax.ItemFunction,
		DeclItem: id,
	}
	symID, scope := r.Declare(sym, symbols.ScopeSubroutine)
	r.Enter(scope)
	loc := symbols.EndOf(c.Syms, r.Current())
	returnType := c.Types.Builtins().Void
	if item.VarType.IsValid() {
		returnType = c.bindType(tree, item.VarType, loc)
	}
	var params []symbols.SymbolID
	for _, pid := range item.Ports {
		p := tree.Builder().Item(pid)
		if p == nil {
			continue
		}
		pt := c.Types.Builtins().Logic
		if p.PortType.IsValid() {
			pt = c.bindType(tree, p.PortType, loc)
		}
		psym, _ := r.Declare(symbols.Symbol{Kind: symbols.KindVariable, Name: p.Name, Span: p.Span, Type: pt}, symbols.ScopeInvalid)
		params = append(params, psym)
	}
	// Body statements see every parameter, so bind them against a location
	// taken after the whole parameter list is declared, not the pre-param
	// loc used for the parameter/return types above.
	bodyLoc := symbols.EndOf(c.Syms, r.Current())
	r.Leave()

	s := c.Syms.Symbol(symID)
	s.ReturnType = returnType
	s.Params = params

	if len(item.Body) > 0 {
		bd := c.newBinder()
		stmts := make([]binder.StmtID, 0, len(item.Body))
		for _, sid := range item.Body {
			stmts = append(stmts, bd.BindStmt(tree, sid, bodyLoc))
		}
		root := stmts[0]
		if len(stmts) != 1 {
			// Multiple direct body statements: wrap them into one block so
			// eval always has a single root to execute.
			root = bd.Tree().AddStmt(binder.Stmt{Kind: binder.StmtBlock, Span: item.Span, Stmts: stmts})
		}
		c.funcBodies[symID] = funcBody{tree: bd.Tree(), root: root}
	}
}

// resolveFuncBody implements eval.BodyResolver: it looks the constexpr
// function/task's own bound statement tree (and the arena it was bound
// into) up by symbol, for evalCall to execute.
func (c *Compilation) resolveFuncBody(sym symbols.SymbolID) (*binder.Builder, binder.StmtID, bool) {
	fb, ok := c.funcBodies[sym]
	if !ok {
		return nil, binder.NoStmtID, false
	}
	return fb.tree, fb.root, true
}

// declareDPIImport declares the prototype a `import "DPI-C" ... function/task
// name(...)` item introduces, exactly like declareSubroutine except the
// resulting symbol is marked IsDPIImport/not IsConstexpr (its body lives in
// foreign code, so eval can never execute it) and its C-side linkage name is
// registered for checkDPIExports to cross-check a same-named export against.
func (c *Compilation) declareDPIImport(tree *syntax.Tree, id syntax.ItemID, item *syntax.Item, r *symbols.Resolver) {
	cname := item.DPICName
	if cname == source.NoStringID {
		cname = item.Name
	}
	sym := symbols.Symbol{
		Kind: symbols.KindSubroutine, Name: item.Name, Span: item.Span,
		IsFunction: item.DPIIsFunction, DeclItem: id,
		IsDPIImport: true, DPICName: cname,
	}
	symID, scope := r.Declare(sym, symbols.ScopeSubroutine)
	r.Enter(scope)
	loc := symbols.EndOf(c.Syms, r.Current())
	returnType := c.Types.Builtins().Void
	if item.VarType.IsValid() {
		returnType = c.bindType(tree, item.VarType, loc)
	}
	var params []symbols.SymbolID
	for _, pid := range item.Ports {
		p := tree.Builder().Item(pid)
		if p == nil {
			continue
		}
		pt := c.Types.Builtins().Logic
		if p.PortType.IsValid() {
			pt = c.bindType(tree, p.PortType, loc)
		}
		psym, _ := r.Declare(symbols.Symbol{Kind: symbols.KindVariable, Name: p.Name, Span: p.Span, Type: pt}, symbols.ScopeInvalid)
		params = append(params, psym)
	}
	r.Leave()

	s := c.Syms.Symbol(symID)
	s.ReturnType = returnType
	s.Params = params

	c.dpiImports[cname] = dpiSignature{isFunction: item.DPIIsFunction, paramCount: len(params), returnType: returnType}
}

func (c *Compilation) declareImport(item *syntax.Item, r *symbols.Resolver) {
	pkgSym := c.findPackage(item.ImportPkg)
	if !pkgSym.IsValid() {
		return
	}
	pkg := c.Syms.Symbol(pkgSym)
	if pkg == nil || !pkg.OwnScope.IsValid() {
		return
	}
	sc := c.Syms.Scope(r.Current())
	if item.ImportWildcard {
		sc.AddWildcardImport(pkgSym, symbols.Index(len(sc.Members())+1), item.Span)
		return
	}
	for _, mid := range c.Syms.Scope(pkg.OwnScope).Members() {
		if m := c.Syms.Symbol(mid); m != nil && m.Name == item.ImportName {
			sc.AddExplicitImport(item.ImportName, mid)
			return
		}
	}
}

func (c *Compilation) findPackage(name source.StringID) symbols.SymbolID {
	sc := c.Syms.Scope(c.rootScope)
	for _, id := range sc.Members() {
		if s := c.Syms.Symbol(id); s != nil && s.Kind == symbols.KindPackage && s.Name == name {
			return id
		}
	}
	return symbols.NoSymbolID
}
