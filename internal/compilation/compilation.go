package compilation

import (
	"fmt"

	"velab/internal/binder"
	"velab/internal/diag"
	"velab/internal/source"
	"velab/internal/symbols"
	"velab/internal/syntax"
	"velab/internal/types"
)

// State is the compilation's phase.
type State uint8

const (
	Building State = iota
	Finalizing
	Finalized
)

// Compilation is the owning context for one elaboration run: every arena,
// interning table, and the diagnostic sink, plus the phase guard that
// forbids mutation once finalized.
type Compilation struct {
	opts Options

	Strings *source.Interner
	Types   *types.Interner
	Syms    *symbols.Table
	Defs    *symbols.DefinitionTable
	Insts   *symbols.InstanceTable
	Diags   *diag.Bag

	root      symbols.SymbolID
	rootScope symbols.ScopeID
	stdScope  symbols.ScopeID
	defScope  symbols.ScopeID // holds one KindModuleDef symbol per Definition, for Lookup step 5

	trees      []*syntax.Tree
	treeByFile map[source.FileID]*syntax.Tree
	state      State

	lookupCtx     *symbols.Context
	deferredTree  map[symbols.ScopeID]*syntax.Tree // scope -> tree its deferred members were captured from
	scopeHierPath map[symbols.ScopeID][]source.StringID

	topBodies []symbols.InstanceBodyID

	pendingBinds      []pendingBind
	pendingDefparams  []pendingDefparam
	pendingDPIExports []pendingDPIExport
	dpiImports        map[source.StringID]dpiSignature

	// funcBodies holds the bound statement tree for every constexpr
	// function/task body, keyed by its subroutine Symbol. Each is bound
	// through its own Binder (and so its own Expr/Stmt arena) at declaration
	// time, once every parameter is in scope; internal/eval looks it up by
	// symbol and temporarily swaps its own Tree to walk it for the duration
	// of the call.
	funcBodies map[symbols.SymbolID]funcBody

	// overrideNodes tracks each scope's position in the caller-supplied
	// ParamOverrideNode tree, keyed by the
	// scope an instance is being elaborated *into* so instantiate can look
	// up its own level and hand the matching child down to its own body.
	overrideNodes map[symbols.ScopeID]*ParamOverrideNode
}

// pendingBind/pendingDefparam record a `bind`/`defparam` directive seen
// during declareBodyItems for the post-elaboration pass elaborate() runs
// once every instance exists.
type pendingBind struct {
	tree  *syntax.Tree
	item  syntax.ItemID
	scope symbols.ScopeID
}

type pendingDefparam struct {
	tree  *syntax.Tree
	item  syntax.ItemID
	scope symbols.ScopeID
}

// pendingDPIExport records an `export "DPI-C" ...` directive for the
// post-elaboration checkDPIExports pass: the subroutine it names may be
// declared later in the same scope, so resolving it must wait until every
// declaration the exporting scope can see has been registered.
type pendingDPIExport struct {
	tree  *syntax.Tree
	item  syntax.ItemID
	scope symbols.ScopeID
}

// dpiSignature is the minimal shape of a DPI import's prototype, recorded so
// checkDPIExports can compare it against the local subroutine definition a
// same-named export makes available to C callers.
type dpiSignature struct {
	isFunction bool
	paramCount int
	returnType types.TypeID
}

// funcBody is one constexpr function/task's bound statement tree: its own
// Binder's arena (exprs and statements alike) plus the root StmtID of its
// body block.
type funcBody struct {
	tree *binder.Builder
	root binder.StmtID
}

// New creates a Compilation in the Building phase.
func New(opts Options) *Compilation {
	opts.applyDefaults()
	c := &Compilation{
		opts:          opts,
		Strings:       source.NewInterner(),
		Types:         types.NewInterner(),
		Syms:          symbols.NewTable(),
		Defs:          symbols.NewDefinitionTable(),
		Insts:         symbols.NewInstanceTable(opts.DisableInstanceCaching),
		Diags:         diag.NewBag(opts.ErrorLimit),
		deferredTree:  make(map[symbols.ScopeID]*syntax.Tree),
		scopeHierPath: make(map[symbols.ScopeID][]source.StringID),
		overrideNodes: make(map[symbols.ScopeID]*ParamOverrideNode),
		dpiImports:    make(map[source.StringID]dpiSignature),
		funcBodies:    make(map[symbols.SymbolID]funcBody),
	}
	c.rootScope = c.Syms.NewScope(symbols.ScopeRoot, symbols.NoScopeID)
	c.stdScope = c.Syms.NewScope(symbols.ScopeStdPackage, c.rootScope)
	c.defScope = c.Syms.NewScope(symbols.ScopeCompilationUnit, symbols.NoScopeID)
	c.scopeHierPath[c.rootScope] = nil

	c.lookupCtx = &symbols.Context{
		Table:       c.Syms,
		Strings:     c.Strings,
		Realizer:    c,
		Definitions: c.lookupDefinition,
		StdPackage:  c.stdScope,
		TypoLimit:   opts.TypoCorrectionLimit,
	}
	return c
}

// lookupDefinition implements symbols.Context.Definitions: a linear scan of the definition-registry scope, kept
// separate from the root scope so module/interface/program names are only
// ever found through this explicit fallback step, never through ordinary
// enclosing-scope search.
func (c *Compilation) lookupDefinition(name source.StringID) symbols.SymbolID {
	sc := c.Syms.Scope(c.defScope)
	if sc == nil {
		return symbols.NoSymbolID
	}
	for _, id := range sc.Members() {
		if s := c.Syms.Symbol(id); s != nil && s.Name == name {
			return id
		}
	}
	return symbols.NoSymbolID
}

// Options returns the effective options (post-defaults) this compilation
// was created with.
func (c *Compilation) Options() Options { return c.opts }

// State reports the current phase.
func (c *Compilation) State() State { return c.state }

// AddSyntaxTree registers tree's top-level declarations (definitions,
// packages) into the compilation. Only legal during Building.
func (c *Compilation) AddSyntaxTree(tree *syntax.Tree) error {
	if c.state != Building {
		return fmt.Errorf("compilation: AddSyntaxTree after finalize")
	}
	c.trees = append(c.trees, tree)
	c.declareTopLevel(tree)
	return nil
}

// RootScope is the scope every top-level definition and package is visible
// from.
func (c *Compilation) RootScope() symbols.ScopeID { return c.rootScope }

// StdScope is the `std` built-in package scope.
func (c *Compilation) StdScope() symbols.ScopeID { return c.stdScope }

// GetRoot triggers elaboration (Building -> Finalizing -> Finalized) on
// first call and returns the root symbol every top-module instance hangs
// from.
func (c *Compilation) GetRoot() symbols.SymbolID {
	c.ensureFinalized()
	return c.root
}

// GetDefinition resolves a definition by (name, scope): nested-first
// resolution starting at scope and walking its enclosing-scope chain before
// falling back to the flat top-level table, mirroring ordinary Lookup's
// precedence so a module/interface/program nested inside the scope's own
// lexical ancestry shadows a same-named top-level definition.
func (c *Compilation) GetDefinition(scope symbols.ScopeID, name source.StringID) *symbols.Definition {
	return c.Defs.Get(c.resolveDefinition(scope, name))
}

// resolveDefinition is the scope-aware counterpart to Defs.ByName, used by
// GetDefinition and by instantiate to resolve an ItemInstance's DefName.
// Because nested definitions are registered into their own lexically
// enclosing scope rather than the flat defScope (see declareDefinition),
// an ordinary Lookup starting at scope finds the nearest lexical match
// first and only reaches the top-level fallback (step 5, lookupDefinition)
// when nothing nested shadows the name.
func (c *Compilation) resolveDefinition(scope symbols.ScopeID, name source.StringID) symbols.DefinitionID {
	loc := symbols.EndOf(c.Syms, scope)
	res := symbols.Lookup(c.lookupCtx, name, loc, symbols.FlagAllowDeclaredAfter)
	if !res.Found.IsValid() {
		return symbols.NoDefinitionID
	}
	sym := c.Syms.Symbol(res.Found)
	if sym == nil || sym.Kind != symbols.KindModuleDef {
		return symbols.NoDefinitionID
	}
	return sym.Definition
}

// GetType resolves id against the shared type interner.
func (c *Compilation) GetType(id types.TypeID) (types.Type, bool) {
	return c.Types.Lookup(id)
}

// Diagnostics triggers finalization (if not already finalized) and returns
// every diagnostic recorded so far, in source order.
func (c *Compilation) Diagnostics() []diag.Diagnostic {
	c.ensureFinalized()
	return c.Diags.Entries()
}

// TopInstances returns the elaborated top-module instance bodies, valid
// only after finalization.
func (c *Compilation) TopInstances() []symbols.InstanceBodyID {
	c.ensureFinalized()
	return c.topBodies
}

func (c *Compilation) ensureFinalized() {
	if c.state != Building {
		return
	}
	c.state = Finalizing
	c.elaborate()
	c.state = Finalized
}
