package symbols

import (
	"velab/internal/constval"
	"velab/internal/source"
	"velab/internal/syntax"
	"velab/internal/types"
)

// NetKind is the default net type a definition's body inherits absent an
// explicit declaration.
type NetKind uint8

const (
	NetWire NetKind = iota
	NetNone // `default_nettype none`
	NetTri
	NetWand
	NetWor
)

// ParamDecl is one parameter as declared on a definition, before any
// override tree has been applied.
type ParamDecl struct {
	Name         source.StringID
	Type         syntax.TypeID
	Default      syntax.ExprID // NoExprID if the parameter has no default
	IsLocal      bool          // localparam, never overridable
	IsType       bool          // `parameter type`
	DeclaredType types.TypeID  // for `parameter type` params, the default type
}

// Definition is a module/interface/program, uninstantiated: its own syntax,
// parameter list, port list, and default net type. A Definition is looked up once per unique name in the
// top-level definition table and then instantiated any number of times,
// each instantiation producing a distinct InstanceBody keyed by the
// resolved parameter values.
type Definition struct {
	Name        source.StringID
	Kind        syntax.ItemKind // ItemModule, ItemInterface, or ItemProgram
	Body        syntax.ItemID
	DefaultNet  NetKind
	TimeUnit    string // empty if unspecified
	TimePrec    string
	Parameters  []ParamDecl
	Ports       []syntax.ItemID
	SourceFile  source.FileID
	SourceLib   string
}

// DefinitionTable owns every Definition in the design, keyed by name — the
// top-level lookup fallback used by Lookup's precedence step 5, and the source the compilation driver consults to pick the set of
// candidate top modules.
type DefinitionTable struct {
	byID   []Definition
	byName map[source.StringID]DefinitionID
}

// NewDefinitionTable creates an empty table with the sentinel slot reserved.
func NewDefinitionTable() *DefinitionTable {
	return &DefinitionTable{
		byID:   []Definition{{}},
		byName: make(map[source.StringID]DefinitionID),
	}
}

// Add registers def, returning its id. global selects whether def also
// joins the flat top-level byName index (the Lookup step-5 fallback
// reachable from anywhere); nested definitions pass global=false and are
// instead found through ordinary enclosing-scope lookup on the symbol their
// caller registers alongside them. A second global definition with the same
// name does not replace the first in the lookup-by-name mapping; both remain
// addressable by id.
func (dt *DefinitionTable) Add(def Definition, global bool) DefinitionID {
	id := DefinitionID(len(dt.byID))
	dt.byID = append(dt.byID, def)
	if global && def.Name != source.NoStringID {
		if _, exists := dt.byName[def.Name]; !exists {
			dt.byName[def.Name] = id
		}
	}
	return id
}

// Get returns the definition for id, or nil if id is invalid.
func (dt *DefinitionTable) Get(id DefinitionID) *Definition {
	if !id.IsValid() || int(id) >= len(dt.byID) {
		return nil
	}
	return &dt.byID[id]
}

// ByName looks up a definition by its top-level name.
func (dt *DefinitionTable) ByName(name source.StringID) DefinitionID {
	return dt.byName[name]
}

// Names returns every distinct top-level definition name, used to build the
// candidate top-module set.
func (dt *DefinitionTable) Names() []source.StringID {
	out := make([]source.StringID, 0, len(dt.byName))
	for n := range dt.byName {
		out = append(out, n)
	}
	return out
}

// ParamValue is a single resolved (name, value) pair contributing to an
// instance cache key.
type ParamValue struct {
	Name  source.StringID
	Value constval.Value
	Type  types.TypeID
}
