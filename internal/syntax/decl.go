package syntax

import "velab/internal/source"

// TypeKind enumerates the syntactic type-name shapes.
type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	TypeVoid
	TypeBit
	TypeLogic
	TypeReg
	TypeByte
	TypeShortint
	TypeInt
	TypeLongint
	TypeInteger
	TypeReal
	TypeShortreal
	TypeRealtime
	TypeString
	TypeChandle
	TypeEvent
	TypeNamed // resolved via lookup: identifier or pkg::identifier
	TypeStructInline
	TypeUnionInline
)

// TypeNode is a syntactic type expression: a scalar keyword, a named reference resolved by the binder,
// or an inline struct/union with its own member list.
type TypeNode struct {
	Kind       TypeKind
	Span       source.Span
	Signed     bool
	Packed     bool
	Name       source.StringID // TypeNamed
	ScopePkg   source.StringID // TypeNamed via pkg::name
	PackedDims []DimSyntax     // e.g. logic [7:0]
	UnpackedDims []DimSyntax   // trailing unpacked dims on a declarator
	Members    []FieldID       // TypeStructInline / TypeUnionInline
}

// DimSyntax is one `[a:b]` / `[]` / `[*]` / `[string]` dimension as written.
type DimSyntax struct {
	Left, Right ExprID
	Dynamic     bool
	Queue       bool
	Assoc       bool
	AssocKey    TypeID
}

// FieldDecl is one member of an inline packed struct/union.
type FieldDecl struct {
	Name source.StringID
	Type TypeID
	Span source.Span
}

// ItemKind enumerates top-level and nested declaration shapes.
type ItemKind uint8

const (
	ItemInvalid ItemKind = iota
	ItemModule
	ItemInterface
	ItemProgram
	ItemPackage
	ItemParam     // parameter / localparam declaration
	ItemPort
	ItemNet
	ItemVariable
	ItemTypedef
	ItemEnumValue
	ItemFunction
	ItemTask
	ItemGenerateBlock
	ItemGenerateIf
	ItemGenerateFor
	ItemInstance
	ItemImport // pkg::name or pkg::*
	ItemBind
	ItemDefparam
	ItemAttribute
	ItemDPIImport // import "DPI-C" [context|pure] [c_identifier=] function/task ...
	ItemDPIExport // export "DPI-C" [c_identifier=] function/task name

	// Statements, nested inside a function/task body (its Body list). Each
	// reuses the generic Item fields the way generate-if/generate-for already
	// reuse them for their own condition/branch/loop shape, rather than
	// growing a parallel statement-node type:
	//   ItemStmtBlock  Body            = nested statement list
	//   ItemStmtIf     GenCond, Body, GenElse = condition, then-list, else-list
	//   ItemStmtFor    GenInit, GenCondLoop, GenStep, Body = init/cond/step/body
	//   ItemStmtReturn VarInit         = return value (invalid for a bare `return;`)
	//   ItemStmtExpr   VarInit         = the expression evaluated for effect (an assignment)
	ItemStmtBlock
	ItemStmtIf
	ItemStmtFor
	ItemStmtReturn
	ItemStmtExpr
)

// Item is one declaration node, arena-addressed by ItemID.
type Item struct {
	Kind ItemKind
	Span source.Span
	Name source.StringID

	// Module/interface/program/package definition
	DefaultNetType TypeKind
	TimeUnit       string
	Params         []ItemID
	Ports          []ItemID
	Body           []ItemID

	// Parameter declaration
	ParamType    TypeID
	ParamDefault ExprID
	IsLocalParam bool
	IsTypeParam  bool

	// Port declaration
	PortDir  PortDirection
	PortType TypeID

	// Net/variable declaration
	VarType TypeID
	VarInit ExprID
	IsConst bool

	// Typedef
	AliasOf TypeID

	// Generate
	GenCond  ExprID
	GenElse  []ItemID
	GenInit  ItemID
	GenCondLoop ExprID
	GenStep  ItemID
	GenLabel source.StringID

	// Instance (module/interface instantiation)
	DefName        source.StringID
	InstName       source.StringID
	ParamOverrides []ParamOverrideSyntax
	PortConns      []PortConnSyntax
	ArrayDims      []DimSyntax // instance array, e.g. foo bar[3:0] (...)

	// Import
	ImportPkg    source.StringID
	ImportName   source.StringID // empty + Wildcard=true means pkg::*
	ImportWildcard bool

	// Bind directive: targetDef (applies to every instance of that
	// definition) or targetPath (direct hierarchical target), plus the
	// instance item to insert.
	BindTargetDef  source.StringID
	BindTargetPath []source.StringID
	BindInstance   ItemID

	// defparam path=value
	DefparamPath []source.StringID
	DefparamValue ExprID

	// DPI import/export. Name is always the SV-side identifier (the import's
	// own declared subroutine name, or the exported subroutine's name to
	// resolve). DPICName is the C-side linkage name; NoStringID means it's
	// the same as Name. Import reuses VarType (return type; invalid for a
	// task) and Ports (parameter list) exactly like ItemFunction/ItemTask.
	DPICName      source.StringID
	DPIIsFunction bool
	DPIContext    bool
	DPIPure       bool
}

// PortDirection enumerates port directions.
type PortDirection uint8

const (
	PortDirNone PortDirection = iota
	PortInput
	PortOutput
	PortInout
	PortRef
)

// ParamOverrideSyntax is one `.name(value)` or positional `value` parameter
// override at an instantiation site.
type ParamOverrideSyntax struct {
	Name  source.StringID // empty for positional
	Value ExprID
}

// PortConnSyntax is one `.name(expr)` or positional `expr` port connection.
type PortConnSyntax struct {
	Name  source.StringID // empty for positional
	Value ExprID
	Unconnected bool // `.name()` explicit unconnected
}
