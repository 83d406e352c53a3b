package symbols

import (
	"velab/internal/constval"
	"velab/internal/source"
	"velab/internal/syntax"
	"velab/internal/types"
)

// Kind classifies the semantic meaning of a Symbol.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindCompilationUnit
	KindModuleDef // module/interface/program definition symbol (points at a Definition)
	KindInstanceBody
	KindInstance
	KindPackage
	KindParameter
	KindVariable
	KindNet
	KindField // struct/union member
	KindEnumValue
	KindSubroutine
	KindTypedef
	KindGenericClass
	KindAttribute
	KindWildcardImport
	KindGenerateBlock
	KindRoot
)

func (k Kind) String() string {
	names := [...]string{"invalid", "compilation-unit", "module-def", "instance-body",
		"instance", "package", "parameter", "variable", "net", "field", "enum-value",
		"subroutine", "typedef", "generic-class", "attribute", "wildcard-import",
		"generate-block", "root"}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// Symbol is every named semantic entity. Kind-specific payload lives in
// the fields below rather than through open inheritance or a
// kind-specific subtype.
type Symbol struct {
	Kind   Kind
	Name   source.StringID // may be NoStringID for anonymous symbols
	Parent ScopeID
	Span   source.Span
	Index  Index // monotonic within Parent; assigned once, never changed

	// Scope-owning symbols additionally own a Scope with the same identity;
	// OwnScope is NoScopeID for symbols that don't introduce a scope.
	OwnScope ScopeID

	// KindModuleDef
	Definition DefinitionID

	// KindInstance / KindInstanceBody
	InstanceBody InstanceBodyID
	InstanceOf   DefinitionID

	// KindParameter / KindVariable / KindNet / KindField / KindEnumValue
	Type       types.TypeID
	IsLocal    bool // localparam vs parameter
	IsConst    bool
	Overridden bool // parameter has received an override
	Value      constval.Value
	ValueValid bool
	ValueSyntax syntax.ExprID
	Used       bool // set on first resolved reference; backs lint_mode's unused-symbol warning

	// KindTypedef
	AliasOf types.TypeID

	// KindWildcardImport
	ImportFrom SymbolID // the package symbol being imported

	// KindSubroutine
	IsFunction bool
	IsConstexpr bool
	ReturnType  types.TypeID
	Params      []SymbolID

	// KindSubroutine DPI linkage: set when this subroutine was declared by
	// a `import "DPI-C"` item rather than an ordinary function/task body.
	// DPICName is the C-side identifier (defaults to Name when empty).
	IsDPIImport bool
	DPICName    source.StringID

	// Declaration origin, kept for diagnostics and re-elaboration.
	DeclItem syntax.ItemID
}

// IsScope reports whether this symbol introduces its own nested scope.
func (s *Symbol) IsScope() bool { return s.OwnScope.IsValid() }
